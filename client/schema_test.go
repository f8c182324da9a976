package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const counterABI = `[
	{"name": "increment", "type": "function", "inputs": [], "outputs": []},
	{"name": "getCount", "type": "function", "stateMutability": "view",
	 "inputs": [], "outputs": [{"name": "", "type": "uint256"}]},
	{"name": "add", "type": "function",
	 "inputs": [{"name": "n", "type": "uint256"}], "outputs": []}
]`

func TestParseMethods(t *testing.T) {
	methods, err := ParseMethods(counterABI)
	require.NoError(t, err)
	require.Len(t, methods, 3)

	// Sorted by name.
	require.Equal(t, "add", methods[0].Name)
	require.Equal(t, "getCount", methods[1].Name)
	require.Equal(t, "increment", methods[2].Name)

	require.True(t, methods[1].IsConstant() || methods[1].StateMutability == "view")
}

func TestParseMethodsInvalidJSON(t *testing.T) {
	_, err := ParseMethods("not json")
	require.Error(t, err)
}
