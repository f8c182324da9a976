package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseMethods parses an ABI definition and returns its callable
// methods sorted by name. Used for schema inspection without dialing
// an endpoint.
func ParseMethods(abiJSON string) ([]abi.Method, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}

	methods := make([]abi.Method, 0, len(parsed.Methods))
	for _, m := range parsed.Methods {
		methods = append(methods, m)
	}

	sort.Slice(methods, func(i, j int) bool {
		return methods[i].Name < methods[j].Name
	})

	return methods, nil
}
