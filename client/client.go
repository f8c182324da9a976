// Package client provides the remote-call side of contract benchmarking:
// a capability interface for read and write calls plus a go-ethereum
// backed implementation.
package client

import (
	"context"
	"errors"
)

// ErrNoSigner is returned by Write when no signing key is configured.
var ErrNoSigner = errors.New("write call requires a configured signing key")

// Receipt holds the confirmation data of a mined write call.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

// Contract is the capability a benchmark runner needs from a deployed
// contract. Read performs a side-effect-free query; Write submits a
// state-changing transaction and blocks until it is mined.
type Contract interface {
	Read(ctx context.Context, method string, args []any) (any, error)
	Write(ctx context.Context, method string, args []any) (*Receipt, error)

	// CanWrite reports whether a signing key is configured.
	CanWrite() bool
}
