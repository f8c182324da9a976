package client

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// coerceArgs maps loosely typed argument values (as decoded from YAML
// or parsed from CLI flags) onto the Go types go-ethereum's ABI packer
// expects for each input.
func coerceArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("got %d arguments, ABI expects %d",
			len(args), len(inputs))
	}

	coerced := make([]any, len(args))

	for i, input := range inputs {
		v, err := coerceArg(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, input.Type.String(), err)
		}

		coerced[i] = v
	}

	return coerced, nil
}

func coerceArg(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}

		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for unsigned type", n)
		}

		return sizeUint(t.Size, n)

	case abi.IntTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}

		return sizeInt(t.Size, n)

	case abi.BoolTy:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}

		return b, nil

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}

		return s, nil

	case abi.AddressTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected address string, got %T", v)
		}

		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}

		return common.HexToAddress(s), nil

	case abi.BytesTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected hex string, got %T", v)
		}

		return common.FromHex(s), nil

	default:
		return nil, fmt.Errorf("unsupported ABI type %s", t.String())
	}
}

func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("non-integer value %v", n)
		}

		return big.NewInt(int64(n)), nil
	case string:
		i, ok := new(big.Int).SetString(n, 0)
		if !ok {
			return nil, fmt.Errorf("cannot parse %q as integer", n)
		}

		return i, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// sizeUint narrows a big.Int to the Go type the packer expects for the
// given bit width. Widths above 64 stay *big.Int.
func sizeUint(bits int, n *big.Int) (any, error) {
	if bits > 64 {
		return n, nil
	}

	if !n.IsUint64() || (bits < 64 && n.Uint64() > (1<<uint(bits))-1) {
		return nil, fmt.Errorf("value %s overflows uint%d", n, bits)
	}

	u := n.Uint64()

	switch bits {
	case 8:
		return uint8(u), nil
	case 16:
		return uint16(u), nil
	case 32:
		return uint32(u), nil
	case 64:
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported uint width %d", bits)
	}
}

func sizeInt(bits int, n *big.Int) (any, error) {
	if bits > 64 {
		return n, nil
	}

	if !n.IsInt64() {
		return nil, fmt.Errorf("value %s overflows int%d", n, bits)
	}

	i := n.Int64()

	if bits < 64 {
		limit := int64(1) << uint(bits-1)
		if i >= limit || i < -limit {
			return nil, fmt.Errorf("value %s overflows int%d", n, bits)
		}
	}

	switch bits {
	case 8:
		return int8(i), nil
	case 16:
		return int16(i), nil
	case 32:
		return int32(i), nil
	case 64:
		return i, nil
	default:
		return nil, fmt.Errorf("unsupported int width %d", bits)
	}
}
