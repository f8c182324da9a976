package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Config holds everything needed to talk to a deployed contract.
type Config struct {
	RPCURL   string
	Contract string

	// ABIJSON is the contract's ABI definition as a JSON string.
	ABIJSON string

	// PrivateKey is a hex-encoded secp256k1 key, with or without the
	// 0x prefix. Empty means read-only operation.
	PrivateKey string
}

// EthContract talks to a single deployed contract over JSON-RPC.
type EthContract struct {
	client  *ethclient.Client
	abi     abi.ABI
	address common.Address
	chainID *big.Int
	key     *ecdsa.PrivateKey
	from    common.Address
	logger  *slog.Logger
}

// Dial connects to the RPC endpoint, parses the ABI and optional
// signing key, and fetches the chain ID.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*EthContract, error) {
	if !common.IsHexAddress(cfg.Contract) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.Contract)
	}

	parsed, err := abi.JSON(strings.NewReader(cfg.ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}

	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}

	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()

		return nil, fmt.Errorf("fetch chain ID: %w", err)
	}

	c := &EthContract{
		client:  ec,
		abi:     parsed,
		address: common.HexToAddress(cfg.Contract),
		chainID: chainID,
		logger:  logger.With(slog.String("contract", cfg.Contract)),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			ec.Close()

			return nil, fmt.Errorf("parse private key: %w", err)
		}

		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	c.logger.Info("connected",
		slog.String("endpoint", cfg.RPCURL),
		slog.String("chain_id", chainID.String()),
		slog.Bool("signer", c.key != nil),
	)

	return c, nil
}

// Close releases the underlying RPC connection.
func (c *EthContract) Close() {
	c.client.Close()
}

// CanWrite reports whether a signing key was configured at Dial time.
func (c *EthContract) CanWrite() bool {
	return c.key != nil
}

// Read performs an eth_call against the contract and returns the
// method's first return value, or the full value slice when the method
// returns more than one.
func (c *EthContract) Read(ctx context.Context, method string, args []any) (any, error) {
	data, err := c.pack(method, args)
	if err != nil {
		return nil, err
	}

	msg := ethereum.CallMsg{
		From: c.from,
		To:   &c.address,
		Data: data,
	}

	out, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s result: %w", method, err)
	}

	if len(values) == 1 {
		return values[0], nil
	}

	return values, nil
}

// Write submits a signed transaction invoking the method and blocks
// until the transaction is mined. A reverted receipt is an error.
func (c *EthContract) Write(ctx context.Context, method string, args []any) (*Receipt, error) {
	if c.key == nil {
		return nil, ErrNoSigner
	}

	data, err := c.pack(method, args)
	if err != nil {
		return nil, err
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.from,
		To:   &c.address,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas for %s: %w", method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &c.address,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, signed)
	if err != nil {
		return nil, fmt.Errorf("wait for %s receipt: %w", signed.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted in block %d",
			signed.Hash().Hex(), receipt.BlockNumber.Uint64())
	}

	return &Receipt{
		TxHash:      signed.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

func (c *EthContract) pack(method string, args []any) ([]byte, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found in ABI", method)
	}

	coerced, err := coerceArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("arguments for %s: %w", method, err)
	}

	data, err := c.abi.Pack(method, coerced...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	return data, nil
}
