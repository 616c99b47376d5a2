// Package contract binds the deployed hash store contract
// and exposes its two functions: storeHash and getHash.
package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/blocklords/hashstore/blockchain"
	"github.com/blocklords/hashstore/blockchain/evm/abi"
	"github.com/blocklords/hashstore/blockchain/evm/transaction"
	"github.com/blocklords/hashstore/log"

	"github.com/ethereum/go-ethereum"
	eth_common "github.com/ethereum/go-ethereum/common"
	eth_types "github.com/ethereum/go-ethereum/core/types"
)

const (
	STORE_HASH = "storeHash"
	GET_HASH   = "getHash"

	RECEIPT_POLL_INTERVAL = time.Second
)

// Interface is the part of the descriptor that the contract must have
var Interface = []abi.Signature{
	{Name: STORE_HASH, Inputs: []string{"string", "string"}},
	{Name: GET_HASH, Inputs: []string{"string"}, Outputs: []string{"string"}, ReadOnly: true},
}

// Backend is the node session that the contract sends the calls over.
// Implemented by blockchain/evm/client.Client
type Backend interface {
	SendTransaction(ctx context.Context, from eth_common.Address, to eth_common.Address, data []byte) (eth_common.Hash, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, hash eth_common.Hash) (*eth_types.Receipt, error)
}

// Contract is the deployed contract bound to its descriptor.
type Contract struct {
	Address      eth_common.Address
	PollInterval time.Duration // how often to ask for the transaction receipt
	descriptor   *abi.Abi
	backend      Backend
	logger       *log.Logger
}

// New binds the address to the descriptor.
// The descriptor is validated first. There is no request to the node.
func New(address string, descriptor *abi.Abi, backend Backend, parent *log.Logger) (*Contract, error) {
	if descriptor == nil {
		return nil, blockchain.Errorf(blockchain.ErrDescriptor, "bind", "no descriptor")
	}
	if err := descriptor.Require(Interface...); err != nil {
		return nil, err
	}

	contract_address, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}

	logger := parent.Child("contract", "address", contract_address.Hex())
	logger.Info("contract bound", "abi_id", descriptor.Id)

	return &Contract{
		Address:      contract_address,
		PollInterval: RECEIPT_POLL_INTERVAL,
		descriptor:   descriptor,
		backend:      backend,
		logger:       logger,
	}, nil
}

// ParseAddress accepts the 20 bytes hex address with or without 0x prefix.
// The mixed case address must have the valid EIP-55 checksum.
func ParseAddress(address string) (eth_common.Address, error) {
	if !eth_common.IsHexAddress(address) {
		return eth_common.Address{}, blockchain.Errorf(blockchain.ErrAddress, "bind", "'%s' is not a 20 bytes hex string", address)
	}

	parsed := eth_common.HexToAddress(address)

	hex := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	mixed := strings.ToLower(hex) != hex && strings.ToUpper(hex) != hex
	if mixed && parsed.Hex()[2:] != hex {
		return eth_common.Address{}, blockchain.Errorf(blockchain.ErrAddress, "bind", "'%s' has invalid checksum, expected '%s'", address, parsed.Hex())
	}

	return parsed, nil
}

// StoreHash submits the storeHash transaction signed by the signer,
// then blocks until the transaction receipt arrives or the timeout passes.
//
// The zero timeout means waiting as long as the ctx is alive.
func (c *Contract) StoreHash(ctx context.Context, signer eth_common.Address, key string, value string, timeout time.Duration) (*transaction.Receipt, error) {
	hash, err := c.SubmitStoreHash(ctx, signer, key, value)
	if err != nil {
		return nil, err
	}

	return c.WaitReceipt(ctx, hash, timeout)
}

// SubmitStoreHash submits the transaction without waiting for the confirmation.
// Returns the transaction handle.
func (c *Contract) SubmitStoreHash(ctx context.Context, signer eth_common.Address, key string, value string) (eth_common.Hash, error) {
	data, err := c.descriptor.Pack(STORE_HASH, key, value)
	if err != nil {
		return eth_common.Hash{}, blockchain.NewError(blockchain.ErrDescriptor, STORE_HASH, err)
	}

	hash, err := c.backend.SendTransaction(ctx, signer, c.Address, data)
	if err != nil {
		return eth_common.Hash{}, blockchain.NewError(blockchain.ErrSubmission, STORE_HASH, err)
	}
	c.logger.Info("transaction submitted", "transaction_id", hash.Hex(), "signer", signer.Hex(), "key", key)

	return hash, nil
}

// WaitReceipt polls the node until the transaction is mined.
// The mined but reverted transaction is a submission failure.
func (c *Contract) WaitReceipt(ctx context.Context, hash eth_common.Hash, timeout time.Duration) (*transaction.Receipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		raw, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return c.confirm(raw)
		}
		if errors.Is(err, ethereum.NotFound) {
			c.logger.Debug("transaction is pending", "transaction_id", hash.Hex())
		} else {
			c.logger.Warn("transaction receipt", "transaction_id", hash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, blockchain.Errorf(blockchain.ErrConfirmationTimeout, STORE_HASH, "transaction %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Contract) confirm(raw *eth_types.Receipt) (*transaction.Receipt, error) {
	receipt, err := transaction.New(raw)
	if err != nil {
		return nil, blockchain.Errorf(blockchain.ErrSubmission, STORE_HASH, "transaction.New: %w", err)
	}
	if !receipt.Success {
		return nil, blockchain.Errorf(blockchain.ErrSubmission, STORE_HASH, "transaction %s reverted in block %d", receipt.Id, receipt.BlockNumber)
	}

	c.logger.Info("transaction confirmed", "transaction_id", receipt.Id, "block_number", receipt.BlockNumber, "gas_used", receipt.GasUsed)
	return receipt, nil
}

// GetHash reads the hash stored under the key at the latest block.
// There is no transaction.
func (c *Contract) GetHash(ctx context.Context, key string) (string, error) {
	data, err := c.descriptor.Pack(GET_HASH, key)
	if err != nil {
		return "", blockchain.NewError(blockchain.ErrDescriptor, GET_HASH, err)
	}

	msg := ethereum.CallMsg{
		To:   &c.Address,
		Data: data,
	}
	reply, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return "", blockchain.NewError(blockchain.ErrCall, GET_HASH, err)
	}

	values, err := c.descriptor.Unpack(GET_HASH, reply)
	if err != nil {
		return "", blockchain.NewError(blockchain.ErrCall, GET_HASH, err)
	}
	value, ok := values[0].(string)
	if !ok {
		return "", blockchain.Errorf(blockchain.ErrCall, GET_HASH, "expected string, but node returned %T", values[0])
	}

	return value, nil
}
