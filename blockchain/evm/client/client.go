// Package client is the connection to the EVM blockchain node.
//
// Connect proves that the node answers, then the client is used
// to bind the contract and to send the calls to the node.
package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/blocklords/hashstore/blockchain"
	"github.com/blocklords/hashstore/blockchain/evm/abi"
	"github.com/blocklords/hashstore/blockchain/evm/contract"
	"github.com/blocklords/hashstore/blockchain/evm/util"
	"github.com/blocklords/hashstore/blockchain/network/provider"
	"github.com/blocklords/hashstore/log"

	"github.com/ethereum/go-ethereum"
	eth_common "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	eth_types "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client is the session with the node
type Client struct {
	provider provider.Provider
	rpc      *rpc.Client
	client   *ethclient.Client
	chain_id *big.Int
	logger   *log.Logger
}

// arguments of eth_sendTransaction.
// The node signs the transaction with the key of the "from" account.
type send_args struct {
	From eth_common.Address  `json:"from"`
	To   *eth_common.Address `json:"to"`
	Data hexutil.Bytes       `json:"data"`
}

// Connect to the node of the provider.
//
// Dialing over HTTP doesn't touch the network,
// therefore the chain id is requested to make sure that the node is reachable.
func Connect(ctx context.Context, p provider.Provider, parent *log.Logger) (*Client, error) {
	logger := parent.Child("client", "url", p.Url)

	rpc_client, err := rpc.DialContext(ctx, p.Url)
	if err != nil {
		return nil, blockchain.Errorf(blockchain.ErrConnectivity, "connect", "rpc.DialContext: %w", err)
	}
	client := ethclient.NewClient(rpc_client)

	chain_id, err := client.ChainID(ctx)
	if err != nil {
		rpc_client.Close()
		return nil, blockchain.Errorf(blockchain.ErrConnectivity, "connect", "eth_chainId: %w", err)
	}
	logger.Info("connected to the node", "chain_id", chain_id)

	return &Client{
		provider: p,
		rpc:      rpc_client,
		client:   client,
		chain_id: chain_id,
		logger:   logger,
	}, nil
}

// Close the session with the node
func (c *Client) Close() {
	c.rpc.Close()
}

// ChainId returns the id that the node reported during the connection
func (c *Client) ChainId() *big.Int {
	return new(big.Int).Set(c.chain_id)
}

// Bind the contract at the address to its descriptor.
// No request is sent to the node.
func (c *Client) Bind(address string, descriptor *abi.Abi) (*contract.Contract, error) {
	return contract.New(address, descriptor, c, c.logger)
}

// Accounts returns the accounts managed by the node.
func (c *Client) Accounts(ctx context.Context) ([]eth_common.Address, error) {
	var accounts []eth_common.Address
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, blockchain.Errorf(blockchain.ErrConnectivity, "accounts", "eth_accounts: %w", err)
	}

	return accounts, nil
}

// Balance of the account in ether at the latest block
func (c *Client) Balance(ctx context.Context, account eth_common.Address) (*big.Float, error) {
	wei, err := c.client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, blockchain.Errorf(blockchain.ErrConnectivity, "balance", "eth_getBalance: %w", err)
	}

	return util.WeiToEther(wei), nil
}

// SendTransaction submits the transaction that the node signs on behalf of "from".
// Returns the transaction hash, the transaction is not confirmed yet.
func (c *Client) SendTransaction(ctx context.Context, from eth_common.Address, to eth_common.Address, data []byte) (eth_common.Hash, error) {
	args := send_args{
		From: from,
		To:   &to,
		Data: data,
	}

	var hash eth_common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return eth_common.Hash{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}

	return hash, nil
}

// CallContract executes the read only call at the given block.
// The nil block means the latest block.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	data, err := c.client.CallContract(ctx, msg, block)
	if err != nil {
		return nil, fmt.Errorf("eth_call: %w", err)
	}

	return data, nil
}

// TransactionReceipt returns ethereum.NotFound while the transaction is pending.
func (c *Client) TransactionReceipt(ctx context.Context, hash eth_common.Hash) (*eth_types.Receipt, error) {
	receipt, err := c.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt: %w", err)
	}

	return receipt, nil
}
