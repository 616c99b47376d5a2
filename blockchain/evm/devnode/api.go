package devnode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/blocklords/hashstore/blockchain/evm/abi"
	"github.com/blocklords/hashstore/blockchain/evm/util"
	"github.com/blocklords/hashstore/log"

	eth_common "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	eth_types "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	ACCOUNT_BALANCE = 100 // ether
	TX_GAS          = 21_000
	TX_DATA_GAS     = 16 // per byte
)

// TransactionArgs are the arguments of eth_sendTransaction and eth_call
type TransactionArgs struct {
	From  *eth_common.Address `json:"from"`
	To    *eth_common.Address `json:"to"`
	Data  *hexutil.Bytes      `json:"data"`
	Input *hexutil.Bytes      `json:"input"`
}

func (args TransactionArgs) data() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

type pending struct {
	hash    eth_common.Hash
	key     string
	value   string
	gas     uint64
	readyAt time.Time
}

// API is the "eth" namespace of the node.
type API struct {
	mu         sync.Mutex
	descriptor *abi.Abi
	contract   eth_common.Address
	accounts   []eth_common.Address
	balances   map[eth_common.Address]*big.Int
	hashes     map[string]string
	pending    []pending
	receipts   map[eth_common.Hash]*eth_types.Receipt
	block      uint64
	nonce      uint64
	delay      time.Duration
	logger     *log.Logger
}

func newAPI(descriptor *abi.Abi, amount int, logger *log.Logger) (*API, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("at least one account required, given %d", amount)
	}

	api := &API{
		descriptor: descriptor,
		contract:   eth_common.HexToAddress(ContractAddress),
		accounts:   make([]eth_common.Address, amount),
		balances:   make(map[eth_common.Address]*big.Int, amount),
		hashes:     make(map[string]string),
		pending:    make([]pending, 0),
		receipts:   make(map[eth_common.Hash]*eth_types.Receipt),
		logger:     logger,
	}

	for i := range api.accounts {
		private_key, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("crypto.GenerateKey: %w", err)
		}
		address := crypto.PubkeyToAddress(private_key.PublicKey)
		api.accounts[i] = address
		api.balances[address] = util.EtherToWei(ACCOUNT_BALANCE)
	}

	return api, nil
}

// mine includes the pending transactions whose delay passed.
// Call it with the lock held.
func (api *API) mine() {
	now := time.Now()
	left := api.pending[:0]

	for _, tx := range api.pending {
		if now.Before(tx.readyAt) {
			left = append(left, tx)
			continue
		}

		api.block++
		api.hashes[tx.key] = tx.value
		api.receipts[tx.hash] = &eth_types.Receipt{
			Status:            eth_types.ReceiptStatusSuccessful,
			CumulativeGasUsed: tx.gas,
			Logs:              []*eth_types.Log{},
			TxHash:            tx.hash,
			GasUsed:           tx.gas,
			BlockHash:         crypto.Keccak256Hash(big.NewInt(int64(api.block)).Bytes()),
			BlockNumber:       new(big.Int).SetUint64(api.block),
			TransactionIndex:  0,
		}
		api.logger.Debug("block mined", "block_number", api.block, "transaction_id", tx.hash.Hex())
	}

	api.pending = left
}

// ChainId is eth_chainId
func (api *API) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(CHAIN_ID))
}

// Accounts is eth_accounts
func (api *API) Accounts() []eth_common.Address {
	api.mu.Lock()
	defer api.mu.Unlock()

	accounts := make([]eth_common.Address, len(api.accounts))
	copy(accounts, api.accounts)
	return accounts
}

// GetBalance is eth_getBalance. Only the latest block is kept.
func (api *API) GetBalance(account eth_common.Address, block string) (*hexutil.Big, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	balance, ok := api.balances[account]
	if !ok {
		return (*hexutil.Big)(big.NewInt(0)), nil
	}
	return (*hexutil.Big)(new(big.Int).Set(balance)), nil
}

// SendTransaction is eth_sendTransaction.
// Only the storeHash calls to the contract are accepted.
func (api *API) SendTransaction(args TransactionArgs) (eth_common.Hash, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	if args.From == nil {
		return eth_common.Hash{}, errors.New("missing 'from' account")
	}
	if _, ok := api.balances[*args.From]; !ok {
		return eth_common.Hash{}, fmt.Errorf("sender account not recognized: %s", args.From.Hex())
	}
	if args.To == nil {
		return eth_common.Hash{}, errors.New("contract creation is not supported")
	}
	if *args.To != api.contract {
		return eth_common.Hash{}, fmt.Errorf("no contract at %s", args.To.Hex())
	}

	data := args.data()
	name, inputs, err := api.descriptor.Decode(data)
	if err != nil {
		return eth_common.Hash{}, fmt.Errorf("invalid call data: %w", err)
	}
	if name != "storeHash" {
		return eth_common.Hash{}, fmt.Errorf("'%s' is read only, use eth_call", name)
	}

	api.nonce++
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, api.nonce)
	hash := crypto.Keccak256Hash(args.From.Bytes(), nonce, data)

	api.pending = append(api.pending, pending{
		hash:    hash,
		key:     inputs[0].(string),
		value:   inputs[1].(string),
		gas:     TX_GAS + TX_DATA_GAS*uint64(len(data)),
		readyAt: time.Now().Add(api.delay),
	})
	api.logger.Debug("transaction received", "transaction_id", hash.Hex(), "from", args.From.Hex())

	api.mine()
	return hash, nil
}

// GetTransactionReceipt is eth_getTransactionReceipt.
// Returns null for the pending and the unknown transactions.
func (api *API) GetTransactionReceipt(hash eth_common.Hash) (*eth_types.Receipt, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.mine()
	receipt, ok := api.receipts[hash]
	if !ok {
		return nil, nil
	}
	return receipt, nil
}

// Call is eth_call at the latest block.
// The calls to the addresses without the contract return empty data.
func (api *API) Call(args TransactionArgs, block string) (hexutil.Bytes, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.mine()

	if args.To == nil || *args.To != api.contract {
		return hexutil.Bytes{}, nil
	}

	name, inputs, err := api.descriptor.Decode(args.data())
	if err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}
	if name != "getHash" {
		return nil, fmt.Errorf("execution reverted: '%s' can not be called", name)
	}

	// unknown key is the empty string, like the solidity mapping
	output, err := api.descriptor.EncodeOutputs(name, api.hashes[inputs[0].(string)])
	if err != nil {
		return nil, fmt.Errorf("EncodeOutputs: %w", err)
	}
	return output, nil
}
