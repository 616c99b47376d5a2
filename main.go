// Hashstore stores the hash in the contract deployed on the local test node,
// then reads it back.
//
// The node, the contract address and the descriptor file are set by the
// LEDGER_* environment variables, the .env files passed as arguments or ledger.yml.
// See configuration.LedgerDefaults for the defaults.
//
// Flags:
//
//	--dev           run against the in-process dev node
//	--key=<key>     the key to store the hash under, "abc123" by default
//	--value=<hash>  the hash to store, "Walk_Original" by default
package main

import (
	"context"
	"fmt"

	"github.com/blocklords/hashstore/arg"
	"github.com/blocklords/hashstore/blockchain/evm/abi"
	"github.com/blocklords/hashstore/blockchain/evm/client"
	"github.com/blocklords/hashstore/blockchain/evm/devnode"
	"github.com/blocklords/hashstore/blockchain/network/provider"
	"github.com/blocklords/hashstore/configuration"
	"github.com/blocklords/hashstore/log"
	"github.com/blocklords/hashstore/path"

	eth_common "github.com/ethereum/go-ethereum/common"
)

func main() {
	logger, err := log.New("main", log.WithTimestamp)
	if err != nil {
		log.Fatal("log.New(`main`)", "error", err)
	}

	config, err := configuration.New(logger)
	if err != nil {
		logger.Fatal("configuration.New", "error", err)
	}
	config.SetDefaults(configuration.LedgerDefaults())
	ledger, err := config.Ledger()
	if err != nil {
		logger.Fatal("config.Ledger", "error", err)
	}

	var descriptor *abi.Abi
	if arg.Exist(arg.Dev) {
		logger.Warn("running against the in-process dev node")
		node, err := devnode.New(logger, devnode.DEFAULT_ACCOUNTS)
		if err != nil {
			logger.Fatal("devnode.New", "error", err)
		}
		defer node.Close()

		ledger.NodeUrl = node.Url()
		ledger.ContractAddress = devnode.ContractAddress
		descriptor, err = abi.New(devnode.Descriptor)
		if err != nil {
			logger.Fatal("abi.New", "error", err)
		}
	} else {
		abi_path, err := path.Abs(ledger.AbiPath)
		if err != nil {
			logger.Fatal("path.Abs", "path", ledger.AbiPath, "error", err)
		}
		descriptor, err = abi.Load(abi_path)
		if err != nil {
			logger.Fatal("abi.Load", "error", err)
		}
	}

	ctx := context.Background()

	p, err := provider.NewFromUrl(ledger.NodeUrl)
	if err != nil {
		logger.Fatal("provider.NewFromUrl", "error", err)
	}
	node_client, err := client.Connect(ctx, p, logger)
	if err != nil {
		fmt.Println("Connected:", false)
		logger.Fatal("client.Connect", "error", err)
	}
	defer node_client.Close()
	fmt.Println("Connected:", true)

	signer, err := select_signer(ctx, node_client, ledger.Signer)
	if err != nil {
		logger.Fatal("select_signer", "error", err)
	}
	balance, err := node_client.Balance(ctx, signer)
	if err != nil {
		logger.Fatal("client.Balance", "error", err)
	}
	logger.Info("signer selected", "address", signer.Hex(), "balance", balance.Text('f', 4)+" ETH")

	contract, err := node_client.Bind(ledger.ContractAddress, descriptor)
	if err != nil {
		logger.Fatal("client.Bind", "error", err)
	}
	contract.PollInterval = ledger.ReceiptInterval

	key := arg.ValueOr(arg.Key, "abc123")
	value := arg.ValueOr(arg.Value, "Walk_Original")

	receipt, err := contract.StoreHash(ctx, signer, key, value, ledger.ReceiptTimeout)
	if err != nil {
		logger.Fatal("contract.StoreHash", "error", err)
	}
	logger.Info("hash stored", "transaction_id", receipt.Id, "block_number", receipt.BlockNumber)

	stored, err := contract.GetHash(ctx, key)
	if err != nil {
		logger.Fatal("contract.GetHash", "error", err)
	}
	fmt.Println("Stored Hash from Blockchain:", stored)
}

// select_signer returns the configured signer,
// or the first account of the node if signer is not configured.
func select_signer(ctx context.Context, node_client *client.Client, configured string) (eth_common.Address, error) {
	if len(configured) > 0 {
		if !eth_common.IsHexAddress(configured) {
			return eth_common.Address{}, fmt.Errorf("'%s' signer is not an address", configured)
		}
		return eth_common.HexToAddress(configured), nil
	}

	accounts, err := node_client.Accounts(ctx)
	if err != nil {
		return eth_common.Address{}, fmt.Errorf("client.Accounts: %w", err)
	}
	if len(accounts) == 0 {
		return eth_common.Address{}, fmt.Errorf("the node has no accounts, set %s", configuration.Signer)
	}

	return accounts[0], nil
}
