// Package devnode is the in-process EVM node for the development and the tests.
//
// It serves the JSON-RPC over HTTP like Ganache does, but instead of the EVM
// it emulates one hash store contract deployed at ContractAddress.
// The accounts are managed by the node, so eth_sendTransaction is signed by the node.
package devnode

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/blocklords/hashstore/blockchain/evm/abi"
	"github.com/blocklords/hashstore/log"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	CHAIN_ID         = 1337
	ContractAddress  = "0xfD6d85708cdE6Fecf678cB10f1CE27FF9579a30b"
	DEFAULT_ACCOUNTS = 10
)

// Descriptor of the emulated contract
//
//go:embed contract_abi.json
var Descriptor []byte

// Node is the running dev node
type Node struct {
	api       *API
	rpc       *rpc.Server
	http      *http.Server
	listener  net.Listener
	logger    *log.Logger
	closeOnce sync.Once
	closeErr  error
}

// New starts the node on a random local port with the given amount of accounts.
func New(parent *log.Logger, accounts int) (*Node, error) {
	logger := parent.Child("devnode")

	descriptor, err := abi.New(Descriptor)
	if err != nil {
		return nil, fmt.Errorf("abi.New: %w", err)
	}

	api, err := newAPI(descriptor, accounts, logger)
	if err != nil {
		return nil, fmt.Errorf("newAPI: %w", err)
	}

	server := rpc.NewServer()
	if err := server.RegisterName("eth", api); err != nil {
		return nil, fmt.Errorf("rpc.RegisterName: %w", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		server.Stop()
		return nil, fmt.Errorf("net.Listen: %w", err)
	}

	node := &Node{
		api:      api,
		rpc:      server,
		http:     &http.Server{Handler: server, ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
		logger:   logger,
	}

	go func() {
		if err := node.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http.Serve", "error", err)
		}
	}()
	logger.Info("dev node is running", "url", node.Url(), "chain_id", CHAIN_ID, "contract", ContractAddress)

	return node, nil
}

// Url of the JSON-RPC endpoint
func (node *Node) Url() string {
	return "http://" + node.listener.Addr().String()
}

// SetMiningDelay sets how long the transactions stay pending.
func (node *Node) SetMiningDelay(delay time.Duration) {
	node.api.mu.Lock()
	node.api.delay = delay
	node.api.mu.Unlock()
}

// Close stops the node. The connected clients get the connectivity errors.
// Calling it again does nothing.
func (node *Node) Close() error {
	node.closeOnce.Do(func() {
		if err := node.http.Close(); err != nil {
			node.closeErr = fmt.Errorf("http.Close: %w", err)
		}
		node.rpc.Stop()
		node.logger.Info("dev node stopped")
	})
	return node.closeErr
}
