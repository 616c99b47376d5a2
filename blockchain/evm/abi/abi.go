// Package abi keeps the Contract Interface Descriptor.
// It's the wrapper over the go-ethereum abi that validates
// the functions the facade needs and encodes the calls.
package abi

import (
	"bytes"
	"fmt"
	"os"

	"github.com/blocklords/hashstore/blockchain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// Abi is the parsed descriptor.
type Abi struct {
	Bytes    []byte `json:"bytes"`
	Id       string `json:"id"` // short fingerprint of the bytes for logging
	geth_abi abi.ABI
}

// Signature of the function that the descriptor must have.
type Signature struct {
	Name     string
	Inputs   []string // solidity types of the arguments
	Outputs  []string // solidity types of the returned values
	ReadOnly bool     // view or pure
}

// New parses the descriptor bytes.
func New(data []byte) (*Abi, error) {
	geth_abi, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, blockchain.Errorf(blockchain.ErrDescriptor, "parse", "abi.JSON: %w", err)
	}

	return &Abi{
		Bytes:    data,
		Id:       crypto.Keccak256Hash(data).Hex()[2:10],
		geth_abi: geth_abi,
	}, nil
}

// Load reads the descriptor from the file, then parses it.
func Load(file_path string) (*Abi, error) {
	data, err := os.ReadFile(file_path)
	if err != nil {
		return nil, blockchain.Errorf(blockchain.ErrDescriptor, "load", "os.ReadFile('%s'): %w", file_path, err)
	}

	return New(data)
}

// Method returns the function by its name
func (a *Abi) Method(name string) (*abi.Method, error) {
	method, ok := a.geth_abi.Methods[name]
	if !ok {
		return nil, fmt.Errorf("method %s not found in abi", name)
	}

	return &method, nil
}

// Require checks that every signature is in the descriptor.
func (a *Abi) Require(signatures ...Signature) error {
	for _, signature := range signatures {
		method, err := a.Method(signature.Name)
		if err != nil {
			return blockchain.NewError(blockchain.ErrDescriptor, "bind", err)
		}

		if err := match_arguments(method.Inputs, signature.Inputs); err != nil {
			return blockchain.Errorf(blockchain.ErrDescriptor, "bind", "'%s' inputs: %w", signature.Name, err)
		}
		if err := match_arguments(method.Outputs, signature.Outputs); err != nil {
			return blockchain.Errorf(blockchain.ErrDescriptor, "bind", "'%s' outputs: %w", signature.Name, err)
		}
		if method.IsConstant() != signature.ReadOnly {
			return blockchain.Errorf(blockchain.ErrDescriptor, "bind",
				"'%s' state mutability is '%s', read only expected to be %t", signature.Name, method.StateMutability, signature.ReadOnly)
		}
	}

	return nil
}

func match_arguments(arguments abi.Arguments, types []string) error {
	if len(arguments) != len(types) {
		return fmt.Errorf("expected %d arguments, but descriptor has %d", len(types), len(arguments))
	}
	for i, argument := range arguments {
		if argument.Type.String() != types[i] {
			return fmt.Errorf("argument %d is '%s', expected '%s'", i, argument.Type.String(), types[i])
		}
	}

	return nil
}

// Pack encodes the function call data.
func (a *Abi) Pack(method string, args ...interface{}) ([]byte, error) {
	data, err := a.geth_abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("abi.Pack('%s'): %w", method, err)
	}
	return data, nil
}

// Unpack decodes the values returned by the function.
func (a *Abi) Unpack(method string, data []byte) ([]interface{}, error) {
	values, err := a.geth_abi.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("abi.Unpack('%s'): %w", method, err)
	}
	return values, nil
}

// Decode finds the function by the call data selector,
// then decodes the arguments.
//
// The first returning parameter is the function name.
func (a *Abi) Decode(data []byte) (string, []interface{}, error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("call data is %d bytes, no function selector", len(data))
	}

	method, err := a.geth_abi.MethodById(data[:4])
	if err != nil {
		return "", nil, fmt.Errorf("failed to find a method by its signature: %w", err)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return method.Name, nil, fmt.Errorf("method.Inputs.Unpack: %w", err)
	}

	return method.Name, args, nil
}

// EncodeOutputs encodes the returned values of the function.
// It's what the contract returns for the read call.
func (a *Abi) EncodeOutputs(name string, values ...interface{}) ([]byte, error) {
	method, err := a.Method(name)
	if err != nil {
		return nil, err
	}

	data, err := method.Outputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("method.Outputs.Pack: %w", err)
	}
	return data, nil
}
