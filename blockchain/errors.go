// Package blockchain keeps the failures of the ledger facade.
//
// Every failure is an *Error with one of the kinds below.
// Match the kind with errors.Is:
//
//	if errors.Is(err, blockchain.ErrConnectivity) { ... }
package blockchain

import (
	"errors"
	"fmt"
)

var (
	ErrConnectivity        = errors.New("ledger node unreachable")
	ErrDescriptor          = errors.New("malformed contract interface descriptor")
	ErrAddress             = errors.New("invalid contract address")
	ErrSubmission          = errors.New("transaction rejected")
	ErrConfirmationTimeout = errors.New("transaction receipt not received in time")
	ErrCall                = errors.New("contract call failed")
)

// Error is the failure of the operation Op.
type Error struct {
	Kind error  // one of the Err* variables
	Op   string // the facade operation, like "storeHash"
	Err  error  // the cause, could be nil
}

// NewError wraps the cause with the kind of the failure.
func NewError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is NewError with the formatted cause.
func Errorf(kind error, op string, format string, args ...interface{}) *Error {
	return NewError(kind, op, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind, so the cause stays reachable with errors.Is too.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}
