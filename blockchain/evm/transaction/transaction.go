// Package transaction keeps the Transaction Receipt
// converted from the receipt of the EVM node.
package transaction

import (
	"fmt"

	eth_types "github.com/ethereum/go-ethereum/core/types"
)

// Receipt is the confirmed record of the transaction execution.
type Receipt struct {
	Id               string `json:"transaction_id"` // the transaction hash
	BlockHash        string `json:"block_hash"`
	BlockNumber      uint64 `json:"block_number"`
	TransactionIndex uint   `json:"transaction_index"`
	GasUsed          uint64 `json:"gas_used"`
	Success          bool   `json:"success"`
}

// New converts the receipt returned by the node.
// The receipt must be included in a block.
func New(receipt *eth_types.Receipt) (*Receipt, error) {
	if receipt == nil {
		return nil, fmt.Errorf("no receipt")
	}
	if receipt.BlockNumber == nil {
		return nil, fmt.Errorf("receipt of %s has no block number, the transaction is pending", receipt.TxHash.Hex())
	}

	return &Receipt{
		Id:               receipt.TxHash.Hex(),
		BlockHash:        receipt.BlockHash.Hex(),
		BlockNumber:      receipt.BlockNumber.Uint64(),
		TransactionIndex: receipt.TransactionIndex,
		GasUsed:          receipt.GasUsed,
		Success:          receipt.Status == eth_types.ReceiptStatusSuccessful,
	}, nil
}
