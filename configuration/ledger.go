package configuration

import (
	"fmt"
	"time"

	"github.com/blocklords/hashstore/common/data_type/key_value"
)

const (
	ConfigName = "LEDGER_CONFIG_NAME"
	ConfigPath = "LEDGER_CONFIG_PATH"

	NodeUrl         = "LEDGER_NODE_URL"
	ContractAddress = "LEDGER_CONTRACT_ADDRESS"
	AbiPath         = "LEDGER_ABI_PATH"
	Signer          = "LEDGER_SIGNER"
	ReceiptTimeout  = "LEDGER_RECEIPT_TIMEOUT"  // seconds
	ReceiptInterval = "LEDGER_RECEIPT_INTERVAL" // milliseconds
)

// Ledger parameters of the facade
type Ledger struct {
	NodeUrl         string
	ContractAddress string
	AbiPath         string
	Signer          string // empty means the first account of the node
	ReceiptTimeout  time.Duration
	ReceiptInterval time.Duration
}

// LedgerDefaults point to the local Ganache node
func LedgerDefaults() DefaultConfig {
	return DefaultConfig{
		Title: "ledger",
		Parameters: key_value.Empty().
			Set(NodeUrl, "http://127.0.0.1:7545").
			Set(ContractAddress, "0xfD6d85708cdE6Fecf678cB10f1CE27FF9579a30b").
			Set(AbiPath, "contract_abi.json").
			Set(ReceiptTimeout, uint64(120)).
			Set(ReceiptInterval, uint64(1000)),
	}
}

// Ledger returns the ledger parameters.
// Call it after SetDefaults(LedgerDefaults()).
func (c *Config) Ledger() (Ledger, error) {
	ledger := Ledger{
		NodeUrl:         c.GetString(NodeUrl),
		ContractAddress: c.GetString(ContractAddress),
		AbiPath:         c.GetString(AbiPath),
		Signer:          c.GetString(Signer),
		ReceiptTimeout:  time.Duration(c.GetUint64(ReceiptTimeout)) * time.Second,
		ReceiptInterval: time.Duration(c.GetUint64(ReceiptInterval)) * time.Millisecond,
	}

	if len(ledger.NodeUrl) == 0 {
		return ledger, fmt.Errorf("missing %s", NodeUrl)
	}
	if len(ledger.ContractAddress) == 0 {
		return ledger, fmt.Errorf("missing %s", ContractAddress)
	}
	if len(ledger.AbiPath) == 0 {
		return ledger, fmt.Errorf("missing %s", AbiPath)
	}
	if ledger.ReceiptTimeout == 0 {
		return ledger, fmt.Errorf("%s can not be zero", ReceiptTimeout)
	}
	if ledger.ReceiptInterval == 0 {
		return ledger, fmt.Errorf("%s can not be zero", ReceiptInterval)
	}

	return ledger, nil
}
