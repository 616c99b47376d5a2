package transaction

import (
	"math/big"
	"testing"

	eth_common "github.com/ethereum/go-ethereum/common"
	eth_types "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"
)

type TestReceiptSuite struct {
	suite.Suite
	raw *eth_types.Receipt
}

func (suite *TestReceiptSuite) SetupTest() {
	suite.raw = &eth_types.Receipt{
		Status:           eth_types.ReceiptStatusSuccessful,
		TxHash:           eth_common.HexToHash("0x9565744fc676d421681ecc588446e0d0ae5627bf618a5688f7772adcf6667c81"),
		BlockHash:        eth_common.HexToHash("0x01"),
		BlockNumber:      big.NewInt(23),
		TransactionIndex: 2,
		GasUsed:          45_000,
	}
}

func (suite *TestReceiptSuite) TestNew() {
	receipt, err := New(suite.raw)
	suite.Require().NoError(err)
	suite.Require().Equal("0x9565744fc676d421681ecc588446e0d0ae5627bf618a5688f7772adcf6667c81", receipt.Id)
	suite.Require().Equal(uint64(23), receipt.BlockNumber)
	suite.Require().Equal(uint(2), receipt.TransactionIndex)
	suite.Require().Equal(uint64(45_000), receipt.GasUsed)
	suite.Require().True(receipt.Success)

	suite.raw.Status = eth_types.ReceiptStatusFailed
	receipt, err = New(suite.raw)
	suite.Require().NoError(err)
	suite.Require().False(receipt.Success)

	// pending
	suite.raw.BlockNumber = nil
	_, err = New(suite.raw)
	suite.Require().Error(err)

	_, err = New(nil)
	suite.Require().Error(err)
}

func TestReceipt(t *testing.T) {
	suite.Run(t, new(TestReceiptSuite))
}
