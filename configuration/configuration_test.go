package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blocklords/hashstore/log"
	"github.com/stretchr/testify/suite"
)

type TestConfigurationSuite struct {
	suite.Suite
	logger *log.Logger
	dir    string
}

func (suite *TestConfigurationSuite) SetupTest() {
	logger, err := log.New("test", log.WithoutTimestamp)
	suite.Require().NoError(err)
	suite.logger = logger

	// keep the yaml lookup away from the package directory
	suite.dir = suite.T().TempDir()
	suite.T().Setenv(ConfigPath, suite.dir)
}

func (suite *TestConfigurationSuite) TestDefaults() {
	config, err := New(suite.logger)
	suite.Require().NoError(err)
	config.SetDefaults(LedgerDefaults())

	ledger, err := config.Ledger()
	suite.Require().NoError(err)
	suite.Require().Equal("http://127.0.0.1:7545", ledger.NodeUrl)
	suite.Require().Equal("0xfD6d85708cdE6Fecf678cB10f1CE27FF9579a30b", ledger.ContractAddress)
	suite.Require().Equal("contract_abi.json", ledger.AbiPath)
	suite.Require().Empty(ledger.Signer)
	suite.Require().Equal(120*time.Second, ledger.ReceiptTimeout)
	suite.Require().Equal(time.Second, ledger.ReceiptInterval)
	suite.Require().False(config.Exist(Signer))
}

func (suite *TestConfigurationSuite) TestEnvironment() {
	suite.T().Setenv(NodeUrl, "http://localhost:8545")
	suite.T().Setenv(Signer, "0x627306090abaB3A6e1400e9345bC60c78a8BEf57")
	suite.T().Setenv(ReceiptTimeout, "5")

	config, err := New(suite.logger)
	suite.Require().NoError(err)
	config.SetDefaults(LedgerDefaults())

	ledger, err := config.Ledger()
	suite.Require().NoError(err)
	suite.Require().Equal("http://localhost:8545", ledger.NodeUrl)
	suite.Require().Equal("0x627306090abaB3A6e1400e9345bC60c78a8BEf57", ledger.Signer)
	suite.Require().Equal(5*time.Second, ledger.ReceiptTimeout)
	suite.Require().True(config.Exist(Signer))
}

func (suite *TestConfigurationSuite) TestYaml() {
	content := []byte("ledger_abi_path: ./abi/store.json\nledger_receipt_interval: 250\n")
	err := os.WriteFile(filepath.Join(suite.dir, "ledger.yml"), content, 0644)
	suite.Require().NoError(err)

	config, err := New(suite.logger)
	suite.Require().NoError(err)
	config.SetDefaults(LedgerDefaults())

	ledger, err := config.Ledger()
	suite.Require().NoError(err)
	suite.Require().Equal("./abi/store.json", ledger.AbiPath)
	suite.Require().Equal(250*time.Millisecond, ledger.ReceiptInterval)
	suite.Require().Equal("http://127.0.0.1:7545", ledger.NodeUrl)
}

func (suite *TestConfigurationSuite) TestInvalidYaml() {
	err := os.WriteFile(filepath.Join(suite.dir, "ledger.yml"), []byte("ledger_abi_path: [\n"), 0644)
	suite.Require().NoError(err)

	_, err = New(suite.logger)
	suite.Require().Error(err)
}

func (suite *TestConfigurationSuite) TestZeroTimeout() {
	suite.T().Setenv(ReceiptTimeout, "0")

	config, err := New(suite.logger)
	suite.Require().NoError(err)
	config.SetDefaults(LedgerDefaults())

	_, err = config.Ledger()
	suite.Require().Error(err)
}

func TestConfiguration(t *testing.T) {
	suite.Run(t, new(TestConfigurationSuite))
}
