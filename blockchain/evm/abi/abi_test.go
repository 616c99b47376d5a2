package abi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blocklords/hashstore/blockchain"
	"github.com/stretchr/testify/suite"
)

type TestAbiSuite struct {
	suite.Suite
	abi        *Abi
	signatures []Signature
}

func (suite *TestAbiSuite) SetupTest() {
	bytes := []byte(`[{
			"name": "storeHash","type": "function","stateMutability": "nonpayable","outputs": [],"inputs": [{
				"name": "key","type": "string","internalType": "string"},{
				"name": "hash","type": "string","internalType": "string"}]},{
			"name": "getHash","type": "function","stateMutability": "view","inputs": [{
				"name": "key","type": "string","internalType": "string"}],"outputs": [{
				"name": "","type": "string","internalType": "string"}]}]`)
	abi, err := New(bytes)
	suite.Require().NoError(err)
	suite.abi = abi

	suite.signatures = []Signature{
		{Name: "storeHash", Inputs: []string{"string", "string"}, Outputs: []string{}},
		{Name: "getHash", Inputs: []string{"string"}, Outputs: []string{"string"}, ReadOnly: true},
	}
}

func (suite *TestAbiSuite) TestNew() {
	suite.Require().Len(suite.abi.Id, 8)

	// empty abi is valid json
	_, err := New([]byte(`[]`))
	suite.Require().NoError(err)

	// empty string instead json should fail
	_, err = New([]byte(``))
	suite.Require().Error(err)
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))

	// invalid abi type
	_, err = New([]byte(`{"a":{"b":1}}`))
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))

	// invalid json
	_, err = New([]byte(`[{},{},]`))
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))
}

func (suite *TestAbiSuite) TestLoad() {
	file_path := filepath.Join(suite.T().TempDir(), "contract_abi.json")
	suite.Require().NoError(os.WriteFile(file_path, suite.abi.Bytes, 0644))

	loaded, err := Load(file_path)
	suite.Require().NoError(err)
	suite.Require().Equal(suite.abi.Id, loaded.Id)
	suite.Require().NoError(loaded.Require(suite.signatures...))

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.json"))
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))
}

func (suite *TestAbiSuite) TestRequire() {
	suite.Require().NoError(suite.abi.Require(suite.signatures...))

	// missing function
	empty, err := New([]byte(`[]`))
	suite.Require().NoError(err)
	err = empty.Require(suite.signatures...)
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))

	// wrong input type
	err = suite.abi.Require(Signature{Name: "getHash", Inputs: []string{"bytes32"}, Outputs: []string{"string"}, ReadOnly: true})
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))

	// wrong outputs count
	err = suite.abi.Require(Signature{Name: "getHash", Inputs: []string{"string"}, ReadOnly: true})
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))

	// the mutating function is not read only
	err = suite.abi.Require(Signature{Name: "storeHash", Inputs: []string{"string", "string"}, ReadOnly: true})
	suite.Require().True(errors.Is(err, blockchain.ErrDescriptor))
}

func (suite *TestAbiSuite) TestEncoding() {
	data, err := suite.abi.Pack("storeHash", "abc123", "Walk_Original")
	suite.Require().NoError(err)

	name, args, err := suite.abi.Decode(data)
	suite.Require().NoError(err)
	suite.Require().Equal("storeHash", name)
	suite.Require().Equal([]interface{}{"abc123", "Walk_Original"}, args)

	output, err := suite.abi.EncodeOutputs("getHash", "Walk_Original")
	suite.Require().NoError(err)
	values, err := suite.abi.Unpack("getHash", output)
	suite.Require().NoError(err)
	suite.Require().Equal([]interface{}{"Walk_Original"}, values)

	// wrong argument type
	_, err = suite.abi.Pack("storeHash", "abc123", 5)
	suite.Require().Error(err)

	// empty reply from the node
	_, err = suite.abi.Unpack("getHash", []byte{})
	suite.Require().Error(err)

	// no selector
	_, _, err = suite.abi.Decode([]byte{0x01})
	suite.Require().Error(err)

	// unknown selector
	_, _, err = suite.abi.Decode([]byte{0x01, 0x02, 0x03, 0x04})
	suite.Require().Error(err)
}

func TestAbi(t *testing.T) {
	suite.Run(t, new(TestAbiSuite))
}
