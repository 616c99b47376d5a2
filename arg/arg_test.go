package arg

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TestArgSuite struct {
	suite.Suite
	args []string
}

func (suite *TestArgSuite) SetupTest() {
	suite.args = os.Args
	os.Args = []string{
		"hashstore",
		"--dev",
		"--key=abc123",
		"--value=a=b",
		"--empty=",
		"./.test.env",
		"contract_abi.json",
	}
}

func (suite *TestArgSuite) TearDownTest() {
	os.Args = suite.args
}

func (suite *TestArgSuite) TestFlags() {
	suite.Require().EqualValues([]string{"dev", "key=abc123", "value=a=b", "empty="}, Flags())

	suite.True(Exist(Dev))
	suite.True(Exist(Key))
	suite.False(Exist("./.test.env"))
	suite.False(Exist("missing"))

	suite.Equal("abc123", ValueOr(Key, "fallback"))
	suite.Equal("a=b", ValueOr(Value, "fallback"))
	suite.Equal("fallback", ValueOr("empty", "fallback"))
	suite.Equal("fallback", ValueOr(Dev, "fallback"))
	suite.Equal("fallback", ValueOr("missing", "fallback"))
}

func (suite *TestArgSuite) TestEnvPaths() {
	paths := EnvPaths()
	suite.Require().Len(paths, 1)
	suite.Require().Equal("./.test.env", paths[0])
}

func (suite *TestArgSuite) TestNewFlag() {
	suite.Require().Equal("--key", NewFlag(Key))

	flag := NewFlag(Key, "abc123")
	suite.Require().Equal("--key=abc123", flag)
	suite.Require().Equal(Key, FlagName(flag))
	suite.Require().Equal("abc123", FlagValue(flag))
	suite.Require().Equal("", FlagValue(NewFlag(Dev)))
}

func TestArg(t *testing.T) {
	suite.Run(t, new(TestArgSuite))
}
