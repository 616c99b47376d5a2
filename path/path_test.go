package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TestPathSuite struct {
	suite.Suite
	dir      string
	filePath string
}

func (suite *TestPathSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.filePath = filepath.Join(suite.dir, "contract_abi.json")

	err := os.WriteFile(suite.filePath, []byte("[]"), 0644)
	suite.Require().NoError(err)
}

func (suite *TestPathSuite) TestAbs() {
	currentDir, err := CurrentDir()
	suite.Require().NoError(err)
	suite.Require().True(filepath.IsAbs(currentDir))

	suite.Require().Equal(filepath.Join(currentDir, "contract_abi.json"), AbsDir(currentDir, "contract_abi.json"))
	suite.Require().Equal(suite.filePath, AbsDir(currentDir, suite.filePath))

	abs, err := Abs("contract_abi.json")
	suite.Require().NoError(err)
	suite.Require().Equal(filepath.Join(currentDir, "contract_abi.json"), abs)
}

func (suite *TestPathSuite) TestFileExist() {
	exist, err := FileExist(suite.filePath)
	suite.Require().NoError(err)
	suite.Require().True(exist)

	exist, err = FileExist(filepath.Join(suite.dir, "missing.json"))
	suite.Require().NoError(err)
	suite.Require().False(exist)

	// directory is not a file
	_, err = FileExist(suite.dir)
	suite.Require().Error(err)
}

func TestPath(t *testing.T) {
	suite.Run(t, new(TestPathSuite))
}
