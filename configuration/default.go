package configuration

import (
	"github.com/blocklords/hashstore/common/data_type/key_value"
)

// DefaultConfig is the set of default parameters of the package
type DefaultConfig struct {
	Title      string             // package title
	Parameters key_value.KeyValue // parameters
}
