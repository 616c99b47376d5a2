// Package configuration defines a configuration engine for the entire app.
//
// The configuration features:
//   - automatically loads the environment variables files passed as arguments.
//   - reads the optional ledger.yml file.
//   - allows setting default variables if user didn't define them.
package configuration

import (
	"errors"
	"fmt"

	"github.com/blocklords/hashstore/env"
	"github.com/blocklords/hashstore/log"
	"github.com/spf13/viper"
)

// Config Configuration Engine based on viper.Viper
type Config struct {
	viper  *viper.Viper
	logger *log.Logger
}

// New creates a global configuration for the entire application.
//
// Loads the environment variables, then reads the yaml file.
// The yaml file name and location are set by LEDGER_CONFIG_NAME and LEDGER_CONFIG_PATH.
// Missing yaml file is not an error.
func New(parent *log.Logger) (*Config, error) {
	logger := parent.Child("configuration")

	logger.Info("Loading environment files passed as app arguments")
	if err := env.LoadAnyEnv(); err != nil {
		return nil, fmt.Errorf("env.LoadAnyEnv: %w", err)
	}

	conf := Config{
		viper:  viper.New(),
		logger: logger,
	}
	conf.viper.AutomaticEnv()

	conf.viper.SetDefault(ConfigName, "ledger")
	conf.viper.SetDefault(ConfigPath, ".")

	conf.viper.SetConfigName(conf.viper.GetString(ConfigName))
	conf.viper.SetConfigType("yaml")
	conf.viper.AddConfigPath(conf.viper.GetString(ConfigPath))

	err := conf.viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
		}
		logger.Warn("the yaml configuration wasn't found, using environment variables",
			"name", conf.viper.GetString(ConfigName), "path", conf.viper.GetString(ConfigPath))
	} else {
		logger.Info("yaml configuration loaded", "file", conf.viper.ConfigFileUsed())
	}

	return &conf, nil
}

// Engine returns the underlying configuration engine.
// In our case it will be Viper.
func (c *Config) Engine() *viper.Viper {
	return c.viper
}

// SetDefaults sets the default configuration parameters.
func (c *Config) SetDefaults(defaultConfig DefaultConfig) {
	for name, value := range defaultConfig.Parameters {
		if value == nil {
			continue
		}
		// already set, don't use the default
		if c.viper.IsSet(name) {
			continue
		}
		c.logger.Info("Set default for "+defaultConfig.Title, name, value)
		c.SetDefault(name, value)
	}
}

// SetDefault sets the default configuration name to the value
func (c *Config) SetDefault(name string, value interface{}) {
	c.viper.SetDefault(name, value)
}

// Exist Checks whether the configuration variable exists or not
// If the configuration exists or its default value exists, then returns true.
func (c *Config) Exist(name string) bool {
	return len(c.viper.GetString(name)) > 0
}

// GetString Returns the configuration parameter as a string
func (c *Config) GetString(name string) string {
	return c.viper.GetString(name)
}

// GetUint64 Returns the configuration parameter as an unsigned 64-bit number
func (c *Config) GetUint64(name string) uint64 {
	return c.viper.GetUint64(name)
}
