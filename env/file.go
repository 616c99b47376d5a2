// Package env was created for one purpose only: LoadAnyEnv
package env

import (
	"fmt"

	"github.com/blocklords/hashstore/arg"
	"github.com/blocklords/hashstore/path"
	"github.com/joho/godotenv"
)

// LoadAnyEnv gets the list of all .env file paths in the command line arguments.
// Then loads them into the process environment variables.
// Variables that are already set in the environment are not overwritten.
//
// The values later will be available via configuration.Config.
func LoadAnyEnv() error {
	paths := arg.EnvPaths()
	if len(paths) == 0 {
		return nil
	}

	for i, envPath := range paths {
		abs, err := path.Abs(envPath)
		if err != nil {
			return fmt.Errorf("path.Abs('%s'): %w", envPath, err)
		}
		paths[i] = abs
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("godotenv.Load for paths %v: %w", paths, err)
	}
	return nil
}
