// Package arg reads the command line of the application.
//
// A flag is composed of a name and optionally a value: --name or --name=value.
// Any other argument ending with .env is a path to an environment file.
package arg

import (
	"os"
	"strings"
)

const (
	Prefix = "--"
	Sep    = "="
)

// Flags of the hashstore binary
const (
	Dev   = "dev"   // run against the in-process dev node instead of LEDGER_NODE_URL
	Key   = "key"   // the key to store the hash under
	Value = "value" // the hash to store
)

// NewFlag creates a new flag with the given name and optionally with a value
func NewFlag(name string, values ...string) string {
	flag := Prefix + name
	if len(values) > 0 {
		flag += Sep + values[0]
	}

	return flag
}

// IsFlag returns true, if the given string starts with the flag prefix
func IsFlag(str string) bool {
	return strings.HasPrefix(str, Prefix)
}

// Flags returns the application flags without the prefix.
func Flags() []string {
	flags := make([]string, 0)

	for _, str := range os.Args[1:] {
		if IsFlag(str) {
			flags = append(flags, strings.TrimPrefix(str, Prefix))
		}
	}

	return flags
}

// FlagName returns the flag name without the prefix and the value.
func FlagName(flag string) string {
	return strings.SplitN(strings.TrimPrefix(flag, Prefix), Sep, 2)[0]
}

// FlagValue returns the part after "=".
// The value may contain "=" itself.
func FlagValue(flag string) string {
	parts := strings.SplitN(flag, Sep, 2)
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

// Exist returns true if the application was started with the flag.
func Exist(name string) bool {
	for _, flag := range Flags() {
		if FlagName(flag) == name {
			return true
		}
	}

	return false
}

// ValueOr returns the value of the application flag.
// If the flag is missing or has no value, then returns the fallback.
func ValueOr(name string, fallback string) string {
	for _, flag := range Flags() {
		if FlagName(flag) == name {
			value := FlagValue(flag)
			if len(value) == 0 {
				return fallback
			}
			return value
		}
	}

	return fallback
}

// EnvPaths returns the arguments that are paths to .env files.
func EnvPaths() []string {
	paths := make([]string, 0)

	for _, str := range os.Args[1:] {
		if IsFlag(str) || !strings.HasSuffix(str, ".env") {
			continue
		}

		paths = append(paths, str)
	}

	return paths
}
