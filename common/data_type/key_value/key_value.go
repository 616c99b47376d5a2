// Package key_value defines the map of the parameters
// that could be converted into a struct and back.
package key_value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// KeyValue is identical to the golang map
type KeyValue map[string]interface{}

// New converts the map to the key-value data type
func New(kv map[string]interface{}) KeyValue {
	return KeyValue(kv)
}

// Empty key value
func Empty() KeyValue {
	return KeyValue(map[string]interface{}{})
}

// NewFromInterface serializes the struct into the key value.
func NewFromInterface(data interface{}) (KeyValue, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	kv := Empty()
	if err := unmarshal(bytes, &kv); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return kv, nil
}

// ToMap converts the key-value to the golang map
func (kv KeyValue) ToMap() map[string]interface{} {
	return map[string]interface{}(kv)
}

// Set the parameter. It returns the same key value to chain the calls.
func (kv KeyValue) Set(name string, value interface{}) KeyValue {
	kv[name] = value
	return kv
}

// Exist returns true if the parameter is set
func (kv KeyValue) Exist(name string) bool {
	_, ok := kv[name]
	return ok
}

// ToInterface converts the key value into the struct
func (kv KeyValue) ToInterface(i interface{}) error {
	bytes, err := json.Marshal(kv)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := unmarshal(bytes, i); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

// GetString returns the parameter as a string
func (kv KeyValue) GetString(name string) (string, error) {
	raw, exists := kv[name]
	if !exists {
		return "", errors.New("missing '" + name + "' parameter")
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.New("expected string type for '" + name + "' parameter")
	}

	return value, nil
}

// GetUint64 returns the parameter as an unsigned number
func (kv KeyValue) GetUint64(name string) (uint64, error) {
	raw, exists := kv[name]
	if !exists {
		return 0, errors.New("missing '" + name + "' parameter")
	}

	switch value := raw.(type) {
	case uint64:
		return value, nil
	case int:
		if value < 0 {
			return 0, errors.New("parameter '" + name + "' is negative")
		}
		return uint64(value), nil
	case json.Number:
		return strconv.ParseUint(string(value), 10, 64)
	}

	return 0, errors.New("parameter '" + name + "' expected to be a number")
}

func unmarshal(data []byte, i interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(i)
}
