package provider

import (
	"fmt"
	"net/url"

	"github.com/blocklords/hashstore/common/data_type/key_value"
)

// New parses the key value into the Provider
func New(data key_value.KeyValue) (Provider, error) {
	var provider Provider
	err := data.ToInterface(&provider)
	if err != nil {
		return provider, fmt.Errorf("failed to convert key-value to provider.Provider: %w", err)
	}

	if len(provider.Url) == 0 {
		return Provider{}, fmt.Errorf("empty url or its missing")
	}

	u, err := url.ParseRequestURI(provider.Url)
	if err != nil {
		return Provider{}, fmt.Errorf("invalid '%s' provider url: %w", provider.Url, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Provider{}, fmt.Errorf("invalid '%s' provider protocol. Expected either 'http' or 'https'. But given '%s'", provider.Url, u.Scheme)
	}
	if len(u.Host) == 0 {
		return Provider{}, fmt.Errorf("the '%s' provider has no host", provider.Url)
	}

	return provider, nil
}

// NewFromUrl is New for the plain url
func NewFromUrl(raw string) (Provider, error) {
	return New(key_value.Empty().Set("url", raw))
}
