package acpclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticProvider(key string) CredentialProvider {
	return ProviderFunc(func(ctx context.Context) (string, error) {
		return key, nil
	})
}

func TestNewAuthSpec_ExactlyOneOption(t *testing.T) {
	spec, err := NewAuthSpec("sk-123", nil, false)
	require.NoError(t, err)
	assert.True(t, spec.RequiresAuth())

	spec, err = NewAuthSpec("", staticProvider("sk-123"), false)
	require.NoError(t, err)
	assert.True(t, spec.RequiresAuth())

	spec, err = NewAuthSpec("", nil, true)
	require.NoError(t, err)
	assert.False(t, spec.RequiresAuth())
}

func TestNewAuthSpec_BothSupplied(t *testing.T) {
	var cfgErr *ConfigurationError

	_, err := NewAuthSpec("sk-123", nil, true)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr), "key+none must fail with a ConfigurationError")

	_, err = NewAuthSpec("", staticProvider("sk-123"), true)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr), "provider+none must fail with a ConfigurationError")

	_, err = NewAuthSpec("sk-123", staticProvider("sk-456"), false)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr), "literal+provider must fail with a ConfigurationError")
}

func TestNewAuthSpec_NeitherSupplied(t *testing.T) {
	_, err := NewAuthSpec("", nil, false)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
