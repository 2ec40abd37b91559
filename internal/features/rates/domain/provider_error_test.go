package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_JSON(t *testing.T) {
	errs := map[string]ProviderError{
		"shippo":   {Base: TimeoutMessage},
		"easypost": {Signature: "signature not available"},
	}

	data, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shippo":"Request timed out","easypost":{"signature":"signature not available"}}`, string(data))

	var decoded map[string]ProviderError
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, errs, decoded)

	var bad ProviderError
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestProviderError_Error(t *testing.T) {
	assert.Equal(t, "boom", ProviderError{Base: "boom"}.Error())
	assert.Equal(t, "signature: nope", ProviderError{Signature: "nope"}.Error())
}

func TestProviderError_OtherQuoteTypes(t *testing.T) {
	var decoded ProviderError
	require.NoError(t, json.Unmarshal([]byte(`{"signature":"not offered","adult_signature":"account not enabled"}`), &decoded))

	assert.Equal(t, "not offered", decoded.Signature)
	assert.Equal(t, map[string]string{"adult_signature": "account not enabled"}, decoded.Variants)
	assert.Equal(t, "signature: not offered; adult_signature: account not enabled", decoded.Error())

	data, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"signature":"not offered","adult_signature":"account not enabled"}`, string(data))

	var only ProviderError
	require.NoError(t, json.Unmarshal([]byte(`{"adult_signature":"nope"}`), &only))
	assert.Empty(t, only.Signature)
	data, err = json.Marshal(only)
	require.NoError(t, err)
	assert.JSONEq(t, `{"adult_signature":"nope"}`, string(data))
}
