package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
)

type level string

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]level{"Warn": "warn", "throw": "throw"}, level("warn"))

	assert.Equal(t, level("throw"), n.Normalize("  THROW "))
	assert.Equal(t, level("warn"), n.Normalize("unknown"))

	_, err := n.NormalizeWithError("explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throw, warn")
	assert.Equal(t, []string{"throw", "warn"}, n.Keys())
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(
		func(s string) ValidationResult { return Check(s != "", "title", "not_empty", "title is required") },
		func(s string) ValidationResult { return Check(len(s) < 5, "title", "max_len", "title too long") },
	)

	assert.True(t, chain.Validate("ok").Valid)

	res := chain.Validate("")
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "not_empty", res.Errors[0].Code)

	chain.Add(OneOf("title", []string{"a", "b"}))
	res = chain.Validate("toolong")
	assert.Len(t, res.Errors, 2)
}

func TestValidationResult_Prefixed(t *testing.T) {
	res := Invalid(
		NewValidationError("href", "valid_href", "bad"),
		NewValidationError("[1].label", "not_empty", "empty"),
		NewValidationError("", "x", "y"),
	).Prefixed("navbar.items")

	assert.True(t, res.HasField("navbar.items.href"))
	assert.True(t, res.HasField("navbar.items[1].label"))
	assert.True(t, res.HasField("navbar.items"))
	assert.True(t, Valid().Prefixed("ignored").Valid)
}

func TestValidationResult_ToError(t *testing.T) {
	assert.NoError(t, Valid().ToError())

	err := Invalid(NewValidationError("baseUrl", "trailing_slash", "must end with /")).ToError()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "field 'baseUrl': must end with /")
}
