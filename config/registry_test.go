package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/key",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "water",
		ValidationRegex: "^(banana|water)$",
	}); err != nil {
		t.Error(err)
	}

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/missing_type",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         0,
		DefaultValue:    "default",
		ValidationRegex: "^[A-Z][a-z]+$",
	}); err == nil {
		t.Error("should fail")
	}

	err := Register(&Option{
		Name:           "name",
		Key:            "registry/unknown_type",
		Description:    "description",
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        OptionType(42),
		DefaultValue:   "default",
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/bad_regex",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "default",
		ValidationRegex: "[",
	}); err == nil {
		t.Error("should fail")
	}

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/bad_default",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "apple",
		ValidationRegex: "^(banana|water)$",
	}); err == nil {
		t.Error("should fail")
	}

	err = Register(&Option{
		Name:           "name",
		Key:            "registry/key",
		Description:    "description",
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        OptTypeString,
		DefaultValue:   "banana",
	})
	require.Error(t, err, "duplicate key should fail")
	assert.True(t, errors.Is(err, ErrDuplicateOption))

	var invalidOption *InvalidOptionError
	assert.True(t, errors.As(err, &invalidOption))

	opt, err := GetOption("registry/key")
	require.NoError(t, err)
	assert.Equal(t, "water", opt.DefaultValue)

	_, err = GetOption("registry/unknown")
	assert.True(t, errors.Is(err, ErrUnknownOption))
}
