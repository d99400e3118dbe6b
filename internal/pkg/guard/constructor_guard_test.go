package guard_test

import (
	"errors"
	"testing"

	"stockway/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type sku struct {
		code  string
		guard guard.ConstructorGuard
	}

	errSKUNotConstructed := errors.New("sku must be created via newSKU")

	newSKU := func(code string) (sku, error) {
		if code == "" {
			return sku{}, errors.New("code is required")
		}
		return sku{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		s, err := newSKU("RICE-25KG")
		require.NoError(t, err)
		assert.NoError(t, s.guard.Validate(errSKUNotConstructed))
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		s := sku{code: "RICE-25KG"}
		assert.ErrorIs(t, s.guard.Validate(errSKUNotConstructed), errSKUNotConstructed)
	})

	t.Run("guard_survives_copy", func(t *testing.T) {
		s, err := newSKU("OIL-1L")
		require.NoError(t, err)

		copied := s
		assert.NoError(t, copied.guard.Validate(errSKUNotConstructed))
	})
}
