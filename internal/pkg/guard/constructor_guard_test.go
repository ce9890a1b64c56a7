package guard_test

import (
	"errors"
	"testing"

	"shipment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero value returns custom error", func(t *testing.T) {
		var g guard.ConstructorGuard
		customError := errors.New("not constructed")

		assert.Equal(t, customError, g.Validate(customError))
	})

	t.Run("zero value with nil error returns default", func(t *testing.T) {
		var g guard.ConstructorGuard
		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}
