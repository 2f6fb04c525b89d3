package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	t.Run("matches by kind", func(t *testing.T) {
		err := NewDecodeError(KindHeader, "header line holds no separator")
		require.True(t, errors.Is(err, ErrHeader))
		require.False(t, errors.Is(err, ErrProtocol))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("decode: %w", ErrMethod)
		require.ErrorIs(t, err, ErrMethod)

		var decodeErr DecodeError
		require.True(t, errors.As(err, &decodeErr))
		require.Equal(t, KindMethod, decodeErr.Kind)
		require.Equal(t, "method", decodeErr.Kind.String())
	})
}
