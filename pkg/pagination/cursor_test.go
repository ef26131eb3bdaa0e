package pagination_test

import (
	"testing"

	"patient-record-service/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token := pagination.EncodeCursor("3f8c2c1e-0b52-4a3e-9be2-8f0f4f3a6f11")
	require.NotEmpty(t, token)

	key, err := pagination.DecodeCursor(token)
	require.NoError(t, err)
	require.Equal(t, "3f8c2c1e-0b52-4a3e-9be2-8f0f4f3a6f11", key)
}

func TestDecodeCursor_EmptyMeansStart(t *testing.T) {
	key, err := pagination.DecodeCursor("")
	require.NoError(t, err)
	require.Empty(t, key)
}

func TestDecodeCursor_Garbage(t *testing.T) {
	_, err := pagination.DecodeCursor("!!!not a token!!!")
	require.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(0))
	require.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(-3))
	require.Equal(t, 7, pagination.ClampLimit(7))
	require.Equal(t, pagination.MaxLimit, pagination.ClampLimit(5000))
}
