package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRange(t *testing.T) {
	for iter := 0; iter < 500; iter++ {
		n, err := IntRange(1, 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.Less(t, n, 10)
	}
}

func TestIntRangeSingleValue(t *testing.T) {
	n, err := IntRange(7, 8)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestIntRangeInvalid(t *testing.T) {
	_, err := IntRange(5, 5)
	assert.Error(t, err)

	_, err = IntRange(10, 1)
	assert.Error(t, err)
}

func TestConnectionID(t *testing.T) {
	a := ConnectionID()
	b := ConnectionID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
