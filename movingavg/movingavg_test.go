package movingavg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cargodist/movingavg"
)

func TestNew_ZeroLength(t *testing.T) {
	_, err := movingavg.New(0)
	require.ErrorIs(t, err, movingavg.ErrZeroLength)

	_, err = movingavg.New(-3)
	require.ErrorIs(t, err, movingavg.ErrZeroLength)

	require.Panics(t, func() { movingavg.MustNew(0) })
}

func TestMonthly(t *testing.T) {
	m := movingavg.MustNew(96)
	require.Equal(t, int64(96), m.Length())
	require.Equal(t, int64(30), m.Monthly(96))
	require.Equal(t, int64(0), m.Monthly(3)) // 3*30/96 truncates
	require.Equal(t, int64(300), m.Monthly(960))
}

func TestDecrease(t *testing.T) {
	m := movingavg.MustNew(4)
	v := int64(100)
	v = m.Decrease(v)
	require.Equal(t, int64(80), v)
	v = m.Decrease(v)
	require.Equal(t, int64(64), v)

	// Repeated decay converges on zero and never goes negative.
	for i := 0; i < 100; i++ {
		v = m.Decrease(v)
	}
	require.Equal(t, int64(0), v)
}
