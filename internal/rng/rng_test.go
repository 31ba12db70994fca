package rng_test

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "go.uber.org/mock/gomock"

    "bartwalk/internal/rng"
    "bartwalk/internal/rng/mocks"
)

func TestStreamIsReproducible(t *testing.T) {
    a, b := rng.New(7), rng.New(7)
    for i := 0; i < 100; i++ {
        assert.Equal(t, a.Float64(), b.Float64())
        assert.Equal(t, a.Poisson(2.5), b.Poisson(2.5))
    }
}

func TestStreamFloat64InUnitInterval(t *testing.T) {
    s := rng.New(1)
    for i := 0; i < 10000; i++ {
        u := s.Float64()
        assert.GreaterOrEqual(t, u, 0.0)
        assert.Less(t, u, 1.0)
    }
}

func TestPoissonMean(t *testing.T) {
    s := rng.New(3)
    const draws = 20000
    sum := 0
    for i := 0; i < draws; i++ {
        k := s.Poisson(3)
        assert.GreaterOrEqual(t, k, 0)
        sum += k
    }
    assert.InDelta(t, 3.0, float64(sum)/draws, 0.1)
}

func TestPoissonNonPositiveMean(t *testing.T) {
    s := rng.New(3)
    assert.Equal(t, 0, s.Poisson(0))
    assert.Equal(t, 0, s.Poisson(-1))
}

func TestIndex(t *testing.T) {
    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    gomock.InOrder(
        src.EXPECT().Float64().Return(0.0),
        src.EXPECT().Float64().Return(0.34),
        src.EXPECT().Float64().Return(0.9999999999),
    )
    assert.Equal(t, 0, rng.Index(src, 3))
    assert.Equal(t, 1, rng.Index(src, 3))
    assert.Equal(t, 2, rng.Index(src, 3))
    assert.Equal(t, -1, rng.Index(src, 0))
}
