package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePair_OrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	lo1, hi1 := NormalizePair(a, b)
	lo2, hi2 := NormalizePair(b, a)

	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
	assert.True(t, lo1.String() < hi1.String())
}

func TestPairKey_SymmetricAndDistinct(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	assert.Equal(t, PairKey(a, b), PairKey(b, a))
	assert.NotEqual(t, PairKey(a, b), PairKey(a, c))
}
