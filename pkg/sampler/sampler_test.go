package sampler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSamplerStartNextCountsDown(t *testing.T) {
	s := NewRandomSampler(4, rand.New(rand.NewSource(1)))
	s.StartPixel(2, 3)

	count := 1
	for s.StartNext() {
		count++
	}
	assert.Equal(t, 4, count)
}

func TestRandomSamplerCameraSampleWithinPixel(t *testing.T) {
	s := NewRandomSampler(8, rand.New(rand.NewSource(1)))
	s.StartPixel(5, 7)

	cs := s.CameraSample()
	assert.GreaterOrEqual(t, cs.FilmPoint.X, 5.0)
	assert.Less(t, cs.FilmPoint.X, 6.0)
	assert.GreaterOrEqual(t, cs.FilmPoint.Y, 7.0)
	assert.Less(t, cs.FilmPoint.Y, 8.0)
}
