package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonceCounterSequence(t *testing.T) {
	counter := NewNonceCounter(42)

	assert.Equal(t, uint64(42), counter.Peek())
	for i := uint64(0); i < 5; i++ {
		assert.Equal(t, 42+i, counter.Next())
	}
	assert.Equal(t, uint64(47), counter.Peek())
}

func TestNonceCounterFromZero(t *testing.T) {
	counter := NewNonceCounter(0)
	assert.Equal(t, uint64(0), counter.Next())
	assert.Equal(t, uint64(1), counter.Next())
}
