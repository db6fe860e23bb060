package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTraceIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedTraceIDGenerator("trace-123")

	// Multiple calls return same id
	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
}

func TestFixedTraceIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedTraceIDGenerator("")

	assert.Equal(t, "test-trace-default", gen.Generate())
}

func TestFixedTraceIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewFixedTraceIDGenerator("thread-safe-id")

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				assert.Equal(t, "thread-safe-id", gen.Generate())
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
