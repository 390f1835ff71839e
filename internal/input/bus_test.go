package input_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nilptr/microemu/internal/input"
)

func alwaysRunning() bool { return true }

func TestReadCharReturnsPushedCharacterImmediately(t *testing.T) {
	var b input.Bus
	b.PushChar('q')

	assert.True(t, b.CharReady())
	c, ok := b.ReadChar(alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, byte('q'), c)
	assert.False(t, b.CharReady(), "ReadChar consumes the pending character")
}

func TestReadCharStopsWhenKeepRunningGoesFalse(t *testing.T) {
	var b input.Bus

	c, ok := b.ReadChar(func() bool { return false })

	assert.False(t, ok)
	assert.Equal(t, byte(0), c)
}

func TestReadLineAssemblesPushedCharsUntilEnter(t *testing.T) {
	var b input.Bus
	for _, c := range []byte("run demo") {
		b.PushChar(c)
	}
	b.PushEnter()

	line, ok := b.ReadLine(alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, "run demo", line)
}

func TestReadLineStopsWhenKeepRunningGoesFalse(t *testing.T) {
	var b input.Bus

	line, ok := b.ReadLine(func() bool { return false })

	assert.False(t, ok)
	assert.Equal(t, "", line)
}

func TestPushBackspaceRemovesLastCharacter(t *testing.T) {
	var b input.Bus
	b.PushChar('a')
	b.PushChar('b')
	b.PushBackspace()
	b.PushEnter()

	line, ok := b.ReadLine(alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, "a", line)
}

func TestPushBackspaceOnEmptyLineIsANoOp(t *testing.T) {
	var b input.Bus
	b.PushBackspace()
	b.PushEnter()

	line, ok := b.ReadLine(alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, "", line)
}

func TestReadLineArrivingAfterASlightDelay(t *testing.T) {
	var b input.Bus
	go func() {
		time.Sleep(15 * time.Millisecond)
		b.PushChar('h')
		b.PushChar('i')
		b.PushEnter()
	}()

	line, ok := b.ReadLine(alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, "hi", line)
}
