// Package input implements the keyboard bus shared between the window
// driver, which pushes keystrokes in, and the shell/VM side, which reads
// them out a line or a character at a time.
package input

import (
	"sync"
	"time"
)

const lineBufSize = 256

// Bus is a mutex-protected line buffer plus a single pending-character slot.
// The window driver calls the Push* methods from the render goroutine; the
// shell and VM call ReadLine/ReadChar/CharReady from the run goroutine.
// Neither side blocks the other: reads that would block instead spin with a
// short backoff, checking a caller-supplied predicate so the process can
// still shut down while a read is outstanding.
type Bus struct {
	mu sync.Mutex

	line      [lineBufSize]byte
	pos       int
	lineReady bool
	readyLine string

	lastChar  byte
	charReady bool
}

// pollInterval is how long ReadLine/ReadChar sleep between checks. It trades
// input latency for not busy-spinning a CPU core.
const pollInterval = 50 * time.Millisecond

// PushChar appends a printable character to the in-progress line.
func (b *Bus) PushChar(c byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pos < lineBufSize-1 {
		b.line[b.pos] = c
		b.pos++
	}
	b.lastChar = c
	b.charReady = true
}

// PushBackspace removes the last character of the in-progress line, if any.
func (b *Bus) PushBackspace() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pos > 0 {
		b.pos--
	}
	b.lastChar = '\b'
	b.charReady = true
}

// PushEnter terminates the in-progress line and makes it available to
// ReadLine. The line buffer is reset for the next line.
func (b *Bus) PushEnter() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readyLine = string(b.line[:b.pos])
	b.pos = 0
	b.lineReady = true
	b.lastChar = '\n'
	b.charReady = true
}

// CharReady reports whether a character is available for ReadChar without
// consuming it.
func (b *Bus) CharReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.charReady
}

// ReadChar blocks until a character arrives or keepRunning returns false, in
// which case it returns (0, false). keepRunning is polled once per tick so
// the VM can still observe shutdown while waiting on input.
func (b *Bus) ReadChar(keepRunning func() bool) (byte, bool) {
	for {
		b.mu.Lock()
		if b.charReady {
			c := b.lastChar
			b.charReady = false
			b.mu.Unlock()
			return c, true
		}
		b.mu.Unlock()
		if keepRunning != nil && !keepRunning() {
			return 0, false
		}
		time.Sleep(pollInterval)
	}
}

// ReadLine blocks until a full line (terminated by Enter) is available or
// keepRunning returns false.
func (b *Bus) ReadLine(keepRunning func() bool) (string, bool) {
	for {
		b.mu.Lock()
		if b.lineReady {
			line := b.readyLine
			b.lineReady = false
			b.readyLine = ""
			b.mu.Unlock()
			return line, true
		}
		b.mu.Unlock()
		if keepRunning != nil && !keepRunning() {
			return "", false
		}
		time.Sleep(pollInterval)
	}
}
