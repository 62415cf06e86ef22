package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one line of the in-app log viewer.
type Entry struct {
	Time      time.Time
	Level     zerolog.Level
	Component string
	Message   string
}

// LevelLabel returns the short upper-case label shown in the viewer.
func (e Entry) LevelLabel() string {
	switch e.Level {
	case zerolog.WarnLevel:
		return "WARN"
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return "ERROR"
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// Buffer keeps the most recent entries.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
	start   int
	size    int
	version uint64
}

// NewBuffer creates a ring holding up to n entries.
func NewBuffer(n int) *Buffer {
	if n < 1 {
		n = 1
	}
	return &Buffer{entries: make([]Entry, n)}
}

// Add appends e, evicting the oldest entry when full.
func (b *Buffer) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.size < len(b.entries) {
		b.entries[(b.start+b.size)%len(b.entries)] = e
		b.size++
	} else {
		b.entries[b.start] = e
		b.start = (b.start + 1) % len(b.entries)
	}
	b.version++
}

// Entries returns a copy of the entries, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, b.size)
	for i := range b.size {
		out[i] = b.entries[(b.start+i)%len(b.entries)]
	}
	return out
}

// Len returns the number of entries held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Version increases with every Add, so viewers can skip redraws.
func (b *Buffer) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Clear drops every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start, b.size = 0, 0
	b.version++
}

// bufferHook copies every event that passes the logger's level into buf.
type bufferHook struct {
	buf       *Buffer
	component string
}

func (h bufferHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level == zerolog.NoLevel || level < zerolog.GlobalLevel() {
		return
	}
	h.buf.Add(Entry{Time: time.Now(), Level: level, Component: h.component, Message: msg})
}
