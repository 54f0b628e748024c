package ackstub

import (
	"sync"
	"time"

	"github.com/JakeFAU/sdtnames/internal/sdt"
)

// Capture is the most recent request the stub acknowledged.
type Capture struct {
	Body        []byte
	ContentType string
	Path        string
	RequestID   string
	ReceivedAt  time.Time
	// Truncated is set when the request body exceeded the size cap and Body
	// holds only its first bytes.
	Truncated bool
}

// Recorder holds a single capture slot. Each Record overwrites the previous one.
type Recorder struct {
	mu   sync.RWMutex
	last *Capture
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record stores c, replacing whatever was recorded before.
func (r *Recorder) Record(c Capture) {
	body := make([]byte, len(c.Body))
	copy(body, c.Body)
	c.Body = body

	r.mu.Lock()
	r.last = &c
	r.mu.Unlock()
}

// Last returns a copy of the most recent capture and whether one exists.
func (r *Recorder) Last() (Capture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return Capture{}, false
	}
	c := *r.last
	c.Body = append([]byte(nil), r.last.Body...)
	return c, true
}

// LastBody returns the most recent body as text, with undecodable bytes
// replaced by U+FFFD. It is empty when nothing was recorded.
func (r *Recorder) LastBody() string {
	c, ok := r.Last()
	if !ok {
		return ""
	}
	return sdt.DecodeText(c.Body)
}

// Reset clears the slot.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.last = nil
	r.mu.Unlock()
}
