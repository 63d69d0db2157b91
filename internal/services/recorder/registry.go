package recorder

import (
	"sync"
	"time"

	"github.com/Catskill909/radio-sub001/pkg/capture"
)

// activeCapture is one in-flight capture tracked by the loop.
type activeCapture struct {
	session     capture.Session
	recordingID uint
	slotID      uint
	showTitle   string
	source      string
	filePath    string
	startedAt   time.Time
	endTime     time.Time
}

// sourceRegistry is the per-source capture lock. Row presence in the
// database is not enough to close the race between "slot matched" and
// "recording row inserted", so the loop holds an explicit in-memory
// claim on the source for the whole capture lifetime.
type sourceRegistry struct {
	mu     sync.Mutex
	active map[string]*activeCapture
}

func newSourceRegistry() *sourceRegistry {
	return &sourceRegistry{active: make(map[string]*activeCapture)}
}

// claim reserves a source. Returns false if the source already has an
// in-flight capture.
func (r *sourceRegistry) claim(source string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[source]; ok {
		return false
	}
	r.active[source] = nil // reserved, session attached later
	return true
}

// attach fills in the capture details for a claimed source.
func (r *sourceRegistry) attach(source string, c *activeCapture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[source] = c
}

// release frees a source claim.
func (r *sourceRegistry) release(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, source)
}

// snapshot returns the attached captures, skipping bare reservations.
func (r *sourceRegistry) snapshot() []*activeCapture {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*activeCapture, 0, len(r.active))
	for _, c := range r.active {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
