// internal/store/handles.go
package store

import (
	"errors"
	"sync"

	"github.com/busybox42/edkey/pkg/crypto"
)

// ErrNotFound is returned for the null handle and for handles that were
// never issued or have been deleted.
var ErrNotFound = errors.New("handle not found")

// Handles maps opaque non-zero integers to key pairs owned by a foreign
// caller. Handle 0 is never issued and issued handles are never reused.
type Handles struct {
	data map[uint64]*crypto.KeyPair
	next uint64
	mu   sync.RWMutex
}

func NewHandles() *Handles {
	return &Handles{
		data: make(map[uint64]*crypto.KeyPair),
	}
}

// Store registers kp and returns its handle.
func (s *Handles) Store(kp *crypto.KeyPair) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.data[s.next] = kp
	return s.next
}

func (s *Handles) Retrieve(handle uint64) (*crypto.KeyPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kp, ok := s.data[handle]; ok {
		return kp, nil
	}
	return nil, ErrNotFound
}

// Delete removes handle and returns its key pair. Only the first Delete of
// a handle succeeds.
func (s *Handles) Delete(handle uint64) (*crypto.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kp, ok := s.data[handle]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.data, handle)
	return kp, nil
}

// Len returns the number of live handles.
func (s *Handles) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
