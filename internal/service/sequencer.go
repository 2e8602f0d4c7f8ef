package service

import (
	"sync"
	"sync/atomic"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// Sequencer tags analytics computations with increasing sequence numbers and
// keeps the snapshot of the newest one. A computation that finishes after a
// newer one has started is never published.
type Sequencer struct {
	issued atomic.Uint64

	mu        sync.RWMutex
	published uint64
	latest    *models.AnalyticsSnapshot
}

// Next issues the sequence number for a new computation
func (s *Sequencer) Next() uint64 {
	return s.issued.Add(1)
}

// Publish stores snap if seq is still the newest issued number. It reports
// whether snap was stored.
func (s *Sequencer) Publish(seq uint64, snap *models.AnalyticsSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued.Load() || seq <= s.published {
		return false
	}
	s.published = seq
	s.latest = snap
	return true
}

// Latest returns the published snapshot and its sequence number
func (s *Sequencer) Latest() (*models.AnalyticsSnapshot, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.published, s.latest != nil
}
