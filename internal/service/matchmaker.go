package service

import (
	"sync"
	"time"
)

// ticket is one user waiting in the queue.
type ticket struct {
	userID     string
	enqueuedAt time.Time
}

// Matchmaker pairs queued users first-come first-served. It is purely
// in-memory; a ticket does not survive a server restart, which is fine
// because the owning connection does not either.
type Matchmaker struct {
	mu     sync.Mutex
	queue  []ticket
	queued map[string]bool
	now    func() time.Time
}

func NewMatchmaker() *Matchmaker {
	return &Matchmaker{
		queued: make(map[string]bool),
		now:    time.Now,
	}
}

// Enqueue adds a user to the queue. When another user is already waiting,
// both are removed and the waiting user's id is returned as the opponent.
func (m *Matchmaker) Enqueue(userID string) (opponentID string, matched bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queued[userID] {
		return "", false, ErrAlreadyQueued
	}
	if len(m.queue) > 0 {
		head := m.queue[0]
		m.queue = m.queue[1:]
		delete(m.queued, head.userID)
		return head.userID, true, nil
	}
	m.queue = append(m.queue, ticket{userID: userID, enqueuedAt: m.now()})
	m.queued[userID] = true
	return "", false, nil
}

// Cancel removes a user's ticket.
func (m *Matchmaker) Cancel(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.queued[userID] {
		return ErrNotQueued
	}
	m.remove(userID)
	return nil
}

// Remove drops a ticket if present. Used on disconnect, where a missing
// ticket is not an error.
func (m *Matchmaker) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(userID)
}

func (m *Matchmaker) remove(userID string) {
	if !m.queued[userID] {
		return
	}
	delete(m.queued, userID)
	for i, t := range m.queue {
		if t.userID == userID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// TakeStale removes and returns every user that has been waiting longer
// than maxAge. The queue sweeper turns these into battles against a
// scripted opponent.
func (m *Matchmaker) TakeStale(maxAge time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxAge)
	var stale []string
	kept := m.queue[:0]
	for _, t := range m.queue {
		if t.enqueuedAt.Before(cutoff) {
			stale = append(stale, t.userID)
			delete(m.queued, t.userID)
			continue
		}
		kept = append(kept, t)
	}
	m.queue = kept
	return stale
}
