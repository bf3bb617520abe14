package storage

import (
	"sync"
	"time"
)

// DefaultStatsClients bounds the number of clients a StatsStorage remembers.
const DefaultStatsClients = 10000

// ClientStats is the score a web client reported for its current run.
type ClientStats struct {
	Correct   int       `json:"correct"`
	Wrong     int       `json:"wrong"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

type statsEntry struct {
	stats ClientStats
	seq   uint64
}

// StatsStorage keeps the last reported score per client. Once limit clients
// are known, storing a new one evicts the least recently updated.
type StatsStorage struct {
	mu    sync.RWMutex
	stats map[string]statsEntry
	limit int
	seq   uint64
}

func NewStatsStorage(limit int) *StatsStorage {
	if limit <= 0 {
		limit = DefaultStatsClients
	}
	return &StatsStorage{
		stats: make(map[string]statsEntry),
		limit: limit,
	}
}

func (s *StatsStorage) Store(clientID string, stats ClientStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stats[clientID]; !ok && len(s.stats) >= s.limit {
		s.evictOldest()
	}

	s.seq++
	stats.UpdatedAt = time.Now()
	s.stats[clientID] = statsEntry{stats: stats, seq: s.seq}
}

func (s *StatsStorage) Get(clientID string) (ClientStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.stats[clientID]
	return entry.stats, ok
}

// Len returns the number of remembered clients.
func (s *StatsStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stats)
}

func (s *StatsStorage) evictOldest() {
	var (
		oldest string
		seq    uint64
		found  bool
	)
	for id, entry := range s.stats {
		if !found || entry.seq < seq {
			oldest, seq, found = id, entry.seq, true
		}
	}
	if found {
		delete(s.stats, oldest)
	}
}
