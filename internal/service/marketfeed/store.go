package marketfeed

import (
	"sync"
	"time"

	"CorpFin360/internal/domain/models"
)

// Store keeps the latest market snapshot per symbol, built incrementally
// from the quote stream. Intermediate quotes are coalesced; only the latest
// state matters to trend requests.
type Store struct {
	mu       sync.RWMutex
	staleTTL time.Duration
	bySymbol map[string]*models.SnapshotAt
}

// NewStore creates a snapshot store. Snapshots older than staleTTL are not
// served; zero disables staleness checks.
func NewStore(staleTTL time.Duration) *Store {
	return &Store{
		staleTTL: staleTTL,
		bySymbol: make(map[string]*models.SnapshotAt),
	}
}

// Apply folds one quote into the symbol's snapshot.
func (s *Store) Apply(q *models.Quote) {
	if q == nil || q.Symbol == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.bySymbol[q.Symbol]
	if !ok {
		cur = &models.SnapshotAt{Snapshot: models.MarketSnapshot{Symbol: q.Symbol}}
		s.bySymbol[q.Symbol] = cur
	}

	price := q.Price
	if prev := cur.Snapshot.CurrentPrice; prev != nil && *prev != 0 {
		change := price - *prev
		pct := change / *prev * 100
		cur.Snapshot.PriceChange = &change
		cur.Snapshot.PriceChangePercent = &pct
	}
	volume := q.Volume
	cur.Snapshot.CurrentPrice = &price
	cur.Snapshot.Volume = &volume
	cur.UpdatedAt = time.Unix(q.Timestamp, 0)
}

// Latest returns the freshest snapshot for a symbol, if one exists and is
// not stale.
func (s *Store) Latest(symbol string) (*models.MarketSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := s.bySymbol[symbol]
	if !ok {
		return nil, false
	}
	if s.staleTTL > 0 && time.Since(cur.UpdatedAt) > s.staleTTL {
		return nil, false
	}
	snap := cur.Snapshot
	return &snap, true
}

// Symbols lists symbols with a stored snapshot.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.bySymbol))
	for sym := range s.bySymbol {
		out = append(out, sym)
	}
	return out
}
