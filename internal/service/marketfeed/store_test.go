package marketfeed

import (
	"testing"
	"time"

	"CorpFin360/internal/domain/models"
)

func TestStoreApplyAndLatest(t *testing.T) {
	s := NewStore(0)
	now := time.Now().Unix()

	s.Apply(&models.Quote{Symbol: "AAPL", Timestamp: now, Price: 100, Volume: 10})
	snap, ok := s.Latest("AAPL")
	if !ok || snap.CurrentPrice == nil || *snap.CurrentPrice != 100 {
		t.Fatalf("snapshot %+v ok=%v", snap, ok)
	}
	if snap.PriceChange != nil {
		t.Fatalf("first quote has no change")
	}

	s.Apply(&models.Quote{Symbol: "AAPL", Timestamp: now + 1, Price: 102, Volume: 20})
	snap, ok = s.Latest("AAPL")
	if !ok || *snap.CurrentPrice != 102 {
		t.Fatalf("snapshot %+v", snap)
	}
	if snap.PriceChange == nil || *snap.PriceChange != 2 {
		t.Fatalf("change %+v", snap.PriceChange)
	}
	if snap.PriceChangePercent == nil || *snap.PriceChangePercent != 2 {
		t.Fatalf("pct %+v", snap.PriceChangePercent)
	}

	if _, ok := s.Latest("MSFT"); ok {
		t.Fatalf("unknown symbol must miss")
	}
}

func TestStoreStaleness(t *testing.T) {
	s := NewStore(time.Second)
	s.Apply(&models.Quote{Symbol: "AAPL", Timestamp: time.Now().Add(-time.Minute).Unix(), Price: 100})
	if _, ok := s.Latest("AAPL"); ok {
		t.Fatalf("stale snapshot served")
	}
}

func TestStoreLatestIsCopy(t *testing.T) {
	s := NewStore(0)
	now := time.Now().Unix()
	s.Apply(&models.Quote{Symbol: "AAPL", Timestamp: now, Price: 100, Volume: 1})
	snap, _ := s.Latest("AAPL")
	s.Apply(&models.Quote{Symbol: "AAPL", Timestamp: now + 1, Price: 200, Volume: 2})
	if *snap.CurrentPrice != 100 {
		t.Fatalf("earlier snapshot mutated: %v", *snap.CurrentPrice)
	}
}
