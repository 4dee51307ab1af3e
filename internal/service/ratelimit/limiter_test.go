package ratelimit

import (
	"testing"
	"time"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, 0) {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if l.Allow("1.2.3.4", 3, 0) {
		t.Fatal("request allowed after burst exhausted")
	}
}

func TestAllowIsolatesKeys(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first request for key a denied")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("second request for key a allowed")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("key b should have its own bucket")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatal("initial token denied")
	}
	if l.Allow("k", 1, 100) {
		t.Fatal("bucket should be empty")
	}
	time.Sleep(25 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatal("bucket should have refilled")
	}
}

func TestPrune(t *testing.T) {
	l := New()
	l.Allow("old", 1, 1)
	l.m["old"].last = time.Now().Add(-time.Hour)
	l.Allow("fresh", 1, 1)

	if removed := l.Prune(30 * time.Minute); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if l.Size() != 1 {
		t.Fatalf("size = %d, want 1", l.Size())
	}
	if _, ok := l.m["fresh"]; !ok {
		t.Fatal("fresh bucket pruned")
	}
}
