package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	r, err := NewRotator([]string{"http://p1:8080", "http://p2:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("failed to build rotator: %v", err)
	}

	first, _ := r.Next()
	second, _ := r.Next()
	third, _ := r.Next()
	if first.Host != "p1:8080" || second.Host != "p2:8080" || third.Host != "p1:8080" {
		t.Fatalf("unexpected rotation: %s %s %s", first.Host, second.Host, third.Host)
	}
}

func TestRotatorBansBlockedProxy(t *testing.T) {
	r, err := NewRotator([]string{"http://p1:8080", "http://p2:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("failed to build rotator: %v", err)
	}

	p1, _ := r.Next()
	r.Report(p1, 429)

	for i := 0; i < 4; i++ {
		p, err := r.Next()
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		if p.Host == "p1:8080" {
			t.Fatalf("banned proxy handed out")
		}
	}
}

func TestRotatorAllBanned(t *testing.T) {
	r, err := NewRotator([]string{"http://p1:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("failed to build rotator: %v", err)
	}
	p, _ := r.Next()
	r.Report(p, 403)

	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("expected ErrNoProxies, got %v", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	r, err := NewRotator(nil, time.Minute)
	if err != nil {
		t.Fatalf("failed to build rotator: %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("expected ErrNoProxies, got %v", err)
	}
}
