package network

import (
	"errors"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

type proxyEntry struct {
	url         *url.URL
	bannedUntil time.Time
}

// Rotator hands out proxies round-robin, cooling off any proxy that gets
// blocked or rate limited.
type Rotator struct {
	mu       sync.Mutex
	entries  []*proxyEntry
	cooldown time.Duration
	next     int
}

func NewRotator(raw []string, cooldown time.Duration) (*Rotator, error) {
	r := &Rotator{cooldown: cooldown}
	for _, p := range raw {
		u, err := url.Parse(p)
		if err != nil {
			return nil, err
		}
		r.entries = append(r.entries, &proxyEntry{url: u})
	}
	return r, nil
}

// Next returns the next usable proxy, skipping banned ones.
func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := 0; i < len(r.entries); i++ {
		entry := r.entries[r.next]
		r.next = (r.next + 1) % len(r.entries)
		if now.After(entry.bannedUntil) {
			return entry.url, nil
		}
	}
	return nil, ErrNoProxies
}

// Report bans a proxy for the cooldown window when the response suggests
// it was blocked.
func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil || (status != 403 && status != 429) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.url.String() == proxy.String() {
			entry.bannedUntil = time.Now().Add(r.cooldown)
			return
		}
	}
}
