package player

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// PresenceTracker tracks which players the game host reported as online.
// A player stays online until the host reports a quit or nothing was heard from
// them for the tracker's TTL.
type PresenceTracker struct {
	mu       sync.RWMutex
	players  map[string]*presenceInfo
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// presenceInfo holds the last activity of an online player
type presenceInfo struct {
	Name       string
	LastSeenAt time.Time
}

// NewPresenceTracker creates a tracker and starts the cleanup goroutine.
// A non-positive ttl disables expiry.
func NewPresenceTracker(ttl time.Duration) *PresenceTracker {
	tracker := &PresenceTracker{
		players: make(map[string]*presenceInfo),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go tracker.cleanupLoop()
	return tracker
}

// Track marks a player online and refreshes their last activity
func (t *PresenceTracker) Track(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.players[presenceKey(name)] = &presenceInfo{
		Name:       name,
		LastSeenAt: time.Now(),
	}
}

// Remove marks a player offline
func (t *PresenceTracker) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.players, presenceKey(name))
}

// IsOnline reports whether the player is online. Names are matched case-insensitively.
func (t *PresenceTracker) IsOnline(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.players[presenceKey(name)]
	return ok && t.alive(info, time.Now())
}

// Resolve returns the online player's name as the host reported it
func (t *PresenceTracker) Resolve(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.players[presenceKey(name)]
	if !ok || !t.alive(info, time.Now()) {
		return "", false
	}
	return info.Name, true
}

// Names returns the online player names sorted alphabetically
func (t *PresenceTracker) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	now := time.Now()
	names := make([]string, 0, len(t.players))
	for _, info := range t.players {
		if t.alive(info, now) {
			names = append(names, info.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Count returns the number of online players
func (t *PresenceTracker) Count() int {
	return len(t.Names())
}

func (t *PresenceTracker) alive(info *presenceInfo, now time.Time) bool {
	return t.ttl <= 0 || info.LastSeenAt.After(now.Add(-t.ttl))
}

// cleanupLoop periodically removes expired players
func (t *PresenceTracker) cleanupLoop() {
	ticker := time.NewTicker(PresenceCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.cleanup()
		case <-t.stopCh:
			return
		}
	}
}

// cleanup removes all expired players
func (t *PresenceTracker) cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for key, info := range t.players {
		if !t.alive(info, now) {
			delete(t.players, key)
		}
	}
}

// Stop stops the cleanup goroutine
func (t *PresenceTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
}

func presenceKey(name string) string {
	return strings.ToLower(name)
}
