package listener

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// sessions tracks the menu each viewer has open
type sessions struct {
	lru *expirable.LRU[string, domain.MenuSession]
}

func newSessions(size int, ttl time.Duration) *sessions {
	if size <= 0 {
		size = DefaultSessionCapacity
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessions{lru: expirable.NewLRU[string, domain.MenuSession](size, nil, ttl)}
}

func (s *sessions) Get(viewerID string) (domain.MenuSession, bool) {
	return s.lru.Get(viewerID)
}

func (s *sessions) Set(sess domain.MenuSession) {
	s.lru.Add(sess.ViewerID, sess)
}

func (s *sessions) Remove(viewerID string) bool {
	return s.lru.Remove(viewerID)
}
