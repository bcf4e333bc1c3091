// Package session is the single authoritative holder of the current login.
//
// A Session pairs the bearer token with the profile it was issued for. The
// pair is written and removed together; readers never observe one half of
// it. Stores re-read their backing storage on every Get so that a change
// made by another paydesk process is picked up on the next call.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
)

// ErrPartialSession is returned by Set when exactly one of Token and User
// is present.
var ErrPartialSession = errors.New("session token and user must be set together")

// Session is the (token, profile) pair of an authenticated context. The
// zero value is the anonymous session.
type Session struct {
	Token string
	User  *models.Profile
}

// Authenticated reports whether both halves are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Validate rejects half-populated sessions.
func (s Session) Validate() error {
	if (s.Token == "") != (s.User == nil) {
		return ErrPartialSession
	}
	return nil
}

// Store owns the current Session.
//
// Get never fails: storage problems degrade to the anonymous session.
// Set replaces token and user atomically. Clear is idempotent.
// Subscribe registers a listener for "session changed" signals, both from
// local writes and, where the implementation supports it, from other
// processes. Delivery is at-least-once; listeners must tolerate duplicates.
type Store interface {
	Get(ctx context.Context) Session
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
	Subscribe(fn func(Session)) (cancel func())
}

// listeners is the fan-out shared by the Store implementations.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Session)
}

func (l *listeners) add(fn func(Session)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(Session))
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// emit calls every listener outside the lock so a listener may itself
// subscribe, cancel or read the store.
func (l *listeners) emit(s Session) {
	l.mu.Lock()
	fns := make([]func(Session), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func cloneProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.AccountValue != nil {
		v := *p.AccountValue
		c.AccountValue = &v
	}
	return &c
}
