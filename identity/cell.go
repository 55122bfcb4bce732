// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"sync"

	"github.com/danielhkuo/pollhub/models"
)

// Cell holds the most recently signed-in identity seen in provider events.
// It is a process-wide observer for diagnostics and UI-style listeners; it is
// not the identity of any request. Request handlers use CurrentUser.
type Cell struct {
	mu    sync.RWMutex
	user  *models.User
	stop  func()
	onSet []func(*models.User)
}

// Watch returns a Cell subscribed to p. Call Close to unsubscribe.
func Watch(p Provider) *Cell {
	c := &Cell{}
	c.stop = p.Subscribe(c.apply)
	return c
}

func (c *Cell) apply(ev Event) {
	switch ev.Type {
	case EventSignedIn:
		c.set(ev.User)
	case EventSignedOut:
		c.mu.RLock()
		current := c.user
		c.mu.RUnlock()
		if current != nil && ev.User != nil && current.ID == ev.User.ID {
			c.set(nil)
		}
	}
}

func (c *Cell) set(u *models.User) {
	var v *models.User
	if u != nil {
		cp := *u
		v = &cp
	}

	c.mu.Lock()
	c.user = v
	listeners := append([]func(*models.User){}, c.onSet...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// Get returns a copy of the current identity, nil when signed out
func (c *Cell) Get() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	cp := *c.user
	return &cp
}

// OnChange registers fn to run after every identity change
func (c *Cell) OnChange(fn func(*models.User)) {
	c.mu.Lock()
	c.onSet = append(c.onSet, fn)
	c.mu.Unlock()
}

// Close stops watching the provider
func (c *Cell) Close() {
	if c.stop != nil {
		c.stop()
	}
}
