// Package events provides explicit subscription handles for event
// listeners registered on the host environment.
//
// This package has no build tags. Both the browser DOM and the in-memory
// DOM used by tests hand out the same Subscription type.
package events

import "sync"

// Click is the event name fired when a control is activated.
const Click = "click"

// Ready is the event name fired once the page structure is addressable.
const Ready = "DOMContentLoaded"

// Subscription represents a registered listener. Unsubscribe removes the
// listener and releases any host resources held for it.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription wraps the function that removes a listener. cancel is
// called at most once, however many times Unsubscribe is invoked.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe removes the listener. Calling it more than once, or on a
// nil Subscription, is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
