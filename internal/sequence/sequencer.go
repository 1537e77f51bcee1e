// Package sequence provides the reset sequencer: a monotonic wave counter
// broadcast to hazard generators, which derive their own spawn cadence from it.
package sequence

import (
	"github.com/rs/zerolog"

	"contagion/internal/event"
)

// Subscriber receives every new sequence value.
type Subscriber interface {
	OnResetSequence(seq int)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(seq int)

// OnResetSequence implements Subscriber.
func (f SubscriberFunc) OnResetSequence(seq int) { f(seq) }

// Sequencer owns the process-lifetime wave counter.
type Sequencer struct {
	seq  int
	subs event.Listeners[int]
	log  zerolog.Logger
}

// New constructs a Sequencer at sequence 0.
func New(log zerolog.Logger) *Sequencer {
	return &Sequencer{log: log.With().Str("component", "sequence").Logger()}
}

// Subscribe registers s. Broadcasts reach subscribers in registration order.
func (q *Sequencer) Subscribe(s Subscriber) event.Subscription {
	if s == nil {
		return event.Subscription{}
	}
	return q.subs.Subscribe(s.OnResetSequence)
}

// Subscribers reports the number of active subscribers.
func (q *Sequencer) Subscribers() int { return q.subs.Len() }

// Current returns the last broadcast value, 0 before the first call.
func (q *Sequencer) Current() int { return q.seq }

// RegenerateAllZones advances the counter by one and delivers the new value
// to every subscriber before returning it.
func (q *Sequencer) RegenerateAllZones() int {
	q.seq++
	q.log.Debug().Int("seq", q.seq).Int("subscribers", q.subs.Len()).Msg("regenerate zones")
	q.subs.Emit(q.seq)
	return q.seq
}

// Restart puts the counter back to 0 for a new session. Subscribers are kept
// and nothing is broadcast.
func (q *Sequencer) Restart() {
	q.seq = 0
}
