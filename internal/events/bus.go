// Package events provides a lightweight in-process pub-sub bus carrying
// the assistant's outward-facing effects: speech, alerts, launches and
// fired reminders.
package events

import "sync"

// Kind represents the type of event produced by the agent core.
type Kind string

const (
	// KindSpeech is an utterance to be spoken to the user.
	KindSpeech Kind = "speech"
	// KindAlert is a proactive notification (reminders, missed meds).
	KindAlert Kind = "alert"
	// KindLaunch asks the device to open a tel: or https: target.
	KindLaunch Kind = "launch"
	// KindEmergency signals the emergency flow has been triggered.
	KindEmergency Kind = "emergency"
	// KindReminderFired signals a scheduled reminder reached its time.
	KindReminderFired Kind = "reminder_fired"
)

// Event carries the minimum data a consumer needs to render the effect.
type Event struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
	// Target holds a tel: or https: URI for launch events.
	Target string `json:"target,omitempty"`
	// RefID points back at the originating record (reminder ID, contact ID).
	RefID string `json:"ref_id,omitempty"`
}

// Bus fans events out to subscribers over buffered channels. Publish never
// blocks: a subscriber that cannot keep up loses events rather than
// stalling the agent loop.
type Bus struct {
	mu     sync.RWMutex
	buffer int
	subs   map[chan Event]struct{}
}

// NewBus creates a bus whose subscriber channels hold buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{buffer: buffer, subs: make(map[chan Event]struct{})}
}

// Publish delivers evt to every subscriber without blocking. Returns the
// number of subscribers that received it.
func (b *Bus) Publish(evt Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for ch := range b.subs {
		select {
		case ch <- evt:
			n++
		default:
		}
	}
	return n
}

// Subscribe registers a new consumer and returns its channel plus a
// cancel function that must be called when the consumer goes away.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}
