// Package speech publishes utterances to the event bus. The device-side
// consumer plays at most one utterance at a time; each Say supersedes
// whatever was being spoken before it.
package speech

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/events"
)

// Speaker is the voice output contract used by the agent and monitor.
type Speaker interface {
	// Say enqueues text for speech, replacing any in-flight utterance.
	Say(text string)
	// Announce speaks text and raises it as a proactive alert.
	Announce(text string)
}

// BusSpeaker publishes speech over an events.Bus. The monotonically
// increasing utterance ID lets consumers discard stale utterances that
// arrive out of order.
type BusSpeaker struct {
	bus *events.Bus
	log zerolog.Logger
	seq atomic.Uint64
}

func NewBusSpeaker(bus *events.Bus, log zerolog.Logger) *BusSpeaker {
	return &BusSpeaker{bus: bus, log: log}
}

func (s *BusSpeaker) Say(text string) {
	if text == "" {
		return
	}
	id := s.seq.Add(1)
	n := s.bus.Publish(events.Event{
		Kind:  events.KindSpeech,
		Text:  text,
		RefID: strconv.FormatUint(id, 10),
	})
	if n == 0 {
		s.log.Debug().Str("text", text).Msg("utterance published with no listeners")
	}
}

func (s *BusSpeaker) Announce(text string) {
	if text == "" {
		return
	}
	s.bus.Publish(events.Event{Kind: events.KindAlert, Text: text})
	s.Say(text)
}
