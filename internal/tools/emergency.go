package tools

import (
	"context"
	"time"

	"github.com/Malekse21/Senior-Voice/internal/events"
)

const calmingMessage = "Restez calme, je préviens de l'aide tout de suite. Ne bougez pas."

// EmergencyResult records which number will be dialed and which contact
// was alerted, if any.
type EmergencyResult struct {
	Dialed          string `json:"dialed"`
	NotifiedContact string `json:"notifiedContact,omitempty"`
	Message         string `json:"message"`
}

// emergencyResponder speaks a calming message immediately, alerts the
// first emergency contact over WhatsApp, and dials the emergency number
// after a short countdown. It runs even with no emergency contact
// configured.
func (r *Registry) emergencyResponder(ctx context.Context, p Params) (interface{}, error) {
	symptoms := p.String("symptoms")

	r.speaker.Say(calmingMessage)
	r.bus.Publish(events.Event{Kind: events.KindEmergency, Text: symptoms})

	notified := ""
	for _, c := range r.store.Contacts(ctx) {
		if !c.IsEmergency {
			continue
		}
		userName := r.store.User(ctx).Name
		if userName == "" {
			userName = "votre proche"
		}
		alert := "URGENT : " + userName + " a besoin d'aide."
		if symptoms != "" {
			alert += " Symptômes : " + symptoms + "."
		}
		r.bus.Publish(events.Event{
			Kind:   events.KindLaunch,
			Target: r.whatsappLink(c.Phone, alert),
			RefID:  c.ID,
		})
		notified = c.Name
		break
	}

	number := r.cfg.EmergencyNumber
	countdown := time.Duration(r.cfg.EmergencyCountdownSeconds) * time.Second
	time.AfterFunc(countdown, func() {
		r.bus.Publish(events.Event{Kind: events.KindLaunch, Target: "tel:" + number})
	})

	return EmergencyResult{
		Dialed:          number,
		NotifiedContact: notified,
		Message:         calmingMessage,
	}, nil
}
