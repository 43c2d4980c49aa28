package tools

import (
	"context"
	"net/url"

	"github.com/Malekse21/Senior-Voice/internal/events"
)

// CallResult is the contact_caller outcome. Found=false is a recoverable
// not-found, not an error.
type CallResult struct {
	Found   bool   `json:"found"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// MessageResult is the whatsapp_sender outcome.
type MessageResult struct {
	Found   bool   `json:"found"`
	Name    string `json:"name,omitempty"`
	Link    string `json:"link,omitempty"`
	Message string `json:"message"`
}

func (r *Registry) contactCaller(ctx context.Context, p Params) (interface{}, error) {
	query := p.String("contact_name")
	c := MatchContact(r.store.Contacts(ctx), query)
	if c == nil {
		return CallResult{
			Found:   false,
			Message: "Je n'ai pas trouvé " + query + " dans vos contacts.",
		}, nil
	}

	r.bus.Publish(events.Event{Kind: events.KindLaunch, Target: "tel:" + c.Phone, RefID: c.ID})
	return CallResult{
		Found:   true,
		Name:    c.Name,
		Phone:   c.Phone,
		Message: "J'appelle " + c.Name + ".",
	}, nil
}

func (r *Registry) whatsappSender(ctx context.Context, p Params) (interface{}, error) {
	query := p.String("contact_name")
	message := p.String("message")

	c := MatchContact(r.store.Contacts(ctx), query)
	if c == nil {
		return MessageResult{
			Found:   false,
			Message: "Je n'ai pas trouvé " + query + " dans vos contacts.",
		}, nil
	}

	link := r.whatsappLink(c.Phone, message)
	r.bus.Publish(events.Event{Kind: events.KindLaunch, Target: link, RefID: c.ID})
	return MessageResult{
		Found:   true,
		Name:    c.Name,
		Link:    link,
		Message: "J'envoie le message à " + c.Name + ".",
	}, nil
}

func (r *Registry) whatsappLink(phone, message string) string {
	n := NormalizePhone(phone, r.cfg.CountryDialPrefix)
	link := "https://wa.me/" + n
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}
