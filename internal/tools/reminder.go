package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Malekse21/Senior-Voice/internal/events"
	"github.com/Malekse21/Senior-Voice/internal/model"
	"github.com/Malekse21/Senior-Voice/internal/timeparse"
)

// ReminderSetResult reports the created reminder. ScheduledFor is nil
// when the time phrase did not resolve.
type ReminderSetResult struct {
	ID           string     `json:"id"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Message      string     `json:"message"`
}

// ReminderListResult carries the unfired reminders.
type ReminderListResult struct {
	Reminders []model.Reminder `json:"reminders"`
	Message   string           `json:"message"`
}

func (r *Registry) reminderManager(ctx context.Context, p Params) (interface{}, error) {
	// A plan that names the tool without an action is creating a reminder.
	switch action := p.StringOr("action", "set"); action {
	case "set":
		return r.setReminder(ctx, p)
	case "list":
		unfired := []model.Reminder{}
		for _, rem := range r.store.Reminders(ctx) {
			if !rem.Fired {
				unfired = append(unfired, rem)
			}
		}
		msg := "Vous n'avez aucun rappel en attente."
		if len(unfired) > 0 {
			msg = "Voici vos rappels en attente."
		}
		return ReminderListResult{Reminders: unfired, Message: msg}, nil
	case "delete":
		id := p.String("id")
		if id == "" {
			return nil, errors.New("reminder delete requires id")
		}
		rems := r.store.Reminders(ctx)
		kept := rems[:0]
		for _, rem := range rems {
			if rem.ID != id {
				kept = append(kept, rem)
			}
		}
		r.sched.Cancel(id)
		if err := r.store.SetReminders(ctx, kept); err != nil {
			return nil, err
		}
		return map[string]interface{}{"deleted": id}, nil
	default:
		return nil, errors.Errorf("reminder_manager: unknown action %q", action)
	}
}

func (r *Registry) setReminder(ctx context.Context, p Params) (interface{}, error) {
	now := r.now()
	rem := model.Reminder{
		ID:      uuid.NewString(),
		Text:    p.StringOr("text", "Rappel"),
		Time:    p.String("time"),
		Contact: p.String("contact"),
		Created: now,
	}
	rem.ScheduledFor = timeparse.Resolve(rem.Time, now)

	rems := append(r.store.Reminders(ctx), rem)
	if err := r.store.SetReminders(ctx, rems); err != nil {
		return nil, err
	}

	// Only times within the next 24 hours get an in-process timer. The
	// reminder itself is stored regardless, unfired.
	if at := rem.ScheduledFor; at != nil && !at.Before(now) && at.Before(now.Add(24*time.Hour)) {
		id := rem.ID
		r.sched.Schedule(id, *at, func() { r.fireReminder(id) })
	}

	msg := "C'est noté : " + rem.Text + "."
	if rem.ScheduledFor == nil && rem.Time != "" {
		msg = "C'est noté, mais je n'ai pas compris l'heure : " + rem.Text + "."
	}
	return ReminderSetResult{ID: rem.ID, ScheduledFor: rem.ScheduledFor, Message: msg}, nil
}

// fireReminder runs on the scheduler goroutine. The reminder may have
// been deleted or already fired since scheduling, so presence and state
// are re-checked against the store at fire time.
func (r *Registry) fireReminder(id string) {
	ctx := context.Background()
	rems := r.store.Reminders(ctx)
	for i := range rems {
		if rems[i].ID != id || rems[i].Fired {
			continue
		}
		rems[i].Fired = true
		if err := r.store.SetReminders(ctx, rems); err != nil {
			r.log.Error().Err(err).Str("id", id).Msg("persisting fired reminder")
		}
		r.bus.Publish(events.Event{Kind: events.KindReminderFired, Text: rems[i].Text, RefID: id})
		r.speaker.Announce("C'est l'heure : " + rems[i].Text)
		return
	}
}
