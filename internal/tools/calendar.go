package tools

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

const upcomingLimit = 5

// AppointmentListResult carries upcoming appointments, nearest first.
type AppointmentListResult struct {
	Appointments []model.Appointment `json:"appointments"`
	Message      string              `json:"message"`
}

// NextAppointmentResult holds the earliest upcoming appointment, if any.
type NextAppointmentResult struct {
	Appointment *model.Appointment `json:"appointment,omitempty"`
	Message     string             `json:"message"`
}

func (r *Registry) calendarManager(ctx context.Context, p Params) (interface{}, error) {
	switch action := p.StringOr("action", "list_upcoming"); action {
	case "add":
		appt := model.Appointment{
			ID:      uuid.NewString(),
			Title:   p.StringOr("title", "Rendez-vous"),
			Doctor:  p.String("doctor"),
			Date:    p.StringOr("date", r.now().Format("2006-01-02")),
			Time:    p.String("time"),
			Created: r.now(),
		}
		appts := append(r.store.Appointments(ctx), appt)
		if err := r.store.SetAppointments(ctx, appts); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"id":      appt.ID,
			"message": "Rendez-vous ajouté : " + appt.Title + " le " + appt.Date + ".",
		}, nil
	case "list_upcoming":
		up := UpcomingAppointments(r.store.Appointments(ctx), r.now())
		msg := "Vous n'avez aucun rendez-vous à venir."
		if len(up) > 0 {
			msg = "Voici vos prochains rendez-vous."
		}
		return AppointmentListResult{Appointments: up, Message: msg}, nil
	case "next":
		up := UpcomingAppointments(r.store.Appointments(ctx), r.now())
		if len(up) == 0 {
			return NextAppointmentResult{Message: "Vous n'avez aucun rendez-vous à venir."}, nil
		}
		next := up[0]
		msg := "Votre prochain rendez-vous : " + next.Title + " le " + next.Date
		if next.Time != "" {
			msg += " à " + next.Time
		}
		return NextAppointmentResult{Appointment: &next, Message: msg + "."}, nil
	case "delete":
		id := p.String("id")
		if id == "" {
			return nil, errors.New("calendar delete requires id")
		}
		appts := r.store.Appointments(ctx)
		kept := appts[:0]
		for _, a := range appts {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		if err := r.store.SetAppointments(ctx, kept); err != nil {
			return nil, err
		}
		return map[string]interface{}{"deleted": id}, nil
	default:
		return nil, errors.Errorf("calendar_manager: unknown action %q", action)
	}
}

// UpcomingAppointments filters appointments dated today or later and
// sorts them ascending by date string. ISO dates make the string
// comparison date-order-correct. At most upcomingLimit are returned.
func UpcomingAppointments(appts []model.Appointment, now time.Time) []model.Appointment {
	today := now.Format("2006-01-02")
	var up []model.Appointment
	for _, a := range appts {
		if a.Date >= today {
			up = append(up, a)
		}
	}
	sort.SliceStable(up, func(i, j int) bool { return up[i].Date < up[j].Date })
	if len(up) > upcomingLimit {
		up = up[:upcomingLimit]
	}
	return up
}
