package tools

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

// MedicationTakenResult confirms an intake was logged under the resolved
// medication name.
type MedicationTakenResult struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// MedicationListResult carries due or missed medications.
type MedicationListResult struct {
	Medications []model.Medication `json:"medications"`
	Message     string             `json:"message"`
}

func (r *Registry) medicationTracker(ctx context.Context, p Params) (interface{}, error) {
	// Default mirrors spoken usage: naming a medication means it was taken.
	switch action := p.StringOr("action", "taken"); action {
	case "taken":
		return r.medicationTaken(ctx, p)
	case "list_due":
		due := DueMedications(r.store.Medications(ctx), r.now())
		msg := "Aucun médicament à prendre maintenant."
		if len(due) > 0 {
			msg = "À prendre maintenant : " + medNames(due) + "."
		}
		return MedicationListResult{Medications: due, Message: msg}, nil
	case "list_missed":
		missed := MissedMedications(r.store.Medications(ctx), r.store.MedicationLog(ctx), r.now())
		msg := "Tous vos médicaments d'aujourd'hui sont pris."
		if len(missed) > 0 {
			msg = "Pas encore pris aujourd'hui : " + medNames(missed) + "."
		}
		return MedicationListResult{Medications: missed, Message: msg}, nil
	default:
		return nil, errors.Errorf("medication_tracker: unknown action %q", action)
	}
}

func (r *Registry) medicationTaken(ctx context.Context, p Params) (interface{}, error) {
	raw := p.String("medication_name")
	name := raw
	if m := MatchMedication(r.store.Medications(ctx), raw); m != nil {
		name = m.Name
	}
	if name == "" {
		name = "votre médicament"
	}

	entry := model.MedicationLogEntry{
		Medication: name,
		TakenAt:    r.now(),
		Status:     "taken",
	}
	logEntries := append(r.store.MedicationLog(ctx), entry)
	if err := r.store.SetMedicationLog(ctx, logEntries); err != nil {
		return nil, err
	}
	return MedicationTakenResult{
		Name:    name,
		Message: "J'ai noté que vous avez pris " + name + ".",
	}, nil
}

// DueMedications returns medications scheduled for a period whose
// canonical hour is within one hour of now. Pure function over its
// inputs, so repeated calls within the same hour agree.
func DueMedications(meds []model.Medication, now time.Time) []model.Medication {
	hour := now.Hour()
	var due []model.Medication
	for _, m := range meds {
		for _, period := range m.Schedule {
			h, ok := model.PeriodHours[period]
			if !ok {
				continue
			}
			if d := hour - h; d >= -1 && d <= 1 {
				due = append(due, m)
				break
			}
		}
	}
	return due
}

// MissedMedications returns medications with no "taken" log entry on
// today's calendar date. Log entries match by exact name.
func MissedMedications(meds []model.Medication, logEntries []model.MedicationLogEntry, now time.Time) []model.Medication {
	y, mo, d := now.Date()
	takenToday := make(map[string]bool)
	for _, e := range logEntries {
		if e.Status != "taken" {
			continue
		}
		ey, emo, ed := e.TakenAt.Date()
		if ey == y && emo == mo && ed == d {
			takenToday[e.Medication] = true
		}
	}
	var missed []model.Medication
	for _, m := range meds {
		if !takenToday[m.Name] {
			missed = append(missed, m)
		}
	}
	return missed
}

// ToggleMedicationLog flips today's taken state for name: if an entry for
// today exists, exactly one is removed; otherwise one is appended. The
// returned bool reports whether the medication is taken after the toggle.
func ToggleMedicationLog(logEntries []model.MedicationLogEntry, name string, now time.Time) ([]model.MedicationLogEntry, bool) {
	y, mo, d := now.Date()
	for i, e := range logEntries {
		if e.Medication != name || e.Status != "taken" {
			continue
		}
		ey, emo, ed := e.TakenAt.Date()
		if ey == y && emo == mo && ed == d {
			out := make([]model.MedicationLogEntry, 0, len(logEntries)-1)
			out = append(out, logEntries[:i]...)
			out = append(out, logEntries[i+1:]...)
			return out, false
		}
	}
	return append(logEntries, model.MedicationLogEntry{
		Medication: name,
		TakenAt:    now,
		Status:     "taken",
	}), true
}

func medNames(meds []model.Medication) string {
	names := make([]string, len(meds))
	for i, m := range meds {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}
