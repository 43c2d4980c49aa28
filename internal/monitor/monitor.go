// Package monitor implements the proactive sweep: a recurring check over
// medication schedules and upcoming appointments that raises spoken
// alerts without any user utterance.
package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/metrics"
	"github.com/Malekse21/Senior-Voice/internal/model"
	"github.com/Malekse21/Senior-Voice/internal/speech"
	"github.com/Malekse21/Senior-Voice/internal/store"
	"github.com/Malekse21/Senior-Voice/internal/tools"
)

const (
	// Late-evening missed-medication check.
	missedMedHour = 21
	// Early-evening tomorrow-appointment check.
	tomorrowApptHour = 20
)

// Config controls the sweep cadence.
type Config struct {
	Interval time.Duration
}

// Monitor owns the periodic sweep.
type Monitor struct {
	store   *store.Store
	speaker speech.Speaker
	cfg     Config
	log     zerolog.Logger
	now     func() time.Time
}

func New(st *store.Store, speaker speech.Speaker, cfg Config, log zerolog.Logger) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Monitor{
		store:   st,
		speaker: speaker,
		cfg:     cfg,
		log:     log.With().Str("component", "monitor").Logger(),
		now:     time.Now,
	}
}

// Run starts the sweep loop until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info().Dur("interval", m.cfg.Interval).Msg("proactive monitor starting")
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("proactive monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			m.sweepOnce(ctx, m.now())
		}
	}
}

// sweepOnce runs every check against a single point in time.
func (m *Monitor) sweepOnce(ctx context.Context, now time.Time) {
	hour := now.Hour()

	// Period alert: the current hour exactly matches a canonical
	// schedule hour.
	for period, h := range model.PeriodHours {
		if hour != h {
			continue
		}
		var names []string
		for _, med := range m.store.Medications(ctx) {
			for _, p := range med.Schedule {
				if p == period {
					names = append(names, med.Name)
					break
				}
			}
		}
		if len(names) > 0 {
			m.alert("period", "C'est l'heure de vos médicaments : "+strings.Join(names, ", ")+".")
		}
	}

	if hour == missedMedHour {
		missed := tools.MissedMedications(m.store.Medications(ctx), m.store.MedicationLog(ctx), now)
		if len(missed) > 0 {
			m.alert("missed_medication", "N'oubliez pas votre médicament : "+missed[0].Name+".")
		}
	}

	if hour == tomorrowApptHour {
		tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
		for _, a := range m.store.Appointments(ctx) {
			if a.Date != tomorrow {
				continue
			}
			msg := "Rappel : demain vous avez " + a.Title
			if a.Time != "" {
				msg += " à " + a.Time
			}
			m.alert("appointment", msg+".")
			break
		}
	}
}

func (m *Monitor) alert(kind, text string) {
	metrics.ProactiveAlertsTotal.WithLabelValues(kind).Inc()
	m.log.Info().Str("kind", kind).Str("text", text).Msg("proactive alert")
	m.speaker.Announce(text)
}
