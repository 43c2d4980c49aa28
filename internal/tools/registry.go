// Package tools implements the fixed catalog of operations the agent may
// invoke. Every tool treats its parameters as untrusted model output and
// resolves failures into structured, user-facing results wherever the
// outcome is recoverable.
package tools

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/config"
	"github.com/Malekse21/Senior-Voice/internal/events"
	"github.com/Malekse21/Senior-Voice/internal/metrics"
	"github.com/Malekse21/Senior-Voice/internal/scheduler"
	"github.com/Malekse21/Senior-Voice/internal/speech"
	"github.com/Malekse21/Senior-Voice/internal/store"
)

// Tool names as the planner must spell them.
const (
	NameReminderManager     = "reminder_manager"
	NameContactCaller       = "contact_caller"
	NameWhatsAppSender      = "whatsapp_sender"
	NameMedicationTracker   = "medication_tracker"
	NameCalendarManager     = "calendar_manager"
	NameWeatherFetcher      = "weather_fetcher"
	NameNewsFetcher         = "news_fetcher"
	NameSmartHomeController = "smart_home_controller"
	NameEmergencyResponder  = "emergency_responder"
	NameMemoryReader        = "memory_reader"
)

type handler func(ctx context.Context, p Params) (interface{}, error)

// Registry dispatches tool calls by name.
type Registry struct {
	cfg     *config.Config
	store   *store.Store
	bus     *events.Bus
	speaker speech.Speaker
	sched   *scheduler.Scheduler
	http    *resty.Client
	log     zerolog.Logger
	now     func() time.Time

	handlers map[string]handler
}

// NewRegistry wires the full tool catalog.
func NewRegistry(cfg *config.Config, st *store.Store, bus *events.Bus, speaker speech.Speaker, sched *scheduler.Scheduler, log zerolog.Logger) *Registry {
	r := &Registry{
		cfg:     cfg,
		store:   st,
		bus:     bus,
		speaker: speaker,
		sched:   sched,
		http:    resty.New().SetTimeout(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second),
		log:     log.With().Str("component", "tools").Logger(),
		now:     time.Now,
	}
	r.handlers = map[string]handler{
		NameReminderManager:     r.reminderManager,
		NameContactCaller:       r.contactCaller,
		NameWhatsAppSender:      r.whatsappSender,
		NameMedicationTracker:   r.medicationTracker,
		NameCalendarManager:     r.calendarManager,
		NameWeatherFetcher:      r.weatherFetcher,
		NameNewsFetcher:         r.newsFetcher,
		NameSmartHomeController: r.smartHomeController,
		NameEmergencyResponder:  r.emergencyResponder,
		NameMemoryReader:        r.memoryReader,
	}
	return r
}

// Names returns the catalog in no particular order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		out = append(out, n)
	}
	return out
}

// Execute runs one tool call. An unknown name is an error the caller
// records as a failed step; it never aborts the turn.
func (r *Registry) Execute(ctx context.Context, name string, params Params) (interface{}, error) {
	h, ok := r.handlers[name]
	if !ok {
		metrics.ToolFailuresTotal.WithLabelValues(name).Inc()
		return nil, errors.Errorf("unknown tool: %s", name)
	}
	metrics.ToolInvocationsTotal.WithLabelValues(name).Inc()
	res, err := h(ctx, params)
	if err != nil {
		metrics.ToolFailuresTotal.WithLabelValues(name).Inc()
		r.log.Warn().Err(err).Str("tool", name).Msg("tool failed")
	}
	return res, err
}

// WithClock overrides the registry clock. Test hook.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}
