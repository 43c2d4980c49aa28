// Package agent orchestrates one voice interaction: snapshot the
// profile, ask the model for a plan, run the requested tools in order
// and compose the spoken response.
package agent

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/config"
	"github.com/Malekse21/Senior-Voice/internal/llm"
	"github.com/Malekse21/Senior-Voice/internal/metrics"
	"github.com/Malekse21/Senior-Voice/internal/model"
	"github.com/Malekse21/Senior-Voice/internal/plan"
	"github.com/Malekse21/Senior-Voice/internal/speech"
	"github.com/Malekse21/Senior-Voice/internal/store"
	"github.com/Malekse21/Senior-Voice/internal/tools"

	"github.com/google/uuid"
)

const (
	// Transcripts shorter than this skip planning entirely.
	minTranscriptRunes = 2
	// How much of the interaction history the prompt sees.
	promptHistoryDepth = 5
	// The visual summary auto-dismisses after this delay.
	autoDismissDelay = 6 * time.Second

	didNotHearMessage   = "Je ne vous ai pas entendu. Pouvez-vous répéter ?"
	missingKeyMessage   = "Veuillez d'abord configurer votre clé API dans les réglages."
	turnFailureMessage  = "Excusez-moi, j'ai eu un petit problème. Pouvez-vous réessayer ?"
	clarifyDefaultAsk   = "Pouvez-vous préciser ?"
	genericConfirmation = "C'est fait !"
)

// ErrTurnInFlight is returned when a turn is requested while another one
// is still running. Interactions never overlap.
var ErrTurnInFlight = errors.New("a voice turn is already in progress")

// ToolExecutor runs one named tool. Satisfied by *tools.Registry.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, params tools.Params) (interface{}, error)
}

// Orchestrator drives the transcript→plan→tools→response pipeline.
type Orchestrator struct {
	cfg      *config.Config
	store    *store.Store
	llm      llm.Completer
	registry ToolExecutor
	speaker  speech.Speaker
	log      zerolog.Logger
	now      func() time.Time

	turnMu sync.Mutex
}

func NewOrchestrator(cfg *config.Config, st *store.Store, completer llm.Completer, registry ToolExecutor, speaker speech.Speaker, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		store:    st,
		llm:      completer,
		registry: registry,
		speaker:  speaker,
		log:      log.With().Str("component", "agent").Logger(),
		now:      time.Now,
	}
}

// WithClock overrides the orchestrator clock. Test hook.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// RunTurn executes one complete voice interaction. It returns
// ErrTurnInFlight when called while another turn is running; every other
// outcome, including model and tool failures, is resolved into a usable
// TurnResult so the loop always returns to idle.
func (o *Orchestrator) RunTurn(ctx context.Context, transcript string) (model.TurnResult, error) {
	if !o.turnMu.TryLock() {
		return model.TurnResult{}, ErrTurnInFlight
	}
	defer o.turnMu.Unlock()

	metrics.TurnsTotal.Inc()
	transcript = strings.TrimSpace(transcript)
	result := model.TurnResult{Transcript: transcript, AutoDismissAfter: autoDismissDelay}

	// Too short to be worth a model call.
	if utf8.RuneCountInString(transcript) < minTranscriptRunes {
		result.ResponseVoice = didNotHearMessage
		o.speaker.Say(didNotHearMessage)
		return result, nil
	}

	snap := o.snapshot(ctx)
	raw, err := o.llm.Complete(ctx, BuildSystemPrompt(snap, o.now()), transcript)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			result.ResponseVoice = missingKeyMessage
			o.speaker.Say(missingKeyMessage)
			return result, err
		}
		o.log.Error().Err(err).Msg("plan completion failed")
		result.ResponseVoice = turnFailureMessage
		o.speaker.Say(turnFailureMessage)
		return result, nil
	}

	p := plan.Parse(raw)
	if plan.IsFallback(p) {
		metrics.PlanFallbacksTotal.Inc()
	}
	result.Understood = p.Understood
	result.Confidence = p.Confidence

	if p.NeedsClarification {
		q := p.ClarificationQuestion
		if q == "" {
			q = clarifyDefaultAsk
		}
		result.NeedsClarification = true
		result.ClarificationQuestion = q
		result.ResponseVoice = q
		o.speaker.Say(q)
		return result, nil
	}

	result.ToolResults = o.executeTools(ctx, p.ToolsToCall)

	response := p.ResponseVoice
	if response == "" {
		response = p.Understood
	}
	if response == "" {
		response = genericConfirmation
	}
	result.ResponseVoice = composeResponse(response, result.ToolResults)
	o.speaker.Say(result.ResponseVoice)

	o.recordHistory(ctx, transcript, p, result)
	return result, nil
}

// executeTools runs the plan's calls strictly in order. A failed call is
// recorded and the rest still run.
func (o *Orchestrator) executeTools(ctx context.Context, calls []model.ToolCall) []model.ToolResult {
	results := make([]model.ToolResult, 0, len(calls))
	for _, call := range calls {
		res, err := o.registry.Execute(ctx, call.Tool, tools.Params(call.Params))
		if err != nil {
			results = append(results, model.ToolResult{Tool: call.Tool, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, model.ToolResult{Tool: call.Tool, Success: true, Result: res})
	}
	return results
}

// composeResponse layers tool summaries over the planned response.
// Weather and news append; call and medication confirmations override,
// since those are the primary user intent.
func composeResponse(base string, results []model.ToolResult) string {
	out := base
	for _, tr := range results {
		if !tr.Success {
			continue
		}
		switch res := tr.Result.(type) {
		case tools.WeatherResult:
			out = out + " " + res.Summary
		case tools.NewsResult:
			out = out + " " + res.Message
		case tools.CallResult:
			out = res.Message
		case tools.MedicationTakenResult:
			out = res.Message
		}
	}
	return strings.TrimSpace(out)
}

// snapshot captures the immutable profile view the prompt is built from.
// Tool side effects during the turn cannot change what the model saw.
func (o *Orchestrator) snapshot(ctx context.Context) model.MemorySnapshot {
	history := o.store.History(ctx)
	if len(history) > promptHistoryDepth {
		history = history[:promptHistoryDepth]
	}
	return model.MemorySnapshot{
		Name:         o.store.User(ctx).Name,
		Contacts:     o.store.Contacts(ctx),
		Medications:  o.store.Medications(ctx),
		Appointments: o.store.Appointments(ctx),
		History:      history,
		Preferences:  o.store.Preferences(ctx),
	}
}

func (o *Orchestrator) recordHistory(ctx context.Context, transcript string, p model.Plan, result model.TurnResult) {
	names := make([]string, len(result.ToolResults))
	for i, tr := range result.ToolResults {
		names[i] = tr.Tool
	}
	entry := model.HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  o.now(),
		Transcript: transcript,
		Understood: p.Understood,
		Response:   result.ResponseVoice,
		Tools:      names,
		Confidence: p.Confidence,
	}
	if err := o.store.AddHistory(ctx, entry, o.cfg.HistoryCap); err != nil {
		o.log.Error().Err(err).Msg("recording interaction history")
	}
}
