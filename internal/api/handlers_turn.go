package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/agent"
	"github.com/Malekse21/Senior-Voice/internal/api/respond"
	"github.com/Malekse21/Senior-Voice/internal/llm"
	"github.com/Malekse21/Senior-Voice/internal/model"
)

const maxAudioBytes = 25 << 20 // Whisper upload ceiling

// TurnRunner runs one voice interaction. Satisfied by *agent.Orchestrator.
type TurnRunner interface {
	RunTurn(ctx context.Context, transcript string) (model.TurnResult, error)
}

// TurnHandler exposes the interactive pipeline over HTTP.
type TurnHandler struct {
	runner      TurnRunner
	transcriber llm.Transcriber
	log         zerolog.Logger
}

func NewTurnHandler(runner TurnRunner, transcriber llm.Transcriber, log zerolog.Logger) *TurnHandler {
	return &TurnHandler{runner: runner, transcriber: transcriber, log: log}
}

type turnRequest struct {
	Transcript string `json:"transcript"`
}

// RunTurn handles POST /api/turns. One turn at a time: a second request
// while one is in flight gets 409.
func (h *TurnHandler) RunTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}

	result, err := h.runner.RunTurn(r.Context(), req.Transcript)
	switch {
	case errors.Is(err, agent.ErrTurnInFlight):
		respond.WriteConflict(w, "a voice turn is already in progress")
		return
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.WriteUnavailable(w, result.ResponseVoice)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("turn failed")
		respond.WriteInternalError(w, "turn failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe handles POST /api/transcriptions with a multipart "audio"
// part.
func (h *TurnHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		respond.WriteBadRequest(w, "expected multipart form with an audio part")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		respond.WriteBadRequest(w, "missing audio part")
		return
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		respond.WriteBadRequest(w, "unreadable audio part")
		return
	}

	text, err := h.transcriber.Transcribe(r.Context(), audio, header.Filename, r.FormValue("language"))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			respond.WriteUnavailable(w, "configure an API key before transcribing")
			return
		}
		h.log.Error().Err(err).Msg("transcription failed")
		respond.WriteError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, transcriptionResponse{Text: text})
}
