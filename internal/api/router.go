package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/api/recovery"
	"github.com/Malekse21/Senior-Voice/internal/events"
	"github.com/Malekse21/Senior-Voice/internal/llm"
	"github.com/Malekse21/Senior-Voice/internal/store"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Store       *store.Store
	Runner      TurnRunner
	Transcriber llm.Transcriber
	Bus         *events.Bus
	Log         zerolog.Logger
}

// NewRouter wires all API routes.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	turnHandler := NewTurnHandler(d.Runner, d.Transcriber, d.Log)
	profileHandler := NewProfileHandler(d.Store, d.Log)
	eventsHandler := NewEventsHandler(d.Bus, d.Log)
	healthHandler := NewHealthHandler(d.Store)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	// Interaction pipeline
	router.HandleFunc("/api/turns", turnHandler.RunTurn).Methods("POST")
	router.HandleFunc("/api/transcriptions", turnHandler.Transcribe).Methods("POST")

	// Device event stream (speech, launches, alerts)
	router.HandleFunc("/api/events", eventsHandler.Stream).Methods("GET")

	// Profile records: whole-value reads and replacements
	router.HandleFunc("/api/profile/user", profileHandler.GetUser).Methods("GET")
	router.HandleFunc("/api/profile/user", profileHandler.PutUser).Methods("PUT")
	router.HandleFunc("/api/profile/contacts", profileHandler.GetContacts).Methods("GET")
	router.HandleFunc("/api/profile/contacts", profileHandler.PutContacts).Methods("PUT")
	router.HandleFunc("/api/profile/medications", profileHandler.GetMedications).Methods("GET")
	router.HandleFunc("/api/profile/medications", profileHandler.PutMedications).Methods("PUT")
	router.HandleFunc("/api/profile/medication-log", profileHandler.GetMedicationLog).Methods("GET")
	router.HandleFunc("/api/profile/medications/{name}/toggle", profileHandler.ToggleMedication).Methods("POST")
	router.HandleFunc("/api/profile/appointments", profileHandler.GetAppointments).Methods("GET")
	router.HandleFunc("/api/profile/appointments", profileHandler.PutAppointments).Methods("PUT")
	router.HandleFunc("/api/profile/reminders", profileHandler.GetReminders).Methods("GET")
	router.HandleFunc("/api/profile/reminders", profileHandler.PutReminders).Methods("PUT")
	router.HandleFunc("/api/profile/history", profileHandler.GetHistory).Methods("GET")
	router.HandleFunc("/api/profile/history", profileHandler.ClearHistory).Methods("DELETE")
	router.HandleFunc("/api/profile/preferences", profileHandler.GetPreferences).Methods("GET")
	router.HandleFunc("/api/profile/preferences", profileHandler.PutPreferences).Methods("PUT")
	router.HandleFunc("/api/profile/smart-home", profileHandler.PutSmartHome).Methods("PUT")
	router.HandleFunc("/api/profile/api-keys", profileHandler.PutAPIKeys).Methods("PUT")

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}
