package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/api/respond"
	"github.com/Malekse21/Senior-Voice/internal/model"
	"github.com/Malekse21/Senior-Voice/internal/store"
	"github.com/Malekse21/Senior-Voice/internal/tools"
)

// ProfileHandler exposes the profile records. Writes are whole-value
// replacements, matching the store contract; there is no merge.
type ProfileHandler struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewProfileHandler(st *store.Store, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{store: st, log: log, now: time.Now}
}

func decodeInto(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return false
	}
	return true
}

func (h *ProfileHandler) writeOrFail(w http.ResponseWriter, err error, data interface{}) {
	if err != nil {
		h.log.Error().Err(err).Msg("profile write failed")
		respond.WriteInternalError(w, "profile write failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, data)
}

func (h *ProfileHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.User(r.Context()))
}

func (h *ProfileHandler) PutUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if !decodeInto(w, r, &u) {
		return
	}
	h.writeOrFail(w, h.store.SetUser(r.Context(), u), u)
}

func (h *ProfileHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.Contacts(r.Context()))
}

func (h *ProfileHandler) PutContacts(w http.ResponseWriter, r *http.Request) {
	var cs []model.Contact
	if !decodeInto(w, r, &cs) {
		return
	}
	for _, c := range cs {
		if c.Phone == "" {
			respond.WriteBadRequest(w, "contact phone is required")
			return
		}
	}
	h.writeOrFail(w, h.store.SetContacts(r.Context(), cs), cs)
}

func (h *ProfileHandler) GetMedications(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.Medications(r.Context()))
}

func (h *ProfileHandler) PutMedications(w http.ResponseWriter, r *http.Request) {
	var ms []model.Medication
	if !decodeInto(w, r, &ms) {
		return
	}
	for _, m := range ms {
		for _, p := range m.Schedule {
			if _, ok := model.PeriodHours[p]; !ok {
				respond.WriteBadRequest(w, "unknown schedule period: "+p)
				return
			}
		}
	}
	h.writeOrFail(w, h.store.SetMedications(r.Context(), ms), ms)
}

func (h *ProfileHandler) GetMedicationLog(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.MedicationLog(r.Context()))
}

type toggleResponse struct {
	Medication string `json:"medication"`
	Taken      bool   `json:"taken"`
}

// ToggleMedication flips today's taken state for one medication: one log
// entry is appended, or exactly one of today's entries is removed.
func (h *ProfileHandler) ToggleMedication(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		respond.WriteBadRequest(w, "medication name is required")
		return
	}
	ctx := r.Context()
	logEntries, taken := tools.ToggleMedicationLog(h.store.MedicationLog(ctx), name, h.now())
	if err := h.store.SetMedicationLog(ctx, logEntries); err != nil {
		h.log.Error().Err(err).Msg("profile write failed")
		respond.WriteInternalError(w, "profile write failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, toggleResponse{Medication: name, Taken: taken})
}

func (h *ProfileHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.Appointments(r.Context()))
}

func (h *ProfileHandler) PutAppointments(w http.ResponseWriter, r *http.Request) {
	var as []model.Appointment
	if !decodeInto(w, r, &as) {
		return
	}
	h.writeOrFail(w, h.store.SetAppointments(r.Context(), as), as)
}

func (h *ProfileHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.Reminders(r.Context()))
}

func (h *ProfileHandler) PutReminders(w http.ResponseWriter, r *http.Request) {
	var rs []model.Reminder
	if !decodeInto(w, r, &rs) {
		return
	}
	h.writeOrFail(w, h.store.SetReminders(r.Context(), rs), rs)
}

func (h *ProfileHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.History(r.Context()))
}

// ClearHistory wipes the interaction history in bulk.
func (h *ProfileHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.writeOrFail(w, h.store.SetHistory(r.Context(), []model.HistoryEntry{}), map[string]bool{"cleared": true})
}

func (h *ProfileHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.store.Preferences(r.Context()))
}

func (h *ProfileHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var p model.Preferences
	if !decodeInto(w, r, &p) {
		return
	}
	h.writeOrFail(w, h.store.SetPreferences(r.Context(), p), p)
}

func (h *ProfileHandler) PutSmartHome(w http.ResponseWriter, r *http.Request) {
	var c model.SmartHomeConfig
	if !decodeInto(w, r, &c) {
		return
	}
	h.writeOrFail(w, h.store.SetSmartHome(r.Context(), c), map[string]bool{"configured": c.Configured()})
}

func (h *ProfileHandler) PutAPIKeys(w http.ResponseWriter, r *http.Request) {
	var k model.APIKeys
	if !decodeInto(w, r, &k) {
		return
	}
	h.writeOrFail(w, h.store.SetAPIKeys(r.Context(), k), map[string]bool{"saved": true})
}
