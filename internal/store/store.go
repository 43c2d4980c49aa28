// Package store owns every profile record the assistant reads and writes.
// Reads never fail the caller: absence and corruption both fall back to the
// type default. Writes persist the full replacement value.
package store

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

// KV is the persistence contract adapters implement
// (see sqlite, postgres and memstore subpackages).
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Profile record keys. Kept stable with the original on-device layout.
const (
	keyUser          = "user"
	keyContacts      = "contacts"
	keyMedications   = "medications"
	keyMedicationLog = "medication_log"
	keyAppointments  = "appointments"
	keyReminders     = "reminders"
	keyHistory       = "history"
	keyPreferences   = "preferences"
	keySmartHome     = "ha_config"
	keyAPIKeys       = "api_keys"
)

// Store exposes typed accessors over a KV backend.
type Store struct {
	kv  KV
	log zerolog.Logger
}

// New wraps a KV adapter.
func New(kv KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// readJSON loads key into out. Returns false when absent or corrupt so the
// caller keeps its default; the condition is logged, never propagated.
func (s *Store) readJSON(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("profile read failed, using default")
		return false
	}
	if !ok {
		return false
	}
	// Unmarshal can partially populate its target before reporting a type
	// error, so decode into a fresh value and copy only on success; a
	// corrupt value must leave the caller's default untouched.
	tmp := reflect.New(reflect.TypeOf(out).Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt profile value, using default")
		return false
	}
	reflect.ValueOf(out).Elem().Set(tmp.Elem())
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, key, raw)
}

func (s *Store) User(ctx context.Context) model.User {
	var u model.User
	s.readJSON(ctx, keyUser, &u)
	return u
}

func (s *Store) SetUser(ctx context.Context, u model.User) error {
	return s.writeJSON(ctx, keyUser, u)
}

func (s *Store) Contacts(ctx context.Context) []model.Contact {
	out := []model.Contact{}
	s.readJSON(ctx, keyContacts, &out)
	return out
}

func (s *Store) SetContacts(ctx context.Context, cs []model.Contact) error {
	return s.writeJSON(ctx, keyContacts, cs)
}

func (s *Store) Medications(ctx context.Context) []model.Medication {
	out := []model.Medication{}
	s.readJSON(ctx, keyMedications, &out)
	return out
}

func (s *Store) SetMedications(ctx context.Context, ms []model.Medication) error {
	return s.writeJSON(ctx, keyMedications, ms)
}

func (s *Store) MedicationLog(ctx context.Context) []model.MedicationLogEntry {
	out := []model.MedicationLogEntry{}
	s.readJSON(ctx, keyMedicationLog, &out)
	return out
}

func (s *Store) SetMedicationLog(ctx context.Context, log []model.MedicationLogEntry) error {
	return s.writeJSON(ctx, keyMedicationLog, log)
}

func (s *Store) Appointments(ctx context.Context) []model.Appointment {
	out := []model.Appointment{}
	s.readJSON(ctx, keyAppointments, &out)
	return out
}

func (s *Store) SetAppointments(ctx context.Context, as []model.Appointment) error {
	return s.writeJSON(ctx, keyAppointments, as)
}

func (s *Store) Reminders(ctx context.Context) []model.Reminder {
	out := []model.Reminder{}
	s.readJSON(ctx, keyReminders, &out)
	return out
}

func (s *Store) SetReminders(ctx context.Context, rs []model.Reminder) error {
	return s.writeJSON(ctx, keyReminders, rs)
}

func (s *Store) History(ctx context.Context) []model.HistoryEntry {
	out := []model.HistoryEntry{}
	s.readJSON(ctx, keyHistory, &out)
	return out
}

func (s *Store) SetHistory(ctx context.Context, hs []model.HistoryEntry) error {
	return s.writeJSON(ctx, keyHistory, hs)
}

// AddHistory prepends an entry and trims the list to cap, oldest dropped.
func (s *Store) AddHistory(ctx context.Context, e model.HistoryEntry, cap int) error {
	hs := s.History(ctx)
	hs = append([]model.HistoryEntry{e}, hs...)
	if cap > 0 && len(hs) > cap {
		hs = hs[:cap]
	}
	return s.SetHistory(ctx, hs)
}

func (s *Store) Preferences(ctx context.Context) model.Preferences {
	out := model.DefaultPreferences()
	s.readJSON(ctx, keyPreferences, &out)
	return out
}

func (s *Store) SetPreferences(ctx context.Context, p model.Preferences) error {
	return s.writeJSON(ctx, keyPreferences, p)
}

func (s *Store) SmartHome(ctx context.Context) model.SmartHomeConfig {
	var out model.SmartHomeConfig
	s.readJSON(ctx, keySmartHome, &out)
	return out
}

func (s *Store) SetSmartHome(ctx context.Context, c model.SmartHomeConfig) error {
	return s.writeJSON(ctx, keySmartHome, c)
}

func (s *Store) APIKeys(ctx context.Context) model.APIKeys {
	var out model.APIKeys
	s.readJSON(ctx, keyAPIKeys, &out)
	return out
}

func (s *Store) SetAPIKeys(ctx context.Context, k model.APIKeys) error {
	return s.writeJSON(ctx, keyAPIKeys, k)
}

// HealthPing reports backend reachability.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
