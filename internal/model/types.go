package model

import "time"

// User is the single account the assistant serves.
type User struct {
	Name string `json:"name"`
}

// Contact is someone the user can call or message.
// Nickname may be in a non-Latin script (e.g. Tunisian Arabic).
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname,omitempty"`
	Phone       string    `json:"phone"`
	IsEmergency bool      `json:"isEmergency"`
	Created     time.Time `json:"created"`
}

// Schedule period tags for medications. Canonical hours: 8/12/18/21.
const (
	PeriodMorning = "matin"
	PeriodNoon    = "midi"
	PeriodEvening = "soir"
	PeriodNight   = "nuit"
)

// PeriodHours maps each schedule period to its canonical clock hour.
var PeriodHours = map[string]int{
	PeriodMorning: 8,
	PeriodNoon:    12,
	PeriodEvening: 18,
	PeriodNight:   21,
}

// Medication is a recurring prescription with period-tag scheduling.
type Medication struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Dose     string    `json:"dose,omitempty"`
	Schedule []string  `json:"schedule"`
	Created  time.Time `json:"created"`
}

// MedicationLogEntry records a single intake. It matches a Medication by
// name, not id; renaming a medication orphans its history.
type MedicationLogEntry struct {
	Medication string    `json:"medication"`
	TakenAt    time.Time `json:"takenAt"`
	Status     string    `json:"status"`
	Period     string    `json:"period,omitempty"`
}

// Appointment stores its date as a zero-padded ISO string (YYYY-MM-DD) so
// lexicographic comparison is date-order-correct.
type Appointment struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Doctor  string    `json:"doctor,omitempty"`
	Date    string    `json:"date"`
	Time    string    `json:"time,omitempty"`
	Created time.Time `json:"created"`
}

// Reminder is a user-requested future notification. Fired flips false→true
// exactly once, by the scheduled firing callback.
type Reminder struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Time         string     `json:"time,omitempty"`
	Contact      string     `json:"contact,omitempty"`
	Created      time.Time  `json:"created"`
	Fired        bool       `json:"fired"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

// HistoryEntry records one completed agent run, newest first.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Transcript string    `json:"transcript"`
	Understood string    `json:"understood"`
	Response   string    `json:"response"`
	Tools      []string  `json:"tools"`
	Confidence float64   `json:"confidence"`
}

// Preferences holds user-tunable speech settings.
type Preferences struct {
	Language   string  `json:"language"`
	VoiceSpeed float64 `json:"voiceSpeed"`
}

// DefaultPreferences returns the out-of-box preference values.
func DefaultPreferences() Preferences {
	return Preferences{Language: "fr", VoiceSpeed: 0.82}
}

// SmartHomeConfig is the smart-home integration endpoint. It counts as
// configured only when both URL and token are present.
type SmartHomeConfig struct {
	URL   string `json:"url,omitempty"`
	Token string `json:"token,omitempty"`
}

// Configured reports whether the integration can be used.
func (c SmartHomeConfig) Configured() bool {
	return c.URL != "" && c.Token != ""
}

// APIKeys carries locally stored credentials when not provided via env.
type APIKeys struct {
	Groq string `json:"groq,omitempty"`
}
