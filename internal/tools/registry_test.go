package tools

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malekse21/Senior-Voice/internal/config"
	"github.com/Malekse21/Senior-Voice/internal/events"
	"github.com/Malekse21/Senior-Voice/internal/model"
	"github.com/Malekse21/Senior-Voice/internal/scheduler"
	"github.com/Malekse21/Senior-Voice/internal/store"
	"github.com/Malekse21/Senior-Voice/internal/store/memstore"
)

type fakeSpeaker struct {
	mu   sync.Mutex
	said []string
}

func (f *fakeSpeaker) Say(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, text)
}

func (f *fakeSpeaker) Announce(text string) { f.Say(text) }

func (f *fakeSpeaker) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.said...)
}

type harness struct {
	reg     *Registry
	store   *store.Store
	bus     *events.Bus
	speaker *fakeSpeaker
	sched   *scheduler.Scheduler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.NewForTesting()
	st := store.New(memstore.New(), zerolog.Nop())
	bus := events.NewBus(32)
	sp := &fakeSpeaker{}
	sched := scheduler.New(zerolog.Nop())
	t.Cleanup(sched.Stop)
	return &harness{
		reg:     NewRegistry(cfg, st, bus, sp, sched, zerolog.Nop()),
		store:   st,
		bus:     bus,
		speaker: sp,
		sched:   sched,
	}
}

// collect drains bus events into a concurrent-safe slice for assertions.
func collect(t *testing.T, bus *events.Bus) func() []events.Event {
	t.Helper()
	ch, cancel := bus.Subscribe()
	t.Cleanup(cancel)
	var mu sync.Mutex
	var got []events.Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range ch {
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
		}
	}()
	return func() []events.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]events.Event(nil), got...)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	h := newHarness(t)
	_, err := h.reg.Execute(context.Background(), "time_traveler", Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_traveler")
}

func TestContactCallerNotFoundIsRecoverable(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameContactCaller, Params{"contact_name": "Mohamed"})
	require.NoError(t, err)
	cr, ok := res.(CallResult)
	require.True(t, ok)
	assert.False(t, cr.Found)
	assert.Contains(t, cr.Message, "Mohamed")
}

func TestContactCallerDials(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetContacts(ctx, []model.Contact{
		{ID: "1", Name: "Ahmed", Nickname: "ولدي", Phone: "23456789"},
	}))
	got := collect(t, h.bus)

	res, err := h.reg.Execute(ctx, NameContactCaller, Params{"contact_name": "ولدي"})
	require.NoError(t, err)
	cr := res.(CallResult)
	assert.True(t, cr.Found)
	assert.Equal(t, "Ahmed", cr.Name)

	assert.Eventually(t, func() bool {
		for _, e := range got() {
			if e.Kind == events.KindLaunch && e.Target == "tel:23456789" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestWhatsAppSenderNormalizesAndEncodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetContacts(ctx, []model.Contact{
		{ID: "1", Name: "Fatma", Phone: "0 98 765 432"},
	}))

	res, err := h.reg.Execute(ctx, NameWhatsAppSender, Params{
		"contact_name": "fatma",
		"message":      "Bonjour, ça va ?",
	})
	require.NoError(t, err)
	mr := res.(MessageResult)
	require.True(t, mr.Found)
	assert.True(t, strings.HasPrefix(mr.Link, "https://wa.me/21698765432?text="), mr.Link)
	assert.NotContains(t, mr.Link, " ")
}

func TestReminderSetWithinDayIsScheduled(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameReminderManager, Params{
		"action": "set",
		"text":   "prendre mon médicament",
		"time":   "dans 2 heures",
	})
	require.NoError(t, err)
	rr := res.(ReminderSetResult)
	require.NotNil(t, rr.ScheduledFor)
	assert.True(t, h.sched.Pending(rr.ID))
}

func TestReminderDefaultActionCreates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res, err := h.reg.Execute(ctx, NameReminderManager, Params{
		"text": "appeler le médecin",
		"time": "dans 2 heures",
	})
	require.NoError(t, err)
	rr := res.(ReminderSetResult)
	assert.NotEmpty(t, rr.ID)
	require.Len(t, h.store.Reminders(ctx), 1)
	assert.Equal(t, "appeler le médecin", h.store.Reminders(ctx)[0].Text)
}

func TestReminderListEmptyIsArrayNotNull(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameReminderManager, Params{"action": "list"})
	require.NoError(t, err)
	lr := res.(ReminderListResult)
	require.NotNil(t, lr.Reminders)
	assert.Empty(t, lr.Reminders)
}

func TestReminderBeyondDayStoredButNotScheduled(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res, err := h.reg.Execute(ctx, NameReminderManager, Params{
		"action": "set",
		"text":   "rendez-vous",
		"time":   "dans 30 heures",
	})
	require.NoError(t, err)
	rr := res.(ReminderSetResult)
	require.NotNil(t, rr.ScheduledFor)
	assert.False(t, h.sched.Pending(rr.ID))

	rems := h.store.Reminders(ctx)
	require.Len(t, rems, 1)
	assert.False(t, rems[0].Fired)
}

func TestReminderUnparseableTimeStoredUnfired(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res, err := h.reg.Execute(ctx, NameReminderManager, Params{
		"action": "set",
		"text":   "arroser les plantes",
		"time":   "un de ces jours",
	})
	require.NoError(t, err)
	rr := res.(ReminderSetResult)
	assert.Nil(t, rr.ScheduledFor)
	assert.False(t, h.sched.Pending(rr.ID))
	require.Len(t, h.store.Reminders(ctx), 1)
}

func TestReminderFireMarksFiredAndSpeaks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetReminders(ctx, []model.Reminder{
		{ID: "r1", Text: "appeler Ahmed"},
	}))

	h.reg.fireReminder("r1")

	rems := h.store.Reminders(ctx)
	require.Len(t, rems, 1)
	assert.True(t, rems[0].Fired)
	require.NotEmpty(t, h.speaker.spoken())
	assert.Contains(t, h.speaker.spoken()[0], "appeler Ahmed")

	// A second fire is a no-op: the reminder is already fired.
	h.reg.fireReminder("r1")
	assert.Len(t, h.speaker.spoken(), 1)
}

func TestReminderDeleteCancelsTimer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res, err := h.reg.Execute(ctx, NameReminderManager, Params{
		"action": "set", "text": "x", "time": "dans 3 heures",
	})
	require.NoError(t, err)
	id := res.(ReminderSetResult).ID
	require.True(t, h.sched.Pending(id))

	_, err = h.reg.Execute(ctx, NameReminderManager, Params{"action": "delete", "id": id})
	require.NoError(t, err)
	assert.False(t, h.sched.Pending(id))
	assert.Empty(t, h.store.Reminders(ctx))
}

func TestMedicationTakenLogsResolvedName(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetMedications(ctx, []model.Medication{
		{ID: "1", Name: "Doliprane 1000", Schedule: []string{model.PeriodMorning}},
	}))

	res, err := h.reg.Execute(ctx, NameMedicationTracker, Params{
		"action": "taken", "medication_name": "doliprane",
	})
	require.NoError(t, err)
	mt := res.(MedicationTakenResult)
	assert.Equal(t, "Doliprane 1000", mt.Name)

	logEntries := h.store.MedicationLog(ctx)
	require.Len(t, logEntries, 1)
	assert.Equal(t, "Doliprane 1000", logEntries[0].Medication)
	assert.Equal(t, "taken", logEntries[0].Status)
}

func TestMedicationDefaultActionLogsIntake(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetMedications(ctx, []model.Medication{
		{ID: "1", Name: "Doliprane 1000", Schedule: []string{model.PeriodMorning}},
	}))

	res, err := h.reg.Execute(ctx, NameMedicationTracker, Params{
		"medication_name": "doliprane",
	})
	require.NoError(t, err)
	assert.Equal(t, "Doliprane 1000", res.(MedicationTakenResult).Name)
	require.Len(t, h.store.MedicationLog(ctx), 1)
}

func TestDueMedicationsIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 15, 0, 0, time.Local)
	meds := []model.Medication{
		{Name: "Doliprane", Schedule: []string{model.PeriodMorning}},
		{Name: "Aspirine", Schedule: []string{model.PeriodEvening}},
	}
	first := DueMedications(meds, now)
	second := DueMedications(meds, now)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "Doliprane", first[0].Name)
}

func TestDueMedicationsHourWindow(t *testing.T) {
	meds := []model.Medication{{Name: "M", Schedule: []string{model.PeriodNoon}}}
	for hour, want := range map[int]int{11: 1, 12: 1, 13: 1, 10: 0, 14: 0} {
		now := time.Date(2025, 3, 10, hour, 0, 0, 0, time.Local)
		assert.Len(t, DueMedications(meds, now), want, hour)
	}
}

func TestMissedMedications(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.Local)
	meds := []model.Medication{{Name: "Doliprane"}, {Name: "Aspirine"}}
	logEntries := []model.MedicationLogEntry{
		{Medication: "Doliprane", TakenAt: now.Add(-2 * time.Hour), Status: "taken"},
		{Medication: "Aspirine", TakenAt: now.AddDate(0, 0, -1), Status: "taken"}, // yesterday
	}
	missed := MissedMedications(meds, logEntries, now)
	require.Len(t, missed, 1)
	assert.Equal(t, "Aspirine", missed[0].Name)
}

func TestToggleMedicationLogRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	var logEntries []model.MedicationLogEntry

	logEntries, taken := ToggleMedicationLog(logEntries, "Doliprane", now)
	assert.True(t, taken)
	logEntries, taken = ToggleMedicationLog(logEntries, "Doliprane", now.Add(time.Minute))
	assert.False(t, taken)
	assert.Empty(t, logEntries)
}

func TestToggleRemovesExactlyOneEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	logEntries := []model.MedicationLogEntry{
		{Medication: "Doliprane", TakenAt: now, Status: "taken"},
		{Medication: "Doliprane", TakenAt: now.Add(time.Hour), Status: "taken"},
	}
	logEntries, taken := ToggleMedicationLog(logEntries, "Doliprane", now.Add(2*time.Hour))
	assert.False(t, taken)
	assert.Len(t, logEntries, 1)
}

func TestCalendarUpcomingSortedAndFiltered(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	appts := []model.Appointment{
		{ID: "1", Title: "Cardiologue", Date: "2025-04-01"},
		{ID: "2", Title: "Dentiste", Date: "2025-03-12"},
		{ID: "3", Title: "Passé", Date: "2025-03-09"},
		{ID: "4", Title: "Aujourd'hui", Date: "2025-03-10"},
	}
	up := UpcomingAppointments(appts, now)
	require.Len(t, up, 3)
	assert.Equal(t, []string{"4", "2", "1"}, []string{up[0].ID, up[1].ID, up[2].ID})
}

func TestCalendarUpcomingCappedAtFive(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	var appts []model.Appointment
	for i := 11; i <= 20; i++ {
		appts = append(appts, model.Appointment{ID: string(rune('a' + i)), Date: "2025-03-" + itoa2(i)})
	}
	assert.Len(t, UpcomingAppointments(appts, now), 5)
}

func itoa2(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestWeatherFetchFailureDegrades(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameWeatherFetcher, Params{"city": "Tunis"})
	require.NoError(t, err)
	wr := res.(WeatherResult)
	assert.Equal(t, "Tunis", wr.City)
	assert.Equal(t, weatherUnavailable, wr.Summary)
}

func TestNewsFetchFailureDegrades(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameNewsFetcher, Params{})
	require.NoError(t, err)
	nr := res.(NewsResult)
	require.Len(t, nr.Headlines, 1)
	assert.Equal(t, newsUnavailable, nr.Headlines[0])
}

func TestSmartHomeUnconfiguredFallsBack(t *testing.T) {
	h := newHarness(t)
	res, err := h.reg.Execute(context.Background(), NameSmartHomeController, Params{
		"device": "la lumière", "action": "turn_on",
	})
	require.NoError(t, err)
	sr := res.(SmartHomeResult)
	assert.False(t, sr.Handled)
	assert.Contains(t, sr.Message, "manuellement")
}

func TestResolveEntityKeywords(t *testing.T) {
	assert.Equal(t, "light.salon", resolveEntity("la lumière du salon"))
	assert.Equal(t, "light.salon", resolveEntity("la lampe"))
	assert.Equal(t, "media_player.tv", resolveEntity("la télé"))
	assert.Equal(t, "climate.salon", resolveEntity("le climatiseur"))
	assert.Equal(t, "fan.salon", resolveEntity("le ventilateur"))
	assert.Equal(t, "switch.le_four", resolveEntity("le four"))
}

func TestEmergencyResponderFullFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetUser(ctx, model.User{Name: "Salha"}))
	require.NoError(t, h.store.SetContacts(ctx, []model.Contact{
		{ID: "1", Name: "Fatma", Phone: "111"},
		{ID: "2", Name: "Ahmed", Phone: "023456789", IsEmergency: true},
	}))
	got := collect(t, h.bus)

	res, err := h.reg.Execute(ctx, NameEmergencyResponder, Params{
		"severity": "high", "symptoms": "douleur à la poitrine",
	})
	require.NoError(t, err)
	er := res.(EmergencyResult)
	assert.Equal(t, "190", er.Dialed)
	assert.Equal(t, "Ahmed", er.NotifiedContact)

	require.NotEmpty(t, h.speaker.spoken())
	assert.Equal(t, calmingMessage, h.speaker.spoken()[0])

	assert.Eventually(t, func() bool {
		var whatsapp, dial bool
		for _, e := range got() {
			if e.Kind == events.KindLaunch && strings.Contains(e.Target, "wa.me/21623456789") && strings.Contains(e.Target, "URGENT") {
				whatsapp = true
			}
			if e.Kind == events.KindLaunch && e.Target == "tel:190" {
				dial = true
			}
		}
		return whatsapp && dial
	}, time.Second, 5*time.Millisecond)
}

func TestEmergencyResponderWithoutContactStillDials(t *testing.T) {
	h := newHarness(t)
	got := collect(t, h.bus)

	res, err := h.reg.Execute(context.Background(), NameEmergencyResponder, Params{})
	require.NoError(t, err)
	er := res.(EmergencyResult)
	assert.Empty(t, er.NotifiedContact)
	assert.Equal(t, "190", er.Dialed)

	assert.Eventually(t, func() bool {
		for _, e := range got() {
			if e.Kind == events.KindLaunch && e.Target == "tel:190" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryReaderSlices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetContacts(ctx, []model.Contact{{ID: "1", Name: "Ahmed", Phone: "1"}}))

	res, err := h.reg.Execute(ctx, NameMemoryReader, Params{"type": "contacts"})
	require.NoError(t, err)
	m := res.(map[string]interface{})
	assert.Len(t, m["contacts"], 1)

	res, err = h.reg.Execute(ctx, NameMemoryReader, Params{})
	require.NoError(t, err)
	_, ok := res.(model.MemorySnapshot)
	assert.True(t, ok)
}
