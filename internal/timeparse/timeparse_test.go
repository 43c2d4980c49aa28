package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local) // Monday 14:30

func TestResolveInHours(t *testing.T) {
	got := Resolve("dans 2 heures", base)
	require.NotNil(t, got)
	assert.Equal(t, base.Add(2*time.Hour), *got)
}

func TestResolveDemainDefaultsToEight(t *testing.T) {
	got := Resolve("demain", base)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 11, 8, 0, 0, 0, time.Local), *got)
}

func TestResolveDemainWithHour(t *testing.T) {
	got := Resolve("demain à 9h", base)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local), *got)
}

func TestResolveDemainSoirTakesDemainPath(t *testing.T) {
	// "demain soir" has no explicit hour, so it resolves via the demain
	// rule to 08:00 tomorrow; the soir keyword is not combined.
	got := Resolve("demain soir", base)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 11, 8, 0, 0, 0, time.Local), *got)
}

func TestResolveDayPartKeywords(t *testing.T) {
	cases := map[string]int{
		"ce soir":   18,
		"le matin":  8,
		"à midi":    12,
		"cette nuit": 21,
	}
	for phrase, hour := range cases {
		got := Resolve(phrase, base)
		require.NotNil(t, got, phrase)
		assert.Equal(t, time.Date(2025, 3, 10, hour, 0, 0, 0, time.Local), *got, phrase)
	}
}

func TestResolveExplicitHourFuture(t *testing.T) {
	got := Resolve("à 18h", base)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local), *got)
}

func TestResolveExplicitHourWithMinutes(t *testing.T) {
	got := Resolve("à 16h45", base)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 10, 16, 45, 0, 0, time.Local), *got)
}

func TestResolveExplicitHourAlreadyPassedRollsToTomorrow(t *testing.T) {
	got := Resolve("à 9h", base) // 09:00 already passed at 14:30
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local), *got)
}

func TestResolveNoMatch(t *testing.T) {
	assert.Nil(t, Resolve("bientôt peut-être", base))
	assert.Nil(t, Resolve("", base))
}

func TestResolveCaseInsensitive(t *testing.T) {
	got := Resolve("Dans 1 Heure", base)
	require.NotNil(t, got)
	assert.Equal(t, base.Add(time.Hour), *got)
}
