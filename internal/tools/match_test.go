package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

func TestMatchContactByNameAndNickname(t *testing.T) {
	contacts := []model.Contact{
		{ID: "1", Name: "Ahmed", Nickname: "ولدي", Phone: "23456789"},
		{ID: "2", Name: "Fatma", Phone: "98765432"},
	}

	for _, query := range []string{"ahmed", "Ahmed", "ولدي", "appelle ahmed"} {
		c := MatchContact(contacts, query)
		require.NotNil(t, c, query)
		assert.Equal(t, "1", c.ID, query)
	}

	assert.Nil(t, MatchContact(contacts, "Mohamed"))
	assert.Nil(t, MatchContact(contacts, ""))
}

func TestMatchContactRankPrefersNickname(t *testing.T) {
	contacts := []model.Contact{
		{ID: "1", Name: "mami", Phone: "1"},
		{ID: "2", Name: "Salha", Nickname: "mami", Phone: "2"},
	}
	c := MatchContact(contacts, "mami")
	require.NotNil(t, c)
	assert.Equal(t, "2", c.ID)
}

func TestMatchContactFirstInStoredOrderWinsWithinRank(t *testing.T) {
	contacts := []model.Contact{
		{ID: "1", Name: "Ali Ben Salah", Phone: "1"},
		{ID: "2", Name: "Ali Trabelsi", Phone: "2"},
	}
	c := MatchContact(contacts, "ali")
	require.NotNil(t, c)
	assert.Equal(t, "1", c.ID)
}

func TestMatchMedication(t *testing.T) {
	meds := []model.Medication{
		{ID: "1", Name: "Doliprane 1000"},
		{ID: "2", Name: "Aspirine"},
	}
	m := MatchMedication(meds, "doliprane")
	require.NotNil(t, m)
	assert.Equal(t, "1", m.ID)

	assert.Nil(t, MatchMedication(meds, "ibuprofène"))
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0 23 456 789":  "21623456789",
		"023456789":     "21623456789",
		"+216 23456789": "21623456789",
		"21623456789":   "21623456789",
		"23-45-67-89":   "23456789",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in, "216"), in)
	}
}
