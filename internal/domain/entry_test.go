package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFilterMatches(t *testing.T) {
	e := &Entry{
		ID:          3,
		AccountID:   1,
		Description: "Conta de Luz",
		Month:       5,
		Year:        2024,
		Amount:      decimal.RequireFromString("120.50"),
		Type:        EntryTypeExpense,
		Status:      EntryStatusPending,
	}

	tests := []struct {
		name   string
		filter EntryFilter
		want   bool
	}{
		{"empty filter", EntryFilter{}, true},
		{"account", EntryFilter{AccountID: 1}, true},
		{"other account", EntryFilter{AccountID: 2}, false},
		{"description substring ignores case", EntryFilter{Description: "de luz"}, true},
		{"description miss", EntryFilter{Description: "agua"}, false},
		{"month and year", EntryFilter{Month: 5, Year: 2024}, true},
		{"wrong month", EntryFilter{Month: 6}, false},
		{"type", EntryFilter{Type: EntryTypeExpense}, true},
		{"wrong type", EntryFilter{Type: EntryTypeIncome}, false},
		{"wrong status", EntryFilter{Status: EntryStatusSettled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(e))
		})
	}
}

func TestParseEntryTypeAndStatus(t *testing.T) {
	typ, err := ParseEntryType(" Income ")
	require.NoError(t, err)
	assert.Equal(t, EntryTypeIncome, typ)

	_, err = ParseEntryType("transfer")
	assert.ErrorIs(t, err, ErrInvalidEntryType)

	st, err := ParseEntryStatus("SETTLED")
	require.NoError(t, err)
	assert.Equal(t, EntryStatusSettled, st)

	_, err = ParseEntryStatus("done")
	assert.ErrorIs(t, err, ErrInvalidEntryStatus)
}
