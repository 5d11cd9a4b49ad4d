package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/mocks"
	"github.com/reino/financas-api/internal/store"
	"github.com/reino/financas-api/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validEntry() *domain.Entry {
	return &domain.Entry{
		AccountID:   1,
		Description: "Salary",
		Month:       3,
		Year:        2024,
		Amount:      decimal.RequireFromString("2500.00"),
		Type:        domain.EntryTypeIncome,
	}
}

func newTestEntryService(t *testing.T, entries store.EntryStore, publisher events.Publisher) *EntryServiceImpl {
	t.Helper()
	svc, err := NewEntryService(entries, publisher, testutils.DiscardLogger())
	require.NoError(t, err)
	return svc
}

func TestEntryService_Validate(t *testing.T) {
	svc := newTestEntryService(t, mocks.NewMockEntryStore(), nil)

	tests := []struct {
		name   string
		mutate func(e *domain.Entry)
		msg    string
	}{
		{"blank description", func(e *domain.Entry) { e.Description = "  " }, MsgInvalidDescription},
		{"month zero", func(e *domain.Entry) { e.Month = 0 }, MsgInvalidMonth},
		{"month thirteen", func(e *domain.Entry) { e.Month = 13 }, MsgInvalidMonth},
		{"short year", func(e *domain.Entry) { e.Year = 24 }, MsgInvalidYear},
		{"five digit year", func(e *domain.Entry) { e.Year = 20240 }, MsgInvalidYear},
		{"no account", func(e *domain.Entry) { e.AccountID = 0 }, MsgMissingAccount},
		{"zero amount", func(e *domain.Entry) { e.Amount = decimal.Zero }, MsgInvalidAmount},
		{"negative amount", func(e *domain.Entry) { e.Amount = decimal.NewFromInt(-5) }, MsgInvalidAmount},
		{"sub-cent amount", func(e *domain.Entry) { e.Amount = decimal.RequireFromString("0.004") }, MsgInvalidAmount},
		{"three decimal places", func(e *domain.Entry) { e.Amount = decimal.RequireFromString("10.125") }, MsgInvalidAmount},
		{"amount too large", func(e *domain.Entry) { e.Amount = decimal.New(1, 14) }, MsgInvalidAmount},
		{"long description", func(e *domain.Entry) { e.Description = strings.Repeat("a", 101) }, MsgInvalidDescription},
		{"no type", func(e *domain.Entry) { e.Type = "" }, MsgMissingEntryType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)

			err := svc.Validate(e)

			var ruleErr *BusinessRuleError
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, tt.msg, ruleErr.Message)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	assert.NoError(t, svc.Validate(validEntry()))
	assert.Error(t, svc.Validate(nil))

	trailingZero := validEntry()
	trailingZero.Amount = decimal.RequireFromString("10.500")
	assert.NoError(t, svc.Validate(trailingZero))
}

func TestEntryService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("new entries start pending", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		publisher := events.NewInMemoryPublisher(testutils.DiscardLogger())
		var published []string
		publisher.Subscribe(events.HandlerFunc(func(_ context.Context, e *events.Event) error {
			published = append(published, e.Type)
			return nil
		}))
		svc := newTestEntryService(t, entries, publisher)

		e := validEntry()
		e.Status = domain.EntryStatusSettled
		saved, err := svc.Save(ctx, e)

		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
		assert.Equal(t, domain.EntryStatusPending, saved.Status)
		assert.Equal(t, []string{events.TypeEntryCreated}, published)
	})

	t.Run("invalid entry is not stored", func(t *testing.T) {
		entries := &MockEntryStore{}
		svc := newTestEntryService(t, entries, nil)

		e := validEntry()
		e.Month = 0
		_, err := svc.Save(ctx, e)

		assert.ErrorIs(t, err, ErrBusinessRule)
		entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown account", func(t *testing.T) {
		entries := &MockEntryStore{}
		entries.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("failed to insert entry: %w", store.ErrMissingReference))
		svc := newTestEntryService(t, entries, nil)

		_, err := svc.Save(ctx, validEntry())

		var ruleErr *BusinessRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, MsgMissingAccount, ruleErr.Message)
	})

	t.Run("other rejected entity is not a missing account", func(t *testing.T) {
		entries := &MockEntryStore{}
		entries.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: check constraint violation", store.ErrInvalidEntity))
		svc := newTestEntryService(t, entries, nil)

		_, err := svc.Save(ctx, validEntry())

		var ruleErr *BusinessRuleError
		assert.False(t, errors.As(err, &ruleErr))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("already saved", func(t *testing.T) {
		svc := newTestEntryService(t, mocks.NewMockEntryStore(), nil)
		e := validEntry()
		e.ID = 3
		_, err := svc.Save(ctx, e)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestEntryService_UpdateDeleteAndStatus(t *testing.T) {
	ctx := context.Background()
	entries := mocks.NewMockEntryStore()
	svc := newTestEntryService(t, entries, nil)

	saved, err := svc.Save(ctx, validEntry())
	require.NoError(t, err)

	t.Run("update requires id", func(t *testing.T) {
		_, err := svc.Update(ctx, validEntry())
		assert.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("update", func(t *testing.T) {
		saved.Description = "Salary March"
		updated, err := svc.Update(ctx, saved)
		require.NoError(t, err)
		assert.Equal(t, "Salary March", updated.Description)

		got, found, err := svc.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Salary March", got.Description)
	})

	t.Run("update missing entry", func(t *testing.T) {
		e := validEntry()
		e.ID = 999
		e.Status = domain.EntryStatusPending
		_, err := svc.Update(ctx, e)
		assert.ErrorIs(t, err, store.ErrEntryNotFound)
	})

	t.Run("update status", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, saved, domain.EntryStatusSettled)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatusSettled, updated.Status)

		got, _, err := svc.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatusSettled, got.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, saved, domain.EntryStatus("archived"))
		assert.ErrorIs(t, err, domain.ErrInvalidEntryStatus)
		assert.Equal(t, domain.EntryStatusSettled, saved.Status)
	})

	t.Run("failed status update restores previous status", func(t *testing.T) {
		missing := validEntry()
		missing.ID = 12345
		missing.Status = domain.EntryStatusPending

		_, err := svc.UpdateStatus(ctx, missing, domain.EntryStatusCancelled)
		require.Error(t, err)
		assert.Equal(t, domain.EntryStatusPending, missing.Status)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, validEntry()), ErrBusinessRule)

		require.NoError(t, svc.Delete(ctx, saved))
		_, found, err := svc.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, found)

		assert.ErrorIs(t, svc.Delete(ctx, saved), store.ErrEntryNotFound)
	})
}

func TestEntryService_Search(t *testing.T) {
	ctx := context.Background()
	entries := &MockEntryStore{}
	filter := domain.EntryFilter{AccountID: 1, Year: 2024}
	want := []*domain.Entry{validEntry()}
	entries.On("Find", mock.Anything, filter).Return(want, nil).Once()
	entries.On("Find", mock.Anything, domain.EntryFilter{AccountID: 2}).Return(nil, errors.New("db down")).Once()
	svc := newTestEntryService(t, entries, nil)

	got, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Search(ctx, domain.EntryFilter{AccountID: 2})
	assert.Error(t, err)
	entries.AssertExpectations(t)
}

func TestEntryService_Balance(t *testing.T) {
	ctx := context.Background()

	t.Run("settled income minus settled expense", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		svc := newTestEntryService(t, entries, nil)

		add := func(amount string, typ domain.EntryType, status domain.EntryStatus) {
			e := validEntry()
			e.Amount = decimal.RequireFromString(amount)
			e.Type = typ
			saved, err := svc.Save(ctx, e)
			require.NoError(t, err)
			if status != domain.EntryStatusPending {
				_, err = svc.UpdateStatus(ctx, saved, status)
				require.NoError(t, err)
			}
		}
		add("1000.50", domain.EntryTypeIncome, domain.EntryStatusSettled)
		add("200.25", domain.EntryTypeExpense, domain.EntryStatusSettled)
		add("999", domain.EntryTypeIncome, domain.EntryStatusPending)
		add("50", domain.EntryTypeExpense, domain.EntryStatusCancelled)

		balance, err := svc.Balance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "800.25", balance.String())

		empty, err := svc.Balance(ctx, 2)
		require.NoError(t, err)
		assert.True(t, empty.IsZero())
	})

	t.Run("store failure", func(t *testing.T) {
		entries := &MockEntryStore{}
		entries.On("SumByType", mock.Anything, int64(1), domain.EntryTypeIncome, domain.EntryStatusSettled).
			Return(decimal.Zero, errors.New("db down"))
		svc := newTestEntryService(t, entries, nil)

		_, err := svc.Balance(ctx, 1)
		assert.Error(t, err)
	})
}
