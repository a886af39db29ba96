//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/usecase/commands"
	commandsmock "martcore/tests/mock/commands"
	sharedmock "martcore/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type discountFixture struct {
	reads     *sharedmock.MockCommandReads
	proposals *sharedmock.MockProposalRepository
	prices    *commandsmock.MockPriceLookup
	now       time.Time
	usecase   commands.AutoDiscountCommands
}

func newDiscountFixture(t *testing.T) *discountFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &discountFixture{
		reads:     sharedmock.NewMockCommandReads(ctrl),
		proposals: sharedmock.NewMockProposalRepository(ctrl),
		prices:    commandsmock.NewMockPriceLookup(ctrl),
		now:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	tx := sharedmock.NewMockTx(ctrl)
	tx.EXPECT().Proposals().Return(f.proposals).AnyTimes()
	tx.EXPECT().Reads().Return(f.reads).AnyTimes()

	f.usecase = commands.NewAutoDiscountUseCase(
		&stubUoW{tx: tx, reads: f.reads},
		f.prices,
		clock.NewMockClock(f.now),
		7,
	)
	return f
}

func discountRule(t *testing.T, storeID uuid.UUID) *autodiscount.Rule {
	t.Helper()
	rule, err := autodiscount.NewRule(autodiscount.RuleParams{
		ID:                   uuid.New(),
		StoreID:              storeID,
		Scope:                autodiscount.ScopeAdmin,
		Strategy:             autodiscount.StrategyPercentage,
		PercentageDiscount:   20,
		MinDiscountPercent:   5,
		MaxDiscountPercent:   50,
		MinDaysSinceLastSale: 30,
		MinStockLevel:        10,
		Active:               true,
	})
	require.NoError(t, err)
	return rule
}

func deadStockAlert(storeID uuid.UUID) *autodiscount.Alert {
	return &autodiscount.Alert{
		ID:                uuid.New(),
		StoreID:           storeID,
		SKUID:             uuid.New(),
		SKU:               "SKU001",
		ProductID:         uuid.New(),
		DaysSinceLastSale: 60,
		StockLevel:        100,
		StockValue:        5000,
		Severity:          autodiscount.SeverityHigh,
	}
}

func TestGenerateProposal(t *testing.T) {
	t.Run("eligible alert yields a pending proposal", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		rule := discountRule(t, storeID)
		alert := deadStockAlert(storeID)
		params := commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: alert.ID,
		}

		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).Return(rule, nil)
		f.reads.EXPECT().AlertByID(gomock.Any(), alert.ID).Return(alert, nil)
		f.reads.EXPECT().PendingProposalExists(gomock.Any(), autodiscount.ScopeAdmin, nil, alert.SKUID, alert.ID).
			Return(false, nil)
		f.prices.EXPECT().CurrentPrice(gomock.Any(), storeID, alert.SKUID).Return(200.0, nil)

		var created *autodiscount.Proposal
		f.proposals.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *autodiscount.Proposal) error {
				created = p
				return nil
			})

		result, err := f.usecase.GenerateProposal(context.Background(), params)
		require.NoError(t, err)

		assert.InDelta(t, 200.00, result.CurrentPrice, 1e-9)
		assert.InDelta(t, 160.00, result.ProposedPrice, 1e-9)
		assert.InDelta(t, 20.00, result.DiscountPercent, 1e-9)

		require.NotNil(t, created)
		assert.Equal(t, autodiscount.ProposalPending, created.Status)
		assert.Equal(t, f.now.AddDate(0, 0, 7), created.ExpiresAt)
	})

	t.Run("invalid scope rejected before any read", func(t *testing.T) {
		f := newDiscountFixture(t)

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: uuid.New(), Scope: autodiscount.Scope("global"), AlertID: uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("no rule for the scope", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).
			Return(nil, infra.WrapRepoErr("rule not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrRuleNotFound)
	})

	t.Run("unknown alert", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		alertID := uuid.New()
		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).
			Return(discountRule(t, storeID), nil)
		f.reads.EXPECT().AlertByID(gomock.Any(), alertID).
			Return(nil, infra.WrapRepoErr("alert not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: alertID,
		})
		assert.ErrorIs(t, err, commands.ErrAlertNotFound)
	})

	t.Run("pending proposal already exists", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		alert := deadStockAlert(storeID)
		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).
			Return(discountRule(t, storeID), nil)
		f.reads.EXPECT().AlertByID(gomock.Any(), alert.ID).Return(alert, nil)
		f.reads.EXPECT().PendingProposalExists(gomock.Any(), autodiscount.ScopeAdmin, nil, alert.SKUID, alert.ID).
			Return(true, nil)

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: alert.ID,
		})
		assert.ErrorIs(t, err, commands.ErrDuplicateProposal)
	})

	t.Run("ineligible alert carries the reason", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		alert := deadStockAlert(storeID)
		alert.DaysSinceLastSale = 5
		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).
			Return(discountRule(t, storeID), nil)
		f.reads.EXPECT().AlertByID(gomock.Any(), alert.ID).Return(alert, nil)
		f.reads.EXPECT().PendingProposalExists(gomock.Any(), autodiscount.ScopeAdmin, nil, alert.SKUID, alert.ID).
			Return(false, nil)
		f.prices.EXPECT().CurrentPrice(gomock.Any(), storeID, alert.SKUID).Return(200.0, nil)

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: alert.ID,
		})
		require.ErrorIs(t, err, commands.ErrIneligibleAlert)

		var ineligible *autodiscount.IneligibleError
		require.ErrorAs(t, err, &ineligible)
		assert.Contains(t, ineligible.Reason, "days since last sale")
	})

	t.Run("duplicate key on insert maps to duplicate proposal", func(t *testing.T) {
		f := newDiscountFixture(t)
		storeID := uuid.New()
		alert := deadStockAlert(storeID)
		f.reads.EXPECT().RuleForScope(gomock.Any(), storeID, autodiscount.ScopeAdmin, nil).
			Return(discountRule(t, storeID), nil)
		f.reads.EXPECT().AlertByID(gomock.Any(), alert.ID).Return(alert, nil)
		f.reads.EXPECT().PendingProposalExists(gomock.Any(), autodiscount.ScopeAdmin, nil, alert.SKUID, alert.ID).
			Return(false, nil)
		f.prices.EXPECT().CurrentPrice(gomock.Any(), storeID, alert.SKUID).Return(200.0, nil)
		f.proposals.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("pending proposal exists", errors.New("duplicate key"), infra.KindDuplicateKey))

		_, err := f.usecase.GenerateProposal(context.Background(), commands.GenerateProposalParams{
			StoreID: storeID, Scope: autodiscount.ScopeAdmin, AlertID: alert.ID,
		})
		assert.ErrorIs(t, err, commands.ErrDuplicateProposal)
	})
}
