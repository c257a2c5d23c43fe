package offer

import (
	"context"
	"testing"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (Service, *repositories.Store, *models.Merchant) {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t))
	m := testutil.SeedMerchant(t, store.DB(), "Acme")
	return NewService(store, nil), store, m
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func terms(periods *int, payment string) CreateInput {
	in := CreateInput{TermsInput: TermsInput{
		Advance:     testutil.Dec("50000"),
		Factor:      testutil.Dec("1.3"),
		UpfrontFees: testutil.DecPtr("1500"),
	}}
	in.NumberOfPeriods = periods
	if payment != "" {
		in.PaymentAmount = testutil.DecPtr(payment)
	}
	return in
}

func TestCreate_BidirectionalTerms(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()

	byPeriods, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)
	assert.Equal(t, "65000.00", byPeriods.RTR.StringFixed(2))
	assert.Equal(t, "48500.00", byPeriods.NetFunds.StringFixed(2))
	assert.Equal(t, "650.00", byPeriods.PaymentAmount.StringFixed(2))
	assert.Equal(t, models.TermBasisPeriods, byPeriods.TermBasis)
	assert.Equal(t, models.FrequencyDaily, byPeriods.PaymentFrequency)
	assert.Equal(t, models.OfferStatusDraft, byPeriods.Status)

	byAmount, err := svc.Create(ctx, m.ID, terms(nil, "650"))
	require.NoError(t, err)
	assert.Equal(t, 100, byAmount.NumberOfPeriods)
	assert.Equal(t, models.TermBasisAmount, byAmount.TermBasis)

	floored, err := svc.Create(ctx, m.ID, terms(nil, "651"))
	require.NoError(t, err)
	assert.Equal(t, 99, floored.NumberOfPeriods)
}

func TestCreate_BothTermsIsInvalidState(t *testing.T) {
	svc, _, m := newService(t)
	_, err := svc.Create(context.Background(), m.ID, terms(intPtr(100), "650"))
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousTerm)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

func TestCreate_PercentageFallbackAndFeePercentage(t *testing.T) {
	svc, _, m := newService(t)
	in := CreateInput{TermsInput: TermsInput{
		Advance:              testutil.Dec("10000"),
		Factor:               testutil.Dec("1.3"),
		UpfrontFeePercentage: testutil.DecPtr("3"),
		SpecifiedPercentage:  testutil.DecPtr("1.5"),
	}}

	o, err := svc.Create(context.Background(), m.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "300.00", o.UpfrontFees.StringFixed(2))
	assert.Equal(t, "9700.00", o.NetFunds.StringFixed(2))
	assert.Equal(t, "195.00", o.PaymentAmount.StringFixed(2))
	assert.Equal(t, 66, o.NumberOfPeriods)
	assert.Equal(t, models.TermBasisPercentage, o.TermBasis)
}

func TestUpdate_RecalculatesFromMergedTerms(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()

	o, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	// periods basis survives an advance change
	updated, err := svc.Update(ctx, o.ID, UpdateInput{Advance: testutil.DecPtr("40000")})
	require.NoError(t, err)
	assert.Equal(t, "52000.00", updated.RTR.StringFixed(2))
	assert.Equal(t, "38500.00", updated.NetFunds.StringFixed(2))
	assert.Equal(t, 100, updated.NumberOfPeriods)
	assert.Equal(t, "520.00", updated.PaymentAmount.StringFixed(2))

	// switching to an amount basis derives the period count
	updated, err = svc.Update(ctx, o.ID, UpdateInput{PaymentAmount: testutil.DecPtr("1000")})
	require.NoError(t, err)
	assert.Equal(t, models.TermBasisAmount, updated.TermBasis)
	assert.Equal(t, 52, updated.NumberOfPeriods)

	// the amount basis survives a factor change
	updated, err = svc.Update(ctx, o.ID, UpdateInput{Factor: testutil.DecPtr("1.4")})
	require.NoError(t, err)
	assert.Equal(t, "56000.00", updated.RTR.StringFixed(2))
	assert.Equal(t, "1000.00", updated.PaymentAmount.StringFixed(2))
	assert.Equal(t, 56, updated.NumberOfPeriods)

	_, err = svc.Update(ctx, o.ID, UpdateInput{PaymentAmount: testutil.DecPtr("100"), NumberOfPeriods: intPtr(3)})
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousTerm)
}

func TestUpdate_NonFinancialFieldsKeepTerms(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()
	o, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, o.ID, UpdateInput{DealID: strPtr("EXT-1")})
	require.NoError(t, err)
	assert.Equal(t, "EXT-1", *updated.DealID)
	assert.Equal(t, "650.00", updated.PaymentAmount.StringFixed(2))
}

func TestDealID_Unique(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()

	in := terms(intPtr(100), "")
	in.DealID = strPtr("EXT-1")
	_, err := svc.Create(ctx, m.ID, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, m.ID, in)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateDealID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// offers without a deal id never collide
	_, err = svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)
	_, err = svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)
}

func TestTransition_TimestampsAreIdempotent(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()
	o, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	sent, err := svc.Transition(ctx, o.ID, models.OfferStatusSent)
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
	first := *sent.SentAt

	again, err := svc.Transition(ctx, o.ID, models.OfferStatusSent)
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.SentAt))

	_, err = svc.Transition(ctx, o.ID, models.OfferStatusDraft)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOfferTransition)
}

func TestTransition_SingleSelectedOfferPerMerchant(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)
	b, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	_, err = svc.Transition(ctx, a.ID, models.OfferStatusSelected)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, b.ID, models.OfferStatusSelected)
	assert.ErrorIs(t, err, apperrors.ErrOfferAlreadySelected)

	selected, err := svc.GetSelected(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, selected.ID)
}

func TestDelete_ForbiddenOnceSelected(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()

	in := terms(intPtr(100), "")
	in.Status = models.OfferStatusSelected
	o, err := svc.Create(ctx, m.ID, in)
	require.NoError(t, err)
	require.NotNil(t, o.SelectedAt)

	err = svc.Delete(ctx, o.ID, "ops")
	assert.ErrorIs(t, err, apperrors.ErrOfferLocked)

	still, err := svc.Get(ctx, o.ID, false)
	require.NoError(t, err)
	assert.False(t, still.IsDeleted)
}

func TestDeleteRestore_RoundTrip(t *testing.T) {
	svc, _, m := newService(t)
	ctx := context.Background()
	o, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, o.ID, "ops"))
	list, err := svc.ListByMerchant(ctx, m.ID, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	restored, err := svc.Restore(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)

	list, err = svc.ListByMerchant(ctx, m.ID, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMarkFunded(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o, err := svc.Create(ctx, m.ID, terms(intPtr(100), ""))
	require.NoError(t, err)

	_, err = MarkFunded(store, o.ID, testutil.Date(2025, 1, 2))
	assert.ErrorIs(t, err, apperrors.ErrOfferNotSelected)

	_, err = svc.Transition(ctx, o.ID, models.OfferStatusSelected)
	require.NoError(t, err)

	// the status endpoint cannot fund an offer without a deal
	_, err = svc.Transition(ctx, o.ID, models.OfferStatusFunded)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOfferTransition)
	still, err := svc.Get(ctx, o.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusSelected, still.Status)

	funded, err := MarkFunded(store, o.ID, testutil.Date(2025, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusFunded, funded.Status)
	assert.True(t, funded.FundedAt.Equal(testutil.Date(2025, 1, 2)))

	again, err := svc.Transition(ctx, o.ID, models.OfferStatusFunded)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusFunded, again.Status)
}

func TestPreview(t *testing.T) {
	svc, _, _ := newService(t)
	q, err := svc.Preview(TermsInput{
		Advance:          testutil.Dec("50000"),
		Factor:           testutil.Dec("1.3"),
		PaymentFrequency: models.FrequencyWeekly,
		NumberOfPeriods:  intPtr(52),
	})
	require.NoError(t, err)
	assert.Equal(t, "15000.00", q.TotalCost.StringFixed(2))
	assert.Equal(t, "30.00", q.APR.StringFixed(2))
}
