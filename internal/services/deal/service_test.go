package deal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSummaryCache struct {
	mock.Mock
}

func (m *mockSummaryCache) Get(ctx context.Context) (*PortfolioSummary, bool, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*PortfolioSummary)
	return summary, args.Bool(1), args.Error(2)
}

func (m *mockSummaryCache) Set(ctx context.Context, summary *PortfolioSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *mockSummaryCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newService(t *testing.T) (Service, *repositories.Store, *models.Merchant) {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t))
	m := testutil.SeedMerchant(t, store.DB(), "Acme")
	return NewService(store, nil, nil), store, m
}

func addPayment(t *testing.T, store *repositories.Store, dealID uint, amount string, date time.Time, bounced bool) *models.Payment {
	t.Helper()
	p := &models.Payment{
		DealID:  dealID,
		Date:    date,
		Amount:  testutil.Dec(amount),
		Type:    models.PaymentTypeACH,
		Bounced: bounced,
	}
	require.NoError(t, store.Payments.Create(p))
	return p
}

func seedAccount(t *testing.T, store *repositories.Store, merchantID uint) *models.BankAccount {
	t.Helper()
	account := &models.BankAccount{
		MerchantID:    merchantID,
		AccountName:   "Operating",
		AccountNumber: "1234",
		RoutingNumber: "021000021",
		AccountType:   "checking",
		IsActive:      true,
	}
	require.NoError(t, store.BankAccounts.Create(account))
	return account
}

func TestCreate_OpensDealFromSelectedOffer(t *testing.T) {
	svc, store, m := newService(t)
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "500", 20)

	d, err := svc.Create(context.Background(), CreateInput{
		MerchantID:  m.ID,
		OfferID:     o.ID,
		FundingDate: models.DateOf(testutil.Date(2024, time.March, 1)),
	}, "ops@example.com")
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	assert.Equal(t, fmt.Sprintf("MCA-%d-0001", year), d.DealNumber)
	assert.Equal(t, models.DealStatusActive, d.Status)
	assert.Equal(t, "13000.00", d.RTRAmount.StringFixed(2))
	assert.Equal(t, "13000.00", d.BalanceRemaining.StringFixed(2))
	assert.Equal(t, "650.00", d.PaymentAmount.StringFixed(2))
	assert.Equal(t, 20, d.PaymentsRemaining)
	require.NotNil(t, d.NetCashToMerchant)
	assert.Equal(t, "9500.00", d.NetCashToMerchant.StringFixed(2))
	require.NotNil(t, d.MaturityDate)
	assert.True(t, d.MaturityDate.After(d.FundingDate))
	assert.Equal(t, "ops@example.com", d.CreatedBy)

	funded, err := store.Offers.GetByID(o.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusFunded, funded.Status)
	assert.NotNil(t, funded.FundedAt)
}

func TestCreate_Preconditions(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	other := testutil.SeedMerchant(t, store.DB(), "Other")

	t.Run("offer not selected", func(t *testing.T) {
		o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
		require.NoError(t, store.DB().Model(o).Update("status", models.OfferStatusSent).Error)

		_, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
		assert.ErrorIs(t, err, apperrors.ErrOfferNotSelected)
	})

	t.Run("offer of another merchant", func(t *testing.T) {
		o := testutil.SeedSelectedOffer(t, store.DB(), other.ID, "10000", "1.3", "0", 20)
		_, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
		assert.ErrorIs(t, err, apperrors.ErrOfferMerchantMismatch)
	})

	t.Run("bank account of another merchant", func(t *testing.T) {
		account := seedAccount(t, store, other.ID)
		o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)

		_, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID, BankAccountID: &account.ID}, "")
		assert.ErrorIs(t, err, apperrors.ErrBankAccountMismatch)
	})

	t.Run("first payment before funding", func(t *testing.T) {
		o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
		first := models.DateOf(testutil.Date(2024, time.February, 1))
		_, err := svc.Create(ctx, CreateInput{
			MerchantID:       m.ID,
			OfferID:          o.ID,
			FundingDate:      models.DateOf(testutil.Date(2024, time.March, 1)),
			FirstPaymentDate: &first,
		}, "")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

		unchanged, err := store.Offers.GetByID(o.ID, false)
		require.NoError(t, err)
		assert.Equal(t, models.OfferStatusSelected, unchanged.Status)
	})

	t.Run("unknown offer", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: 9999}, "")
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})
}

func TestCreate_ConcurrentDealNumbersAreUnique(t *testing.T) {
	svc, store, _ := newService(t)
	const n = 8

	offers := make([]*models.Offer, n)
	merchants := make([]*models.Merchant, n)
	for i := range offers {
		merchants[i] = testutil.SeedMerchant(t, store.DB(), fmt.Sprintf("Merchant %d", i))
		offers[i] = testutil.SeedSelectedOffer(t, store.DB(), merchants[i].ID, "5000", "1.2", "0", 10)
	}

	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := svc.Create(context.Background(), CreateInput{MerchantID: merchants[i].ID, OfferID: offers[i].ID}, "")
			errs[i] = err
			if d != nil {
				numbers[i] = d.DealNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	prefix := repositories.DealNumberPrefix(time.Now().UTC().Year())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, strings.HasPrefix(numbers[i], prefix))
		assert.False(t, seen[numbers[i]], "duplicate deal number %s", numbers[i])
		seen[numbers[i]] = true
	}
}

func TestRecomputeBalance_FollowsPaymentHistory(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
	d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		addPayment(t, store, d.ID, "650", testutil.Date(2024, time.April, i), false)
	}
	addPayment(t, store, d.ID, "650", testutil.Date(2024, time.April, 9), true)

	d, err = svc.RecomputeBalance(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "3250.00", d.TotalPaid.StringFixed(2))
	assert.Equal(t, "9750.00", d.BalanceRemaining.StringFixed(2))
	assert.Equal(t, 15, d.PaymentsRemaining)
	require.NotNil(t, d.LastPaymentDate)
	assert.True(t, d.LastPaymentDate.Equal(testutil.Date(2024, time.April, 5)))
	assert.Equal(t, models.DealStatusActive, d.Status)

	final := addPayment(t, store, d.ID, "9750", testutil.Date(2024, time.April, 10), false)
	d, err = svc.RecomputeBalance(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, d.BalanceRemaining.IsZero())
	assert.Equal(t, models.DealStatusCompleted, d.Status)
	assert.NotNil(t, d.ActualCompletionDate)

	final.MarkDeleted("ops", time.Now().UTC())
	require.NoError(t, store.Payments.Update(final))
	d, err = svc.RecomputeBalance(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusActive, d.Status)
	assert.Nil(t, d.ActualCompletionDate)
}

func TestRecomputeBalance_KeepsRenewedStatus(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "1000", "1.2", "0", 2)
	d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
	require.NoError(t, err)

	d.Status = models.DealStatusRenewed
	require.NoError(t, store.Deals.Update(d))
	addPayment(t, store, d.ID, "1200", testutil.Date(2024, time.May, 1), false)

	d, err = svc.RecomputeBalance(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusRenewed, d.Status)
	assert.True(t, d.BalanceRemaining.IsZero())
}

func TestRecomputeBalance_KeepsManualCompletion(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
	d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
	require.NoError(t, err)

	// settled for less than the RTR
	addPayment(t, store, d.ID, "9000", testutil.Date(2024, time.April, 1), false)
	completed := models.DealStatusCompleted
	d, err = svc.Update(ctx, d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, d.ActualCompletionDate)

	d, err = svc.RecomputeBalance(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusCompleted, d.Status)
	assert.NotNil(t, d.ActualCompletionDate)
	assert.Equal(t, "4000.00", d.BalanceRemaining.StringFixed(2))
}

func TestRecomputeAll(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "1000", "1.5", "0", 10)
		d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
		require.NoError(t, err)
		addPayment(t, store, d.ID, "150", testutil.Date(2024, time.June, 3), false)
	}

	n, err := svc.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, d := range active {
		assert.Equal(t, "1350.00", d.BalanceRemaining.StringFixed(2))
		assert.Equal(t, 9, d.PaymentsRemaining)
	}
}

func TestUpdateAndCancel(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
	d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
	require.NoError(t, err)

	inCollections := true
	notes := "called twice"
	completed := models.DealStatusCompleted
	updated, err := svc.Update(ctx, d.ID, UpdateInput{
		Status:           &completed,
		InCollections:    &inCollections,
		CollectionsNotes: &notes,
		PaymentAmount:    testutil.DecPtr("700"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusCompleted, updated.Status)
	assert.NotNil(t, updated.ActualCompletionDate)
	assert.True(t, updated.InCollections)
	assert.Equal(t, "called twice", updated.CollectionsNotes)
	assert.Equal(t, "700.00", updated.PaymentAmount.StringFixed(2))

	other := testutil.SeedMerchant(t, store.DB(), "Other")
	account := seedAccount(t, store, other.ID)
	_, err = svc.Update(ctx, d.ID, UpdateInput{BankAccountID: &account.ID})
	assert.ErrorIs(t, err, apperrors.ErrBankAccountMismatch)

	bogus := "closed"
	_, err = svc.Update(ctx, d.ID, UpdateInput{Status: &bogus})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	cancelled, err := svc.Cancel(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusCancelled, cancelled.Status)

	got, err := svc.GetByNumber(ctx, d.DealNumber)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusCancelled, got.Status)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrDealNotFound)
}

func TestUpdate_StatusOwnedByNamedOperations(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()
	o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
	d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
	require.NoError(t, err)

	for _, status := range []string{models.DealStatusRenewed, models.DealStatusCancelled} {
		status := status
		_, err := svc.Update(ctx, d.ID, UpdateInput{Status: &status})
		assert.ErrorIs(t, err, apperrors.ErrInvalidDealTransition, status)
	}
	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusActive, got.Status)

	// a renewed deal only reopens through renewal reversal
	got.Status = models.DealStatusRenewed
	require.NoError(t, store.Deals.Update(got))
	active := models.DealStatusActive
	_, err = svc.Update(ctx, d.ID, UpdateInput{Status: &active})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDealTransition)
	_, err = svc.Cancel(ctx, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDealTransition)

	notes := "renewed last week"
	updated, err := svc.Update(ctx, d.ID, UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusRenewed, updated.Status)
	assert.Equal(t, notes, updated.Notes)
}

func TestSummary(t *testing.T) {
	svc, store, m := newService(t)
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalDeals)
	assert.True(t, empty.CompletionRate.IsZero())

	first := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "10000", "1.3", "0", 20)
	d1, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: first.ID}, "")
	require.NoError(t, err)
	second := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "20000", "1.5", "0", 20)
	d2, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: second.ID}, "")
	require.NoError(t, err)

	addPayment(t, store, d1.ID, "13000", testutil.Date(2024, time.July, 1), false)
	addPayment(t, store, d2.ID, "5000", testutil.Date(2024, time.July, 1), false)
	_, err = svc.RecomputeAll(ctx)
	require.NoError(t, err)

	s, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.TotalDeals)
	assert.Equal(t, int64(1), s.ByStatus[models.DealStatusActive])
	assert.Equal(t, int64(1), s.ByStatus[models.DealStatusCompleted])
	assert.Equal(t, int64(0), s.ByStatus[models.DealStatusRenewed])
	assert.Equal(t, "30000.00", s.TotalFunded.StringFixed(2))
	assert.Equal(t, "18000.00", s.TotalCollected.StringFixed(2))
	assert.Equal(t, "25000.00", s.TotalOutstanding.StringFixed(2))
	assert.Equal(t, "1.4000", s.AverageFactorRate.StringFixed(4))
	assert.Equal(t, "15000.00", s.AverageDealSize.StringFixed(2))
	assert.Equal(t, "50.00", s.CompletionRate.StringFixed(2))
}

func TestSummary_UsesCache(t *testing.T) {
	store := repositories.NewStore(testutil.NewDB(t))
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		cached := &PortfolioSummary{TotalDeals: 42}
		c := new(mockSummaryCache)
		c.On("Get", ctx).Return(cached, true, nil).Once()

		s, err := NewService(store, c, nil).Summary(ctx)
		require.NoError(t, err)
		assert.Same(t, cached, s)
		c.AssertExpectations(t)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("miss stores result", func(t *testing.T) {
		c := new(mockSummaryCache)
		c.On("Get", ctx).Return(nil, false, nil).Once()
		c.On("Set", ctx, mock.AnythingOfType("*deal.PortfolioSummary")).Return(nil).Once()

		s, err := NewService(store, c, nil).Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), s.TotalDeals)
		c.AssertExpectations(t)
	})

	t.Run("writes invalidate", func(t *testing.T) {
		m := testutil.SeedMerchant(t, store.DB(), "Cached")
		o := testutil.SeedSelectedOffer(t, store.DB(), m.ID, "1000", "1.2", "0", 5)
		c := new(mockSummaryCache)
		c.On("Invalidate", ctx).Return(nil).Twice()

		svc := NewService(store, c, nil)
		d, err := svc.Create(ctx, CreateInput{MerchantID: m.ID, OfferID: o.ID}, "")
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, d.ID)
		require.NoError(t, err)
		c.AssertExpectations(t)
	})
}
