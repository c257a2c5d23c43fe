package principal

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/testutil"
	"mcacrm/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, cfg Config) (Service, *repositories.Store) {
	t.Helper()
	sealer, err := utils.NewSSNSealer("")
	require.NoError(t, err)
	store := repositories.NewStore(testutil.NewDB(t))
	return NewService(store, sealer, cfg, nil), store
}

func owner(first string, pct string) CreateInput {
	return CreateInput{
		FirstName:           first,
		LastName:            "Owner",
		OwnershipPercentage: testutil.DecPtr(pct),
	}
}

func boolPtr(b bool) *bool { return &b }

func TestCreate_OwnershipBound(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	_, err := svc.Create(ctx, m.ID, owner("Ann", "60"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, m.ID, owner("Bob", "40"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, m.ID, owner("Cid", "1"))
	require.ErrorIs(t, err, apperrors.ErrOwnershipExceeded)
	assert.Contains(t, err.Error(), "101.00%")

	total, err := store.Principals.SumOwnership(m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "100.00", total.StringFixed(2))
}

func TestCreate_DefaultsToFullOwnershipAndGuarantor(t *testing.T) {
	svc, store := newService(t, Config{})
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	p, err := svc.Create(context.Background(), m.ID, CreateInput{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, "100.00", p.OwnershipPercentage.StringFixed(2))
	assert.True(t, p.IsGuarantor)
}

func TestUpdate_ExcludesSelfFromOwnershipSum(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	ann, err := svc.Create(ctx, m.ID, owner("Ann", "60"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, m.ID, owner("Bob", "30"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ann.ID, UpdateInput{OwnershipPercentage: testutil.DecPtr("70")})
	require.NoError(t, err)
	assert.Equal(t, "70.00", updated.OwnershipPercentage.StringFixed(2))

	_, err = svc.Update(ctx, ann.ID, UpdateInput{OwnershipPercentage: testutil.DecPtr("71")})
	assert.ErrorIs(t, err, apperrors.ErrOwnershipExceeded)

	reloaded, err := svc.Get(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "70.00", reloaded.OwnershipPercentage.StringFixed(2))
}

func TestCreate_ConcurrentOwnershipNeverExceeds100(t *testing.T) {
	svc, store := newService(t, Config{})
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Create(context.Background(), m.ID, owner("Ann", "30"))
		}()
	}
	wg.Wait()

	total, err := store.Principals.SumOwnership(m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "90.00", total.StringFixed(2))
}

func TestPrimaryContact_SingleAcrossUpdates(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	contact := func(first string) CreateInput {
		in := owner(first, "20")
		in.Email = first + "@acme.com"
		in.Phone = "2125550100"
		in.IsPrimaryContact = true
		return in
	}

	ann, err := svc.Create(ctx, m.ID, contact("ann"))
	require.NoError(t, err)
	bob, err := svc.Create(ctx, m.ID, contact("bob"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, ann.ID, UpdateInput{IsPrimaryContact: boolPtr(true)})
	require.NoError(t, err)

	principals, err := svc.ListByMerchant(ctx, m.ID, false)
	require.NoError(t, err)
	primaries := 0
	for _, p := range principals {
		if p.IsPrimaryContact {
			primaries++
			assert.Equal(t, ann.ID, p.ID)
		}
	}
	assert.Equal(t, 1, primaries)
	assert.NotEqual(t, ann.ID, bob.ID)
}

func TestPrimaryContact_ConcurrentSetPrimary(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	var ids []uint
	for _, first := range []string{"ann", "bob", "cid", "dee"} {
		in := owner(first, "20")
		in.Email = first + "@acme.com"
		in.Phone = "2125550100"
		p, err := svc.Create(ctx, m.ID, in)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.Update(ctx, id, UpdateInput{IsPrimaryContact: boolPtr(true)})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	principals, err := svc.ListByMerchant(ctx, m.ID, false)
	require.NoError(t, err)
	primaries := 0
	for _, p := range principals {
		if p.IsPrimaryContact {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestPrimaryContact_RequiresEmailAndPhone(t *testing.T) {
	svc, store := newService(t, Config{})
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	in := owner("Ann", "50")
	in.IsPrimaryContact = true
	_, err := svc.Create(context.Background(), m.ID, in)
	require.Error(t, err)
	de, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, de.Kind)
	assert.Len(t, de.Fields, 2)
}

func TestSSN_ScopedPerMerchant(t *testing.T) {
	svc, store := newService(t, Config{SSNDuplicateCheck: true})
	ctx := context.Background()
	acme := testutil.SeedMerchant(t, store.DB(), "Acme")
	bolt := testutil.SeedMerchant(t, store.DB(), "Bolt")

	in := owner("Ann", "50")
	in.SSN = "123-45-6789"

	p, err := svc.Create(ctx, acme.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "***-**-6789", p.MaskedSSN())
	assert.NotContains(t, string(p.SSNCiphertext), "6789")

	in.SSN = "123456789"
	_, err = svc.Create(ctx, acme.ID, in)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateSSN)

	_, err = svc.Create(ctx, bolt.ID, in)
	require.NoError(t, err)

	found, err := svc.SearchBySSN(ctx, "123 45 6789")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSSN_DuplicateAllowedWhenCheckDisabled(t *testing.T) {
	svc, store := newService(t, Config{SSNDuplicateCheck: false})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	in := owner("Ann", "50")
	in.SSN = "123-45-6789"
	_, err := svc.Create(ctx, m.ID, in)
	require.NoError(t, err)
	_, err = svc.Create(ctx, m.ID, in)
	assert.NoError(t, err)
}

func TestCreate_UnderagePrincipalRejected(t *testing.T) {
	svc, store := newService(t, Config{})
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	dob := models.DateOf(time.Now().AddDate(-16, 0, 0))
	in := owner("Kid", "10")
	in.DateOfBirth = &dob
	_, err := svc.Create(context.Background(), m.ID, in)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeleteRestore_RechecksOwnership(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	ann, err := svc.Create(ctx, m.ID, owner("Ann", "60"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ann.ID, "ops"))

	bob, err := svc.Create(ctx, m.ID, owner("Bob", "60"))
	require.NoError(t, err)

	_, err = svc.Restore(ctx, ann.ID)
	assert.ErrorIs(t, err, apperrors.ErrOwnershipExceeded)

	require.NoError(t, svc.Delete(ctx, bob.ID, "ops"))
	restored, err := svc.Restore(ctx, ann.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedBy)
}

func TestOwnershipSummary(t *testing.T) {
	svc, store := newService(t, Config{})
	ctx := context.Background()
	m := testutil.SeedMerchant(t, store.DB(), "Acme")

	primary := owner("Ann", "75")
	primary.Email = "ann@acme.com"
	primary.Phone = "2125550100"
	primary.IsPrimaryContact = true
	_, err := svc.Create(ctx, m.ID, primary)
	require.NoError(t, err)

	silent := owner("Bob", "25")
	silent.IsGuarantor = boolPtr(false)
	_, err = svc.Create(ctx, m.ID, silent)
	require.NoError(t, err)

	summary, err := svc.OwnershipSummary(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Principals, 2)
	assert.Equal(t, "100.00", summary.TotalOwnership.StringFixed(2))
	assert.True(t, summary.FullyAllocated)
	assert.True(t, summary.Unallocated.IsZero())
	assert.Equal(t, 1, summary.GuarantorCount)
	require.NotNil(t, summary.PrimaryContact)
	assert.Equal(t, "Ann Owner", summary.PrimaryContact.Name)
}

func TestCreate_UnknownMerchant(t *testing.T) {
	svc, _ := newService(t, Config{})
	_, err := svc.Create(context.Background(), 999, owner("Ann", "10"))
	assert.ErrorIs(t, err, apperrors.ErrMerchantNotFound)
}
