package merchant

import (
	"context"
	"testing"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, cfg Config) (Service, *repositories.Store) {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t))
	return NewService(store, cfg, nil), store
}

func strPtr(s string) *string { return &s }

func TestCreate_NormalizesFields(t *testing.T) {
	svc, _ := newService(t, Config{})
	submitted := models.DateOf(time.Now().AddDate(0, -1, 0))

	m, err := svc.Create(context.Background(), CreateInput{
		CompanyName:   "  Acme   Bakery ",
		State:         "ny",
		Zip:           "100011234",
		FEIN:          "123456789",
		Phone:         "1-212-555-0100",
		Email:         " Owner@Acme.COM ",
		ContactPerson: "Jane Doe",
		EntityType:    "LLC",
		SubmittedDate: &submitted,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Bakery", m.CompanyName)
	assert.Equal(t, "NY", m.State)
	assert.Equal(t, "10001-1234", m.Zip)
	assert.Equal(t, "12-3456789", *m.FEIN)
	assert.Equal(t, "(212) 555-0100", m.Phone)
	assert.Equal(t, "owner@acme.com", m.Email)
	assert.Equal(t, models.MerchantStatusLead, m.Status)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc, _ := newService(t, Config{})
	future := models.DateOf(time.Now().AddDate(0, 0, 5))

	_, err := svc.Create(context.Background(), CreateInput{
		CompanyName:   "Acme",
		State:         "ZZ",
		Email:         "owner@mailinator.com",
		SubmittedDate: &future,
	})
	require.Error(t, err)
	de, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, de.Kind)

	fields := map[string]bool{}
	for _, f := range de.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["state"])
	assert.True(t, fields["email"])
	assert.True(t, fields["submitted_date"])
}

func TestCreate_DuplicateFEIN(t *testing.T) {
	tests := []struct {
		name  string
		check bool
	}{
		{name: "application check enabled", check: true},
		{name: "unique index only", check: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, Config{FEINDuplicateCheck: tt.check})
			ctx := context.Background()

			_, err := svc.Create(ctx, CreateInput{CompanyName: "First", FEIN: "12-3456789"})
			require.NoError(t, err)

			_, err = svc.Create(ctx, CreateInput{CompanyName: "Second", FEIN: "123456789"})
			assert.ErrorIs(t, err, apperrors.ErrDuplicateFEIN)
			assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		})
	}
}

func TestCreate_NullFEINsDoNotCollide(t *testing.T) {
	svc, _ := newService(t, Config{FEINDuplicateCheck: true})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{CompanyName: "First"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{CompanyName: "Second"})
	assert.NoError(t, err)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _ := newService(t, Config{})
	ctx := context.Background()
	m, err := svc.Create(ctx, CreateInput{CompanyName: "Acme", City: "Albany", FEIN: "12-3456789"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, m.ID, UpdateInput{
		Status: strPtr(models.MerchantStatusApproved),
		FEIN:   strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Albany", updated.City)
	assert.Equal(t, models.MerchantStatusApproved, updated.Status)
	assert.Nil(t, updated.FEIN)

	_, err = svc.Update(ctx, m.ID, UpdateInput{Status: strPtr("asleep")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeleteRestore_RoundTrip(t *testing.T) {
	svc, _ := newService(t, Config{})
	ctx := context.Background()
	m, err := svc.Create(ctx, CreateInput{CompanyName: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID, "ops"))

	_, err = svc.Get(ctx, m.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrMerchantNotFound)
	deleted, err := svc.Get(ctx, m.ID, true)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, "ops", *deleted.DeletedBy)

	list, total, err := svc.List(ctx, repositories.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	restored, err := svc.Restore(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
	assert.Nil(t, restored.DeletedBy)

	list, _, err = svc.List(ctx, repositories.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStats(t *testing.T) {
	svc, _ := newService(t, Config{})
	ctx := context.Background()
	for _, status := range []string{"lead", "lead", "funded"} {
		_, err := svc.Create(ctx, CreateInput{CompanyName: "Acme " + status, Status: status})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[models.MerchantStatusLead])
	assert.Equal(t, int64(1), stats.ByStatus[models.MerchantStatusFunded])
	assert.Equal(t, int64(0), stats.ByStatus[models.MerchantStatusClosed])
}
