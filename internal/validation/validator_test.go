package validation

import (
	"testing"
	"time"

	apperrors "mcacrm/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type principalInput struct {
	FirstName   string           `json:"first_name" validate:"required,max=100,personname"`
	SSN         string           `json:"ssn" validate:"omitempty,ssn"`
	DateOfBirth *time.Time       `json:"date_of_birth" validate:"omitempty,adult"`
	State       string           `json:"state" validate:"omitempty,usstate"`
	Zip         string           `json:"zip" validate:"omitempty,uszip"`
	Email       string           `json:"email" validate:"omitempty,crmemail,nodisposable"`
	Ownership   *decimal.Decimal `json:"ownership_percentage" validate:"omitempty,gte=0,lte=100"`
	Submitted   *time.Time       `json:"submitted_date" validate:"omitempty,notfuture,since2000"`
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	de, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.KindValidation, de.Kind)
	names := make([]string, 0, len(de.Fields))
	for _, f := range de.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestStruct_Valid(t *testing.T) {
	dob := time.Now().AddDate(-40, 0, 0)
	own := decimal.RequireFromString("55.5")
	in := principalInput{
		FirstName:   "Mary-Ann O'Neil",
		SSN:         "123-45-6789",
		DateOfBirth: &dob,
		State:       "ny",
		Zip:         "10001-1234",
		Email:       "mary@example.com",
		Ownership:   &own,
	}
	assert.NoError(t, Struct(in))
}

func TestStruct_FieldErrors(t *testing.T) {
	dob := time.Now().AddDate(-17, 0, 0)
	future := time.Now().AddDate(0, 0, 3)
	own := decimal.RequireFromString("100.5")
	in := principalInput{
		FirstName:   "R2D2",
		SSN:         "666-12-3456",
		DateOfBirth: &dob,
		State:       "XX",
		Zip:         "1234",
		Email:       "someone@mailinator.com",
		Ownership:   &own,
		Submitted:   &future,
	}

	err := Struct(in)
	assert.ElementsMatch(t, []string{
		"first_name", "ssn", "date_of_birth", "state", "zip", "email", "ownership_percentage", "submitted_date",
	}, fieldNames(t, err))
}

func TestSSNRules(t *testing.T) {
	type s struct {
		SSN string `json:"ssn" validate:"ssn"`
	}
	for _, bad := range []string{"000-12-3456", "900-12-3456", "123-00-4567", "123-45-0000", "12345678"} {
		assert.Error(t, Struct(s{SSN: bad}), bad)
	}
	assert.NoError(t, Struct(s{SSN: "123456789"}))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "123-45-6789", NormalizeSSN("123 45 6789"))
	assert.Equal(t, "12-3456789", NormalizeFEIN("123456789"))
	assert.Equal(t, "(555) 123-4567", NormalizeUSPhone("1-555-123-4567"))
	assert.Equal(t, "+15551234567", NormalizeE164("555.123.4567"))
	assert.Equal(t, "10001-1234", NormalizeZip("100011234"))
	assert.Equal(t, "NY", NormalizeState(" ny "))
	assert.Equal(t, "a@b.com", NormalizeEmail(" A@B.com "))
	assert.Equal(t, "Jane Doe", CleanSpaces("  Jane   Doe "))
}

func TestAgeOn(t *testing.T) {
	dob := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, AgeOn(dob, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeOn(dob, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestValidator_CrossField(t *testing.T) {
	v := New()
	v.Required("home_city", " ")
	v.OneOf("account_type", "money-market", []string{"checking", "savings"})
	v.NotFuture("date", time.Now().AddDate(0, 1, 0))

	err := v.Err("invalid principal")
	assert.ElementsMatch(t, []string{"home_city", "account_type", "date"}, fieldNames(t, err))
	assert.NoError(t, New().Err("ok"))
}
