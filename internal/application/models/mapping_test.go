package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "insureease/pkg/domain-errors"
)

func TestFromSubmissionRejectsEmptyPayload(t *testing.T) {
	for _, sub := range []Submission{nil, {}} {
		_, err := FromSubmission(sub)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Equal(t, "No data provided", dErrors.MessageOf(err))
	}
}

func TestFromSubmissionMapsPersonalFields(t *testing.T) {
	app, err := FromSubmission(Submission{
		"firstName":   "Lerato",
		"lastName":    "Dlamini",
		"email":       "lerato@example.com",
		"phone":       "+27115551234",
		"dateOfBirth": "1985-03-12",
		"address":     "12 Main Rd",
		"city":        "Johannesburg",
		"postalCode":  "2000",
		"idNumber":    "8503125009088",
	})
	require.NoError(t, err)

	assert.Equal(t, "Lerato", app.FirstName)
	assert.Equal(t, "Dlamini", app.LastName)
	assert.Equal(t, "lerato@example.com", app.Email)
	assert.Equal(t, "+27115551234", app.Phone)
	assert.Equal(t, "1985-03-12", app.DateOfBirth)
	assert.Equal(t, "12 Main Rd", app.Address)
	assert.Equal(t, "Johannesburg", app.City)
	assert.Equal(t, "2000", app.PostalCode)
	assert.Equal(t, "8503125009088", app.IDNumber)
}

func TestFromSubmissionCategoryTranslations(t *testing.T) {
	t.Run("known values map to labels", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"idType":         "passport",
			"accountType":    "checking",
			"packageType":    "premium",
			"coverageAmount": "coverage_1m",
		})
		require.NoError(t, err)
		assert.Equal(t, IDTypePassport, app.IDType)
		assert.Equal(t, AccountTypeChecking, app.AccountType)
		assert.Equal(t, PackageTypePremium, app.PackageType)
		assert.Equal(t, "$1,000,000", app.CoverageAmount)
	})

	t.Run("unknown values fall back to defaults", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"idType":         "carrier_pigeon",
			"accountType":    "offshore",
			"packageType":    "platinum",
			"coverageAmount": "coverage_10",
		})
		require.NoError(t, err)
		assert.Equal(t, IDTypeNationalID, app.IDType)
		assert.Equal(t, AccountTypeSavings, app.AccountType)
		assert.Equal(t, PackageTypeBasic, app.PackageType)
		assert.Equal(t, "$50,000", app.CoverageAmount)
	})

	t.Run("absent values fall back to defaults", func(t *testing.T) {
		app, err := FromSubmission(Submission{"firstName": "x"})
		require.NoError(t, err)
		assert.Equal(t, IDTypeNationalID, app.IDType)
		assert.Equal(t, AccountTypeSavings, app.AccountType)
		assert.Equal(t, PackageTypeBasic, app.PackageType)
		assert.Equal(t, "$50,000", app.CoverageAmount)
	})
}

func TestFromSubmissionOptions(t *testing.T) {
	t.Run("maps names and premiums", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"additionalOptions": []string{"critical_illness", "disability", "funeral", "income_protection"},
		})
		require.NoError(t, err)
		require.Len(t, app.Options, 4)
		assert.Equal(t, Option{Name: "Critical Illness Cover", MonthlyPremium: 15}, app.Options[0])
		assert.Equal(t, Option{Name: "Disability Cover", MonthlyPremium: 12}, app.Options[1])
		assert.Equal(t, Option{Name: "Funeral Cover", MonthlyPremium: 8}, app.Options[2])
		assert.Equal(t, Option{Name: "Income Protection", MonthlyPremium: 20}, app.Options[3])
	})

	t.Run("drops unrecognized option ids", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"additionalOptions": []string{"funeral", "pet_cover", "disability"},
		})
		require.NoError(t, err)
		require.Len(t, app.Options, 2)
		assert.Equal(t, "Funeral Cover", app.Options[0].Name)
		assert.Equal(t, "Disability Cover", app.Options[1].Name)
	})

	t.Run("preserves duplicates in order", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"additionalOptions": []string{"funeral", "funeral"},
		})
		require.NoError(t, err)
		require.Len(t, app.Options, 2)
		assert.Equal(t, app.Options[0], app.Options[1])
	})

	t.Run("accepts the []any shape produced by JSON decoding", func(t *testing.T) {
		app, err := FromSubmission(Submission{
			"additionalOptions": []any{"critical_illness", 42, "funeral"},
		})
		require.NoError(t, err)
		require.Len(t, app.Options, 2)
		assert.Equal(t, "Critical Illness Cover", app.Options[0].Name)
		assert.Equal(t, "Funeral Cover", app.Options[1].Name)
	})
}

func TestFromSubmissionIgnoresNonStringValues(t *testing.T) {
	app, err := FromSubmission(Submission{
		"firstName": 123,
		"email":     true,
	})
	require.NoError(t, err)
	assert.Empty(t, app.FirstName)
	assert.Empty(t, app.Email)
}
