package models

import (
	dErrors "insureease/pkg/domain-errors"
)

// Submission is the untyped front-end form payload. Keys follow the form's
// camelCase naming; values are free-form except additionalOptions, which is a
// sequence of option ids.
type Submission map[string]any

// Category translations. Unknown or absent source values fall back to the
// category default; additionalOptions is the exception — unrecognized ids are
// dropped from the output entirely.
var (
	idTypeMap = map[string]IDType{
		"national_id":     IDTypeNationalID,
		"passport":        IDTypePassport,
		"drivers_license": IDTypeDriversLicense,
	}

	accountTypeMap = map[string]AccountType{
		"savings":  AccountTypeSavings,
		"checking": AccountTypeChecking,
		"current":  AccountTypeCurrent,
	}

	packageTypeMap = map[string]PackageType{
		"basic":    PackageTypeBasic,
		"standard": PackageTypeStandard,
		"premium":  PackageTypePremium,
	}

	coverageAmountMap = map[string]string{
		"coverage_50k":  "$50,000",
		"coverage_100k": "$100,000",
		"coverage_250k": "$250,000",
		"coverage_500k": "$500,000",
		"coverage_1m":   "$1,000,000",
	}

	optionNameMap = map[string]string{
		"critical_illness":  "Critical Illness Cover",
		"disability":        "Disability Cover",
		"funeral":           "Funeral Cover",
		"income_protection": "Income Protection",
	}

	// optionPremiumMap shares its keys with optionNameMap, which makes the
	// fallback premium below unreachable today. Do not merge the two tables:
	// the fallback is part of the interface and product has not confirmed
	// the tables must stay in lockstep.
	optionPremiumMap = map[string]int{
		"critical_illness":  15,
		"disability":        12,
		"funeral":           8,
		"income_protection": 20,
	}
)

const fallbackMonthlyPremium = 10

// FromSubmission translates a raw form payload into an Application. It only
// normalizes and maps fields; validation and persistence belong to the caller.
func FromSubmission(sub Submission) (*Application, error) {
	if len(sub) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "No data provided")
	}

	app := &Application{
		FirstName:   str(sub, "firstName"),
		LastName:    str(sub, "lastName"),
		Email:       str(sub, "email"),
		Phone:       str(sub, "phone"),
		DateOfBirth: str(sub, "dateOfBirth"),
		Address:     str(sub, "address"),
		City:        str(sub, "city"),
		PostalCode:  str(sub, "postalCode"),

		IDNumber:      str(sub, "idNumber"),
		AccountHolder: str(sub, "accountHolder"),
		BankName:      str(sub, "bankName"),
		AccountNumber: str(sub, "accountNumber"),
		BranchCode:    str(sub, "branchCode"),
	}

	app.IDType = IDTypeNationalID
	if v, ok := idTypeMap[str(sub, "idType")]; ok {
		app.IDType = v
	}

	app.AccountType = AccountTypeSavings
	if v, ok := accountTypeMap[str(sub, "accountType")]; ok {
		app.AccountType = v
	}

	app.PackageType = PackageTypeBasic
	if v, ok := packageTypeMap[str(sub, "packageType")]; ok {
		app.PackageType = v
	}

	app.CoverageAmount = "$50,000"
	if v, ok := coverageAmountMap[str(sub, "coverageAmount")]; ok {
		app.CoverageAmount = v
	}

	for _, id := range strSlice(sub, "additionalOptions") {
		name, ok := optionNameMap[id]
		if !ok {
			continue
		}
		premium, ok := optionPremiumMap[id]
		if !ok {
			premium = fallbackMonthlyPremium
		}
		app.Options = append(app.Options, Option{Name: name, MonthlyPremium: premium})
	}

	return app, nil
}

func str(sub Submission, key string) string {
	if v, ok := sub[key].(string); ok {
		return v
	}
	return ""
}

// strSlice tolerates both []string and the []any produced by JSON decoding.
func strSlice(sub Submission, key string) []string {
	switch v := sub[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
