package models

import (
	"regexp"
	"time"

	dErrors "insureease/pkg/domain-errors"
)

// IDType classifies the identification document supplied by the applicant.
// Invariant: the value must be one of the supported labels; unmapped input is
// translated to the default by FromSubmission, never stored raw.
type IDType string

const (
	IDTypeNationalID     IDType = "National ID"
	IDTypePassport       IDType = "Passport"
	IDTypeDriversLicense IDType = "Driver's License"
)

// AccountType classifies the applicant's bank account.
type AccountType string

const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
	AccountTypeCurrent  AccountType = "Current"
)

// PackageType names the selected insurance package.
type PackageType string

const (
	PackageTypeBasic    PackageType = "Basic Coverage"
	PackageTypeStandard PackageType = "Standard Coverage"
	PackageTypePremium  PackageType = "Premium Coverage"
)

// Status tracks the application lifecycle.
// Transitions: Pending → Submitted only; the submission edge is one-way and
// fires the applicant notification exactly once.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusSubmitted Status = "Submitted"
)

// Option is one supplementary coverage item chosen by the applicant.
// Options are an ordered sequence: duplicates submitted by the caller are
// preserved, not collapsed.
type Option struct {
	Name           string `json:"option_name"`
	MonthlyPremium int    `json:"monthly_premium"`
}

// Application is the aggregate root for one insurance submission.
//
// Invariants:
//   - IDNumber length ≥ 6 for every IDType
//   - AccountNumber is all-digit and length ≥ 8
//   - Email matches a basic local@domain.tld shape
//   - Enumerated fields hold a known label or the documented default
//   - Options contain only recognized names; each premium is positive
//   - Date is set once at creation and immutable thereafter
//
// Validate runs before every save (create and update), enforced by the stores,
// so a record never becomes durable while violating a rule above.
type Application struct {
	ID string `json:"application_id"`

	// Personal information
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`

	// Identification
	IDType   IDType `json:"id_type"`
	IDNumber string `json:"id_number"`

	// Banking details
	AccountHolder string      `json:"account_holder"`
	BankName      string      `json:"bank_name"`
	AccountNumber string      `json:"account_number"`
	BranchCode    string      `json:"branch_code"`
	AccountType   AccountType `json:"account_type"`

	// Package selection
	PackageType    PackageType `json:"package_type"`
	CoverageAmount string      `json:"coverage_amount"`
	Options        []Option    `json:"additional_options"`

	Status Status    `json:"application_status"`
	Date   time.Time `json:"application_date"`
}

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// Validate checks structural correctness of the record. The first failing rule
// aborts; the returned error carries CodeInvalidInput and a field-specific
// message suitable for display.
func (a *Application) Validate() error {
	if err := a.validateEmail(); err != nil {
		return err
	}
	if err := a.validateIDNumber(); err != nil {
		return err
	}
	return a.validateAccountNumber()
}

func (a *Application) validateEmail() error {
	if !emailPattern.MatchString(a.Email) {
		return dErrors.New(dErrors.CodeInvalidInput, "Please enter a valid email address")
	}
	return nil
}

// validateIDNumber applies the same minimum length to every ID type. The rule
// is uniform on purpose; the message stays per-type so the applicant sees
// which document failed.
func (a *Application) validateIDNumber() error {
	switch a.IDType {
	case IDTypeNationalID:
		if len(a.IDNumber) < 6 {
			return dErrors.New(dErrors.CodeInvalidInput, "National ID number must be at least 6 characters")
		}
	case IDTypePassport:
		if len(a.IDNumber) < 6 {
			return dErrors.New(dErrors.CodeInvalidInput, "Passport number must be at least 6 characters")
		}
	case IDTypeDriversLicense:
		if len(a.IDNumber) < 6 {
			return dErrors.New(dErrors.CodeInvalidInput, "Driver's License number must be at least 6 characters")
		}
	}
	return nil
}

func (a *Application) validateAccountNumber() error {
	if a.AccountNumber == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "Account number must contain only digits")
	}
	for _, r := range a.AccountNumber {
		if r < '0' || r > '9' {
			return dErrors.New(dErrors.CodeInvalidInput, "Account number must contain only digits")
		}
	}
	if len(a.AccountNumber) < 8 {
		return dErrors.New(dErrors.CodeInvalidInput, "Account number must be at least 8 digits")
	}
	return nil
}

// CanSubmit reports whether the record may take the submission transition.
func (a *Application) CanSubmit() error {
	if a.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict, "application has already been submitted")
	}
	return nil
}

// ApplySubmission moves the record to its terminal Submitted status.
func (a *Application) ApplySubmission() {
	a.Status = StatusSubmitted
}

// ApplicantName composes the display name used in status projections and
// notification emails.
func (a *Application) ApplicantName() string {
	return a.FirstName + " " + a.LastName
}
