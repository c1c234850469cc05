package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"insureease/internal/application/models"
	"insureease/pkg/platform/sentinel"
)

// Postgres persists applications in PostgreSQL. Options are stored as a JSONB
// column; everything else maps to plain columns (see migrations/0001_applications.sql).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) Save(ctx context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}
	options, err := json.Marshal(app.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	query := `
		INSERT INTO applications (
			id, first_name, last_name, email, phone, date_of_birth,
			address, city, postal_code, id_type, id_number,
			account_holder, bank_name, account_number, branch_code, account_type,
			package_type, coverage_amount, options, status, application_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = s.db.ExecContext(ctx, query,
		app.ID, app.FirstName, app.LastName, app.Email, app.Phone, app.DateOfBirth,
		app.Address, app.City, app.PostalCode, string(app.IDType), app.IDNumber,
		app.AccountHolder, app.BankName, app.AccountNumber, app.BranchCode, string(app.AccountType),
		string(app.PackageType), app.CoverageAmount, options, string(app.Status), app.Date,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (*models.Application, error) {
	return scanApplication(s.db.QueryRowContext(ctx, selectQuery+` WHERE id = $1`, id))
}

func (s *Postgres) Update(ctx context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}
	rows, err := updateApplication(ctx, s.db, app)
	if err != nil {
		return err
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const updateQuery = `
	UPDATE applications SET
		first_name = $2, last_name = $3, email = $4, phone = $5, date_of_birth = $6,
		address = $7, city = $8, postal_code = $9, id_type = $10, id_number = $11,
		account_holder = $12, bank_name = $13, account_number = $14, branch_code = $15,
		account_type = $16, package_type = $17, coverage_amount = $18, options = $19,
		status = $20
	WHERE id = $1
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateApplication writes every mutable column so callers may change any
// field, not just the status.
func updateApplication(ctx context.Context, ex execer, app *models.Application) (int64, error) {
	options, err := json.Marshal(app.Options)
	if err != nil {
		return 0, fmt.Errorf("marshal options: %w", err)
	}
	res, err := ex.ExecContext(ctx, updateQuery,
		app.ID, app.FirstName, app.LastName, app.Email, app.Phone, app.DateOfBirth,
		app.Address, app.City, app.PostalCode, string(app.IDType), app.IDNumber,
		app.AccountHolder, app.BankName, app.AccountNumber, app.BranchCode, string(app.AccountType),
		string(app.PackageType), app.CoverageAmount, options, string(app.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("update application: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update application: %w", err)
	}
	return rows, nil
}

// Execute locks the row with SELECT ... FOR UPDATE so validation and mutation
// observe a consistent record, then persists inside the same transaction.
func (s *Postgres) Execute(ctx context.Context, id string,
	validate func(*models.Application) error,
	mutate func(*models.Application)) (*models.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	app, err := scanApplication(tx.QueryRowContext(ctx, selectQuery+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := validate(app); err != nil {
		return nil, err
	}
	mutate(app)
	if err := app.Validate(); err != nil {
		return nil, err
	}

	if _, err := updateApplication(ctx, tx, app); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return app, nil
}

const selectQuery = `
	SELECT id, first_name, last_name, email, phone, date_of_birth,
		address, city, postal_code, id_type, id_number,
		account_holder, bank_name, account_number, branch_code, account_type,
		package_type, coverage_amount, options, status, application_date
	FROM applications`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app     models.Application
		options []byte
		idType, accountType, packageType, status string
		date    time.Time
	)
	err := row.Scan(
		&app.ID, &app.FirstName, &app.LastName, &app.Email, &app.Phone, &app.DateOfBirth,
		&app.Address, &app.City, &app.PostalCode, &idType, &app.IDNumber,
		&app.AccountHolder, &app.BankName, &app.AccountNumber, &app.BranchCode, &accountType,
		&packageType, &app.CoverageAmount, &options, &status, &date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &app.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	app.IDType = models.IDType(idType)
	app.AccountType = models.AccountType(accountType)
	app.PackageType = models.PackageType(packageType)
	app.Status = models.Status(status)
	app.Date = date
	return &app, nil
}
