package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/cryptox"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
)

const columns = `id, email, first_name, last_name, password, password_scheme, phone, created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	var (
		acc       models.Account
		createdAt string
		updatedAt sql.NullString
	)
	if err := s.Scan(&acc.ID, &acc.Email, &acc.FirstName, &acc.LastName, &acc.Password, &acc.PasswordScheme, &acc.Phone, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	acc.CreatedAt = t

	if updatedAt.Valid {
		u, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad updated_at %q: %w", updatedAt.String, err)
		}
		acc.UpdatedAt = &u
	}
	return &acc, nil
}

func schemeOrPlain(s string) string {
	if s == "" {
		return cryptox.SchemePlain
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func (r *SQLiteRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM accounts WHERE email = ?`, email)
	acc, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", email, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE email = ?`, email).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, acc *models.Account) error {
	query := `INSERT INTO accounts (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		acc.ID, acc.Email, acc.FirstName, acc.LastName, acc.Password, schemeOrPlain(acc.PasswordScheme), acc.Phone,
		formatTime(acc.CreatedAt), nullTime(acc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, email string, acc *models.Account) error {
	query := `UPDATE accounts
		SET email = ?, first_name = ?, last_name = ?, password = ?, password_scheme = ?, phone = ?, updated_at = ?
		WHERE email = ?`
	result, err := r.db.ExecContext(ctx, query,
		acc.Email, acc.FirstName, acc.LastName, acc.Password, schemeOrPlain(acc.PasswordScheme), acc.Phone,
		nullTime(acc.UpdatedAt), email)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %q: %w", email, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM accounts ORDER BY created_at, email`)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result = append(result, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
