// Package services contains application services for the gophprofile client.
// This file defines the credential store: registration, login, logout,
// profile edits and both password flows over the accounts mapping and the
// session slots.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/cryptox"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 6

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// ProfileUpdate carries a profile edit. Nil fields keep their stored value.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// CredentialStore is the single source of truth for accounts and the session.
// Every mutation runs in one transaction, so a failed operation leaves both
// the mapping and the session slots as they were.
type CredentialStore struct {
	db     *sql.DB
	logger logging.Logger
	hasher cryptox.Hasher
	now    func() time.Time
}

// Option customizes a CredentialStore.
type Option func(*CredentialStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CredentialStore) { s.now = now }
}

// NewCredentialStore constructs a CredentialStore bound to db.
func NewCredentialStore(db *sql.DB, logger logging.Logger, hasher cryptox.Hasher, opts ...Option) *CredentialStore {
	s := &CredentialStore{
		db:     db,
		logger: logger.With("component", "credentials"),
		hasher: hasher,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func checkNewPassword(field, password, confirm string, mismatchMsg, shortMsg string) error {
	if password != confirm {
		return common.Validation("confirmPassword", mismatchMsg)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return common.Validation(field, shortMsg)
	}
	return nil
}

func (r RegisterRequest) validate() error {
	switch {
	case r.FirstName == "":
		return common.Validation("firstName", "First name is required")
	case r.LastName == "":
		return common.Validation("lastName", "Last name is required")
	case r.Email == "":
		return common.Validation("email", "Email is required")
	case r.Password == "":
		return common.Validation("password", "Password is required")
	}
	return checkNewPassword("password", r.Password, r.ConfirmPassword,
		"Passwords do not match", "Password must be at least 6 characters long")
}

func openSession(ctx context.Context, slots localstore.Repository, email string) error {
	if err := slots.SetItem(ctx, localstore.KeyActiveEmail, email); err != nil {
		return err
	}
	return slots.SetItem(ctx, localstore.KeyAuthenticated, localstore.AuthenticatedValue)
}

// current resolves the signed-in account inside tx.
func current(ctx context.Context, tx dbx.DBTX) (*models.Account, error) {
	slots := localstore.NewSQLiteRepository(tx)

	flag, _, err := slots.GetItem(ctx, localstore.KeyAuthenticated)
	if err != nil {
		return nil, err
	}
	email, ok, err := slots.GetItem(ctx, localstore.KeyActiveEmail)
	if err != nil {
		return nil, err
	}
	if flag != localstore.AuthenticatedValue || !ok {
		return nil, common.Validation("session", "You are not signed in")
	}

	acc, err := accounts.NewSQLiteRepository(tx).Get(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.Validation("session", "You are not signed in")
	}
	return acc, err
}

// Register creates an account and signs it in.
//
// It fails with a validation error when a required field is empty, the two
// passwords differ, the password is shorter than MinPasswordLength, or the
// email is already registered.
func (s *CredentialStore) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	stored, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  stored,
		Phone:     req.Phone,
		CreatedAt: s.now().UTC(),

		PasswordScheme: s.hasher.Scheme(),
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := accounts.NewSQLiteRepository(tx)
		exists, err := repo.Exists(ctx, acc.Email)
		if err != nil {
			return err
		}
		if exists {
			return common.Validation("email", "Email already registered")
		}
		if err := repo.Create(ctx, acc); err != nil {
			return err
		}
		return openSession(ctx, localstore.NewSQLiteRepository(tx), acc.Email)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "email", acc.Email, "scheme", s.hasher.Scheme())
	return acc, nil
}

// Login signs in the account with the given email when password verifies.
// Any mismatch, including an unknown email, is an authentication error and
// leaves the session untouched.
func (s *CredentialStore) Login(ctx context.Context, email, password string) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		acc, err := accounts.NewSQLiteRepository(tx).Get(ctx, email)
		if errors.Is(err, common.ErrNotFound) {
			return common.Auth("email", "Invalid email or password")
		}
		if err != nil {
			return err
		}
		if !cryptox.Verify(acc.PasswordScheme, acc.Password, password) {
			return common.Auth("password", "Invalid email or password")
		}
		return openSession(ctx, localstore.NewSQLiteRepository(tx), acc.Email)
	})
	if err != nil {
		if errors.Is(err, common.ErrAuth) {
			s.logger.Warn(ctx, "login rejected", "email", email)
		}
		return err
	}

	s.logger.Info(ctx, "logged in", "email", email)
	return nil
}

// Logout clears the session. It is a no-op when nobody is signed in and it
// never removes accounts.
func (s *CredentialStore) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		slots := localstore.NewSQLiteRepository(tx)
		if err := slots.RemoveItem(ctx, localstore.KeyAuthenticated); err != nil {
			return err
		}
		return slots.RemoveItem(ctx, localstore.KeyActiveEmail)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

// Current returns the signed-in account.
func (s *CredentialStore) Current(ctx context.Context) (*models.Account, error) {
	var acc *models.Account
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		acc, err = current(ctx, tx)
		return err
	})
	return acc, err
}

// UpdateProfile merges upd over the signed-in account and stamps UpdatedAt.
// The password and the session flag are never changed; when the email
// changes the session follows the account to its new key.
func (s *CredentialStore) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.Account, error) {
	var acc *models.Account

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		acc, err = current(ctx, tx)
		if err != nil {
			return err
		}
		oldEmail := acc.Email

		if upd.FirstName != nil {
			acc.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			acc.LastName = *upd.LastName
		}
		if upd.Phone != nil {
			acc.Phone = *upd.Phone
		}

		repo := accounts.NewSQLiteRepository(tx)
		if upd.Email != nil && *upd.Email != oldEmail {
			if *upd.Email == "" {
				return common.Validation("email", "Email is required")
			}
			taken, err := repo.Exists(ctx, *upd.Email)
			if err != nil {
				return err
			}
			if taken {
				return common.Validation("email", "Email already registered")
			}
			acc.Email = *upd.Email
		}

		acc.Touch(s.now())
		if err := repo.Update(ctx, oldEmail, acc); err != nil {
			return err
		}
		if acc.Email != oldEmail {
			return localstore.NewSQLiteRepository(tx).SetItem(ctx, localstore.KeyActiveEmail, acc.Email)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile updated", "email", acc.Email)
	return acc, nil
}

// ChangePassword replaces the signed-in account's password.
//
// Checks run in this order: new and confirm must match, new must be long
// enough (both validation errors), and old must verify (authentication error).
func (s *CredentialStore) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	if err := checkNewPassword("newPassword", newPassword, confirmPassword,
		"New passwords do not match", "New password must be at least 6 characters long"); err != nil {
		return err
	}

	var email string
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		acc, err := current(ctx, tx)
		if err != nil {
			return err
		}
		if !cryptox.Verify(acc.PasswordScheme, acc.Password, oldPassword) {
			return common.Auth("oldPassword", "Current password is incorrect")
		}

		acc.Password, err = s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		acc.PasswordScheme = s.hasher.Scheme()
		acc.Touch(s.now())
		email = acc.Email
		return accounts.NewSQLiteRepository(tx).Update(ctx, acc.Email, acc)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "password changed", "email", email)
	return nil
}

// ResetPassword sets a new password for the account registered under email
// without asking for the old one. The session is not touched.
func (s *CredentialStore) ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if email == "" {
		return common.Validation("email", "Email is required")
	}
	if err := checkNewPassword("newPassword", newPassword, confirmPassword,
		"Passwords do not match", "Password must be at least 6 characters long"); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := accounts.NewSQLiteRepository(tx)
		acc, err := repo.Get(ctx, email)
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("email", "No account found with this email address")
		}
		if err != nil {
			return err
		}

		acc.Password, err = s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		acc.PasswordScheme = s.hasher.Scheme()
		acc.Touch(s.now())
		return repo.Update(ctx, email, acc)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "password reset", "email", email)
	return nil
}
