package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophprofile/internal/cryptox"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/google/uuid"
)

// ImportLegacy folds the old "user" and "users" slots into the accounts
// mapping and removes them. The "user" slot is imported first, so it wins
// over a "users" entry with the same email; emails already in the mapping
// are left alone. If the old session flag is set, the session is bound to
// the "user" record. It returns the number of accounts created.
func ImportLegacy(ctx context.Context, db *sql.DB) (int, error) {
	imported := 0

	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		slots := localstore.NewSQLiteRepository(tx)
		accs := accounts.NewSQLiteRepository(tx)

		var (
			current models.Account
			list    []models.Account
		)
		hasCurrent, err := localstore.GetJSON(ctx, slots, localstore.KeyLegacyUser, &current)
		if err != nil {
			return err
		}
		hasList, err := localstore.GetJSON(ctx, slots, localstore.KeyLegacyUsers, &list)
		if err != nil {
			return err
		}
		if !hasCurrent && !hasList {
			return nil
		}

		candidates := make([]models.Account, 0, len(list)+1)
		if hasCurrent {
			candidates = append(candidates, current)
		}
		candidates = append(candidates, list...)

		for i := range candidates {
			acc := candidates[i]
			if acc.Email == "" {
				continue
			}
			exists, err := accs.Exists(ctx, acc.Email)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			acc.ID = uuid.NewString()
			acc.PasswordScheme = cryptox.SchemePlain
			if acc.CreatedAt.IsZero() {
				acc.CreatedAt = time.Now().UTC()
			}
			if err := accs.Create(ctx, &acc); err != nil {
				return fmt.Errorf("import %q: %w", acc.Email, err)
			}
			imported++
		}

		if hasCurrent && current.Email != "" {
			flag, _, err := slots.GetItem(ctx, localstore.KeyAuthenticated)
			if err != nil {
				return err
			}
			_, hasActive, err := slots.GetItem(ctx, localstore.KeyActiveEmail)
			if err != nil {
				return err
			}
			if flag == localstore.AuthenticatedValue && !hasActive {
				if err := slots.SetItem(ctx, localstore.KeyActiveEmail, current.Email); err != nil {
					return err
				}
			}
		}

		if err := slots.RemoveItem(ctx, localstore.KeyLegacyUser); err != nil {
			return err
		}
		return slots.RemoveItem(ctx, localstore.KeyLegacyUsers)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import legacy slots: %w", err)
	}
	return imported, nil
}

// RepairSession enforces that the session flag only stands next to an
// existing account. It reports whether the session slots were cleared.
func RepairSession(ctx context.Context, db *sql.DB) (bool, error) {
	cleared := false

	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		slots := localstore.NewSQLiteRepository(tx)

		flag, ok, err := slots.GetItem(ctx, localstore.KeyAuthenticated)
		if err != nil || !ok {
			return err
		}

		valid := false
		if flag == localstore.AuthenticatedValue {
			email, hasEmail, err := slots.GetItem(ctx, localstore.KeyActiveEmail)
			if err != nil {
				return err
			}
			if hasEmail {
				valid, err = accounts.NewSQLiteRepository(tx).Exists(ctx, email)
				if err != nil {
					return err
				}
			}
		}
		if valid {
			return nil
		}

		if err := slots.RemoveItem(ctx, localstore.KeyAuthenticated); err != nil {
			return err
		}
		if err := slots.RemoveItem(ctx, localstore.KeyActiveEmail); err != nil {
			return err
		}
		cleared = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to repair session: %w", err)
	}
	return cleared, nil
}
