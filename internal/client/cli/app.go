package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophprofile/internal/client/config"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophprofile/internal/client/services"
	"github.com/dmitrijs2005/gophprofile/internal/client/storage"
	"github.com/dmitrijs2005/gophprofile/internal/cryptox"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// CredentialService is the subset of services.CredentialStore the CLI uses.
type CredentialService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Account, error)
	UpdateProfile(ctx context.Context, upd services.ProfileUpdate) (*models.Account, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error
	ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error
}

// Navigator decides which view a requested route turns into.
type Navigator interface {
	State(ctx context.Context) services.State
	Resolve(ctx context.Context, route string) (string, error)
}

// OrderLister serves the order history.
type OrderLister interface {
	List(status models.OrderStatus) []models.Order
}

type App struct {
	config *config.Config
	db     *sql.DB
	store  CredentialService
	guard  Navigator
	orders OrderLister
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database named by c and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := cryptox.NewHasher(c.PasswordScheme)
	if err != nil {
		return nil, err
	}
	if hasher.Scheme() == cryptox.SchemePlain {
		logger.Warn(ctx, "passwords are stored in plain text; set password_scheme to argon2id or bcrypt to hash them")
	}

	db, err := storage.Init(ctx, c.DatabasePath, logger)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	return &App{
		config: c,
		db:     db,
		store:  services.NewCredentialStore(db, logger, hasher),
		guard:  services.NewSessionGuard(localstore.NewSQLiteRepository(db), logger),
		orders: services.NewOrderService(),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// open asks the guard for route and reports whether it may render as is.
// A redirect is announced to the user.
func (a *App) open(ctx context.Context, route string) (bool, error) {
	to, err := a.guard.Resolve(ctx, route)
	if err != nil {
		return false, err
	}
	if to != route {
		switch to {
		case services.RouteLogin:
			a.printf("Please log in first (redirected to %s).\n", to)
		case services.RouteProfile:
			a.printf("You are already logged in (redirected to %s).\n", to)
		default:
			a.printf("Redirected to %s.\n", to)
		}
		return false, nil
	}
	return true, nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.guard.State(ctx) == services.Authenticated
}

// getStatus renders the prompt status: the signed-in email or "anonymous".
func (a *App) getStatus(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return "(anonymous)"
	}
	acc, err := a.store.Current(ctx)
	if err != nil {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", acc.Email)
}
