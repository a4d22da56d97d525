package cli

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/client/services"
	"github.com/dmitrijs2005/gophprofile/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getOptionalText = GetOptionalText

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// promptPassword reads a password and returns it as a string. The raw bytes
// are wiped before returning.
func (a *App) promptPassword(label string) (string, error) {
	pw, err := getPassword(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for the registration form and creates an account, which
// also signs it in. Signed-in users are redirected to their profile.
func (a *App) Register(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteRegister)
	if err != nil || !ok {
		return err
	}

	var req services.RegisterRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Email", &req.Email},
		{"Phone (optional)", &req.Phone},
	}
	for _, f := range fields {
		if *f.dst, err = a.prompt(f.label); err != nil {
			return err
		}
	}
	if req.Password, err = a.promptPassword("Password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = a.promptPassword("Confirm password"); err != nil {
		return err
	}

	acc, err := a.store.Register(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Registration successful. Welcome, %s!\n", acc.FullName())
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteLogin)
	if err != nil || !ok {
		return err
	}

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, email, password); err != nil {
		return err
	}
	a.printf("Login successful.\n")
	return nil
}

// Logout ends the session. It is harmless when nobody is signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

// ForgotPassword resets the password of the account registered under the
// entered email. It does not sign anyone in.
func (a *App) ForgotPassword(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteForgotPassword)
	if err != nil || !ok {
		return err
	}

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	newPassword, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	if err := a.store.ResetPassword(ctx, email, newPassword, confirm); err != nil {
		return err
	}
	a.printf("Password has been reset. You can now log in with the new password.\n")
	return nil
}

// Status prints whether a session is open and for whom.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.printf("Not logged in.\n")
		return nil
	}
	acc, err := a.store.Current(ctx)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s.\n", acc.Email)
	return nil
}
