package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/services"
)

const dateLayout = "January 2, 2006"

// Profile prints the signed-in account.
func (a *App) Profile(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteProfile)
	if err != nil || !ok {
		return err
	}

	acc, err := a.store.Current(ctx)
	if err != nil {
		return err
	}

	phone := acc.Phone
	if phone == "" {
		phone = "Not provided"
	}
	a.printf("Name:         %s\n", acc.FullName())
	a.printf("Email:        %s\n", acc.Email)
	a.printf("Phone:        %s\n", phone)
	a.printf("Account ID:   %s\n", acc.ID)
	a.printf("Member since: %s\n", acc.CreatedAt.Local().Format(dateLayout))
	if acc.UpdatedAt != nil {
		a.printf("Last updated: %s\n", acc.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

// EditProfile prompts for each profile field, keeping the ones left empty.
func (a *App) EditProfile(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteProfile)
	if err != nil || !ok {
		return err
	}

	acc, err := a.store.Current(ctx)
	if err != nil {
		return err
	}

	var upd services.ProfileUpdate
	if upd.FirstName, err = getOptionalText(a.reader, "First name", acc.FirstName, "", a.out); err != nil {
		return err
	}
	if upd.LastName, err = getOptionalText(a.reader, "Last name", acc.LastName, "", a.out); err != nil {
		return err
	}
	if upd.Email, err = getOptionalText(a.reader, "Email", acc.Email, "", a.out); err != nil {
		return err
	}
	if upd.Phone, err = getOptionalText(a.reader, "Phone", acc.Phone, "-", a.out); err != nil {
		return err
	}

	if _, err := a.store.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	a.printf("Profile updated successfully.\n")
	return nil
}

// ChangePassword replaces the signed-in account's password after checking
// the current one.
func (a *App) ChangePassword(ctx context.Context) error {
	ok, err := a.open(ctx, services.RouteProfile)
	if err != nil || !ok {
		return err
	}

	oldPassword, err := a.promptPassword("Current password")
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

	if err := a.store.ChangePassword(ctx, oldPassword, newPassword, confirm); err != nil {
		return err
	}
	a.printf("Password changed successfully.\n")
	return nil
}
