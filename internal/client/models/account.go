// Package models defines client-side data models used by the gophprofile CLI.
package models

import "time"

// Account is the persisted user record. Email is the lookup key and is
// compared byte for byte. ID is an internal row id, shown only in the
// profile view. PasswordScheme names how Password is stored; empty means
// plain, which is what legacy records hold.
//
// The JSON form matches the historical local-storage layout, so legacy
// "user" and "users" slots decode straight into it.
type Account struct {
	ID        string     `json:"id,omitempty"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	PasswordScheme string `json:"passwordScheme,omitempty"`
}

// FullName joins the first and last name.
func (a Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}

// Touch sets UpdatedAt to t.
func (a *Account) Touch(t time.Time) {
	u := t.UTC()
	a.UpdatedAt = &u
}
