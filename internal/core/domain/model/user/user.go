// Package user mirrors the identity provider's profile of each person using
// the marketplace. The identity provider stays the source of truth for
// credentials; this copy carries contact details and role.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

type User struct {
	id          kernel.UUID
	email       string
	fullName    string
	phoneNumber string
	role        kernel.Role
	deletedAt   *time.Time

	isConstructed bool
}

func NewUser(id kernel.UUID, email string, fullName string, phoneNumber string, role kernel.Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	u.fullName = strings.TrimSpace(fullName)
	u.phoneNumber = strings.TrimSpace(phoneNumber)

	return u, nil
}

func RestoreUser(
	id kernel.UUID,
	email string,
	fullName string,
	phoneNumber string,
	role kernel.Role,
	deletedAt *time.Time,
) (*User, error) {
	u, err := NewUser(id, email, fullName, phoneNumber, role)
	if err != nil {
		return nil, err
	}
	u.deletedAt = deletedAt
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) PhoneNumber() string {
	return u.phoneNumber
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) DeletedAt() *time.Time {
	return u.deletedAt
}

// UpdateProfile copies the latest claims from the identity provider. The
// role is owned by the provider as well and is overwritten.
func (u *User) UpdateProfile(email string, fullName string, phoneNumber string, role kernel.Role) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if err := errors.Join(u.setEmail(email), u.setRole(role)); err != nil {
		return err
	}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		u.fullName = fullName
	}
	if phoneNumber = strings.TrimSpace(phoneNumber); phoneNumber != "" {
		u.phoneNumber = phoneNumber
	}
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
