package commands

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/user"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var ErrSyncUserCommandIsNotConstructed = errors.New(
	"SyncUserCommand must be created via NewSyncUserCommand constructor",
)

// SyncUserCommand mirrors the caller's identity-provider profile.
type SyncUserCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	email       string
	fullName    string
	phoneNumber string

	guard guard.ConstructorGuard
}

func NewSyncUserCommand(principal kernel.Principal, email string, fullName string, phoneNumber string) (SyncUserCommand, error) {
	cmd := SyncUserCommand{
		email:       email,
		fullName:    fullName,
		phoneNumber: phoneNumber,
		guard:       guard.NewConstructorGuard(),
	}

	if err := setPrincipal(&cmd.principal, principal); err != nil {
		return SyncUserCommand{}, err
	}

	return cmd, nil
}

func (c SyncUserCommand) Validate() error {
	return c.guard.Validate(ErrSyncUserCommandIsNotConstructed)
}

func (c SyncUserCommand) Principal() kernel.Principal {
	return c.principal
}

func (c SyncUserCommand) Email() string {
	return c.email
}

func (c SyncUserCommand) FullName() string {
	return c.fullName
}

func (c SyncUserCommand) PhoneNumber() string {
	return c.phoneNumber
}

// SyncUserCommandHandler creates the profile on first sight and refreshes it
// afterwards.
type SyncUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewSyncUserCommandHandler(uowFactory UserUoWFactory) SyncUserCommandHandler {
	return SyncUserCommandHandler{uowFactory: uowFactory}
}

func (h SyncUserCommandHandler) Handle(ctx context.Context, cmd SyncUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	principal := cmd.Principal()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, principal.UserID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		u, err = user.NewUser(principal.UserID(), cmd.Email(), cmd.FullName(), cmd.PhoneNumber(), principal.Role())
		if err != nil {
			return nil, err
		}
		err = repo.Add(ctx, u)
	case err == nil:
		if err = u.UpdateProfile(cmd.Email(), cmd.FullName(), cmd.PhoneNumber(), principal.Role()); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, u)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
