package kernel

import (
	"errors"
)

// Principal is the authenticated caller of an operation, as asserted by the
// identity provider token.
type Principal struct {
	userID UUID
	role   Role
}

func NewPrincipal(userID UUID, role Role) (Principal, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Principal{}, err
	}
	return Principal{userID: userID, role: role}, nil
}

func (p Principal) UserID() UUID {
	return p.userID
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) Is(role Role) bool {
	return p.role == role
}

func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}

func (p Principal) Validate() error {
	return errors.Join(p.userID.Validate(), p.role.Validate())
}
