package permissions

import (
	"errors"

	"github.com/Skotchmaster/user_service/internal/models"
)

var ErrForbidden = errors.New("forbidden")

type Level int

const (
	Read Level = iota
	Edit
	Delete
)

func (l Level) String() string {
	switch l {
	case Read:
		return "read"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// Evaluator is attached to an operation at the routing boundary with the
// permission level that operation requires.
type Evaluator struct {
	Required Level
}

// AssertAccess passes when the principal is an admin or owns the resource.
// It is a pure predicate: no I/O, no store access.
func (e Evaluator) AssertAccess(principal *models.User, resource *models.User) error {
	if principal == nil || resource == nil {
		return ErrForbidden
	}
	if principal.IsAdmin {
		return nil
	}
	if principal.ID == resource.ID {
		return nil
	}
	return ErrForbidden
}

// AssertAccessAll applies the ownership check to every element, so a
// non-admin only passes when the whole collection is scoped to itself.
func (e Evaluator) AssertAccessAll(principal *models.User, resources []models.User) error {
	for i := range resources {
		if err := e.AssertAccess(principal, &resources[i]); err != nil {
			return err
		}
	}
	return nil
}
