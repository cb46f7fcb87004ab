// Package service implements the storefront's use cases on top of the
// stores: authoring, browsing, cart, checkout, reading and reviews.
package service

import (
	"github.com/sutapaslibrary/library-server/internal/domain"
	domainerrors "github.com/sutapaslibrary/library-server/internal/errors"
)

// Service errors.
var (
	ErrSignInRequired = domainerrors.Unauthorized("please sign in to continue")
	ErrAdminRequired  = domainerrors.Forbidden("only the library admin can do this")
	ErrBuiltInBook    = domainerrors.Forbidden("built-in books cannot be deleted")
	ErrNotBookOwner   = domainerrors.Forbidden("only the admin who added this book can delete it")
	ErrEmptyCart      = domainerrors.Validation("your cart is empty")
)

// requireIdentity rejects anonymous callers.
func requireIdentity(ident *domain.Identity) error {
	if ident == nil || ident.Email == "" {
		return ErrSignInRequired
	}
	return nil
}

// requireAdmin rejects callers without the admin role.
func requireAdmin(ident *domain.Identity) error {
	if err := requireIdentity(ident); err != nil {
		return err
	}
	if !ident.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// emailOf returns the caller's email, or "" when anonymous.
func emailOf(ident *domain.Identity) string {
	if ident == nil {
		return ""
	}
	return ident.Email
}
