// Package access implements the role and ownership checks applied by
// every card touching operation. The checks run inside the services, not
// only at the HTTP boundary, so programmatic callers are covered too.
package access

import (
	"bankcards/internal/errs"
	"bankcards/internal/models"

	"github.com/google/uuid"
)

// CanAccessCard permits administrators unconditionally and owners of the
// card; everyone else is denied.
func CanAccessCard(claims *models.UserClaims, card *models.Card) error {
	if claims.IsAdmin() {
		return nil
	}
	if card.UserID == claims.UserID {
		return nil
	}
	return errs.AccessDenied("Access denied to card: " + card.ID.String())
}

// CanAccessUser permits administrators and the subject itself.
func CanAccessUser(claims *models.UserClaims, userID uuid.UUID) error {
	if claims.IsAdmin() {
		return nil
	}
	if claims.UserID == userID {
		return nil
	}
	return errs.AccessDenied("Access denied to user: " + userID.String())
}
