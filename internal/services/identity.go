package services

import (
	"context"

	"travel-itinerary-service/internal/models"
)

// IdentityProvider is the service of record for user accounts. Implementations
// translate provider failures into the identity errors in models.
type IdentityProvider interface {
	FindUserByEmail(ctx context.Context, email string) (models.UserRecord, error)
	CreateUser(ctx context.Context, user models.NewUser) (models.UserRecord, error)
	VerifyCredentials(ctx context.Context, email, password string) (models.UserRecord, error)
}
