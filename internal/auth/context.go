// Package auth carries the signed-in user through request contexts and
// issues the bearer tokens of the HTTP API.
package auth

import (
	"context"

	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
)

type userIDKey struct{}

// WithUserID returns a copy of ctx that carries the signed-in user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the signed-in user's id, or an unauthenticated AppError
// naming operation when ctx carries none.
func UserID(ctx context.Context, operation string) (string, error) {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id, nil
	}
	return "", apperrors.NewUnauthenticatedError(operation)
}
