package services

import (
	"context"
	"math"
	"regexp"

	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
)

type UserService struct {
	users domain.UserRepository
	cache *cache.QueryCache
}

// userIDPattern keeps ids safe to embed in cache keys and scan patterns.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._@:-]{1,128}$`)

func NewUserService(users domain.UserRepository, queryCache *cache.QueryCache) *UserService {
	return &UserService{users: users, cache: queryCache}
}

// SignIn registers userID on first sight and refreshes it afterwards. It is
// the only operation that takes the user id directly rather than from ctx.
func (s *UserService) SignIn(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if !userIDPattern.MatchString(userID) {
		return nil, apperrors.NewValidationError("user id may only contain letters, digits and . _ - @ :")
	}

	user, err := s.users.Upsert(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user", "signIn")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeUser)
	return user, nil
}

// Current returns the signed-in user's profile, or nil when it was never
// created.
func (s *UserService) Current(ctx context.Context) (*domain.User, error) {
	userID, err := auth.UserID(ctx, "getCurrentUser")
	if err != nil {
		return nil, err
	}

	user, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeUser, "me"),
		func(ctx context.Context) (*domain.User, error) {
			return s.users.GetByID(ctx, userID)
		})
	if err != nil {
		return nil, storeError(err, "user", "getCurrentUser")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	userID, err := auth.UserID(ctx, "updateProfile")
	if err != nil {
		return nil, err
	}
	if err := validateBiometric("weight", update.WeightKg); err != nil {
		return nil, err
	}
	if err := validateBiometric("height", update.HeightCm); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, storeError(err, "user", "updateProfile")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeUser)
	return user, nil
}

func validateBiometric(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return apperrors.NewValidationError(field+" must be a positive number").WithContext("field", field)
	}
	return nil
}
