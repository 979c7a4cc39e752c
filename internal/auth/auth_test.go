package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock/mocks"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"go.uber.org/mock/gomock"
)

func TestUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-1")
	id, err := UserID(ctx, "createDrinkLog")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTelegramUserID(t *testing.T) {
	id := TelegramUserID(4242)
	assert.Equal(t, "tg:4242", id)
	assert.True(t, IsTelegramUserID(id))
	assert.False(t, IsTelegramUserID("4242"))
	assert.False(t, IsTelegramUserID("toss-user-1"))
}

func TestUserIDMissing(t *testing.T) {
	for name, ctx := range map[string]context.Context{
		"no value": context.Background(),
		"empty id": WithUserID(context.Background(), ""),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := UserID(ctx, "createDrinkLog")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
			assert.Contains(t, err.Error(), "createDrinkLog")
		})
	}
}

type TokenIssuerTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	issuer    *TokenIssuer
	now       time.Time
}

func (s *TokenIssuerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	var err error
	s.issuer, err = NewTokenIssuer(&TokenIssuerConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
}

func (s *TokenIssuerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *TokenIssuerTestSuite) TestIssueAndVerify() {
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	token, expires, err := s.issuer.Issue("user-1")
	s.Require().NoError(err)
	s.Equal(s.now.Add(time.Hour), expires)

	subject, err := s.issuer.Verify(token)
	s.Require().NoError(err)
	s.Equal("user-1", subject)
}

func (s *TokenIssuerTestSuite) TestVerifyExpired() {
	gomock.InOrder(
		s.mockClock.EXPECT().Now().Return(s.now),
		s.mockClock.EXPECT().Now().Return(s.now.Add(2*time.Hour)).AnyTimes(),
	)

	token, _, err := s.issuer.Issue("user-1")
	s.Require().NoError(err)

	_, err = s.issuer.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenIssuerTestSuite) TestVerifyWrongSecret() {
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	other, err := NewTokenIssuer(&TokenIssuerConfig{Secret: "other", TTL: time.Hour, Clock: s.mockClock})
	s.Require().NoError(err)
	token, _, err := other.Issue("user-1")
	s.Require().NoError(err)

	_, err = s.issuer.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenIssuerTestSuite) TestVerifyGarbage() {
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	_, err := s.issuer.Verify("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenIssuerTestSuite) TestIssueEmptyUser() {
	_, _, err := s.issuer.Issue("")
	s.Error(err)
}

func TestNewTokenIssuerValidation(t *testing.T) {
	_, err := NewTokenIssuer(nil)
	assert.Error(t, err)
	_, err = NewTokenIssuer(&TokenIssuerConfig{TTL: time.Hour})
	assert.Error(t, err)
	_, err = NewTokenIssuer(&TokenIssuerConfig{Secret: "s"})
	assert.Error(t, err)
}

func TestTokenIssuerSuite(t *testing.T) {
	suite.Run(t, new(TokenIssuerTestSuite))
}
