package user

import (
	"context"
	"net/mail"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// Service is a mocked identity provider: any well-formed email signs in.
type Service interface {
	Login(ctx context.Context, email, sessionID string) (string, User, error)
	ParseToken(token string) (*CustomClaims, error)
}

type service struct {
	secret string
	newID  func() (string, error)
}

func NewService(secret string) Service {
	return &service{
		secret: secret,
		newID:  func() (string, error) { return utils.RandomBase36(9) },
	}
}

func (s *service) Login(ctx context.Context, email, sessionID string) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.identify(email)
	if err != nil {
		log.Warn("rejected login", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(s.secret, u, sessionID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("login completed",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	return token, u, nil
}

func (s *service) identify(email string) (User, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return User{}, ErrInvalidEmail
	}

	id, err := s.newID()
	if err != nil {
		return User{}, err
	}

	role := RoleUser
	if strings.Contains(strings.ToLower(email), "admin") {
		role = RoleAdmin
	}

	return User{
		ID:    id,
		Email: email,
		Name:  strings.SplitN(email, "@", 2)[0],
		Role:  role,
	}, nil
}

func (s *service) ParseToken(token string) (*CustomClaims, error) {
	return ParseJWT(s.secret, token)
}
