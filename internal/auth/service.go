package auth

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// UserFinder loads the account a verified token was issued for.
type UserFinder interface {
	FindUserByID(id uint) (*models.User, error)
}

// Service is the identity verifier: it turns a raw bearer credential into the
// account it belongs to.
type Service struct {
	Tokens *TokenManager
	Users  UserFinder
}

// NewService wires the verifier over a token manager and a user lookup.
func NewService(tokens *TokenManager, users UserFinder) *Service {
	return &Service{Tokens: tokens, Users: users}
}

// Authenticate validates the credential and resolves the account behind it.
// A token for a deleted account is as invalid as a forged one.
func (s *Service) Authenticate(credential string) (*models.User, error) {
	claims, err := s.Tokens.Parse(credential)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.Users.FindUserByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
