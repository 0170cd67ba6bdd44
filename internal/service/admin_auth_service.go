package service

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/phonevilla/store_api/internal/utils"
)

// AdminAuthService verifies the admin PIN and issues session tokens.
// The PIN itself is bcrypt-hashed at construction so the plain value is
// never held for the lifetime of the process.
type AdminAuthService struct {
	pinHash   []byte
	jwtSecret string
}

// NewAdminAuthService hashes the configured PIN and returns the service.
func NewAdminAuthService(pin, jwtSecret string) (*AdminAuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AdminAuthService{pinHash: hash, jwtSecret: jwtSecret}, nil
}

// VerifyPIN checks the submitted PIN and returns a signed admin token.
func (s *AdminAuthService) VerifyPIN(pin string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		log.Warn().Msg("Admin PIN verification failed")
		return "", utils.ErrInvalidPIN
	}

	token, err := utils.GenerateAdminJWT(s.jwtSecret)
	if err != nil {
		return "", err
	}

	log.Info().Msg("Admin PIN verified, session token issued")
	return token, nil
}
