package business

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/filmdesk/internal/model"
)

// AdminGate checks passwords against the shared admin secret
type AdminGate struct {
	encoded []byte
}

// NewAdminGate hashes the admin secret so that only its argon2 encoding is kept in memory.
// With an empty secret, every password is refused.
func NewAdminGate(secret string) (*AdminGate, error) {
	if secret == "" {
		log.Warn().Msg("No admin password configured, login is disabled")
		return &AdminGate{}, nil
	}
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("could not hash admin password: %w", err)
	}
	return &AdminGate{
		encoded: encoded,
	}, nil
}

// CheckPassword returns model.ErrWrongPassword unless password is exactly the admin secret
func (ag AdminGate) CheckPassword(password string) error {
	if ag.encoded == nil {
		return model.ErrWrongPassword
	}
	ok, err := argon2.VerifyEncoded([]byte(password), ag.encoded)
	if err != nil {
		return fmt.Errorf("could not verify password: %w", err)
	}
	if !ok {
		return model.ErrWrongPassword
	}
	return nil
}
