package password

import (
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

// Hasher creates and verifies bcrypt password digests
type Hasher struct {
	cost int
}

var _ interfaces.PasswordHasher = (*Hasher)(nil)

// Option is a functional option for Hasher
type Option func(*Hasher)

// WithCost sets the bcrypt cost. Values outside bcrypt's range fall back to
// bcrypt.DefaultCost.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		h.cost = cost
	}
}

func New(opts ...Option) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	if h.cost < bcrypt.MinCost || h.cost > bcrypt.MaxCost {
		h.cost = bcrypt.DefaultCost
	}
	return h
}

func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", goerr.Wrap(err, "failed to hash password")
	}
	return string(digest), nil
}

func (h *Hasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
