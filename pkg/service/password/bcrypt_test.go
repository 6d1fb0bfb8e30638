package password_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrashantJha183/Feedback-backend/pkg/service/password"
)

func TestHasher(t *testing.T) {
	h := password.New(password.WithCost(bcrypt.MinCost))

	digest, err := h.Hash("s3cret")
	gt.NoError(t, err).Required()
	gt.String(t, digest).NotEqual("s3cret")

	gt.Bool(t, h.Verify(digest, "s3cret")).True()
	gt.Bool(t, h.Verify(digest, "wrong")).False()
	gt.Bool(t, h.Verify("not-a-digest", "s3cret")).False()
}

func TestHasher_SaltedDigests(t *testing.T) {
	h := password.New(password.WithCost(bcrypt.MinCost))

	d1, err := h.Hash("same")
	gt.NoError(t, err).Required()
	d2, err := h.Hash("same")
	gt.NoError(t, err).Required()
	gt.String(t, d1).NotEqual(d2)
}

func TestHasher_InvalidCostFallsBack(t *testing.T) {
	h := password.New(password.WithCost(99))

	digest, err := h.Hash("pw")
	gt.NoError(t, err).Required()

	cost, err := bcrypt.Cost([]byte(digest))
	gt.NoError(t, err).Required()
	gt.Value(t, cost).Equal(bcrypt.DefaultCost)
}
