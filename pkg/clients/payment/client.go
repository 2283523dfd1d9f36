package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"backyard-leads/pkg/models"
)

// ErrDeclined means the processor rejected the charge. It is a different
// failure from the processor being unreachable, and the checkout flow shows
// a different message for each.
var ErrDeclined = errors.New("payment declined")

// AuthorizationRequest describes the charge to authorize before fulfillment
type AuthorizationRequest struct {
	Quote          models.Quote
	CompanyName    string
	Email          string
	IdempotencyKey string
}

// Authorization is a successful hold on the buyer's payment method
type Authorization struct {
	ID        string
	Amount    float64
	CreatedAt time.Time
}

// Authorizer defines the interface for the payment processor. Checkout
// authorizes first and only fulfills the lead order once the hold succeeds.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*Authorization, error)
}

type testModeAuthorizer struct {
	publishableKey string
	logger         *slog.Logger
}

// NewTestModeAuthorizer creates an Authorizer backed by the processor's test
// mode. It approves every well-formed charge; a publishable key with a
// "_declined" suffix forces ErrDeclined, which is how the decline path is
// exercised without a live processor account.
func NewTestModeAuthorizer(publishableKey string, logger *slog.Logger) Authorizer {
	return &testModeAuthorizer{
		publishableKey: publishableKey,
		logger:         logger,
	}
}

func (a *testModeAuthorizer) Authorize(ctx context.Context, req AuthorizationRequest) (*Authorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("authorization aborted: %w", err)
	}

	if req.Quote.Total <= 0 {
		return nil, fmt.Errorf("refusing to authorize non-positive amount %.2f", req.Quote.Total)
	}

	if strings.HasSuffix(a.publishableKey, "_declined") {
		a.logger.Warn("payment declined", "amount", req.Quote.Total, "idempotency_key", req.IdempotencyKey)
		return nil, ErrDeclined
	}

	auth := &Authorization{
		ID:        "auth_" + uuid.NewString(),
		Amount:    req.Quote.Total,
		CreatedAt: time.Now(),
	}

	a.logger.Info("payment authorized", "authorization_id", auth.ID, "amount", auth.Amount)
	return auth, nil
}
