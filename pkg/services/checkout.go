package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"backyard-leads/pkg/clients/leadsapi"
	"backyard-leads/pkg/clients/payment"
	"backyard-leads/pkg/models"
	"backyard-leads/pkg/store"
	"backyard-leads/pkg/utils"
)

// ErrMissingFields is returned when company name or email is empty after
// trimming. Submissions failing this never reach the network.
var ErrMissingFields = errors.New("company name and email are required")

// CheckoutService defines the interface for completing a lead purchase
type CheckoutService interface {
	Submit(ctx context.Context, location string, count int, form models.CheckoutForm) (string, error)
}

type checkoutServiceImpl struct {
	leadsClient leadsapi.Client
	authorizer  payment.Authorizer
	orders      *store.OrderStore
	logger      *slog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	leadsClient leadsapi.Client,
	authorizer payment.Authorizer,
	orders *store.OrderStore,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		leadsClient: leadsClient,
		authorizer:  authorizer,
		orders:      orders,
		logger:      logger,
	}
}

// Submit runs the purchase in two phases: authorize the payment for the
// quoted total, then fulfill by fetching the lead batch. The two phases fail
// with distinct error kinds: payment.ErrDeclined never means the leads
// backend was involved, and a fulfillment error never means the card was bad.
// On success the full order is placed in the transient store and its session
// token returned.
func (s *checkoutServiceImpl) Submit(ctx context.Context, location string, count int, form models.CheckoutForm) (string, error) {
	companyName := strings.TrimSpace(form.CompanyName)
	email := strings.TrimSpace(form.Email)
	if companyName == "" || email == "" {
		return "", ErrMissingFields
	}

	buyer := utils.MaskPII(strings.ToLower(email))
	quote := models.NewQuote(count)

	s.logger.Info("processing checkout", "buyer", buyer, "location", location, "count", count, "total", quote.Total)

	// Retries of the same logical order reuse the same key
	idempotencyKey := fmt.Sprintf("order_%s_%d", utils.MaskPII(strings.ToLower(email)+"|"+location), count)

	auth, err := s.authorizer.Authorize(ctx, payment.AuthorizationRequest{
		Quote:          quote,
		CompanyName:    companyName,
		Email:          email,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		s.logger.Warn("checkout authorization failed", "buyer", buyer, "error", err)
		return "", fmt.Errorf("authorizing payment: %w", err)
	}

	batch, err := s.leadsClient.FetchLeads(ctx, location, count)
	if err != nil {
		// The hold is simply not captured; a real processor integration
		// would void the authorization here.
		s.logger.Error("fulfillment failed after authorization", "buyer", buyer, "authorization_id", auth.ID, "error", err)
		return "", fmt.Errorf("fulfilling order: %w", err)
	}

	token := s.orders.Put(&models.Order{
		Batch:       batch,
		CompanyName: companyName,
		Email:       email,
		Location:    location,
		Count:       count,
		CreatedAt:   auth.CreatedAt,
	})

	s.logger.Info("order fulfilled", "buyer", buyer, "authorization_id", auth.ID, "leads", len(batch.Leads))
	return token, nil
}
