package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// PaymentState labels the purchase flow's position.
type PaymentState string

const (
	PaymentIdle               PaymentState = "idle"
	PaymentOrderCreated       PaymentState = "order_created"
	PaymentAwaitingGateway    PaymentState = "awaiting_gateway"
	PaymentVerifying          PaymentState = "verifying"
	PaymentVerified           PaymentState = "verified"
	PaymentVerificationFailed PaymentState = "verification_failed"
)

// Checkout is what the external gateway needs to present its payment UI.
// The gateway's own key id is held by the gateway implementation.
type Checkout struct {
	OrderID     string
	Amount      int64
	Currency    string
	Description string
}

// Gateway abstracts the external checkout. Ready reports whether the gateway
// can be opened at all; Open presents the checkout for an order and returns
// the signed result the gateway produced.
type Gateway interface {
	Ready() bool
	Open(ctx context.Context, co Checkout) (models.PaymentResult, error)
}

// PaymentSession orchestrates the three-step purchase: create order, run the
// external checkout, verify the result. At most one purchase is in flight
// per session; a concurrent Purchase call is rejected, not queued. The
// credit balance is only ever set from a verified backend response, never
// guessed.
type PaymentSession struct {
	client   api.Client
	credits  *CreditStore
	gateway  Gateway
	logger   logging.Logger
	currency string

	mu               sync.Mutex
	state            PaymentState
	processingPlanID string
}

func NewPaymentSession(client api.Client, credits *CreditStore, gateway Gateway, currency string, logger logging.Logger) *PaymentSession {
	return &PaymentSession{
		client:   client,
		credits:  credits,
		gateway:  gateway,
		currency: currency,
		logger:   logger.With("component", "payment"),
		state:    PaymentIdle,
	}
}

func (s *PaymentSession) State() PaymentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *PaymentSession) setState(state PaymentState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Purchase runs the full flow for one plan. It fails fast when the gateway
// is not ready and rejects a second call while one purchase is pending.
func (s *PaymentSession) Purchase(ctx context.Context, plan models.Plan) error {
	if !s.gateway.Ready() {
		return common.ErrGatewayNotReady
	}
	if !plan.Purchasable() {
		return fmt.Errorf("%w: %s", common.ErrPlanNotPurchasable, plan.ID)
	}

	s.mu.Lock()
	if s.processingPlanID != "" {
		s.mu.Unlock()
		return common.ErrPurchaseInFlight
	}
	s.processingPlanID = plan.ID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processingPlanID = ""
		s.mu.Unlock()
	}()

	orderID, err := s.client.CreateOrder(ctx, api.OrderRequest{
		PlanID:   plan.ID,
		Amount:   plan.Price * 100,
		Currency: s.currency,
		Credits:  plan.Credits,
	})
	if err != nil {
		s.setState(PaymentIdle)
		return fmt.Errorf("creating order: %w", err)
	}
	s.setState(PaymentOrderCreated)

	co := Checkout{
		OrderID:     orderID,
		Amount:      plan.Price * 100,
		Currency:    s.currency,
		Description: fmt.Sprintf("Purchase %d credits", plan.Credits),
	}
	s.setState(PaymentAwaitingGateway)
	result, err := s.gateway.Open(ctx, co)
	if err != nil {
		s.setState(PaymentIdle)
		return fmt.Errorf("checkout: %w", err)
	}

	return s.verify(ctx, plan, result)
}

// verify forwards the gateway's signed result to the backend together with
// the originating plan id and reconciles the credit store on success. On any
// verification failure the balance is left untouched.
func (s *PaymentSession) verify(ctx context.Context, plan models.Plan, result models.PaymentResult) error {
	s.setState(PaymentVerifying)

	vr, err := s.client.VerifyPayment(ctx, result, plan.ID)
	if err != nil || !vr.Success {
		s.setState(PaymentVerificationFailed)
		if err != nil {
			s.logger.Error(ctx, "payment verification errored", "plan", plan.ID, "error", err)
		}
		return fmt.Errorf("%w: please contact support", common.ErrVerificationFailed)
	}

	s.setState(PaymentVerified)

	if vr.Credits != nil {
		s.credits.Set(*vr.Credits)
	} else if err := s.credits.Refresh(ctx); err != nil {
		// Verification and credit update are not assumed atomic; the refetch
		// failing does not undo a verified purchase.
		s.logger.Warn(ctx, "credit refresh after purchase failed", "error", err)
	}

	s.logger.Info(ctx, "purchase verified", "plan", plan.ID, "credits", plan.Credits)
	return nil
}

// History lists past purchases, newest as the backend orders them.
func (s *PaymentSession) History(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.client.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return txs, nil
}
