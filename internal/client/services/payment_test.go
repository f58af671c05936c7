package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
)

type fakeGateway struct {
	ready  bool
	result models.PaymentResult
	err    error
	block  chan struct{}

	mu    sync.Mutex
	opens []Checkout
}

func (g *fakeGateway) Ready() bool { return g.ready }

func (g *fakeGateway) Open(ctx context.Context, co Checkout) (models.PaymentResult, error) {
	g.mu.Lock()
	g.opens = append(g.opens, co)
	g.mu.Unlock()
	if g.block != nil {
		<-g.block
	}
	if g.err != nil {
		return models.PaymentResult{}, g.err
	}
	return g.result, nil
}

func mustPlan(t *testing.T, id string) models.Plan {
	t.Helper()
	plan, ok := models.PlanByID(id)
	require.True(t, ok)
	return plan
}

func newPaymentFixture(t *testing.T, client *fakeClient, gw Gateway) (*PaymentSession, *CreditStore) {
	t.Helper()
	credits := NewCreditStore(client, testLogger(t))
	return NewPaymentSession(client, credits, gw, "INR", testLogger(t)), credits
}

func TestPaymentSessionGatewayNotReady(t *testing.T) {
	client := &fakeClient{}
	s, _ := newPaymentFixture(t, client, &fakeGateway{ready: false})

	err := s.Purchase(context.Background(), mustPlan(t, "premium"))
	assert.ErrorIs(t, err, common.ErrGatewayNotReady)
	assert.Empty(t, client.orderReqs)
}

func TestPaymentSessionFreePlanNotPurchasable(t *testing.T) {
	client := &fakeClient{}
	s, _ := newPaymentFixture(t, client, &fakeGateway{ready: true})

	err := s.Purchase(context.Background(), mustPlan(t, "free"))
	assert.ErrorIs(t, err, common.ErrPlanNotPurchasable)
	assert.Empty(t, client.orderReqs)
}

func TestPaymentSessionPurchase(t *testing.T) {
	result := models.PaymentResult{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig_1"}
	client := &fakeClient{
		orderID:   "order_1",
		verifyRes: &api.VerifyResult{Success: true, Credits: intPtr(505)},
	}
	gw := &fakeGateway{ready: true, result: result}
	s, credits := newPaymentFixture(t, client, gw)
	credits.Set(5)

	require.NoError(t, s.Purchase(context.Background(), mustPlan(t, "premium")))
	assert.Equal(t, PaymentVerified, s.State())

	// Order amount is the plan price in minor units.
	require.Len(t, client.orderReqs, 1)
	assert.Equal(t, "premium", client.orderReqs[0].PlanID)
	assert.Equal(t, int64(50000), client.orderReqs[0].Amount)
	assert.Equal(t, "INR", client.orderReqs[0].Currency)
	assert.Equal(t, 500, client.orderReqs[0].Credits)

	// The checkout was opened for the created order.
	require.Len(t, gw.opens, 1)
	assert.Equal(t, "order_1", gw.opens[0].OrderID)
	assert.Equal(t, int64(50000), gw.opens[0].Amount)

	// The gateway's signed result is forwarded verbatim with the plan id.
	require.Len(t, client.verifyReses, 1)
	assert.Equal(t, result, client.verifyReses[0])
	assert.Equal(t, []string{"premium"}, client.verifyPlans)

	assert.Equal(t, 505, credits.Current().Remaining)
}

func TestPaymentSessionVerifiedWithoutCreditsRefetches(t *testing.T) {
	client := &fakeClient{
		orderID:    "order_1",
		verifyRes:  &api.VerifyResult{Success: true},
		creditsVal: 5005,
	}
	s, credits := newPaymentFixture(t, client, &fakeGateway{ready: true})
	credits.Set(5)

	require.NoError(t, s.Purchase(context.Background(), mustPlan(t, "ultimate")))

	assert.Equal(t, 1, client.creditsCalls)
	assert.Equal(t, 5005, credits.Current().Remaining)
}

func TestPaymentSessionVerificationRejected(t *testing.T) {
	client := &fakeClient{
		orderID:   "order_1",
		verifyRes: &api.VerifyResult{Success: false},
	}
	s, credits := newPaymentFixture(t, client, &fakeGateway{ready: true})
	credits.Set(5)

	err := s.Purchase(context.Background(), mustPlan(t, "premium"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrVerificationFailed)
	assert.Contains(t, err.Error(), "please contact support")

	assert.Equal(t, PaymentVerificationFailed, s.State())
	assert.Equal(t, 5, credits.Current().Remaining)
	assert.Equal(t, 0, client.creditsCalls)
}

func TestPaymentSessionVerificationNetworkError(t *testing.T) {
	client := &fakeClient{orderID: "order_1", verifyErr: common.ErrUnavailable}
	s, credits := newPaymentFixture(t, client, &fakeGateway{ready: true})
	credits.Set(5)

	err := s.Purchase(context.Background(), mustPlan(t, "premium"))
	assert.ErrorIs(t, err, common.ErrVerificationFailed)
	assert.Equal(t, PaymentVerificationFailed, s.State())
	assert.Equal(t, 5, credits.Current().Remaining)
}

func TestPaymentSessionCheckoutAborted(t *testing.T) {
	client := &fakeClient{orderID: "order_1"}
	gw := &fakeGateway{ready: true, err: context.Canceled}
	s, credits := newPaymentFixture(t, client, gw)
	credits.Set(5)

	err := s.Purchase(context.Background(), mustPlan(t, "premium"))
	require.Error(t, err)
	assert.Equal(t, PaymentIdle, s.State())
	assert.Equal(t, 5, credits.Current().Remaining)
	assert.Empty(t, client.verifyPlans)
}

func TestPaymentSessionOnePurchaseAtATime(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{
		orderID:   "order_1",
		verifyRes: &api.VerifyResult{Success: true, Credits: intPtr(505)},
	}
	gw := &fakeGateway{ready: true, block: block, result: models.PaymentResult{OrderID: "order_1"}}
	s, _ := newPaymentFixture(t, client, gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Purchase(context.Background(), mustPlan(t, "premium")))
	}()

	require.Eventually(t, func() bool {
		return s.State() == PaymentAwaitingGateway
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, s.Purchase(context.Background(), mustPlan(t, "ultimate")), common.ErrPurchaseInFlight)

	close(block)
	wg.Wait()

	// With the first purchase settled a new one is admitted again.
	require.Len(t, client.orderReqs, 1)
	gw.block = nil
	require.NoError(t, s.Purchase(context.Background(), mustPlan(t, "premium")))
	assert.Len(t, client.orderReqs, 2)
}

func TestPaymentSessionHistory(t *testing.T) {
	client := &fakeClient{txs: []models.Transaction{
		{PlanID: "premium", Amount: 50000, CreditsAdded: 500, PaymentID: "pay_1"},
	}}
	s, _ := newPaymentFixture(t, client, &fakeGateway{ready: true})

	txs, err := s.History(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "premium", txs[0].PlanID)
}

func TestPaymentSessionHistoryError(t *testing.T) {
	client := &fakeClient{txErr: common.ErrUnavailable}
	s, _ := newPaymentFixture(t, client, &fakeGateway{ready: true})

	_, err := s.History(context.Background())
	assert.ErrorIs(t, err, common.ErrUnavailable)
}
