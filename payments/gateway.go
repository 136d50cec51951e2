package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/models"
)

// Outcome is the gateway's verdict on one charge attempt. A recognized
// decline comes back as a FAILED outcome with a reason, not as an error;
// errors are reserved for faults (unreachable gateway, misconfiguration).
type Outcome struct {
	Status         models.PaymentStatus
	FailureReason  string
	TransactionRef string
	GatewayRef     string
}

// Gateway settles card and mobile-money charges.
type Gateway interface {
	Charge(ctx context.Context, card *models.CardDetails, amount decimal.Decimal, currency string) (*Outcome, error)
}

type cardRule struct {
	status    models.PaymentStatus
	reason    string
	refPrefix string
}

// testCards mirrors the Stripe test card table. Any number not listed here
// is treated as a successful charge in simulation mode.
var testCards = map[string]cardRule{
	"4242424242424242": {status: models.PaymentStatusCompleted, refPrefix: "ch_test_"},
	"4000000000000002": {status: models.PaymentStatusFailed, reason: "Your card was declined", refPrefix: "ch_test_declined_"},
	"4000000000009995": {status: models.PaymentStatusFailed, reason: "Your card has insufficient funds", refPrefix: "ch_test_insufficient_"},
	"4000000000000069": {status: models.PaymentStatusFailed, reason: "Your card has expired", refPrefix: "ch_test_expired_"},
	"4000000000000127": {status: models.PaymentStatusFailed, reason: "Your card's security code is incorrect", refPrefix: "ch_test_cvc_"},
}

// Simulator resolves charges deterministically from the card number alone.
type Simulator struct{}

func (Simulator) Charge(_ context.Context, card *models.CardDetails, _ decimal.Decimal, _ string) (*Outcome, error) {
	number := NormalizeCardNumber(card.CardNumber)

	rule, ok := testCards[number]
	if !ok {
		rule = cardRule{status: models.PaymentStatusCompleted, refPrefix: "ch_test_"}
	}

	out := &Outcome{
		Status:         rule.status,
		FailureReason:  rule.reason,
		TransactionRef: rule.refPrefix + uuid.NewString(),
	}
	if rule.status == models.PaymentStatusCompleted {
		out.GatewayRef = fmt.Sprintf("ch_test_%d", time.Now().UnixMilli())
	}
	return out, nil
}

// NormalizeCardNumber strips all whitespace from a card number.
func NormalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// IsTestCard reports whether the number belongs to the known test ranges.
func IsTestCard(number string) bool {
	n := NormalizeCardNumber(number)
	return strings.HasPrefix(n, "4242") || strings.HasPrefix(n, "4000") || strings.HasPrefix(n, "5555")
}

// ProductionGateway is the real-gateway slot. Integration is deliberately
// out of scope: invoking it fails fast instead of attempting a charge.
type ProductionGateway struct{}

func (ProductionGateway) Charge(context.Context, *models.CardDetails, decimal.Decimal, string) (*Outcome, error) {
	return nil, fmt.Errorf("production payment gateway integration is %w, use test mode", apperrors.ErrNotConfigured)
}

// Processor routes charges: everything goes to the simulator in test mode,
// and known test cards go there even outside it.
type Processor struct {
	testMode bool
	sim      Simulator
	prod     Gateway
}

func NewProcessor(testMode bool) *Processor {
	return &Processor{testMode: testMode, prod: ProductionGateway{}}
}

func (p *Processor) Charge(ctx context.Context, card *models.CardDetails, amount decimal.Decimal, currency string) (*Outcome, error) {
	if p.testMode || IsTestCard(card.CardNumber) {
		return p.sim.Charge(ctx, card, amount, currency)
	}
	return p.prod.Charge(ctx, card, amount, currency)
}
