package services

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
)

const DeclinedReason = "Card declined (simulated)"

// Decision is the outcome of a payment authorization.
type Decision struct {
	Approved bool
	Reason   string
}

// PaymentAuthorizer decides whether a checkout may proceed. A real gateway
// plugs in here without touching order persistence.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, total decimal.Decimal, method string) Decision
}

// AlwaysApprove approves every payment.
type AlwaysApprove struct{}

func (AlwaysApprove) Authorize(context.Context, decimal.Decimal, string) Decision {
	return Decision{Approved: true}
}

// RandomDecline declines roughly Rate of all payments.
type RandomDecline struct {
	Rate float64
	// Float returns a value in [0,1); defaults to math/rand.
	Float func() float64
}

func (r RandomDecline) Authorize(context.Context, decimal.Decimal, string) Decision {
	draw := rand.Float64
	if r.Float != nil {
		draw = r.Float
	}
	if draw() < r.Rate {
		return Decision{Approved: false, Reason: DeclinedReason}
	}
	return Decision{Approved: true}
}

// NewPaymentAuthorizer picks RandomDecline for a positive rate and
// AlwaysApprove otherwise.
func NewPaymentAuthorizer(declineRate float64) PaymentAuthorizer {
	if declineRate > 0 {
		return RandomDecline{Rate: declineRate}
	}
	return AlwaysApprove{}
}
