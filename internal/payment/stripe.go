package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeGateway charges through Stripe's legacy charge API with a
// client-supplied card token, matching the storefront's payment form.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:       stripe.Int64(req.AmountCents),
		Currency:     stripe.String(req.Currency),
		Description:  stripe.String(req.Description),
		ReceiptEmail: stripe.String(req.ReceiptEmail),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	if err := params.SetSource(req.Token); err != nil {
		return ChargeResult{}, &GatewayError{Kind: KindInvalidToken, Msg: "unusable payment token", Err: err}
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		return ChargeResult{}, translateStripeError(err)
	}
	return ChargeResult{ChargeID: ch.ID}, nil
}

func translateStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		switch se.Type {
		case stripe.ErrorTypeCard:
			return &GatewayError{Kind: KindDeclined, Msg: se.Msg, Err: err}
		case stripe.ErrorTypeInvalidRequest:
			return &GatewayError{Kind: KindInvalidToken, Msg: se.Msg, Err: err}
		default:
			return &GatewayError{Kind: KindNetwork, Msg: se.Msg, Err: err}
		}
	}
	return &GatewayError{Kind: KindNetwork, Msg: "payment processor unreachable", Err: err}
}
