package payment

import (
	"context"
)

// Gateway is one payment provider's create and settle protocol.
type Gateway interface {
	Provider() Provider
	// CreateRemoteOrder registers the order with the provider.
	CreateRemoteOrder(ctx context.Context, req CreateRequest) (*RemoteOrder, error)
	// Settle confirms or rejects a payment. Provider or transport failures are
	// returned as errors wrapping ErrGatewayUnavailable, never as Rejected.
	Settle(ctx context.Context, req SettleRequest) (*Settlement, error)
}

// Gateways looks gateways up by provider.
type Gateways map[Provider]Gateway

func NewGateways(gws ...Gateway) Gateways {
	out := make(Gateways, len(gws))
	for _, gw := range gws {
		out[gw.Provider()] = gw
	}
	return out
}

func (g Gateways) Get(p Provider) (Gateway, error) {
	gw, ok := g[p]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return gw, nil
}
