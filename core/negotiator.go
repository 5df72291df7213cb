package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/jastalk/interview-core/core/transport"
)

// bundleConnector is the slice of the transport the negotiator needs.
type bundleConnector interface {
	Connect(ctx context.Context, bundle transport.Bundle) error
}

// ConnectionNegotiator connects a transport that has no blessed single
// start call by trying credential bundle shapes in fixed priority order
// until one is accepted. This is a compatibility shim for an unstable
// connect contract, not a negotiation with the server: the (url, token)
// pair is authoritative and identical in every shape.
type ConnectionNegotiator struct {
	client bundleConnector
}

func NewConnectionNegotiator(client bundleConnector) *ConnectionNegotiator {
	return &ConnectionNegotiator{client: client}
}

// Negotiate tries each bundle shape once, in order, stopping at the first
// accepted connect. When every shape is rejected it fails with a
// NegotiationExhaustedError listing the attempted shapes.
func (n *ConnectionNegotiator) Negotiate(ctx context.Context, url, token string) (transport.Bundle, error) {
	var attempted []string
	var attemptErrs []error

	for _, bundle := range transport.Bundles(url, token) {
		if err := ctx.Err(); err != nil {
			return transport.Bundle{}, fmt.Errorf("connection negotiation aborted: %w", err)
		}

		err := n.client.Connect(ctx, bundle)
		if err == nil {
			return bundle, nil
		}

		logger.DebugContext(ctx, "connect attempt rejected",
			"bundle", bundle.Name, "error", err)
		attempted = append(attempted, bundle.Name)
		attemptErrs = append(attemptErrs, fmt.Errorf("bundle %s: %w", bundle.Name, err))
	}

	return transport.Bundle{}, &NegotiationExhaustedError{
		Attempted: attempted,
		Err:       errors.Join(attemptErrs...),
	}
}
