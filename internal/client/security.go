package client

import "context"

// EnableSSLPinning asks the transport to accept only pinned server certificates.
// The session records the new state once the transport confirms it.
func (c *Client) EnableSSLPinning(ctx context.Context, enable bool, onSuccess SuccessFunc, onFailure FailureFunc) {
	confirm := func(response *Response) {
		c.setSSLPinning(enable)

		if onSuccess != nil {
			onSuccess(response)
		}
	}

	c.toggle(ctx, ActionEnableSSLPinning, enable, confirm, onFailure)
}

// AcceptAllCerts asks the transport to skip server certificate verification.
func (c *Client) AcceptAllCerts(ctx context.Context, allow bool, onSuccess SuccessFunc, onFailure FailureFunc) {
	c.toggle(ctx, ActionAcceptAllCerts, allow, onSuccess, onFailure)
}

// ValidateDomainName asks the transport to check that certificates match the requested host.
func (c *Client) ValidateDomainName(ctx context.Context, validate bool, onSuccess SuccessFunc, onFailure FailureFunc) {
	c.toggle(ctx, ActionValidateDomainName, validate, onSuccess, onFailure)
}

func (c *Client) toggle(
	ctx context.Context,
	action Action,
	flag bool,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	if ctx == nil {
		ctx = context.Background()
	}

	if onSuccess == nil {
		onSuccess = func(*Response) {}
	}

	c.submit(ctx, &Request{Action: action, Flag: flag}, onSuccess, orNoopFailure(onFailure))
}
