package client

import "github.com/oshokin/advanced-http/internal/cookie"

// intercept wraps onSuccess so that a Set-Cookie response header is stored
// for the origin of url before onSuccess observes the response.
func (c *Client) intercept(url string, onSuccess SuccessFunc) SuccessFunc {
	return func(response *Response) {
		if response != nil {
			if value, ok := cookie.ResolveSetCookie(response.Headers); ok {
				c.cookies.Set(url, value)
			}
		}

		if onSuccess != nil {
			onSuccess(response)
		}
	}
}
