package client

import (
	"encoding/base64"

	"github.com/oshokin/advanced-http/internal/header"
)

// basicAuthPrefix is the scheme prefix of a Basic Authorization value.
const basicAuthPrefix = "Basic "

// GetBasicAuthHeader returns an Authorization header for the given credentials.
// Credentials are encoded as UTF-8 before base64, so non-ASCII input is safe.
func GetBasicAuthHeader(username, password string) header.Map {
	return header.Map{header.Authorization: basicAuthValue(username, password)}
}

// GetBasicAuthHeader returns an Authorization header for the given credentials.
func (c *Client) GetBasicAuthHeader(username, password string) header.Map {
	return GetBasicAuthHeader(username, password)
}

// UseBasicAuth sets the session Authorization header to the given credentials.
func (c *Client) UseBasicAuth(username, password string) {
	c.SetHeader(header.Authorization, basicAuthValue(username, password))
}

func basicAuthValue(username, password string) string {
	return basicAuthPrefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
