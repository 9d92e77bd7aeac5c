// Package auth implements the AuthEncoder component (§4.3): Basic, Bearer,
// JWT (12 algorithms x 5 secret formats) and Digest (full RFC 7616
// challenge/response).
package auth

import "encoding/base64"

// BasicHeader returns the standard Basic authorization header value.
// Variable resolution on username/password happens before this call (§4.3).
func BasicHeader(username, password string) string {
	raw := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// BearerHeader returns the standard Bearer authorization header value.
func BearerHeader(token string) string {
	return "Bearer " + token
}
