package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingEndpoint is returned when one of the provider endpoints is empty.
	ErrMissingEndpoint = errors.New("oauth: missing provider endpoint")

	// ErrMissingEmail is returned when the userinfo response carries no email.
	ErrMissingEmail = errors.New("oauth: userinfo has no email")

	// ErrExchangeFailed is returned when the token endpoint rejects the code
	// or cannot be reached.
	ErrExchangeFailed = errors.New("oauth: code exchange failed")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the OAuth provider returns a non-OK status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the OAuth provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")

	// ErrDiscoveryFailed is returned when the issuer's OpenID configuration
	// cannot be fetched or lacks a required endpoint.
	ErrDiscoveryFailed = errors.New("oauth: provider discovery failed")
)
