// Package auth implements the OAuth2 authorization-code login flow on top
// of an oauth.Provider and defines the User record kept in the session.
//
// A login is two requests. Begin produces the state and the provider URL
// the browser is sent to. When the provider redirects back, the caller
// checks the state with CheckState and passes the code to Complete, which
// exchanges it for a token and fetches the user within one deadline.
//
// The token itself is never returned or stored.
package auth
