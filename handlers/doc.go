// Package handlers wires the HTTP routes of the login example:
//
//	/login                          start the authorization-code flow
//	/authorization-code/callback    finish it and sign the user in
//	/logout                         destroy the session
//	/                               landing page
//	/users                          plain text placeholder
//	/profile                        signed-in users only
//
// ErrorPages renders 404, 405 and handler errors.
package handlers
