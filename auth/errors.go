package auth

import "fmt"

// ErrVerifyTokenMismatch is returned when the client's RSA-decrypted
// verify token doesn't match the one the server sent in `hello`.
var ErrVerifyTokenMismatch = fmt.Errorf("auth: verify token mismatch")

// ErrAuthenticationFailed mirrors the session server's HTTP 204 response:
// the client never actually joined with Mojang.
var ErrAuthenticationFailed = fmt.Errorf("auth: authentication failed")

// ErrSessionServerUnavailable wraps any session-server error that isn't a
// clean 200/204.
type ErrSessionServerUnavailable struct {
	Status int
}

func (e *ErrSessionServerUnavailable) Error() string {
	return fmt.Sprintf("auth: session server unavailable (status %d)", e.Status)
}
