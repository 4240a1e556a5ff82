package middleware

// identity.go holds the helpers that read the authenticated caller back out
// of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
)

const sessionKey = "session"

// SessionFrom returns the session stored by JWTAuth.
func SessionFrom(c echo.Context) (auth.Session, bool) {
	sess, ok := c.Get(sessionKey).(auth.Session)
	return sess, ok
}

// subject identifies the caller for rate limit keys and request logs.  It
// returns "anon" when no session is present.
func subject(c echo.Context) string {
	if sess, ok := SessionFrom(c); ok && sess.AccountID != 0 {
		return strconv.FormatUint(sess.AccountID, 10)
	}
	return "anon"
}
