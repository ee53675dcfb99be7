package welstory

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// decodeTokenExpiry extracts the exp claim from a JWT-style bearer token
// without verifying its signature; the token is the server's to validate,
// the client only schedules refreshes off it. A token that cannot be decoded
// or lacks a numeric expiry fails fast rather than letting a zero deadline
// propagate.
func decodeTokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, &ClientError{
			Type:    ErrorTypeToken,
			Message: "token cannot be decoded",
			Cause:   err,
		}
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, &ClientError{
			Type:    ErrorTypeToken,
			Message: "token has no numeric exp claim",
			Cause:   err,
		}
	}
	return expiry.Time, nil
}
