package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed or freshly issued JWT bearer token.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header. SubjectID is a cached
// copy of the "sub" claim converted to int64; it identifies the caller for
// downstream handlers without re-parsing the token.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// SubjectID is the caller identifier extracted from the "sub" claim.
	SubjectID int64 `json:"-"`
}

// GetSubjectID extracts the caller identifier from the token's "sub" claim
// and parses it as a base-10 int64.
func (t *Token) GetSubjectID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(subject, 10, 64)
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
