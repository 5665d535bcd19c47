package filelink

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues short-lived tokens that grant access to exactly one
// stored file. Uploaded identity documents are private, so the uploads
// directory is never served without a valid token; the only place links
// are handed out is the applicant's confirmation email.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	File string `json:"file"`
	jwt.RegisteredClaims
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

func (s *Signer) Sign(storedName string) (string, error) {
	c := claims{
		File: storedName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify checks the token and that it was issued for storedName.
func (s *Signer) Verify(tokenStr, storedName string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return jwt.ErrSignatureInvalid
	}
	if c.File != storedName {
		return errors.New("token does not match file")
	}
	return nil
}
