package recipient

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"

	"handoff/internal/pkg/errs"
)

const tokenBytes = 16

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Token is the bearer credential embedded in a share link.
type Token string

func NewToken() (Token, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return Token(hex.EncodeToString(b)), nil
}

func ParseToken(s string) (Token, error) {
	if !tokenPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidError("token")
	}
	return Token(s), nil
}

func (t Token) String() string {
	return string(t)
}
