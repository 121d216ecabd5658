package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

const dayLayout = "20060102"

var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a correctly signed token issued for another day.
	ErrTokenExpired = errors.New("token expired")
)

// DaySigner issues HMAC-SHA256 tokens bound to a subject and a calendar day.
type DaySigner struct {
	secret []byte
}

// NewDaySigner constructs a signer with the provided secret.
func NewDaySigner(secret string) *DaySigner {
	return &DaySigner{secret: []byte(secret)}
}

// Sign returns "<yyyymmdd>.<hex mac>" for subject on the calendar day of t.
func (s *DaySigner) Sign(subject string, t time.Time) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject required")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret missing")
	}
	day := t.Format(dayLayout)
	return day + "." + s.mac(subject, day), nil
}

// Verify checks that token was issued for subject on the calendar day of now.
func (s *DaySigner) Verify(subject, token string, now time.Time) error {
	day, signature, ok := strings.Cut(token, ".")
	if !ok || len(day) != len(dayLayout) {
		return ErrInvalidToken
	}
	if _, err := time.Parse(dayLayout, day); err != nil {
		return ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.mac(subject, day)), []byte(signature)) {
		return ErrInvalidToken
	}
	if day != now.Format(dayLayout) {
		return ErrTokenExpired
	}
	return nil
}

func (s *DaySigner) mac(subject, day string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(subject + "|" + day))
	return hex.EncodeToString(mac.Sum(nil))
}
