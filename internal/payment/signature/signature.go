// Package signature verifies provider webhook signatures of the form
// "t=<unix>,v1=<hex>" where the hex value is an HMAC-SHA256 over
// "<unix>.<body>".
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Verifier checks webhook signature headers against a shared secret.
// A zero tolerance disables timestamp freshness checks.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// New returns a Verifier for the given secret and timestamp tolerance.
func New(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

// Configured reports whether a signing secret is set. An unconfigured
// verifier rejects everything; callers should treat that as a server
// fault, not an authentication failure.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify reports whether header carries a valid signature over body.
// The header holds comma-separated key=value pairs; field order is
// irrelevant, and any of the v1 values may match.
func (v *Verifier) Verify(header string, body []byte) bool {
	if header == "" || len(v.secret) == 0 {
		return false
	}

	var ts string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts = val
		case "v1":
			candidates = append(candidates, val)
		}
	}
	if ts == "" || len(candidates) == 0 {
		return false
	}

	if v.tolerance > 0 {
		unix, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return false
		}
		age := v.now().Sub(time.Unix(unix, 0))
		if age < 0 {
			age = -age
		}
		if age > v.tolerance {
			return false
		}
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(ts))
	mac.Write([]byte{'.'})
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if constantTimeEqual(expected, candidate) {
			return true
		}
	}
	return false
}

// constantTimeEqual compares two hex digests without early exit on the
// first differing byte. Length is checked up front; digests of the wrong
// length can never match anyway.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
