// Package webhook handles submission notifications posted by the form
// service and turns them into dataset refreshes.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-TRL-Signature-256"

// VerifySignature validates a "sha256=<hex>" signature against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// SubmissionEvent is the part of a posted form entry the service uses.
// Gravity Forms sends ids as strings.
type SubmissionEvent struct {
	EntryID string `json:"id"`
	FormID  string `json:"form_id"`
}

// ParseEvent decodes a submission notification body.
func ParseEvent(body []byte) (*SubmissionEvent, error) {
	var e SubmissionEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("parse submission event: %w", err)
	}
	if e.EntryID == "" {
		return nil, fmt.Errorf("submission event has no entry id")
	}
	return &e, nil
}
