// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCreatorKey = errors.New("invalid creator key")

// GenerateCreatorKey creates an HMAC-based creator key for a poll.
// This is deterministic and verifiable, so it is never stored.
func GenerateCreatorKey(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCreatorKey checks if the provided creator key is valid for the poll
func ValidateCreatorKey(pollID, creatorKey, salt string) error {
	expected := GenerateCreatorKey(pollID, salt)
	if !hmac.Equal([]byte(creatorKey), []byte(expected)) {
		return ErrInvalidCreatorKey
	}
	return nil
}

// GenerateVoterToken creates a random secure token identifying a guest voter.
// Clients persist it and reuse it for every vote, which is what makes the
// one-vote-per-voter check hold for unauthenticated participants.
func GenerateVoterToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
