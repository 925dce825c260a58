/*
Package randx provides functions for generating cryptographically secure random numbers and unique identifiers.

It is used to draw numeric user identities and to tag WebSocket connections with UUIDs for logging.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// IntRange returns a uniformly distributed integer in [min, max) using crypto/rand.
func IntRange(min, max int) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("invalid range [%d, %d)", min, max)
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}

	return min + int(num.Int64()), nil
}

// ConnectionID generates a standard UUID v4 string identifying a single transport connection.
func ConnectionID() string {
	return uuid.New().String()
}
