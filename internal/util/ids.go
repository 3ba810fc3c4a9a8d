package util

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// Identifiers are unique by convention only; no collection enforces
// uniqueness on insert.

// NewRecordID returns an opaque record id.
func NewRecordID() string {
	return uuid.NewString()
}

// NewNumericID returns a random numeric-string id below max.
func NewNumericID(max int) string {
	return strconv.Itoa(rand.Intn(max))
}

// NewExhibitionCode returns a human-facing EX-#### exhibition id with a
// 4-digit zero-padded random number.
func NewExhibitionCode() string {
	return fmt.Sprintf("EX-%04d", rand.Intn(10000))
}
