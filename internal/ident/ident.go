// Package ident generates opaque primary-key identifiers.
package ident

import (
	"encoding/hex"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// New returns a globally unique opaque identifier. It prefers a random
// UUID; if the secure entropy source fails it falls back to a
// pseudo-random hex id so id generation itself can never fail.
func New() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

func fallbackID() string {
	segment := func() string {
		var b [4]byte
		rand.Read(b[:]) //nolint:errcheck // math/rand never fails
		return hex.EncodeToString(b[:])
	}
	return fmt.Sprintf("%s-%s-%s-%s", segment(), segment(), segment(), segment())
}
