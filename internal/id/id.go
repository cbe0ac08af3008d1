// Package id generates prefixed, URL-safe identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SessionPrefix is the default prefix for wizard session IDs.
const SessionPrefix = "trip"

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "trip-V1StGXR8_Z5jdHi6B-myT").
// An empty prefix yields the bare NanoID.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	if prefix == "" {
		return id, nil
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
