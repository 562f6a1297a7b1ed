// Package idgen generates the short URL-safe identifiers that posts and
// publications carry in their canonical URLs.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet keeps IDs strictly alphanumeric so they never need URL
// escaping and survive copy-paste intact.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	postIDLength        = 21
	publicationIDLength = 10
	publicationIDPrefix = "pub-"
)

// NewPostID returns a fresh post identifier.
func NewPostID() (string, error) {
	id, err := nanoid.Generate(alphabet, postIDLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return id, nil
}

// NewPublicationID returns a fresh publication identifier. The prefix
// makes publication IDs recognizable in paths like /u/{handle}/{id}.
func NewPublicationID() (string, error) {
	id, err := nanoid.Generate(alphabet, publicationIDLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return publicationIDPrefix + id, nil
}
