// Package deckimport recognizes deck URLs or bare ids from supported
// deck-building sites and retrieves the decklist text.
package deckimport

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mtgswap/go-mtgswap/archidekt"
	"github.com/mtgswap/go-mtgswap/moxfield"
)

// ErrUnrecognizedURL means the input is not a supported deck URL or id,
// as opposed to a supported deck that failed to download.
var ErrUnrecognizedURL = errors.New("not a recognized Archidekt or Moxfield deck URL or id")

type Site string

const (
	SiteArchidekt Site = "archidekt"
	SiteMoxfield  Site = "moxfield"
)

var (
	moxfieldURL  = regexp.MustCompile(`(?i)moxfield\.com/decks/([A-Za-z0-9_-]+)`)
	archidektURL = regexp.MustCompile(`(?i)archidekt\.com/decks/(\d+)`)

	bareNumber     = regexp.MustCompile(`^\d+$`)
	moxfieldBareId = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)
)

// ParseDeckURL detects which site a deck URL or bare id belongs to.
// A bare number is an Archidekt id, a longer url-safe token a Moxfield
// one.
func ParseDeckURL(input string) (Site, string, error) {
	input = strings.TrimSpace(input)

	fields := moxfieldURL.FindStringSubmatch(input)
	if fields != nil {
		return SiteMoxfield, fields[1], nil
	}
	fields = archidektURL.FindStringSubmatch(input)
	if fields != nil {
		return SiteArchidekt, fields[1], nil
	}

	if bareNumber.MatchString(input) {
		return SiteArchidekt, input, nil
	}
	if moxfieldBareId.MatchString(input) {
		return SiteMoxfield, input, nil
	}

	return "", "", ErrUnrecognizedURL
}

// Importer dispatches deck downloads to the site-specific clients.
type Importer struct {
	archidekt *archidekt.Client
	moxfield  *moxfield.Client
}

func NewImporter() *Importer {
	return &Importer{
		archidekt: archidekt.NewClient(),
		moxfield:  moxfield.NewClient(),
	}
}

// ImportFromURL returns the decklist text for a supported deck URL or
// bare id.
func (imp *Importer) ImportFromURL(ctx context.Context, input string) (string, error) {
	site, deckId, err := ParseDeckURL(input)
	if err != nil {
		return "", err
	}

	switch site {
	case SiteArchidekt:
		return imp.archidekt.DeckList(ctx, deckId)
	case SiteMoxfield:
		return imp.moxfield.DeckList(ctx, deckId)
	}

	return "", fmt.Errorf("unsupported site %q", site)
}
