// Package moxfield retrieves decklists hosted on moxfield.com through
// its public deck API.
package moxfield

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

const deckURL = "https://api2.moxfield.com/v2/decks/all/"

type Client struct {
	client *http.Client
}

func NewClient() *Client {
	mox := Client{}
	client := retryablehttp.NewClient()
	client.Logger = nil
	mox.client = client.StandardClient()
	return &mox
}

type deckResponse struct {
	Name      string               `json:"name"`
	Mainboard map[string]deckEntry `json:"mainboard"`
}

type deckEntry struct {
	Quantity int `json:"quantity"`
	Card     struct {
		Name string `json:"name"`
	} `json:"card"`
}

// DeckList fetches a deck by public id and renders its mainboard as
// decklist text, one "quantity name" entry per line.
func (mox *Client) DeckList(ctx context.Context, deckId string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deckURL+deckId, http.NoBody)
	if err != nil {
		return "", err
	}
	resp, err := mox.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("moxfield import failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("moxfield import failed with status code %d (deck may be private)", resp.StatusCode)
	}

	var deck deckResponse
	err = json.NewDecoder(resp.Body).Decode(&deck)
	if err != nil {
		return "", fmt.Errorf("moxfield import failed: %w", err)
	}

	var lines []string
	for name, entry := range deck.Mainboard {
		cardName := entry.Card.Name
		if cardName == "" {
			cardName = name
		}
		qty := entry.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, fmt.Sprintf("%d %s", qty, cardName))
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("moxfield deck %s loaded but the card list was empty", deckId)
	}

	return strings.Join(lines, "\n"), nil
}
