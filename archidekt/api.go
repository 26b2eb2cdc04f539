// Package archidekt retrieves decklists hosted on archidekt.com
// through its public deck API.
package archidekt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

const deckURL = "https://archidekt.com/api/decks/"

type Client struct {
	client *http.Client
}

func NewClient() *Client {
	ark := Client{}
	client := retryablehttp.NewClient()
	client.Logger = nil
	ark.client = client.StandardClient()
	return &ark
}

type deckResponse struct {
	Name  string     `json:"name"`
	Cards []deckCard `json:"cards"`
}

type deckCard struct {
	Quantity int `json:"quantity"`
	Card     struct {
		OracleCard struct {
			Name string `json:"name"`
		} `json:"oracleCard"`
		Name string `json:"name"`
	} `json:"card"`
}

func (dc deckCard) name() string {
	if dc.Card.OracleCard.Name != "" {
		return dc.Card.OracleCard.Name
	}
	return dc.Card.Name
}

// DeckList fetches a deck by numeric id and renders it as decklist
// text, one "quantity name" entry per line.
func (ark *Client) DeckList(ctx context.Context, deckId string) (string, error) {
	link := deckURL + deckId + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return "", err
	}
	resp, err := ark.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("archidekt import failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("archidekt import failed with status code %d (deck may be private)", resp.StatusCode)
	}

	var deck deckResponse
	err = json.NewDecoder(resp.Body).Decode(&deck)
	if err != nil {
		return "", fmt.Errorf("archidekt import failed: %w", err)
	}

	var lines []string
	for _, card := range deck.Cards {
		name := card.name()
		if name == "" {
			continue
		}
		qty := card.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, fmt.Sprintf("%d %s", qty, name))
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("archidekt deck %s loaded but the card list was empty", deckId)
	}

	return strings.Join(lines, "\n"), nil
}
