package scryfall

import (
	"math"
	"strconv"
)

// Card is a read-only snapshot of a single printing as returned by the
// catalog. Prices are decimal strings keyed by finish, and may be empty
// when a finish was never printed or never sold.
type Card struct {
	Id              string   `json:"id"`
	OracleId        string   `json:"oracle_id"`
	Name            string   `json:"name"`
	TypeLine        string   `json:"type_line"`
	ColorIdentity   []string `json:"color_identity"`
	ManaValue       *float64 `json:"cmc"`
	OracleText      string   `json:"oracle_text"`
	Reserved        bool     `json:"reserved"`
	ScryfallURI     string   `json:"scryfall_uri"`
	PrintsSearchURI string   `json:"prints_search_uri"`

	Prices    CardPrices  `json:"prices"`
	ImageURIs *CardImages `json:"image_uris"`
	CardFaces []CardFace  `json:"card_faces"`
}

type CardPrices struct {
	USD       string `json:"usd"`
	USDFoil   string `json:"usd_foil"`
	USDEtched string `json:"usd_etched"`
}

type CardImages struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type CardFace struct {
	Name       string      `json:"name"`
	TypeLine   string      `json:"type_line"`
	OracleText string      `json:"oracle_text"`
	ImageURIs  *CardImages `json:"image_uris"`
}

// LowestUSD returns the cheapest available price across all finishes.
// A finish is considered only when its price parses to a positive
// finite number. Returns false when no finish has a valid price.
func (c *Card) LowestUSD() (float64, bool) {
	lowest := 0.0
	found := false
	for _, tag := range []string{c.Prices.USD, c.Prices.USDFoil, c.Prices.USDEtched} {
		if tag == "" {
			continue
		}
		price, err := strconv.ParseFloat(tag, 64)
		if err != nil || math.IsInf(price, 0) || math.IsNaN(price) || price <= 0 {
			continue
		}
		if !found || price < lowest {
			lowest = price
			found = true
		}
	}
	return lowest, found
}

// ImageURL returns the normal-size card image, falling back to the
// front face for multi-faced cards that have no top-level image.
func (c *Card) ImageURL() string {
	if c.ImageURIs != nil {
		return c.ImageURIs.Normal
	}
	if len(c.CardFaces) > 0 && c.CardFaces[0].ImageURIs != nil {
		return c.CardFaces[0].ImageURIs.Normal
	}
	return ""
}
