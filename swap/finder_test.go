package swap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mtgswap/go-mtgswap/scryfall"
)

type fakeCatalog struct {
	cards map[string]*scryfall.Card
	pool  []scryfall.Card
	err   error

	lastQuery string
	lastCap   int
}

func (fc *fakeCatalog) LookupByName(ctx context.Context, name string) (*scryfall.Card, error) {
	card, found := fc.cards[name]
	if !found {
		return nil, &scryfall.LookupError{Name: name, StatusCode: 404}
	}
	return card, nil
}

func (fc *fakeCatalog) SearchMany(ctx context.Context, query string, maxCards int) ([]scryfall.Card, error) {
	fc.lastQuery = query
	fc.lastCap = maxCards
	if fc.err != nil {
		return nil, fc.err
	}
	if len(fc.pool) > maxCards {
		return fc.pool[:maxCards], nil
	}
	return fc.pool, nil
}

func usd(price string) scryfall.CardPrices {
	return scryfall.CardPrices{USD: price}
}

var rhysticStudy = &scryfall.Card{
	Id:              "rs-1",
	OracleId:        "oracle-rhystic",
	Name:            "Rhystic Study",
	TypeLine:        "Enchantment",
	ManaValue:       mv(3),
	OracleText:      "Whenever an opponent casts a spell, you may draw a card unless that player pays {1}.",
	ColorIdentity:   []string{"U"},
	PrintsSearchURI: "prints-rhystic",
	Prices:          usd("35.00"),
}

func TestBuildQuery(t *testing.T) {
	finder := NewFinder(&fakeCatalog{})

	query := finder.BuildQuery(rhysticStudy, SubstituteOptions{
		MaxPrice:        5,
		ExcludeReserved: true,
	})
	expected := `f:commander game:paper id<=u usd<=5 usd>0 -oracleid:oracle-rhystic !"Rhystic Study" -is:reserved`
	if query != expected {
		t.Errorf("FAIL: Expected '%s' got '%s'", expected, query)
	}

	colorless := &scryfall.Card{Name: "Sol Ring"}
	query = finder.BuildQuery(colorless, SubstituteOptions{MaxPrice: 2.5})
	expected = `f:commander game:paper id:c usd<=2.5 usd>0 !"Sol Ring"`
	if query != expected {
		t.Errorf("FAIL: Expected '%s' got '%s'", expected, query)
	}
}

func TestFindSubstitutesFiltering(t *testing.T) {
	catalog := &fakeCatalog{
		pool: []scryfall.Card{
			// Reprint of the target, slips past the query exclusion
			{Id: "rs-2", OracleId: "oracle-rhystic", Name: "Rhystic Study", TypeLine: "Enchantment", Prices: usd("20.00")},
			// Same name after normalization, no oracle id
			{Id: "rs-3", Name: "RHYSTIC  STUDY", TypeLine: "Enchantment", Prices: usd("1.00")},
			// No valid price
			{Id: "np-1", OracleId: "oracle-np", Name: "Priceless Relic", TypeLine: "Enchantment"},
			// Over the cap despite the query-side filter
			{Id: "ex-1", OracleId: "oracle-ex", Name: "Expensive Study", TypeLine: "Enchantment", Prices: usd("9.00")},
			// Legitimate candidate
			{Id: "ok-1", OracleId: "oracle-ok", Name: "Curious Obsession", TypeLine: "Enchantment", ManaValue: mv(1), Prices: usd("2.50")},
		},
	}

	finder := NewFinder(catalog)
	out, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{MaxPrice: 5})
	if err != nil {
		t.Fatalf("FAIL: Unexpected error: %s", err.Error())
	}

	if len(out) != 1 {
		t.Fatalf("FAIL: Expected 1 candidate got %d: %+v", len(out), out)
	}
	if out[0].Card.Id != "ok-1" {
		t.Errorf("FAIL: Expected ok-1 got %s", out[0].Card.Id)
	}
	if out[0].Price != 2.5 {
		t.Errorf("FAIL: Expected price 2.5 got %f", out[0].Price)
	}
	if out[0].Price <= 0 || out[0].Price > 5 {
		t.Errorf("FAIL: Price %f outside (0, 5]", out[0].Price)
	}
	if catalog.lastCap != defaultPoolSize {
		t.Errorf("FAIL: Expected pool cap %d got %d", defaultPoolSize, catalog.lastCap)
	}
}

func TestFindSubstitutesOrdering(t *testing.T) {
	catalog := &fakeCatalog{
		pool: []scryfall.Card{
			{Id: "a", OracleId: "oracle-a", Name: "Card A", TypeLine: "Enchantment", Prices: usd("3.00")},
			{Id: "b", OracleId: "oracle-b", Name: "Card B", TypeLine: "Enchantment", Prices: usd("1.50")},
			{Id: "c", OracleId: "oracle-c", Name: "Card C", TypeLine: "Sorcery", Prices: usd("0.10")},
		},
	}

	finder := NewFinder(catalog)
	out, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{MaxPrice: 5})
	if err != nil {
		t.Fatalf("FAIL: Unexpected error: %s", err.Error())
	}

	if len(out) != 3 {
		t.Fatalf("FAIL: Expected 3 candidates got %d", len(out))
	}
	// A and B share the enchantment bonus, B is cheaper; C scores lower
	if out[0].Card.Id != "b" || out[1].Card.Id != "a" || out[2].Card.Id != "c" {
		t.Errorf("FAIL: Expected order b,a,c got %s,%s,%s", out[0].Card.Id, out[1].Card.Id, out[2].Card.Id)
	}
}

func TestFindSubstitutesDeduplication(t *testing.T) {
	// Two printings of the same oracle identity with different prices
	catalog := &fakeCatalog{
		pool: []scryfall.Card{
			{Id: "p1", OracleId: "oracle-dup", Name: "Budget Study", TypeLine: "Enchantment", Prices: usd("4.00")},
			{Id: "p2", OracleId: "oracle-dup", Name: "Budget Study", TypeLine: "Enchantment", Prices: usd("2.00")},
		},
	}

	finder := NewFinder(catalog)
	out, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{MaxPrice: 5})
	if err != nil {
		t.Fatalf("FAIL: Unexpected error: %s", err.Error())
	}

	if len(out) != 1 {
		t.Fatalf("FAIL: Expected 1 candidate after dedup got %d", len(out))
	}
	if out[0].Card.Id != "p2" {
		t.Errorf("FAIL: Expected the cheaper printing p2, got %s", out[0].Card.Id)
	}
}

func TestFindSubstitutesFailure(t *testing.T) {
	catalog := &fakeCatalog{
		err: &scryfall.SearchError{Query: "whatever", StatusCode: 503},
	}

	finder := NewFinder(catalog)
	_, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{})
	if err == nil {
		t.Fatal("FAIL: Expected an error from a failing catalog")
	}

	var searchErr *scryfall.SearchError
	if !errors.As(err, &searchErr) {
		t.Errorf("FAIL: Expected a SearchError, got %T", err)
	}
	if !strings.Contains(err.Error(), "Rhystic Study") {
		t.Errorf("FAIL: Error should name the target: %s", err.Error())
	}
}

func TestFindSubstitutesEmptyPool(t *testing.T) {
	finder := NewFinder(&fakeCatalog{})
	out, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{})
	if err != nil {
		t.Fatalf("FAIL: Zero matches must not be an error: %s", err.Error())
	}
	if len(out) != 0 {
		t.Errorf("FAIL: Expected empty list got %d", len(out))
	}
}

func TestFindSubstitutesPriceCoercion(t *testing.T) {
	catalog := &fakeCatalog{}
	finder := NewFinder(catalog)

	_, err := finder.FindSubstitutes(context.Background(), rhysticStudy, SubstituteOptions{MaxPrice: -3})
	if err != nil {
		t.Fatalf("FAIL: Unexpected error: %s", err.Error())
	}
	if !strings.Contains(catalog.lastQuery, "usd<=10") {
		t.Errorf("FAIL: Invalid price cap should coerce to 10: %s", catalog.lastQuery)
	}
}

func TestIsSameCardOrPrinting(t *testing.T) {
	base := &scryfall.Card{OracleId: "oracle-x", Name: "Some Card"}

	// Shared oracle identity wins even with different names
	if !IsSameCardOrPrinting(base, &scryfall.Card{OracleId: "oracle-x", Name: "Some Card (Etched)"}) {
		t.Error("FAIL: Shared oracle id should match")
	}
	// Normalized names match with no oracle identity on either side
	if !IsSameCardOrPrinting(&scryfall.Card{Name: "Lim-Dûl's Vault"}, &scryfall.Card{Name: "Lim-Dul's  Vault"}) {
		t.Error("FAIL: Normalized names should match")
	}
	// Shared prints group
	if !IsSameCardOrPrinting(
		&scryfall.Card{Name: "A", PrintsSearchURI: "prints-1"},
		&scryfall.Card{Name: "B", PrintsSearchURI: "prints-1"}) {
		t.Error("FAIL: Shared prints group should match")
	}
	if IsSameCardOrPrinting(base, &scryfall.Card{OracleId: "oracle-y", Name: "Other Card"}) {
		t.Error("FAIL: Distinct cards should not match")
	}
	if IsSameCardOrPrinting(nil, base) {
		t.Error("FAIL: nil should never match")
	}
}
