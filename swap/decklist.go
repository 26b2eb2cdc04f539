package swap

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is a single parsed decklist row.
type Entry struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Raw      string `json:"raw"`
}

var quantityLine = regexp.MustCompile(`(?i)^(\d+)\s*x?\s+(.+)$`)

// ParseDecklist turns raw multi-line decklist text into entries,
// preserving input order. Blank lines and comments (# or //) are
// skipped. A leading integer quantity with an optional x suffix is
// honored, otherwise the quantity defaults to 1 and the whole line is
// taken as the card name. Duplicate names pass through as separate
// entries, never merged.
func ParseDecklist(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		fields := quantityLine.FindStringSubmatch(line)
		if fields != nil {
			qty, err := strconv.Atoi(fields[1])
			if err == nil && qty > 0 {
				entries = append(entries, Entry{
					Quantity: qty,
					Name:     CleanCardName(fields[2]),
					Raw:      line,
				})
				continue
			}
		}

		entries = append(entries, Entry{
			Quantity: 1,
			Name:     CleanCardName(line),
			Raw:      line,
		})
	}
	return entries
}
