package ranking

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// LoadRoster reads entries from CSV with an id,name,score header.
func LoadRoster(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return entries, nil
}

// WriteRoster writes entries as CSV with a header row.
func WriteRoster(w io.Writer, entries []Entry) error {
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	return nil
}

// WriteHistory writes claims as CSV with a header row.
func WriteHistory(w io.Writer, claims []Claim) error {
	if err := gocsv.Marshal(claims, w); err != nil {
		return fmt.Errorf("writing claim history: %w", err)
	}
	return nil
}
