// Package quotes supplies the short religious quotations attached to pre-prayer reminders.
package quotes

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrEmpty is returned by PickRandom when there is nothing to pick from
var ErrEmpty = errors.New("quotation source is empty")

//go:embed quotes.json
var builtin []byte

// Quote is a single quotation and where it comes from
type Quote struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

func (q Quote) String() string {
	if q.Reference == "" {
		return q.Text
	}
	return fmt.Sprintf("%s (%s)", q.Text, q.Reference)
}

// Source picks quotations at random. Safe for concurrent use.
type Source struct {
	quotes []Quote
}

// New creates a Source over the given quotations, skipping blank ones
func New(quotes []Quote) *Source {
	kept := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		q.Text = strings.TrimSpace(q.Text)
		q.Reference = strings.TrimSpace(q.Reference)
		if q.Text == "" {
			continue
		}
		kept = append(kept, q)
	}
	return &Source{quotes: kept}
}

// Builtin returns the quotations compiled into the binary
func Builtin() *Source {
	quotes, err := parse(builtin)
	if err != nil {
		// embedded file is part of the build
		panic(err)
	}
	return New(quotes)
}

// Load reads quotations from path on fs. An empty path or a missing file
// yields the built-in list; an unreadable file is an error.
func Load(fs afero.Fs, path string) (*Source, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No quotation override, using built-in list")
		return Builtin(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quotations: %w", err)
	}

	quotes, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quotations from %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("count", len(quotes)).Msg("Loaded quotation override")
	return New(quotes), nil
}

func parse(data []byte) ([]Quote, error) {
	var quotes []Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Len returns the number of usable quotations
func (s *Source) Len() int {
	return len(s.quotes)
}

// PickRandom returns a uniformly chosen quotation, or ErrEmpty
func (s *Source) PickRandom() (Quote, error) {
	if len(s.quotes) == 0 {
		return Quote{}, ErrEmpty
	}
	return s.quotes[rand.IntN(len(s.quotes))], nil
}
