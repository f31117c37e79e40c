package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"darwin/internal/token"
)

// TokenStats counts tokens per kind.
type TokenStats struct {
	Files  int
	Total  int
	Bytes  uint32
	counts map[token.Kind]int
}

// CountTokens adds the tokens of one file to s.
func (s *TokenStats) CountTokens(tokens []token.Token) {
	if s.counts == nil {
		s.counts = make(map[token.Kind]int)
	}
	s.Files++
	for _, tok := range tokens {
		s.counts[tok.Kind]++
		s.Total++
		s.Bytes += tok.Range.Len()
	}
}

// Count returns the number of tokens of kind k.
func (s *TokenStats) Count(k token.Kind) int {
	return s.counts[k]
}

// FormatStats печатает таблицу: вид токена, количество, доля.
// Kinds that never occurred are left out.
func FormatStats(w io.Writer, s *TokenStats, opts TokenOpts) error {
	p := palette{on: opts.Color}
	for _, k := range token.Kinds() {
		n := s.counts[k]
		if n == 0 {
			continue
		}
		share := 100 * float64(n) / float64(s.Total)
		if _, err := fmt.Fprintf(w, "%s %8d  %5.1f%%\n", p.kind(k, fmt.Sprintf("%-22s", k)), n, share); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-22s %8d  (%d files, %d bytes)\n", "total", s.Total, s.Files, s.Bytes)
	return err
}

// FormatStatsJSON writes {"files":..,"total":..,"bytes":..,"kinds":{..}}.
func FormatStatsJSON(w io.Writer, s *TokenStats) error {
	kinds := make(map[string]int, len(s.counts))
	for k, n := range s.counts {
		kinds[k.String()] = n
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Files int            `json:"files"`
		Total int            `json:"total"`
		Bytes uint32         `json:"bytes"`
		Kinds map[string]int `json:"kinds"`
	}{s.Files, s.Total, s.Bytes, kinds})
}
