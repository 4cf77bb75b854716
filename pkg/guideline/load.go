package guideline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// DefaultCatalogFile is the conventional name of the guideline catalog.
const DefaultCatalogFile = "journal_guidelines.json"

// record mirrors one catalog entry. Limit fields may be authored as strings
// or bare numbers, so they are decoded loosely and normalized to text.
type record struct {
	Journal           limitText `json:"journal"`
	ArticleType       limitText `json:"article_type"`
	TitleLimit        limitText `json:"title_limit"`
	AbstractLimit     limitText `json:"abstract_limit"`
	WordLimit         limitText `json:"word_limit"`
	FigureLimit       limitText `json:"figure_limit"`
	ReferenceLimit    limitText `json:"reference_limit"`
	Structure         limitText `json:"structure"`
	OtherRequirements limitText `json:"other_requirements"`
	LastAccessed      limitText `json:"last_accessed"`
}

// limitText accepts a JSON string, number or null.
type limitText string

func (l *limitText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = limitText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		if i, err := n.Int64(); err == nil {
			*l = limitText(strconv.FormatInt(i, 10))
		} else {
			*l = limitText(n.String())
		}
	}
	return nil
}

func (r record) guideline() core.Guideline {
	return core.Guideline{
		Journal:           string(r.Journal),
		ArticleType:       string(r.ArticleType),
		TitleLimit:        string(r.TitleLimit),
		AbstractLimit:     string(r.AbstractLimit),
		WordLimit:         string(r.WordLimit),
		FigureLimit:       string(r.FigureLimit),
		ReferenceLimit:    string(r.ReferenceLimit),
		Structure:         string(r.Structure),
		OtherRequirements: string(r.OtherRequirements),
		LastAccessed:      string(r.LastAccessed),
	}
}

// Parse decodes a JSON array of guideline records. Unknown fields are ignored.
func Parse(r io.Reader) ([]core.Guideline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read guidelines: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("unexpected guidelines format: expected a JSON array of entries")
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode guidelines: %w", err)
	}

	out := make([]core.Guideline, len(records))
	for i, rec := range records {
		out[i] = rec.guideline()
	}
	return out, nil
}

// Load reads the catalog file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open guideline catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCatalog(records), nil
}
