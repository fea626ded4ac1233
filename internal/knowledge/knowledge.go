// Package knowledge loads the advisor's investment knowledge base and
// retrieves the passages most relevant to a goal.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultContent seeds the knowledge base when no file exists yet.
const defaultContent = `# Basic Investment Knowledge

## ETFs
- VTI (Vanguard Total Stock Market): Broad US stock market exposure, medium risk
- BND (Vanguard Total Bond): US bond market exposure, low risk
- VXUS (Vanguard Total International Stock): International stock exposure, medium-high risk

## Robo-Advisors
- Betterment: Automated investing with tax optimization, adjustable risk
- Wealthfront: Automated investing with financial planning tools, adjustable risk
`

// Base is an in-memory knowledge base split into retrievable chunks.
type Base struct {
	chunks []string
}

// Load reads the knowledge base file, creating it with default content when
// it does not exist yet.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create knowledge dir: %w", mkErr)
		}
		if wrErr := os.WriteFile(path, []byte(defaultContent), 0o644); wrErr != nil {
			return nil, fmt.Errorf("seed knowledge base: %w", wrErr)
		}
		data = []byte(defaultContent)
	} else if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	return Parse(string(data)), nil
}

// Parse splits knowledge text into paragraph chunks.
func Parse(text string) *Base {
	var chunks []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			chunks = append(chunks, block)
		}
	}
	return &Base{chunks: chunks}
}

// Retrieve returns up to topK chunks ranked by keyword overlap with the
// query. Chunks with no overlap are omitted; an empty result means the
// caller should fall back to the full base.
func (b *Base) Retrieve(query string, topK int) []string {
	terms := tokenize(query)
	if len(terms) == 0 || topK <= 0 {
		return nil
	}

	type scored struct {
		chunk string
		score int
		index int
	}

	var ranked []scored
	for i, chunk := range b.chunks {
		chunkTerms := tokenize(chunk)
		score := 0
		for term := range terms {
			if chunkTerms[term] {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{chunk: chunk, score: score, index: i})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	results := make([]string, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, r.chunk)
	}
	return results
}

// All returns every chunk in document order.
func (b *Base) All() []string {
	return append([]string(nil), b.chunks...)
}

func tokenize(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if len(field) > 2 {
			terms[field] = true
		}
	}
	return terms
}
