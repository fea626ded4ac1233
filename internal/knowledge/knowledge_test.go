package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSeedsDefaultContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "investment_knowledge.txt")

	base, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(base.All()) == 0 {
		t.Fatal("expected seeded base to have chunks")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected knowledge file to be created: %v", err)
	}
	if !strings.Contains(string(data), "VTI (Vanguard Total Stock Market)") {
		t.Error("seeded file missing default ETF entries")
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	content := "## Custom\n- Something custom\n\n## Other\n- Another entry\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	base, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := len(base.All()); got != 2 {
		t.Errorf("expected 2 chunks, got %d", got)
	}
}

func TestRetrieveRanksByOverlap(t *testing.T) {
	base := Parse(`## ETFs
- VTI: broad stock market exposure

## Bonds
- BND: bond market exposure, low risk

## Robo-Advisors
- Betterment: automated investing`)

	results := base.Retrieve("low risk bond exposure", 2)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if !strings.Contains(results[0], "BND") {
		t.Errorf("expected bond chunk ranked first, got %q", results[0])
	}
}

func TestRetrieveNoOverlap(t *testing.T) {
	base := Parse("## ETFs\n- VTI: broad market")

	if results := base.Retrieve("zzz qqq", 3); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}
