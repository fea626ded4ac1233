package marketdata

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestSymbolsForPreferences(t *testing.T) {
	tests := []struct {
		name        string
		preferences []string
		expected    []string
	}{
		{"ETF preference", []string{"ETF"}, []string{"VTI", "VXUS", "VGT"}},
		{"Stocks preference", []string{"stocks"}, []string{"VOO", "QQQ", "SPY"}},
		{"Bonds preference", []string{"bonds"}, []string{"BND", "BNDX", "AGG"}},
		{"Combined preferences deduplicate", []string{"ETF", "bonds"}, []string{"VTI", "VXUS", "VGT", "BND", "BNDX", "AGG"}},
		{"No preferences fall back to defaults", nil, []string{"VTI", "BND", "VXUS"}},
		{"Unknown preference falls back to defaults", []string{"crypto"}, []string{"VTI", "BND", "VXUS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SymbolsForPreferences(tt.preferences)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SymbolsForPreferences(%v) = %v, want %v", tt.preferences, got, tt.expected)
			}
		})
	}
}

func TestSimulatedProviderSnapshot(t *testing.T) {
	provider := NewSimulatedProvider()

	snap, err := provider.Snapshot(context.Background(), []string{"VTI", "BND", "UNKNOWN"})
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	if !snap.Simulated {
		t.Error("expected snapshot to be marked simulated")
	}
	if len(snap.Quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(snap.Quotes))
	}
	if snap.Quotes[0].Symbol != "VTI" || snap.Quotes[0].Price != 265.40 {
		t.Errorf("unexpected first quote: %+v", snap.Quotes[0])
	}
	if snap.Quotes[2].Price != 100.00 {
		t.Errorf("expected placeholder price for unknown symbol, got %.2f", snap.Quotes[2].Price)
	}
	if !strings.Contains(snap.Text, "VTI: latest trade $265.40 (simulated)") {
		t.Errorf("snapshot text missing VTI line: %q", snap.Text)
	}
}

func TestSimulatedProviderRespectsContext(t *testing.T) {
	provider := NewSimulatedProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Snapshot(ctx, []string{"VTI"}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
