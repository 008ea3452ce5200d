package market

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "papertrade/internal/errors"
)

func TestDefault(t *testing.T) {
	snap := Default()
	if snap.Len() != 8 {
		t.Fatalf("expected 8 stocks, got %d", snap.Len())
	}

	aapl, err := snap.Lookup("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aapl.Name != "Apple Inc." || aapl.Price.String() != "182.45" || aapl.Change.String() != "2.35" {
		t.Errorf("unexpected AAPL quote: %+v", aapl)
	}

	nv, err := snap.Lookup("NVIDIA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv.Price.String() != "875.29" {
		t.Errorf("expected 875.29, got %s", nv.Price)
	}
}

func TestLookup(t *testing.T) {
	snap := Default()

	t.Run("case insensitive", func(t *testing.T) {
		for _, in := range []string{"msft", " Msft ", "MSFT"} {
			st, err := snap.Lookup(in)
			if err != nil {
				t.Fatalf("lookup %q: %v", in, err)
			}
			if st.Symbol != "MSFT" {
				t.Errorf("expected MSFT, got %s", st.Symbol)
			}
		}
	})

	t.Run("unknown symbol is not found", func(t *testing.T) {
		_, err := snap.Lookup("ZZZZ")
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound, got %v", err)
		}
	})
}

func TestListIsSortedCopy(t *testing.T) {
	snap := Default()
	list := snap.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Symbol >= list[i].Symbol {
			t.Fatalf("list not sorted at %d: %s >= %s", i, list[i-1].Symbol, list[i].Symbol)
		}
	}

	list[0].Name = "mutated"
	if snap.List()[0].Name == "mutated" {
		t.Error("List must return a copy")
	}
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		snap, err := Parse([]byte(`
[[stocks]]
symbol = "ibm"
name = "IBM"
price = "170.10"
change = "-0.40"

[[stocks]]
symbol = "ORCL"
name = "Oracle"
price = "120"
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ibm, err := snap.Lookup("IBM")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ibm.Price.String() != "170.1" || ibm.Change.String() != "-0.4" {
			t.Errorf("unexpected quote %+v", ibm)
		}
		orcl, _ := snap.Lookup("orcl")
		if !orcl.Change.IsZero() {
			t.Errorf("missing change should be zero, got %s", orcl.Change)
		}
	})

	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"missing symbol", "[[stocks]]\nname = \"x\"\nprice = \"1\"\n"},
		{"bad price", "[[stocks]]\nsymbol = \"X\"\nprice = \"abc\"\n"},
		{"non-positive price", "[[stocks]]\nsymbol = \"X\"\nprice = \"0\"\n"},
		{"not toml", "{{{"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.toml")
	if err := os.WriteFile(path, []byte("[[stocks]]\nsymbol = \"AAPL\"\nname = \"Apple\"\nprice = \"1.50\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("expected 1 stock, got %d", snap.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
