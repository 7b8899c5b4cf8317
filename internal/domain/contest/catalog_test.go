package contest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
)

const sampleCatalog = `
default: t20
formats:
  - key: t20
    version: 2
    roster_size: 11
    credit_cap: 100.0
    roles:
      WK: [1, 4]
      batter: [3, 6]
      all-rounder: [1, 4]
      BOWL: [3, 6]
  - key: t10-mini
    roster_size: 6
    credit_cap: "60.5"
    roles:
      WK: [1, 2]
      BAT: [1, 3]
      AR: [1, 2]
      BOWL: [1, 3]
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}

	def, err := catalog.Resolve("")
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	if def.Key != "t20" || def.Version != 2 {
		t.Fatalf("unexpected default format: %+v", def)
	}
	if def.CreditCap != 10000 {
		t.Fatalf("expected cap 10000 units, got %d", def.CreditCap)
	}
	if got := def.RoleBounds[player.RoleBatter]; got != (Bounds{Min: 3, Max: 6}) {
		t.Fatalf("unexpected batter bounds: %+v", got)
	}

	mini, err := catalog.Resolve("t10-mini")
	if err != nil {
		t.Fatalf("resolve t10-mini: %v", err)
	}
	if mini.CreditCap != 6050 || mini.RosterSize != 6 || mini.Version != 1 {
		t.Fatalf("unexpected mini format: %+v", mini)
	}

	if _, err := catalog.Resolve("odi"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if got := catalog.Keys(); len(got) != 2 || got[0] != "t10-mini" || got[1] != "t20" {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestParseCatalog_RejectsMalformedFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "unknown role",
			raw: `
formats:
  - key: x
    roster_size: 11
    credit_cap: 100
    roles:
      coach: [1, 1]
`,
		},
		{
			name: "min above max",
			raw: `
formats:
  - key: x
    roster_size: 2
    credit_cap: 100
    roles:
      WK: [3, 1]
`,
		},
		{
			name: "bounds cannot fill roster",
			raw: `
formats:
  - key: x
    roster_size: 11
    credit_cap: 100
    roles:
      WK: [1, 2]
      BAT: [1, 2]
`,
		},
		{
			name: "cap not exact",
			raw: `
formats:
  - key: x
    roster_size: 1
    credit_cap: 99.999
    roles:
      WK: [1, 1]
`,
		},
		{
			name: "missing default",
			raw: `
default: odi
formats:
  - key: x
    roster_size: 1
    credit_cap: 10
    roles:
      WK: [1, 1]
`,
		},
		{
			name: "no formats",
			raw:  `default: t20`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tc.raw)); !errors.Is(err, ErrInvalidConstraints) {
				t.Fatalf("expected ErrInvalidConstraints, got %v", err)
			}
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	t.Run("empty path uses built-in format", func(t *testing.T) {
		catalog, err := LoadCatalogFile("")
		if err != nil {
			t.Fatalf("load catalog: %v", err)
		}
		if catalog.DefaultKey() != DefaultFormatKey {
			t.Fatalf("unexpected default key %q", catalog.DefaultKey())
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "formats.yaml")
		if err := os.WriteFile(path, []byte(sampleCatalog), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		catalog, err := LoadCatalogFile(path)
		if err != nil {
			t.Fatalf("load catalog: %v", err)
		}
		if len(catalog.Keys()) != 2 {
			t.Fatalf("expected 2 formats, got %v", catalog.Keys())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}

func TestConstraints_ResolveReturnsIndependentCopy(t *testing.T) {
	catalog := DefaultCatalog()
	first, _ := catalog.Resolve("")
	first.RoleBounds[player.RoleBowler] = Bounds{Min: 0, Max: 0}

	second, _ := catalog.Resolve("")
	if second.RoleBounds[player.RoleBowler] != (Bounds{Min: 3, Max: 6}) {
		t.Fatalf("catalog state leaked through Resolve")
	}
}

func TestDefaultConstraints_Validate(t *testing.T) {
	if err := DefaultConstraints().Validate(); err != nil {
		t.Fatalf("default constraints invalid: %v", err)
	}
	if got := DefaultConstraints().OrderedRoles(); len(got) != 4 || got[0] != player.RoleWicketKeeper || got[3] != player.RoleBowler {
		t.Fatalf("unexpected role order: %v", got)
	}
}
