package celestial

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	reg := Default()

	if reg.Size() != 7 {
		t.Fatalf("expected 7 bodies, got %d", reg.Size())
	}

	all := reg.All()
	for i, b := range all {
		if b.ID != i+1 {
			t.Errorf("body %d has id %d, want %d", i, b.ID, i+1)
		}
		if b.PayloadText == "" {
			t.Errorf("body %d (%s) has no payload", b.ID, b.Name)
		}
	}
	if all[0].Name != "Mercurio" || all[6].Name != "Neptuno" {
		t.Errorf("unexpected order: first=%s last=%s", all[0].Name, all[6].Name)
	}
	if reg.Secret() == "" {
		t.Error("expected a secret message")
	}
	if reg.MaxRadius() != 36 {
		t.Errorf("expected max radius 36, got %v", reg.MaxRadius())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	reg := Default()
	first := reg.All()
	first[0].Name = "Pluto"

	if got := reg.All()[0].Name; got != "Mercurio" {
		t.Fatalf("catalog mutated through All(): got %q", got)
	}
}

func TestGet(t *testing.T) {
	reg := Default()

	b, err := reg.Get(3)
	if err != nil {
		t.Fatalf("Get(3): %v", err)
	}
	if b.Name != "Marte" {
		t.Errorf("Get(3) = %s, want Marte", b.Name)
	}

	for _, id := range []int{0, -1, 8, 99} {
		if _, err := reg.Get(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%d): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	ok := func(id int) Body {
		return Body{ID: id, Name: "x", OrbitalRadius: 1, DisplaySize: 1}
	}

	tests := []struct {
		name   string
		bodies []Body
	}{
		{"empty", nil},
		{"duplicate", []Body{ok(1), ok(1)}},
		{"gap", []Body{ok(1), ok(3)}},
		{"starts at zero", []Body{ok(0), ok(1)}},
		{"zero radius", []Body{{ID: 1, OrbitalRadius: 0, DisplaySize: 1}}},
		{"negative size", []Body{{ID: 1, OrbitalRadius: 1, DisplaySize: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.bodies, ""); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestNewSortsByID(t *testing.T) {
	reg, err := New([]Body{
		{ID: 2, Name: "b", OrbitalRadius: 2, DisplaySize: 1},
		{ID: 1, Name: "a", OrbitalRadius: 1, DisplaySize: 1},
	}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if all := reg.All(); all[0].Name != "a" || all[1].Name != "b" {
		t.Fatalf("expected id order, got %+v", all)
	}
}

func TestLoad(t *testing.T) {
	doc := `
secret: hola
bodies:
  - {id: 1, name: Luna, distance: 3, size: 0.3, speed: -0.01, color: "#cccccc", phrase: siempre}
`
	reg, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, _ := reg.Get(1)
	if b.AngularSpeed != -0.01 || b.PayloadText != "siempre" || reg.Secret() != "hola" {
		t.Fatalf("unexpected body: %+v secret=%q", b, reg.Secret())
	}

	if _, err := Load(strings.NewReader("bodies: [{id: 1, planet: x}]")); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("unknown field: expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	reg, err := LoadFile("")
	if err != nil || reg.Size() != 7 {
		t.Fatalf("LoadFile(\"\") = %v, %v", reg, err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "bodies:\n  - {id: 1, name: Sol2, distance: 1, size: 1}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if reg.Size() != 1 {
		t.Fatalf("expected 1 body, got %d", reg.Size())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
