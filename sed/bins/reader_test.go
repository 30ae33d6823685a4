package bins

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFileReaderYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src_0.yaml")
	writeFile(t, path, `
Scale: 316.2
Emin: 100
Emax: 1000
Index: -2.1
Prefactor: 1.5e-10
dPrefactor: 2.0e-11
dPrefactor-: -1.8e-11
dPrefactor+: 2.2e-11
`)
	r, err := FileReader{}.Read(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Scale != 316.2 || r.Prefactor != 1.5e-10 || !r.HasMinos || r.DPrefactorMinus != -1.8e-11 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.IsUpperLimit {
		t.Fatal("detection decoded as upper limit")
	}
}

func TestFileReaderTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src_1.toml")
	writeFile(t, path, `
Scale = 1000.0
Emin = 1000.0
Emax = 10000.0
Index = -2.0
Ulvalue = 3.0e-9
`)
	r, err := FileReader{}.Read(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsUpperLimit || r.UpperLimit != 3e-9 || r.HasDPrefactor {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestFileReaderErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := (FileReader{}).Read(context.Background(), filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	conf := filepath.Join(dir, "bin.conf")
	writeFile(t, conf, "Scale = 1\n")
	if _, err := (FileReader{}).Read(context.Background(), conf); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	partial := filepath.Join(dir, "bin.yaml")
	writeFile(t, partial, "Scale: 1\nEmin: 1\nEmax: 2\nIndex: -2\n")
	if _, err := (FileReader{}).Read(context.Background(), partial); !errors.Is(err, ErrIncompleteResult) {
		t.Fatalf("expected ErrIncompleteResult, got %v", err)
	}
}

func TestFromMapBadBounds(t *testing.T) {
	_, err := FromMap(map[string]float64{"Scale": 1, "Emin": 10, "Emax": 5, "Index": -2, "Prefactor": 1})
	if !errors.Is(err, ErrIncompleteResult) {
		t.Fatalf("expected ErrIncompleteResult, got %v", err)
	}
}

func TestPathsAndAggregateFromFiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths(dir, "Crab", 3, ".yaml")
	want := filepath.Join(dir, "Ebin3", "Crab_2.yaml")
	if paths[2] != want {
		t.Fatalf("Paths[2] = %q, want %q", paths[2], want)
	}

	writeFile(t, paths[0], "Scale: 200\nEmin: 100\nEmax: 400\nIndex: -2\nPrefactor: 1e-10\ndPrefactor: 1e-11\n")
	writeFile(t, paths[2], "Scale: 1600\nEmin: 1600\nEmax: 6400\nIndex: -2\nUlvalue: 1e-9\n")

	pts, err := NewAggregator(FileReader{}, WithConcurrency(3)).Aggregate(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	if !pts.Valid[0] || pts.Valid[1] || !pts.Valid[2] || !pts.UpperLimit[2] {
		t.Fatalf("valid = %v, ul = %v", pts.Valid, pts.UpperLimit)
	}
	if len(pts.Warnings) != 1 || pts.Warnings[0].Bin != 1 {
		t.Fatalf("warnings = %v", pts.Warnings)
	}
}
