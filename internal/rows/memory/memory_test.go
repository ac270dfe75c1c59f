package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchReturnsCopy(t *testing.T) {
	store := New([][]any{
		{"Cliente", "Valor"},
		{"Acme", "100,00"},
	})

	grid, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	grid[1][0] = "mutated"

	again, _ := store.Fetch(context.Background())
	if again[1][0] != "Acme" {
		t.Error("Fetch() must return a copy, seed was mutated")
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.csv")
	content := "Cliente;Valor;Status\n# comentario\nAcme; 1500,00 ;Pago\n\nBeta;200;Pendente\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := NewFromFile(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("got %d rows, want 3 (comment and blank dropped)", len(grid))
	}
	if grid[0][0] != "Cliente" {
		t.Errorf("header = %v", grid[0][0])
	}
	if grid[1][1] != "1500,00" {
		t.Errorf("cells should be trimmed, got %q", grid[1][1])
	}
}

func TestNewFromFileMissing(t *testing.T) {
	grid, err := NewFromFile("/nonexistent/seed.csv").Fetch(context.Background())
	if err != nil {
		t.Fatalf("missing seed file must not error, got %v", err)
	}
	if len(grid) != 0 {
		t.Errorf("missing seed file should yield empty grid, got %d rows", len(grid))
	}
}

func TestSetError(t *testing.T) {
	store := New(nil)
	store.SetError(errors.New("boom"))
	if _, err := store.Fetch(context.Background()); err == nil {
		t.Error("Fetch() should fail after SetError")
	}
}
