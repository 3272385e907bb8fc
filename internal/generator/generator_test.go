package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PRATHVI9607/PaymentAI/internal/identity"
	"github.com/PRATHVI9607/PaymentAI/internal/seed"
)

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	cfg := Config{NumUsers: 5, NumProducts: 5, Password: "demo123", Seed: 42}

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for i := range first.Users {
		// Hashes differ by salt; everything else must match.
		if first.Users[i].Name != second.Users[i].Name || first.Users[i].Balance != second.Users[i].Balance {
			t.Fatalf("user %d differs between runs: %+v vs %+v", i, first.Users[i], second.Users[i])
		}
	}
	for i := range first.Products {
		if first.Products[i] != second.Products[i] {
			t.Fatalf("product %d differs between runs: %+v vs %+v", i, first.Products[i], second.Products[i])
		}
	}
}

func TestGeneratePhonesAreUnique(t *testing.T) {
	dataset, err := New(Config{NumUsers: 50, NumProducts: 1, Password: "demo123", Seed: 1}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	seen := make(map[string]struct{}, len(dataset.Users))
	for _, u := range dataset.Users {
		if _, dup := seen[u.Phone]; dup {
			t.Fatalf("duplicate phone %s", u.Phone)
		}
		seen[u.Phone] = struct{}{}
	}
}

func TestGeneratedPasswordVerifies(t *testing.T) {
	dataset, err := New(Config{NumUsers: 1, NumProducts: 1, Password: "hunter2", Seed: 7}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	match, err := identity.VerifyPassword("hunter2", dataset.Users[0].PasswordHash)
	if err != nil || !match {
		t.Fatalf("generated hash did not verify: match=%v err=%v", match, err)
	}
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Config{NumUsers: 10, NumProducts: 10, Seed: 1}).Generate(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestWriteDatasetRoundTrips(t *testing.T) {
	dir := t.TempDir()

	dataset, err := New(Config{NumUsers: 3, NumProducts: 4, Password: "demo123", Seed: 42}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := WriteDataset(dataset, dir); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	loaded, err := seed.Load(dir)
	if err != nil {
		t.Fatalf("load written dataset: %v", err)
	}
	if len(loaded.Users) != 3 || len(loaded.Products) != 4 {
		t.Fatalf("unexpected dataset sizes %d/%d", len(loaded.Users), len(loaded.Products))
	}
	if loaded.Users[0].ID != "USR-0001" || loaded.Accounts[0].ID != "ACC-0001" {
		t.Fatalf("unexpected ids %+v", loaded.Users[0])
	}

	for _, name := range []string{"users.json", "products.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
