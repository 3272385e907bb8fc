package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PRATHVI9607/PaymentAI/internal/identity"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("default dataset: %v", err)
	}

	if len(ds.Users) != 3 || len(ds.Accounts) != 3 {
		t.Fatalf("expected 3 users with accounts, got %d/%d", len(ds.Users), len(ds.Accounts))
	}
	if len(ds.Products) != 10 {
		t.Fatalf("expected 10 products, got %d", len(ds.Products))
	}

	// Users and accounts line up pairwise.
	for i, u := range ds.Users {
		if ds.Accounts[i].ID != u.AccountID || ds.Accounts[i].UserID != u.ID {
			t.Fatalf("user %s not linked to account %+v", u.ID, ds.Accounts[i])
		}
	}

	if !ds.Accounts[0].Balance.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("unexpected first balance %s", ds.Accounts[0].Balance)
	}

	// The demo credentials must actually verify.
	match, err := identity.VerifyPassword("alice123", ds.Users[0].PasswordHash)
	if err != nil || !match {
		t.Fatalf("demo password did not verify: match=%v err=%v", match, err)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()

	users := []UserRecord{
		{ID: "1", Name: "Alice", Phone: "+1234567890", PasswordHash: "$argon2id$...", AccountID: "acc1", Bank: "TechBank", Balance: 100.50},
	}
	products := []ProductRecord{
		{ID: "p1", Name: "Wireless Mouse", Price: 29.99, Rating: 4.5, Store: "TechPro"},
	}
	writeJSONFile(t, filepath.Join(dir, "users.json"), users)
	writeJSONFile(t, filepath.Join(dir, "products.json"), products)

	ds, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(ds.Users) != 1 || ds.Users[0].Name != "Alice" {
		t.Fatalf("unexpected users %+v", ds.Users)
	}
	if !ds.Accounts[0].Balance.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("unexpected balance %s", ds.Accounts[0].Balance)
	}
	if !ds.Products[0].Price.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("unexpected price %s", ds.Products[0].Price)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := Load("/does/not/exist"); err == nil {
		t.Fatal("expected error for missing dataset directory")
	}
}

func TestFromRecordsRejectsBadMoney(t *testing.T) {
	if _, err := FromRecords([]UserRecord{{ID: "1", Balance: -5}}, nil); err == nil {
		t.Fatal("expected error for negative balance")
	}
	if _, err := FromRecords(nil, []ProductRecord{{ID: "p1", Price: 0}}); err == nil {
		t.Fatal("expected error for non-positive price")
	}
}

func writeJSONFile(t *testing.T, path string, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
