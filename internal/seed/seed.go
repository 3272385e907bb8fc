package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
	"github.com/PRATHVI9607/PaymentAI/internal/identity"
)

// UserRecord is the on-disk form of a seeded user and their account.
type UserRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	PasswordHash string  `json:"password_hash"`
	AccountID    string  `json:"account_id"`
	Bank         string  `json:"bank"`
	Balance      float64 `json:"balance"`
}

// ProductRecord is the on-disk form of a catalog listing.
type ProductRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Store       string  `json:"store"`
	Description string  `json:"description"`
}

// Dataset is the startup state of the whole system: users with their
// accounts, and the product catalog. Everything lives for the process
// lifetime only.
type Dataset struct {
	Users    []domain.User
	Accounts []domain.Account
	Products []domain.Product
}

// Default returns the built-in demo dataset: three users across three banks
// and a small electronics catalog. Passwords are name+"123".
func Default() (Dataset, error) {
	users := []struct {
		id, name, email, password, phone, bank string
		balance                                float64
	}{
		{"1", "Alice", "alice@mail.com", "alice123", "+1234567890", "TechBank", 15000},
		{"2", "Bob", "bob@mail.com", "bob123", "+1234567891", "InnoBank", 8000},
		{"3", "Carol", "carol@mail.com", "carol123", "+1234567892", "SmartBank", 12000},
	}

	records := make([]UserRecord, 0, len(users))
	for i, u := range users {
		hash, err := identity.HashPassword(u.password)
		if err != nil {
			return Dataset{}, fmt.Errorf("hash seed password: %w", err)
		}
		records = append(records, UserRecord{
			ID:           u.id,
			Name:         u.name,
			Email:        u.email,
			Phone:        u.phone,
			PasswordHash: hash,
			AccountID:    fmt.Sprintf("acc%d", i+1),
			Bank:         u.bank,
			Balance:      u.balance,
		})
	}

	products := []ProductRecord{
		{ID: "p1", Name: "Wireless Mouse", Price: 29.99, Rating: 4.5, Store: "TechPro", Description: "Ergonomic wireless mouse"},
		{ID: "p2", Name: "Mechanical Keyboard", Price: 89.99, Rating: 4.8, Store: "TechPro", Description: "RGB mechanical keyboard"},
		{ID: "p3", Name: "USB-C Hub", Price: 45.99, Rating: 4.3, Store: "GadgetX", Description: "7-in-1 USB-C hub"},
		{ID: "p4", Name: "4K Monitor", Price: 349.99, Rating: 4.7, Store: "TechPro", Description: "27-inch 4K monitor"},
		{ID: "p5", Name: "Laptop Stand", Price: 39.99, Rating: 4.6, Store: "GadgetX", Description: "Adjustable aluminum stand"},
		{ID: "p6", Name: "TechPro UltraBook Pro", Price: 1299.99, Rating: 4.8, Store: "TechPro", Description: "Premium laptop"},
		{ID: "p7", Name: "Gaming Laptop X1", Price: 1899.99, Rating: 4.9, Store: "TechPro", Description: "High-performance gaming"},
		{ID: "p8", Name: "GadgetX Business Laptop", Price: 899.99, Rating: 4.5, Store: "GadgetX", Description: "Business laptop"},
		{ID: "p9", Name: "GadgetX Student Laptop", Price: 499.99, Rating: 4.3, Store: "GadgetX", Description: "Affordable laptop"},
		{ID: "p10", Name: "Creator Laptop Pro", Price: 2299.99, Rating: 4.9, Store: "TechPro", Description: "Content creation powerhouse"},
	}

	return FromRecords(records, products)
}

// Load reads a dataset directory produced by cmd/datagen (users.json and
// products.json).
func Load(dir string) (Dataset, error) {
	var users []UserRecord
	if err := readJSON(filepath.Join(dir, "users.json"), &users); err != nil {
		return Dataset{}, err
	}

	var products []ProductRecord
	if err := readJSON(filepath.Join(dir, "products.json"), &products); err != nil {
		return Dataset{}, err
	}

	return FromRecords(users, products)
}

// FromRecords converts on-disk records into the domain dataset, validating
// monetary fields on the way in.
func FromRecords(users []UserRecord, products []ProductRecord) (Dataset, error) {
	ds := Dataset{
		Users:    make([]domain.User, 0, len(users)),
		Accounts: make([]domain.Account, 0, len(users)),
		Products: make([]domain.Product, 0, len(products)),
	}

	for _, rec := range users {
		balance, err := domain.NewMoney(rec.Balance)
		if err != nil || balance.IsNegative() {
			return Dataset{}, fmt.Errorf("user %s: invalid seed balance %v", rec.ID, rec.Balance)
		}
		ds.Users = append(ds.Users, domain.User{
			ID:           rec.ID,
			Name:         rec.Name,
			Email:        rec.Email,
			Phone:        rec.Phone,
			PasswordHash: rec.PasswordHash,
			AccountID:    rec.AccountID,
		})
		ds.Accounts = append(ds.Accounts, domain.Account{
			ID:       rec.AccountID,
			UserID:   rec.ID,
			UserName: rec.Name,
			Bank:     rec.Bank,
			Balance:  balance,
		})
	}

	for _, rec := range products {
		price, err := domain.NewMoney(rec.Price)
		if err != nil || !price.IsPositive() {
			return Dataset{}, fmt.Errorf("product %s: invalid price %v", rec.ID, rec.Price)
		}
		ds.Products = append(ds.Products, domain.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Price:       price,
			Rating:      rec.Rating,
			Store:       rec.Store,
			Description: rec.Description,
		})
	}

	return ds, nil
}

func readJSON(path string, dst any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
