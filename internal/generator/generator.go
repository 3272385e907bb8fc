package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/PRATHVI9607/PaymentAI/internal/identity"
	"github.com/PRATHVI9607/PaymentAI/internal/seed"
)

// Dataset contains the generated users and products.
type Dataset struct {
	Users    []seed.UserRecord    `json:"users"`
	Products []seed.ProductRecord `json:"products"`
}

// Generator produces a synthetic dataset the server can load at startup.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments nameFragments
}

type nameFragments struct {
	firstNames []string
	lastNames  []string
	banks      []string
	stores     []string
	adjectives []string
	items      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		firstNames: []string{"Alice", "Bob", "Carol", "Dan", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy"},
		lastNames:  []string{"Nguyen", "Patel", "Smith", "Garcia", "Kim", "Okafor", "Muller", "Rossi", "Tanaka", "Lopez"},
		banks:      []string{"TechBank", "InnoBank", "SmartBank", "CoreBank"},
		stores:     []string{"TechPro", "GadgetX"},
		adjectives: []string{"Wireless", "Mechanical", "Ergonomic", "Portable", "4K", "Compact", "Gaming", "Premium"},
		items:      []string{"Mouse", "Keyboard", "Monitor", "Headphones", "Webcam", "Laptop Stand", "USB-C Hub", "Microphone", "Dock", "Speaker"},
	}
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultConfig().NumUsers
	}
	if cfg.NumProducts <= 0 {
		cfg.NumProducts = DefaultConfig().NumProducts
	}
	if cfg.Password == "" {
		cfg.Password = DefaultConfig().Password
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultNameFragments(),
	}
}

// Generate synthesises users and products. It respects context cancellation.
// Every generated user shares one password (this is demo data); the hash is
// computed once.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	hash, err := identity.HashPassword(g.cfg.Password)
	if err != nil {
		return Dataset{}, fmt.Errorf("hash generated password: %w", err)
	}

	users := make([]seed.UserRecord, g.cfg.NumUsers)
	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		first := g.fragments.firstNames[g.rand.Intn(len(g.fragments.firstNames))]
		last := g.fragments.lastNames[g.rand.Intn(len(g.fragments.lastNames))]
		name := first + " " + last

		// Cents granularity between 50.00 and 20049.99.
		balance := float64(5000+g.rand.Intn(2000000)) / 100

		users[i] = seed.UserRecord{
			ID:           fmt.Sprintf("USR-%04d", i+1),
			Name:         name,
			Email:        fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Phone:        fmt.Sprintf("+1%010d", 2000000000+i),
			PasswordHash: hash,
			AccountID:    fmt.Sprintf("ACC-%04d", i+1),
			Bank:         g.fragments.banks[g.rand.Intn(len(g.fragments.banks))],
			Balance:      balance,
		}
	}

	products := make([]seed.ProductRecord, g.cfg.NumProducts)
	for i := 0; i < g.cfg.NumProducts; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		adjective := g.fragments.adjectives[g.rand.Intn(len(g.fragments.adjectives))]
		item := g.fragments.items[g.rand.Intn(len(g.fragments.items))]
		store := g.fragments.stores[g.rand.Intn(len(g.fragments.stores))]

		products[i] = seed.ProductRecord{
			ID:          fmt.Sprintf("PRD-%04d", i+1),
			Name:        fmt.Sprintf("%s %s %d", adjective, item, i+1),
			Price:       float64(500+g.rand.Intn(250000)) / 100,
			Rating:      float64(30+g.rand.Intn(21)) / 10,
			Store:       store,
			Description: fmt.Sprintf("%s %s from %s", adjective, item, store),
		}
	}

	return Dataset{Users: users, Products: products}, nil
}
