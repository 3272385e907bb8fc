package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/PRATHVI9607/PaymentAI/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users       = flag.Int("users", cfg.NumUsers, "number of users to generate")
		products    = flag.Int("products", cfg.NumProducts, "number of products to generate")
		password    = flag.String("password", cfg.Password, "login password shared by all generated users")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write users.json and products.json")
		writeStdout = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumUsers:    *users,
		NumProducts: *products,
		Password:    *password,
		Seed:        *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users and %d products into %s\n", len(dataset.Users), len(dataset.Products), *outputDir)
}
