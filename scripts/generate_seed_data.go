//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"catalog-service/internal/model"
)

type sample struct {
	name        string
	description string
	category    string
	price       float64
	inStock     bool
}

// Writes the sample catalog used by SEED_ENABLED=true.
// Run from the repository root: go run scripts/generate_seed_data.go
func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	samples := []sample{
		{"Gaming Laptop Pro X", "15.6-inch gaming laptop with RTX 4080, 32GB RAM", "Electronics", 2499.99, true},
		{"Smartphone Ultra", "Latest flagship smartphone with 6.7-inch display", "Electronics", 999.99, true},
		{"Wireless Earbuds", "True wireless earbuds with noise cancellation", "Electronics", 199.99, false},
		{"4K Smart TV", "65-inch 4K OLED Smart TV", "Electronics", 1499.99, true},
		{"JavaScript: The Complete Guide", "Comprehensive guide to modern JavaScript", "Books", 49.99, true},
		{"Data Science Fundamentals", "Introduction to data science and analytics", "Books", 39.99, false},
		{"Winter Jacket", "Waterproof winter jacket with thermal lining", "Clothing", 129.99, true},
		{"Running Shoes", "Professional running shoes with cushioning", "Clothing", 89.99, true},
		{"Coffee Maker", "Programmable coffee maker with thermal carafe", "Home & Kitchen", 79.99, true},
		{"Air Fryer XL", "Large capacity digital air fryer", "Home & Kitchen", 149.99, false},
		{"Mountain Bike", "27.5-inch mountain bike with front suspension", "Sports & Outdoors", 599.99, true},
		{"Camping Tent", "4-person waterproof camping tent", "Sports & Outdoors", 199.99, true},
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := createSeedFile(filePath, samples); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d items\n", filePath, len(samples))
}

func createSeedFile(filePath string, samples []sample) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, s := range samples {
		s := s
		req := model.ItemRequest{
			Name:        &s.name,
			Description: &s.description,
			Category:    &s.category,
			Price:       &s.price,
			InStock:     &s.inStock,
		}
		if err := encoder.Encode(req); err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}
	}

	return nil
}
