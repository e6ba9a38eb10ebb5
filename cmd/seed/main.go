// Command seed wipes the product catalog and repopulates it, either from a
// YAML catalog file (SEED_FILE) or from the built-in sample generator.
//
// Run with: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shopmart/shopmart-golang/internal/database"
	"github.com/shopmart/shopmart-golang/internal/models"
	"github.com/shopmart/shopmart-golang/internal/store"
)

// catalogFile is the YAML shape accepted via SEED_FILE.
type catalogFile struct {
	Products []struct {
		ProductID   int     `yaml:"productId"`
		Name        string  `yaml:"name"`
		Price       float64 `yaml:"price"`
		Description string  `yaml:"description"`
		Image       string  `yaml:"image"`
		Category    string  `yaml:"category"`
		Stock       int     `yaml:"stock"`
	} `yaml:"products"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	catalog, source, err := loadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	products := store.NewMongoProducts(db)
	if err := products.DeleteAll(ctx); err != nil {
		log.Fatalf("Failed to clear existing products: %v", err)
	}
	log.Println("Cleared existing products")

	if err := products.InsertMany(ctx, catalog); err != nil {
		log.Fatalf("Failed to insert products: %v", err)
	}
	log.Printf("%d products seeded successfully (%s)", len(catalog), source)
}

// loadCatalog reads SEED_FILE when set, otherwise generates SEED_COUNT
// (default 30) sample products.
func loadCatalog() ([]models.Product, string, error) {
	if path := os.Getenv("SEED_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, "", err
		}
		catalog := make([]models.Product, 0, len(file.Products))
		for _, p := range file.Products {
			catalog = append(catalog, models.Product{
				ProductID:   p.ProductID,
				Name:        p.Name,
				Price:       p.Price,
				Description: p.Description,
				Image:       p.Image,
				Category:    p.Category,
				Stock:       p.Stock,
			})
		}
		return catalog, "from " + path, nil
	}

	count := 30
	if raw := os.Getenv("SEED_COUNT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			log.Fatalf("Invalid SEED_COUNT %q", raw)
		}
		count = n
	}
	return GenerateProducts(count), "generated", nil
}
