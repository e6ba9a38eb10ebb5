package main

import (
	"fmt"
	"math/rand"

	"github.com/gosimple/slug"

	"github.com/shopmart/shopmart-golang/internal/models"
)

var categories = []string{
	"Electronics",
	"Clothing",
	"Home & Kitchen",
	"Sports & Fitness",
	"Books",
	"Toys & Games",
	"Beauty & Personal Care",
	"Automotive",
	"Office Supplies",
	"Health & Wellness",
}

var adjectives = []string{
	"Ergonomic", "Portable", "Wireless", "Classic", "Premium",
	"Compact", "Eco-Friendly", "Durable", "Sleek", "Handcrafted",
}

var nouns = map[string][]string{
	"Electronics":            {"Bluetooth Headphones", "Fitness Watch", "Laptop Stand", "Desk Lamp", "Power Bank"},
	"Clothing":               {"Cotton T-Shirt", "Denim Jacket", "Running Shoes", "Wool Scarf", "Canvas Sneakers"},
	"Home & Kitchen":         {"Water Bottle", "Coffee Maker", "Cutting Board", "Storage Jar", "Throw Blanket"},
	"Sports & Fitness":       {"Yoga Mat", "Resistance Bands", "Foam Roller", "Jump Rope", "Gym Bag"},
	"Books":                  {"Notebook", "Travel Journal", "Cookbook", "Sketchbook", "Planner"},
	"Toys & Games":           {"Puzzle Set", "Building Blocks", "Board Game", "Card Deck", "Model Kit"},
	"Beauty & Personal Care": {"Face Cream", "Hair Brush", "Essential Oil Set", "Bath Bombs", "Lip Balm"},
	"Automotive":             {"Phone Mount", "Seat Cushion", "Tire Gauge", "Car Charger", "Trunk Organizer"},
	"Office Supplies":        {"Desk Organizer", "Fountain Pen", "Sticky Notes", "File Folder", "Whiteboard"},
	"Health & Wellness":      {"Vitamin Pack", "Sleep Mask", "Massage Ball", "Posture Corrector", "First Aid Kit"},
}

// GenerateProducts builds a sample catalog of n products spread across the
// store's categories, with placeholder images keyed by a category slug.
func GenerateProducts(n int) []models.Product {
	catalog := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		category := categories[rand.Intn(len(categories))]
		name := fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], pick(nouns[category]))

		// Price between 9.99 and 259.99 in .99 steps.
		price := float64(rand.Intn(251)+9) + 0.99

		catalog = append(catalog, models.Product{
			ProductID:   i,
			Name:        name,
			Price:       price,
			Description: fmt.Sprintf("%s from our %s collection. Quality build, everyday price.", name, category),
			Image:       fmt.Sprintf("https://source.unsplash.com/400x400/?%s", slug.Make(category)),
			Category:    category,
			Stock:       rand.Intn(91) + 10,
		})
	}
	return catalog
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}
