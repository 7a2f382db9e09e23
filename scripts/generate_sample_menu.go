//go:build ignore

package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"bistro-kart/internal/catalog"
	"bistro-kart/internal/model"

	"github.com/shopspring/decimal"
)

// Writes data/menu.json, the menu document served by the API and read by
// the storefront CLI.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	product := func(id int, name, description, price, category string, stock int) model.Product {
		return model.Product{
			ID:          id,
			Name:        name,
			Description: description,
			Price:       decimal.RequireFromString(price),
			Currency:    "EUR",
			ImageURL:    "https://images.bistro.example/" + category + "/" + strconv.Itoa(id) + ".jpg",
			Category:    category,
			Stock:       stock,
		}
	}

	shop := model.Shop{
		ShopID:   "s001",
		ShopName: "Bistro Parisien",
		Products: []model.Product{
			product(1, "Soupe à l'oignon", "Gratinée au comté", "7.50", "entrees", 15),
			product(2, "Œufs mayonnaise", "Œufs bio, mayonnaise maison", "6.00", "entrees", 20),
			product(3, "Escargots de Bourgogne", "Six escargots, beurre persillé", "11.90", "entrees", 0),
			product(4, "Croque Monsieur", "Jambon blanc, béchamel, emmental", "10.00", "plats", 12),
			product(5, "Steak frites", "Bavette, sauce échalote", "18.50", "plats", 8),
			product(6, "Confit de canard", "Pommes sarladaises", "19.90", "plats", 5),
			product(7, "Tarte Tatin", "Crème crue", "7.00", "desserts", 6),
			product(8, "Crème brûlée", "Vanille de Madagascar", "6.50", "desserts", 10),
			product(9, "Café", "Expresso", "2.20", "boissons", 100),
			product(10, "Verre de Bordeaux", "12 cl", "5.50", "boissons", 40),
		},
	}

	// Refuse to write a document the loaders would reject.
	if _, err := catalog.New(shop); err != nil {
		log.Fatalf("Invalid menu: %v", err)
	}

	data, err := json.MarshalIndent(shop, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode menu: %v", err)
	}

	path := filepath.Join(dataDir, "menu.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	log.Printf("Created %s with %d products", path, len(shop.Products))
}
