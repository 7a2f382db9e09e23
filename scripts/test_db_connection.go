//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"bistro-kart/internal/config"
	"bistro-kart/internal/database"

	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	err = conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)

	version, dirty, err := database.MigrationVersion(cfg.Database.MigrationURL())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read migration version: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)

	if version == 0 {
		fmt.Println("No migrations applied yet; start the API with DB_AUTO_MIGRATE=true")
		return
	}

	var orders int
	err = conn.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE shop_id = $1", cfg.Shop.ID).Scan(&orders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Orders recorded for shop %s: %d\n", cfg.Shop.ID, orders)
}
