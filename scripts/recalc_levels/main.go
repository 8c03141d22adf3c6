package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"wahu-store/internal/services"
)

// Recomputes every affiliate's level from its lifetime order count.
// Run after changing level thresholds or repairing order counters.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	rows, err := db.Query(`SELECT id, affiliate_id, orders, level FROM affiliates`)
	if err != nil {
		log.Fatalf("Failed to query affiliates: %v", err)
	}
	defer rows.Close()

	type row struct {
		id     uint
		code   string
		orders int64
		level  string
	}

	var stale []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.code, &r.orders, &r.level); err != nil {
			log.Fatalf("Failed to scan affiliate: %v", err)
		}
		if services.LevelForOrders(r.orders) != r.level {
			stale = append(stale, r)
		}
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read affiliates: %v", err)
	}

	if len(stale) == 0 {
		log.Println("All affiliate levels are up to date")
		return
	}

	for _, r := range stale {
		level := services.LevelForOrders(r.orders)
		if _, err := db.Exec(`UPDATE affiliates SET level = $1, updated_at = NOW() WHERE id = $2`, level, r.id); err != nil {
			log.Fatalf("Failed to update %s: %v", r.code, err)
		}
		log.Printf("%s: %s -> %s (%d orders)", r.code, r.level, level, r.orders)
	}

	log.Printf("Updated %d affiliate levels", len(stale))
}
