package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/sevamart/sevamart-backend/config"
	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

// Seeds an admin account, the plan catalog and a small starter catalog
// of categories and services for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminEmail := "admin@sevamart.local"
	adminPassword := "admin12345"
	hash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, adminEmail, hash, "SevaMart Admin").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, adminEmail, adminPassword)

	for _, p := range application.DefaultPlans() {
		if _, err := db.Exec(`
			INSERT INTO subscription_plans (id, name, price, duration_days, features, description, offer, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, string(p.ID), p.Name, p.Price, p.DurationDays, pq.Array(p.Features), p.Description, p.Offer, p.IsActive); err != nil {
			log.Fatalf("failed to seed plan %s: %v", p.ID, err)
		}
	}
	fmt.Println("plan catalog ensured: basic, standard, premium")

	categories := map[string][]string{
		"Home Cleaning":  {"Deep Cleaning", "Sofa Cleaning"},
		"Plumbing":       {"Tap Repair", "Water Tank Cleaning"},
		"Electrical":     {"Wiring Check", "Fan Installation"},
		"Appliance Care": {"AC Service", "Washing Machine Repair"},
	}
	for catName, svcNames := range categories {
		var catID string
		if err := db.QueryRow(`
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, catName).Scan(&catID); err != nil {
			log.Fatalf("failed to seed category %s: %v", catName, err)
		}
		for _, svcName := range svcNames {
			if _, err := db.Exec(`
				INSERT INTO services (name, category_id, min_price)
				VALUES ($1, $2, 199)
				ON CONFLICT (name) DO NOTHING
			`, svcName, catID); err != nil {
				log.Fatalf("failed to seed service %s: %v", svcName, err)
			}
		}
	}
	fmt.Println("starter categories and services ensured")
}
