// database/schema.go
package database

import (
	"context"
	"fmt"
	"strings"
)

// autoID is replaced with the driver's auto-increment primary key column.
const autoID = "{{AUTO_ID}}"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id {{AUTO_ID}},
		first_name VARCHAR(80) NOT NULL,
		last_name VARCHAR(80) NOT NULL,
		username VARCHAR(80) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS airports (
		iata_code VARCHAR(4) NOT NULL PRIMARY KEY,
		city VARCHAR(255) NOT NULL,
		country VARCHAR(255) NOT NULL,
		continent VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS icao_codes (
		icao VARCHAR(5) NOT NULL PRIMARY KEY,
		region_name VARCHAR(255) NOT NULL,
		airport VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS countries (
		code VARCHAR(3) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS aircraft (
		icao_type VARCHAR(4) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		fuel_burn_kg_per_km DOUBLE PRECISION NOT NULL,
		aircraft_class VARCHAR(10) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS iata_to_icao (
		iata VARCHAR(4) NOT NULL PRIMARY KEY,
		country_code VARCHAR(3) NOT NULL,
		icao VARCHAR(5) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reference_loads (
		id {{AUTO_ID}},
		table_name VARCHAR(64) NOT NULL,
		source VARCHAR(512) NOT NULL,
		row_count INTEGER NOT NULL,
		loaded_at TIMESTAMP NOT NULL
	)`,
}

// CreateSchema creates every table if it does not exist yet.
func (db *DB) CreateSchema(ctx context.Context) error {
	id := db.autoIDColumn()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, autoID, id)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	db.log.Info("Database: schema ready")
	return nil
}

func (db *DB) autoIDColumn() string {
	switch db.driver {
	case "postgres":
		return "SERIAL PRIMARY KEY"
	case "sqlite":
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "BIGINT AUTO_INCREMENT PRIMARY KEY"
}
