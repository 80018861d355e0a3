// database/reference_store.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gewnthar/flightops/models"
)

var referenceColumns = map[string][]string{
	models.TableAirports:  {"iata_code", "city", "country", "continent"},
	models.TableIcaoCodes: {"icao", "region_name", "airport"},
	models.TableCountries: {"code", "name"},
	models.TableAircraft:  {"icao_type", "name", "fuel_burn_kg_per_km", "aircraft_class"},
	models.TableIataIcao:  {"iata", "country_code", "icao", "latitude", "longitude"},
}

// replaceTable clears a reference table and loads rows in one transaction,
// recording the load in reference_loads.
func (db *DB) replaceTable(ctx context.Context, table, source string, rows [][]any) error {
	columns, ok := referenceColumns[table]
	if !ok {
		return fmt.Errorf("unknown reference table %q", table)
	}
	if len(rows) == 0 {
		db.log.Warn("Database: no rows provided, keeping existing data", slog.String("table", table))
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	defer tx.Rollback()

	// Step 1: clear existing rows.
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to delete old rows from %s: %w", table, err)
	}

	// Step 2: insert new rows.
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)))
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert statement: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			db.log.Error("Database: failed to insert reference row", slog.String("table", table), slog.Int("row", i+1), slog.Any("values", row))
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, table, err)
		}
	}

	// Step 3: audit.
	if err := db.recordReferenceLoad(ctx, tx, table, source, len(rows)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for %s: %w", table, err)
	}

	db.log.Info("Database: reference table loaded", slog.String("table", table), slog.Int("rows", len(rows)), slog.String("source", source))
	return nil
}

// ReplaceAirports clears and reloads the airports table.
func (db *DB) ReplaceAirports(ctx context.Context, airports []models.Airport, source string) error {
	rows := make([][]any, 0, len(airports))
	for _, a := range airports {
		rows = append(rows, []any{a.IATACode, a.City, a.Country, a.Continent})
	}
	return db.replaceTable(ctx, models.TableAirports, source, rows)
}

// ReplaceIcaoCodes clears and reloads the icao_codes table.
func (db *DB) ReplaceIcaoCodes(ctx context.Context, codes []models.IcaoCode, source string) error {
	rows := make([][]any, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, []any{c.ICAO, c.RegionName, c.Airport})
	}
	return db.replaceTable(ctx, models.TableIcaoCodes, source, rows)
}

// ReplaceCountries clears and reloads the countries table.
func (db *DB) ReplaceCountries(ctx context.Context, countries []models.Country, source string) error {
	rows := make([][]any, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []any{c.Code, c.Name})
	}
	return db.replaceTable(ctx, models.TableCountries, source, rows)
}

// ReplaceAircraft clears and reloads the aircraft table.
func (db *DB) ReplaceAircraft(ctx context.Context, aircraft []models.Aircraft, source string) error {
	rows := make([][]any, 0, len(aircraft))
	for _, a := range aircraft {
		rows = append(rows, []any{a.ICAOType, a.Name, a.FuelBurnPerKM, a.AircraftClass})
	}
	return db.replaceTable(ctx, models.TableAircraft, source, rows)
}

// ReplaceIataIcao clears and reloads the iata_to_icao crosswalk.
func (db *DB) ReplaceIataIcao(ctx context.Context, entries []models.IataIcao, source string) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.IATA, e.CountryCode, e.ICAO, e.Latitude, e.Longitude})
	}
	return db.replaceTable(ctx, models.TableIataIcao, source, rows)
}

// CountRows returns the number of rows in a reference table.
func (db *DB) CountRows(ctx context.Context, table string) (int, error) {
	if _, ok := referenceColumns[table]; !ok {
		return 0, fmt.Errorf("unknown reference table %q", table)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// ListAirports returns all airports ordered by city.
func (db *DB) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := db.QueryContext(ctx, "SELECT iata_code, city, country, continent FROM airports ORDER BY city, iata_code")
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.IATACode, &a.City, &a.Country, &a.Continent); err != nil {
			return nil, fmt.Errorf("failed to scan airport row: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// ListIcaoCodes returns all ICAO codes ordered by region then code.
func (db *DB) ListIcaoCodes(ctx context.Context) ([]models.IcaoCode, error) {
	rows, err := db.QueryContext(ctx, "SELECT icao, region_name, airport FROM icao_codes ORDER BY region_name, icao")
	if err != nil {
		return nil, fmt.Errorf("failed to query icao codes: %w", err)
	}
	defer rows.Close()

	var codes []models.IcaoCode
	for rows.Next() {
		var c models.IcaoCode
		if err := rows.Scan(&c.ICAO, &c.RegionName, &c.Airport); err != nil {
			return nil, fmt.Errorf("failed to scan icao code row: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// ListCountries returns all countries ordered by name.
func (db *DB) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := db.QueryContext(ctx, "SELECT code, name FROM countries ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// GetAircraft returns the aircraft type or (nil, nil) when it is not in the table.
func (db *DB) GetAircraft(ctx context.Context, icaoType string) (*models.Aircraft, error) {
	var a models.Aircraft
	err := db.QueryRowContext(ctx,
		db.Rebind("SELECT icao_type, name, fuel_burn_kg_per_km, aircraft_class FROM aircraft WHERE icao_type = ?"),
		icaoType,
	).Scan(&a.ICAOType, &a.Name, &a.FuelBurnPerKM, &a.AircraftClass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft %s: %w", icaoType, err)
	}
	return &a, nil
}

// ListAircraft returns all aircraft types ordered by designator.
func (db *DB) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	rows, err := db.QueryContext(ctx, "SELECT icao_type, name, fuel_burn_kg_per_km, aircraft_class FROM aircraft ORDER BY icao_type")
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft: %w", err)
	}
	defer rows.Close()

	var list []models.Aircraft
	for rows.Next() {
		var a models.Aircraft
		if err := rows.Scan(&a.ICAOType, &a.Name, &a.FuelBurnPerKM, &a.AircraftClass); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft row: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// FindCrosswalk looks a code up by IATA or ICAO. Returns (nil, nil) when unknown.
func (db *DB) FindCrosswalk(ctx context.Context, code string) (*models.IataIcao, error) {
	var e models.IataIcao
	err := db.QueryRowContext(ctx,
		db.Rebind(`SELECT iata, country_code, icao, latitude, longitude FROM iata_to_icao
			WHERE iata = ? OR icao = ? ORDER BY iata LIMIT 1`),
		code, code,
	).Scan(&e.IATA, &e.CountryCode, &e.ICAO, &e.Latitude, &e.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query crosswalk for %s: %w", code, err)
	}
	return &e, nil
}

// ReferenceStatus summarises every reference table for the admin dashboard.
func (db *DB) ReferenceStatus(ctx context.Context) ([]models.ReferenceTableStatus, error) {
	out := make([]models.ReferenceTableStatus, 0, len(models.ReferenceTables))
	for _, table := range models.ReferenceTables {
		n, err := db.CountRows(ctx, table)
		if err != nil {
			return nil, err
		}
		last, err := db.LatestReferenceLoad(ctx, table)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ReferenceTableStatus{Table: table, Rows: n, LastLoad: last})
	}
	return out, nil
}

// IsReferenceTable reports whether table names a bulk-loaded reference table.
func IsReferenceTable(table string) bool {
	return slices.Contains(models.ReferenceTables, table)
}
