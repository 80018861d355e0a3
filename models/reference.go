// models/reference.go
package models

import "time"

// Airport is a row of the airports table, loaded from airports.csv.
type Airport struct {
	City      string `csv:"city" db:"city"`
	Country   string `csv:"country" db:"country"`
	IATACode  string `csv:"iata_code" db:"iata_code"` // primary key
	Continent string `csv:"continent" db:"continent"`
}

// IcaoCode is a row of the icao_codes table, loaded from icao_codes.csv.
type IcaoCode struct {
	RegionName string `csv:"region_name" db:"region_name"`
	ICAO       string `csv:"icao" db:"icao"` // primary key
	Airport    string `csv:"airport" db:"airport"`
}

// Country is a row of the countries table (ISO-3166 alpha-3 code and common name).
type Country struct {
	Code string `csv:"code" db:"code" json:"code"` // primary key, e.g. "JAM"
	Name string `csv:"name" db:"name" json:"name"`
}

// Aircraft holds the per-type fuel burn coefficient used by the lookup estimator.
type Aircraft struct {
	ICAOType      string  `csv:"icao_type" db:"icao_type"` // primary key, e.g. "A320"
	Name          string  `csv:"name" db:"name"`
	FuelBurnPerKM float64 `csv:"fuel_burn_kg_per_km" db:"fuel_burn_kg_per_km"`
	AircraftClass string  `csv:"aircraft_class" db:"aircraft_class"` // WB, NB, RJ, ...
}

// IataIcao is a row of the IATA-to-ICAO crosswalk with station coordinates.
type IataIcao struct {
	CountryCode string  `csv:"country_code" db:"country_code"`
	IATA        string  `csv:"iata" db:"iata"` // primary key
	ICAO        string  `csv:"icao" db:"icao"`
	Latitude    float64 `csv:"latitude" db:"latitude"`
	Longitude   float64 `csv:"longitude" db:"longitude"`
}

// Reference table names, also used as keys for lazy loading and reloads.
const (
	TableAirports  = "airports"
	TableIcaoCodes = "icao_codes"
	TableCountries = "countries"
	TableAircraft  = "aircraft"
	TableIataIcao  = "iata_to_icao"
)

// ReferenceTables lists the bulk-loaded tables in load order.
var ReferenceTables = []string{TableAirports, TableIcaoCodes, TableCountries, TableAircraft, TableIataIcao}

// ReferenceTableStatus is shown on the admin dashboard.
type ReferenceTableStatus struct {
	Table    string
	Rows     int
	LastLoad *ReferenceLoad
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReferenceLoad records one bulk load of a reference table.
type ReferenceLoad struct {
	ID        int64     `db:"id" json:"id"`
	TableName string    `db:"table_name" json:"table_name"`
	Source    string    `db:"source" json:"source"` // embedded seed name, file path or URL
	RowCount  int       `db:"row_count" json:"row_count"`
	LoadedAt  time.Time `db:"loaded_at" json:"loaded_at"`
}
