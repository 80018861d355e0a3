// external/csv_parser.go
package external

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/flightops/models"
)

// ParseCSV decodes a headed CSV into records using their csv struct tags.
func ParseCSV[T any](reader io.Reader) ([]T, error) {
	var records []T

	// csvutil maps header names to the `csv:"..."` tags.
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	decoder.Map = func(field, column string, v any) string {
		return strings.TrimSpace(field)
	}

	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode CSV data: %w", err)
	}
	return records, nil
}

// ParseAircraftCSV decodes aircraft rows and normalises their codes.
func ParseAircraftCSV(reader io.Reader) ([]models.Aircraft, error) {
	rows, err := ParseCSV[models.Aircraft](reader)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].ICAOType = strings.ToUpper(strings.TrimSpace(rows[i].ICAOType))
		if rows[i].ICAOType == "" {
			return nil, fmt.Errorf("aircraft row %d has no icao_type", i+1)
		}
	}
	return rows, nil
}

// ParseIataIcaoCSV decodes crosswalk rows and normalises their codes.
func ParseIataIcaoCSV(reader io.Reader) ([]models.IataIcao, error) {
	rows, err := ParseCSV[models.IataIcao](reader)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].IATA = strings.ToUpper(strings.TrimSpace(rows[i].IATA))
		rows[i].ICAO = strings.ToUpper(strings.TrimSpace(rows[i].ICAO))
		if rows[i].IATA == "" {
			return nil, fmt.Errorf("crosswalk row %d has no iata code", i+1)
		}
	}
	return rows, nil
}
