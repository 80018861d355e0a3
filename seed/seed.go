// seed/seed.go
package seed

import "embed"

// FS holds the bundled reference CSVs, one per table: <table>.csv.
//
//go:embed *.csv
var FS embed.FS

// FileName returns the seed file for a reference table.
func FileName(table string) string {
	return table + ".csv"
}
