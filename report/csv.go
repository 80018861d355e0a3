// report/csv.go
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/flightops/models"
)

// WriteRankingCSV writes one headed row per ranking entry.
func WriteRankingCSV(w io.Writer, ranking *models.EmissionsRanking) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(ranking.Entries) == 0 {
		if err := enc.EncodeHeader(models.RankingEntry{}); err != nil {
			return fmt.Errorf("failed to write ranking CSV header: %w", err)
		}
	}
	for _, e := range ranking.Entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to encode ranking row %d: %w", e.Rank, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush ranking CSV: %w", err)
	}
	return nil
}

// CSVFileName is the download name for a ranking.
func CSVFileName(ranking *models.EmissionsRanking) string {
	r := ranking.Request
	return fmt.Sprintf("emissions_ranking_%s_%s.csv", r.StartPeriod(), r.EndPeriod())
}
