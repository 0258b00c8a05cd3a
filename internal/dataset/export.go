package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

// exportRow mirrors the ingestion schema so an exported file can be uploaded
// again unchanged.
type exportRow struct {
	Date      string  `csv:"Date"`
	City      string  `csv:"City"`
	AQI       float64 `csv:"AQI"`
	Pollutant string  `csv:"Pollutant"`
}

// ExportCSV writes the view's records as CSV in filtered order, using the
// same tabular schema ingestion accepts. Dates are written as YYYY-MM-DD.
// Re-ingesting the output reproduces the records exactly.
func ExportCSV(view View, w io.Writer) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	for _, r := range view.Records {
		row := exportRow{
			Date:      r.Date.Format("2006-01-02"),
			City:      r.City,
			AQI:       r.AQI,
			Pollutant: r.Pollutant,
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
