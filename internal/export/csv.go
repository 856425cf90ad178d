package export

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"bsx-tools/internal/bsx"
)

// WriteTableCSV writes a time-series table to path with a header row:
// time, timestep, then one column per value component.
func WriteTableCSV(path string, table *bsx.TimeSeriesTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "timestep"}
	for i := 0; i < table.Width(); i++ {
		header = append(header, strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range table.Rows {
		row := make([]string, 0, len(r.Values)+2)
		row = append(row, r.Time.Format(time.RFC3339), strconv.FormatInt(r.Timestep, 10))
		for _, v := range r.Values {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
