package bsx

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// TimeSeriesRow is one sampled point of a dynamic: the simulation timestep
// and one value per component of the dynamic.
type TimeSeriesRow struct {
	// Time is Timestep projected onto the unix epoch, purely for display.
	// The underlying value is simulation-relative seconds, not calendar time.
	Time     time.Time
	Timestep int64
	Values   []float64
}

// TimeSeriesTable holds a dynamic's full time series in file order.
type TimeSeriesTable struct {
	RunID     string
	DynamicID string
	Rows      []TimeSeriesRow
}

// Len returns the number of rows.
func (t *TimeSeriesTable) Len() int { return len(t.Rows) }

// Width returns the number of value components per row, 0 for an empty table.
func (t *TimeSeriesTable) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Values)
}

// TimeseriesExists reports whether a dynamic's CSV entry is present in the
// run's folder. A missing CSV is an expected outcome (the value may never
// have been persisted to the time-series store) and never an error; only a
// missing run folder is, with ErrUnknownRun.
func (a *Archive) TimeseriesExists(runID, dynamicID string) (bool, error) {
	if !a.runFolderExists(runID) {
		return false, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return a.entryExists(timeseriesEntry(runID, dynamicID)), nil
}

// Timeseries parses a dynamic's CSV entry into a table.
//
// The entry is headerless: column 0 is the integer timestep, the remaining
// columns are the dynamic's numeric components. Returns ErrTimeseriesMissing
// when the entry is absent and ErrMalformedTimeseries when any cell fails to
// parse; there is no partial result.
func (a *Archive) Timeseries(runID, dynamicID string) (*TimeSeriesTable, error) {
	entry := timeseriesEntry(runID, dynamicID)
	f, err := a.zr.Open(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic %s in run %s", ErrTimeseriesMissing, dynamicID, runID)
	}
	defer f.Close()

	table := &TimeSeriesTable{RunID: runID, DynamicID: dynamicID, Rows: []TimeSeriesRow{}}
	r := csv.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: dynamic %s in run %s: %v", ErrMalformedTimeseries, dynamicID, runID, err)
		}
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%w: dynamic %s in run %s: %v", ErrMalformedTimeseries, dynamicID, runID, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func parseRow(record []string) (TimeSeriesRow, error) {
	if len(record) < 2 {
		return TimeSeriesRow{}, fmt.Errorf("row has %d columns, need a timestep and at least one value", len(record))
	}
	timestep, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return TimeSeriesRow{}, fmt.Errorf("timestep %q: %v", record[0], err)
	}
	values := make([]float64, len(record)-1)
	for i, cell := range record[1:] {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return TimeSeriesRow{}, fmt.Errorf("timestep %d column %d: %q: %v", timestep, i, cell, err)
		}
		values[i] = v
	}
	return TimeSeriesRow{
		Time:     time.Unix(timestep, 0).UTC(),
		Timestep: timestep,
		Values:   values,
	}, nil
}
