package models

import (
	"time"

	"bsx-tools/internal/bsx"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ArchiveInfo describes one archive file available under the archive dir.
type ArchiveInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
}

// SettlementResponse is the body of GET .../settlement.
type SettlementResponse struct {
	SettlementID string `json:"settlement_id"`
}

// RunsResponse is the body of GET .../runs.
type RunsResponse struct {
	Runs  []bsx.RunRecord `json:"runs"`
	Count int             `json:"count"`
}

// DynamicsResponse is the body of GET .../runs/:runId/dynamics.
type DynamicsResponse struct {
	RunID    string                  `json:"run_id"`
	Dynamics []bsx.DynamicDescriptor `json:"dynamics"`
	Count    int                     `json:"count"`
}

// TimeseriesRow is one row of a dynamic's series in the API shape.
type TimeseriesRow struct {
	Time     time.Time `json:"time"`
	Timestep int64     `json:"timestep"`
	Values   []float64 `json:"values"`
}

// TimeseriesResponse is the body of GET .../timeseries.
type TimeseriesResponse struct {
	RunID     string          `json:"run_id"`
	DynamicID string          `json:"dynamic_id"`
	Rows      []TimeseriesRow `json:"rows"`
	Count     int             `json:"count"`
}

// NewTimeseriesResponse converts a parsed table to the API shape.
func NewTimeseriesResponse(table *bsx.TimeSeriesTable) TimeseriesResponse {
	rows := make([]TimeseriesRow, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = TimeseriesRow{Time: r.Time, Timestep: r.Timestep, Values: r.Values}
	}
	return TimeseriesResponse{
		RunID:     table.RunID,
		DynamicID: table.DynamicID,
		Rows:      rows,
		Count:     len(rows),
	}
}
