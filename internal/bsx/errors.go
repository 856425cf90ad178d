package bsx

import "errors"

// Error kinds reported by Archive queries. Callers discriminate with
// errors.Is; messages carry the run/dynamic ids involved.
var (
	// ErrArchiveNotFound: the archive path does not exist on disk.
	ErrArchiveNotFound = errors.New("bsx archive not found")

	// ErrArchiveFormat: the file exists but is not a readable zip container.
	ErrArchiveFormat = errors.New("not a valid bsx archive")

	// ErrMalformedMetadata: a metadata entry is missing, undecodable, or
	// lacks a required field.
	ErrMalformedMetadata = errors.New("malformed bsx metadata")

	// ErrUnknownRun: the run id does not correspond to a run folder in the
	// archive. Distinct from a run missing in the runs listing.
	ErrUnknownRun = errors.New("unknown run")

	// ErrTimeseriesMissing: the dynamic's CSV entry is absent. Expected for
	// dynamics that were never persisted; probe with TimeseriesExists first.
	ErrTimeseriesMissing = errors.New("dynamic timeseries not found")

	// ErrMalformedTimeseries: the CSV entry exists but a row failed to parse.
	ErrMalformedTimeseries = errors.New("malformed dynamic timeseries")
)
