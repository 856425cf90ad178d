package bsx

import "strings"

// Fixed top-level entries of the container.
const (
	settlementEntry        = "settlement.json"
	runsEntry              = "runs.json"
	directoryFragmentEntry = "directory_fragment.yaml"

	dynamicsMetadataName = "dynamics_metadata.json"
	runStateName         = "state.json"
)

// idToEntryName maps a `KIND:uuid` identifier to the name used for it inside
// the container. Colons are replaced because they are not valid in folder
// names on every platform the simulation platform writes archives from.
func idToEntryName(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}

// runFolder returns the container folder holding a run's entries,
// e.g. "RUN:abc" -> "RUN_abc".
func runFolder(runID string) string {
	return idToEntryName(runID)
}

// dynamicsMetadataEntry returns the path of a run's dynamics listing.
func dynamicsMetadataEntry(runID string) string {
	return runFolder(runID) + "/" + dynamicsMetadataName
}

// runStateEntry returns the path of a run's state snapshot.
func runStateEntry(runID string) string {
	return runFolder(runID) + "/" + runStateName
}

// timeseriesEntry returns the path of a dynamic's CSV inside a run's folder,
// e.g. ("RUN:abc", "VOLTAGE:123") -> "RUN_abc/VOLTAGE_123.csv".
func timeseriesEntry(runID, dynamicID string) string {
	return runFolder(runID) + "/" + idToEntryName(dynamicID) + ".csv"
}
