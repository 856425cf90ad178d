package bsx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RunRecord is one run's metadata from the archive's runs listing.
type RunRecord struct {
	ID           string   `json:"id"`
	StartTime    int64    `json:"startTime"`    // seconds
	TimeHorizon  int64    `json:"timeHorizon"`  // seconds
	PrefetchStep int64    `json:"prefetchStep"` // seconds
	Description  string   `json:"description"`  // empty for unnamed runs
	Timestamp    int64    `json:"timestamp"`    // unix epoch seconds, creation time
	Tags         []string `json:"tags"`
	ScenarioHash string   `json:"scenarioHash"`
	Complete     bool     `json:"complete"`
	Persisted    bool     `json:"persisted"`
	Historic     bool     `json:"historic"`
}

// Named reports whether the run has a human-readable description assigned.
func (r RunRecord) Named() bool {
	return r.Description != ""
}

// DynamicDescriptor describes one dynamic variable tracked within a run.
type DynamicDescriptor struct {
	ID          string `json:"id"`          // "<NAME>:<uuid>"
	Cardinality int    `json:"cardinality"` // components per timestep
	Type        string `json:"type"`        // e.g. "number"; passed through as-is
}

type settlementDoc struct {
	Settlement struct {
		ID string `json:"id"`
	} `json:"settlement"`
}

// SettlementID returns the identifier of the settlement this archive was
// exported from.
func (a *Archive) SettlementID() (string, error) {
	raw, err := a.readEntry(settlementEntry)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, settlementEntry, err)
	}
	var doc settlementDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, settlementEntry, err)
	}
	if doc.Settlement.ID == "" {
		return "", fmt.Errorf("%w: %s: settlement.id missing or not a string", ErrMalformedMetadata, settlementEntry)
	}
	return doc.Settlement.ID, nil
}

// rawRun mirrors one runs.json value. Required fields are pointers so that
// absent keys are detectable instead of silently zero.
type rawRun struct {
	StartTime    *int64   `json:"startTime"`
	TimeHorizon  *int64   `json:"timeHorizon"`
	PrefetchStep *int64   `json:"prefetchStep"`
	Description  string   `json:"description"`
	Timestamp    int64    `json:"timestamp"`
	Tags         []string `json:"tags"`
	ScenarioHash string   `json:"scenarioHash"`
	Complete     *bool    `json:"complete"`
	Persisted    *bool    `json:"persisted"`
	Historic     *bool    `json:"historic"`
}

func (r rawRun) toRecord(id string) (RunRecord, error) {
	switch {
	case r.StartTime == nil:
		return RunRecord{}, fmt.Errorf("run %s: startTime missing", id)
	case r.TimeHorizon == nil:
		return RunRecord{}, fmt.Errorf("run %s: timeHorizon missing", id)
	case r.PrefetchStep == nil:
		return RunRecord{}, fmt.Errorf("run %s: prefetchStep missing", id)
	case r.Complete == nil:
		return RunRecord{}, fmt.Errorf("run %s: complete missing", id)
	case r.Persisted == nil:
		return RunRecord{}, fmt.Errorf("run %s: persisted missing", id)
	case r.Historic == nil:
		return RunRecord{}, fmt.Errorf("run %s: historic missing", id)
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return RunRecord{
		ID:           id,
		StartTime:    *r.StartTime,
		TimeHorizon:  *r.TimeHorizon,
		PrefetchStep: *r.PrefetchStep,
		Description:  r.Description,
		Timestamp:    r.Timestamp,
		Tags:         tags,
		ScenarioHash: r.ScenarioHash,
		Complete:     *r.Complete,
		Persisted:    *r.Persisted,
		Historic:     *r.Historic,
	}, nil
}

// Runs returns the metadata of all runs in the archive, in document order.
// With namedOnly set, runs without a description are filtered out.
//
// The runs listing is a JSON object keyed by run id; a token-level decode
// keeps the document's key order, which plain map unmarshalling would lose.
func (a *Archive) Runs(namedOnly bool) ([]RunRecord, error) {
	raw, err := a.readEntry(runsEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, runsEntry, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, runsEntry, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: %s: expected a run-id keyed object", ErrMalformedMetadata, runsEntry)
	}

	runs := []RunRecord{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, runsEntry, err)
		}
		id := keyTok.(string)

		var rr rawRun
		if err := dec.Decode(&rr); err != nil {
			return nil, fmt.Errorf("%w: %s: run %s: %v", ErrMalformedMetadata, runsEntry, id, err)
		}
		rec, err := rr.toRecord(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, runsEntry, err)
		}
		if namedOnly && !rec.Named() {
			continue
		}
		runs = append(runs, rec)
	}
	return runs, nil
}

// Dynamics returns the dynamic descriptors of a run, in document order.
//
// Returns ErrUnknownRun when the archive has no dynamics listing at the
// run's resolved path, i.e. the run id does not correspond to an actual run
// folder.
func (a *Archive) Dynamics(runID string) ([]DynamicDescriptor, error) {
	entry := dynamicsMetadataEntry(runID)
	if !a.entryExists(entry) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	raw, err := a.readEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, entry, err)
	}
	var dynamics []DynamicDescriptor
	if err := json.Unmarshal(raw, &dynamics); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, entry, err)
	}
	for _, d := range dynamics {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: %s: dynamic with empty id", ErrMalformedMetadata, entry)
		}
		if d.Cardinality <= 0 {
			return nil, fmt.Errorf("%w: %s: dynamic %s: cardinality must be positive", ErrMalformedMetadata, entry, d.ID)
		}
	}
	return dynamics, nil
}

// RunState returns the run's full state snapshot as decoded JSON. The shape
// varies across platform versions, so it is exposed untyped.
func (a *Archive) RunState(runID string) (map[string]any, error) {
	if !a.runFolderExists(runID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	entry := runStateEntry(runID)
	raw, err := a.readEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, entry, err)
	}
	var state map[string]any
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, entry, err)
	}
	return state, nil
}

// DirectoryFragment returns the archive's directory fragment, a YAML entry
// describing where the export sits in the platform's settlement directory.
func (a *Archive) DirectoryFragment() (map[string]any, error) {
	raw, err := a.readEntry(directoryFragmentEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, directoryFragmentEntry, err)
	}
	var fragment map[string]any
	if err := yaml.Unmarshal(raw, &fragment); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, directoryFragmentEntry, err)
	}
	return fragment, nil
}
