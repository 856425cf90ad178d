package bsx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// zipBytes builds an in-memory zip from entry name -> body.
func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// openFixture opens an in-memory archive and closes it on test cleanup.
func openFixture(t *testing.T, entries map[string]string) *Archive {
	t.Helper()
	a, err := FromBytes(zipBytes(t, entries))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// runsDoc is a runs.json with one fully-populated named run and one unnamed
// run, in that document order.
const runsDoc = `{
  "RUN:abc": {
    "startTime": 5097600,
    "timeHorizon": 7948800,
    "prefetchStep": 900,
    "description": "run #1",
    "timestamp": 1676391443,
    "tags": [],
    "scenarioHash": "e2884bb3",
    "complete": true,
    "persisted": true,
    "historic": false
  },
  "RUN:def": {
    "startTime": 0,
    "timeHorizon": 86400,
    "prefetchStep": 300,
    "description": "",
    "timestamp": 1676400000,
    "tags": ["baseline", "winter"],
    "scenarioHash": "91ffab02",
    "complete": false,
    "persisted": true,
    "historic": true
  }
}`

// demoArchive mirrors the layout an export of a small settlement produces.
func demoArchive(t *testing.T) *Archive {
	t.Helper()
	return openFixture(t, map[string]string{
		"settlement.json":                `{"settlement":{"id":"SETTLEMENT:demo-town","name":"Demo Town"}}`,
		"runs.json":                      runsDoc,
		"directory_fragment.yaml":        "settlement: demo-town\nfolder: exports/2023\n",
		"RUN_abc/dynamics_metadata.json": `[{"id":"VOLTAGE:v-1","cardinality":1,"type":"number"},{"id":"LOADFLOW:lf-1","cardinality":3,"type":"number"}]`,
		"RUN_abc/state.json":             `{"version":4,"settlement":{"id":"SETTLEMENT:demo-town"}}`,
		"RUN_abc/VOLTAGE_v-1.csv":        "5097600,138\n5098500,137\n",
		"RUN_abc/LOADFLOW_lf-1.csv":      "0,1.5,2.5,3.5\n900,1.6,2.6,3.6\n",
	})
}
