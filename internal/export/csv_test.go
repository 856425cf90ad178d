package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsx-tools/internal/bsx"
)

func TestWriteTableCSV(t *testing.T) {
	table := &bsx.TimeSeriesTable{
		RunID:     "RUN:abc",
		DynamicID: "LOADFLOW:lf-1",
		Rows: []bsx.TimeSeriesRow{
			{Time: time.Unix(0, 0).UTC(), Timestep: 0, Values: []float64{1.5, 2.5}},
			{Time: time.Unix(900, 0).UTC(), Timestep: 900, Values: []float64{1.6, 2.6}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteTableCSV(path, table))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"time,timestep,0,1\n"+
			"1970-01-01T00:00:00Z,0,1.5,2.5\n"+
			"1970-01-01T00:15:00Z,900,1.6,2.6\n",
		string(raw))
}

func TestWriteTableCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteTableCSV(path, &bsx.TimeSeriesTable{Rows: []bsx.TimeSeriesRow{}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time,timestep\n", string(raw))
}
