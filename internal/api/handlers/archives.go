package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"bsx-tools/internal/api/models"
	"bsx-tools/internal/bsx"
)

// ArchiveHandler serves read-only queries against BSX archives stored in a
// directory. Each request opens the archive, queries it once, and closes it;
// nothing is cached between requests.
type ArchiveHandler struct {
	archiveDir string
}

// NewArchiveHandler creates a handler rooted at archiveDir.
func NewArchiveHandler(archiveDir string) *ArchiveHandler {
	abs, err := filepath.Abs(archiveDir)
	if err == nil {
		archiveDir = abs
	}
	return &ArchiveHandler{archiveDir: archiveDir}
}

// ListArchives handles GET /api/v1/archives
func (h *ArchiveHandler) ListArchives(c *gin.Context) {
	archives := []models.ArchiveInfo{}

	entries, err := os.ReadDir(h.archiveDir)
	if err != nil {
		// An absent directory just means no archives yet.
		c.JSON(http.StatusOK, gin.H{"archives": archives, "count": 0})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, models.ArchiveInfo{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			Modified:  info.ModTime().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"archives": archives, "count": len(archives)})
}

// GetSettlement handles GET /api/v1/archives/:archive/settlement
func (h *ArchiveHandler) GetSettlement(c *gin.Context) {
	h.withArchive(c, func(a *bsx.Archive) error {
		id, err := a.SettlementID()
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, models.SettlementResponse{SettlementID: id})
		return nil
	})
}

// ListRuns handles GET /api/v1/archives/:archive/runs
func (h *ArchiveHandler) ListRuns(c *gin.Context) {
	namedOnly := c.Query("named") == "true"
	h.withArchive(c, func(a *bsx.Archive) error {
		runs, err := a.Runs(namedOnly)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, models.RunsResponse{Runs: runs, Count: len(runs)})
		return nil
	})
}

// ListDynamics handles GET /api/v1/archives/:archive/runs/:runId/dynamics
func (h *ArchiveHandler) ListDynamics(c *gin.Context) {
	runID := c.Param("runId")
	h.withArchive(c, func(a *bsx.Archive) error {
		dynamics, err := a.Dynamics(runID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, models.DynamicsResponse{
			RunID:    runID,
			Dynamics: dynamics,
			Count:    len(dynamics),
		})
		return nil
	})
}

// GetRunState handles GET /api/v1/archives/:archive/runs/:runId/state
func (h *ArchiveHandler) GetRunState(c *gin.Context) {
	runID := c.Param("runId")
	h.withArchive(c, func(a *bsx.Archive) error {
		state, err := a.RunState(runID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"run_id": runID, "state": state})
		return nil
	})
}

// GetTimeseries handles
// GET /api/v1/archives/:archive/runs/:runId/dynamics/:dynamicId/timeseries
func (h *ArchiveHandler) GetTimeseries(c *gin.Context) {
	runID := c.Param("runId")
	dynamicID := c.Param("dynamicId")
	h.withArchive(c, func(a *bsx.Archive) error {
		table, err := a.Timeseries(runID, dynamicID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, models.NewTimeseriesResponse(table))
		return nil
	})
}

// withArchive opens the named archive, runs the query, and translates bsx
// errors into the API's error envelope.
func (h *ArchiveHandler) withArchive(c *gin.Context, query func(a *bsx.Archive) error) {
	name := c.Param("archive")
	if name != filepath.Base(name) || name == "." || name == ".." {
		writeError(c, http.StatusBadRequest, "INVALID_ARCHIVE_NAME",
			fmt.Sprintf("invalid archive name %q", name))
		return
	}

	a, err := bsx.Open(filepath.Join(h.archiveDir, name))
	if err != nil {
		writeBsxError(c, err)
		return
	}
	defer a.Close()

	if err := query(a); err != nil {
		writeBsxError(c, err)
	}
}

func writeBsxError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, bsx.ErrArchiveNotFound):
		status, code = http.StatusNotFound, "ARCHIVE_NOT_FOUND"
	case errors.Is(err, bsx.ErrUnknownRun):
		status, code = http.StatusNotFound, "UNKNOWN_RUN"
	case errors.Is(err, bsx.ErrTimeseriesMissing):
		status, code = http.StatusNotFound, "TIMESERIES_NOT_FOUND"
	case errors.Is(err, bsx.ErrArchiveFormat):
		status, code = http.StatusUnprocessableEntity, "ARCHIVE_FORMAT_ERROR"
	case errors.Is(err, bsx.ErrMalformedMetadata):
		status, code = http.StatusUnprocessableEntity, "MALFORMED_METADATA"
	case errors.Is(err, bsx.ErrMalformedTimeseries):
		status, code = http.StatusUnprocessableEntity, "MALFORMED_TIMESERIES"
	}
	writeError(c, status, code, err.Error())
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
