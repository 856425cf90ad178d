// Package bsx reads BSX simulation archives: zip containers holding the
// settlement and run metadata of a simulation export plus per-run
// dynamic-variable time series as CSV entries.
//
// An Archive is a read-only handle. Every query re-reads the container, so
// results always reflect the file on disk; nothing is cached. The handle is
// not safe for concurrent use and must be closed when done.
package bsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Archive is an open read handle over a BSX container file.
type Archive struct {
	zr     *zip.Reader
	closer io.Closer // nil when constructed from bytes
}

// Open opens the BSX archive at path.
//
// Returns ErrArchiveNotFound when path does not exist and ErrArchiveFormat
// when the file cannot be read as a zip container.
func Open(path string) (*Archive, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, path)
	}
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveFormat, path, err)
	}
	return &Archive{zr: &rc.Reader, closer: rc}, nil
}

// FromBytes opens a BSX archive held in memory, e.g. one just downloaded.
func FromBytes(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveFormat, err)
	}
	return &Archive{zr: zr}, nil
}

// Close releases the underlying file handle. It is a no-op for archives
// constructed from bytes and safe to defer unconditionally.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// readEntry returns the full contents of a named entry, or os.ErrNotExist
// (wrapped) when the container has no such entry.
func (a *Archive) readEntry(name string) ([]byte, error) {
	f, err := a.zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// entryExists reports whether a file entry with the exact name exists.
func (a *Archive) entryExists(name string) bool {
	for _, f := range a.zr.File {
		if f.Name == name && !f.FileInfo().IsDir() {
			return true
		}
	}
	return false
}

// runFolderExists reports whether any entry lives under the run's folder.
// Some writers emit explicit directory entries, some only the files, so both
// forms are accepted.
func (a *Archive) runFolderExists(runID string) bool {
	prefix := runFolder(runID) + "/"
	for _, f := range a.zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}
