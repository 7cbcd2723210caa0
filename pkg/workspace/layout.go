// Package workspace resolves the on-disk layout of one dataset directory.
//
// A dataset directory holds the text attribute vectors of a single graph at
// its top level, the binary vectors produced by phase 1 under binary/, and
// the order vectors produced by phases 2 and 3 under ordering/. Only the two
// subdirectories are ever created by this tool; the dataset directory itself
// must already exist.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/orderkit/pkg/errors"
)

// Subdirectory names inside a dataset directory.
const (
	BinaryDirName   = "binary"
	OrderingDirName = "ordering"
)

// orderBinarySuffix is the suffix of the binary order vector produced by the
// ordering script. It is contractual with inertialflowcutter_order.py; do not
// change it without checking the collaborator's expectations.
const orderBinarySuffix = "_bin"

// Layout computes the paths of a dataset directory.
// All paths are fully determined by the dataset directory, the fixed
// subdirectory names, and the attribute or graph name.
type Layout struct {
	DataDir string
}

// New creates a Layout rooted at dataDir.
func New(dataDir string) Layout {
	return Layout{DataDir: dataDir}
}

// AttributePath returns the path of a text attribute vector.
func (l Layout) AttributePath(name string) string {
	return filepath.Join(l.DataDir, name)
}

// BinaryDir returns the directory holding binary attribute vectors.
func (l Layout) BinaryDir() string {
	return filepath.Join(l.DataDir, BinaryDirName)
}

// BinaryDirArg returns the binary directory with a trailing slash.
// The ordering script requires the trailing slash; do not change it without
// checking the collaborator's expectations.
func (l Layout) BinaryDirArg() string {
	return strings.TrimRight(l.BinaryDir(), "/") + "/"
}

// BinaryPath returns the path of a binary attribute vector.
func (l Layout) BinaryPath(name string) string {
	return filepath.Join(l.BinaryDir(), name)
}

// OrderingDir returns the directory holding the order vectors.
func (l Layout) OrderingDir() string {
	return filepath.Join(l.DataDir, OrderingDirName)
}

// OrderBinaryPath returns the path of the binary order vector for a graph.
func (l Layout) OrderBinaryPath(graphName string) string {
	return filepath.Join(l.OrderingDir(), graphName+orderBinarySuffix)
}

// OrderTextPath returns the path of the final text order vector for a graph.
func (l Layout) OrderTextPath(graphName string) string {
	return filepath.Join(l.OrderingDir(), graphName)
}

// EnsureBinaryDir creates the binary subdirectory if it does not exist.
// Creation is idempotent; existing contents are never touched.
func (l Layout) EnsureBinaryDir() error {
	return ensureDir(l.BinaryDir())
}

// EnsureOrderingDir creates the ordering subdirectory if it does not exist.
// Creation is idempotent; existing contents are never touched.
func (l Layout) EnsureOrderingDir() error {
	return ensureDir(l.OrderingDir())
}

// CheckAttributes verifies that every named attribute file exists and is a
// regular file. The first missing attribute aborts with MISSING_INPUT.
func (l Layout) CheckAttributes(names []string) error {
	for _, name := range names {
		path := l.AttributePath(name)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeMissingInput, "attribute file not found: %s", path)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeMissingInput, err, "stat %s", path)
		}
		if info.IsDir() {
			return errors.New(errors.ErrCodeMissingInput, "attribute path is a directory: %s", path)
		}
	}
	return nil
}

// RemoveBinaryPaths deletes the binary vectors of the named attributes.
// The binary directory itself is removed only if it is empty afterwards, so
// unrelated files placed there by the user survive.
func (l Layout) RemoveBinaryPaths(names []string) error {
	for _, name := range names {
		if err := os.Remove(l.BinaryPath(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", l.BinaryPath(name), err)
		}
	}
	// Best effort: os.Remove refuses to delete non-empty directories.
	_ = os.Remove(l.BinaryDir())
	return nil
}

// ensureDir creates dir if absent. A collision with an existing
// non-directory surfaces as an error from MkdirAll.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
