// Package pipeline drives the three-phase node-ordering computation.
//
// A run takes a dataset directory holding the text attribute vectors of one
// graph and an InertialFlowCutter checkout, then:
//
//  1. converts each attribute vector to binary form under <data>/binary/,
//  2. computes the node ordering into <data>/ordering/<graph>_bin,
//  3. converts the binary ordering back to text at <data>/ordering/<graph>.
//
// The phases run strictly in sequence; a failure in any external tool aborts
// the run immediately. Conversions already recorded by the resume-stamp
// cache are skipped, so an interrupted run picks up where it left off.
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orderkit/pkg/errors"
	"github.com/matzehuels/orderkit/pkg/routingkit"
)

// Options configures a pipeline run.
type Options struct {
	// FlowCutterPath is the root of the InertialFlowCutter checkout holding
	// the console converter and the ordering script.
	FlowCutterPath string

	// DataDir is the dataset directory holding the text attribute vectors.
	DataDir string

	// GraphName names the output order vector.
	GraphName string

	// Attributes lists the attribute files to convert, in processing order.
	// Empty means the canonical RoutingKit set.
	Attributes []string

	// Interpreter runs the ordering script. Empty means python3.
	Interpreter string

	// CleanBinary removes the converted binary vectors after a successful
	// run. Files the pipeline did not create are left alone.
	CleanBinary bool

	// Refresh forces reconversion of every attribute, ignoring resume stamps.
	Refresh bool

	// Logger receives progress output. Nil means the default logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.FlowCutterPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "flow cutter path is required")
	}
	if o.DataDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data directory is required")
	}
	if o.GraphName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "graph name is required")
	}
	if strings.ContainsAny(o.GraphName, `/\`) {
		return errors.New(errors.ErrCodeInvalidInput, "graph name %q must not contain path separators", o.GraphName)
	}
	if len(o.Attributes) == 0 {
		o.Attributes = routingkit.DefaultAttributes()
	}
	for _, attr := range o.Attributes {
		if attr == "" {
			return errors.New(errors.ErrCodeInvalidAttribute, "attribute name must not be empty")
		}
		if strings.ContainsAny(attr, `/\`) {
			return errors.New(errors.ErrCodeInvalidAttribute, "attribute name %q must not contain path separators", attr)
		}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// Result describes a completed pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and hooks.
	RunID string

	// OrderBinaryPath is the binary order vector written by phase 2.
	OrderBinaryPath string

	// OrderTextPath is the final text order vector written by phase 3.
	OrderTextPath string

	// Converted lists the attributes converted during this run.
	Converted []string

	// Skipped lists the attributes whose conversion a resume stamp covered.
	Skipped []string

	// Stats holds per-phase timings.
	Stats Stats
}

// Stats holds per-phase wall-clock timings.
type Stats struct {
	ConvertTime time.Duration
	OrderTime   time.Duration
	ExportTime  time.Duration
}

// Total returns the combined duration of all phases.
func (s Stats) Total() time.Duration {
	return s.ConvertTime + s.OrderTime + s.ExportTime
}
