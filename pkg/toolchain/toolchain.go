// Package toolchain describes the external InertialFlowCutter collaborators
// and executes them.
//
// Two external programs do the real work:
//
//   - the console converter at <flow-cutter-path>/build/console, which
//     translates RoutingKit vectors between text and binary form:
//     console <mode> <src> <dst>
//   - the ordering script at <flow-cutter-path>/inertialflowcutter_order.py,
//     run through an interpreter:
//     <interpreter> <script> <binary-dir>/ <dst>
//
// Argument order, the conversion mode strings, and the trailing slash on the
// binary directory are contractual with those tools; the builders here
// produce them exactly and nothing else.
package toolchain

import "path/filepath"

// Mode selects the console converter's direction.
type Mode string

// Conversion modes understood by the console tool.
const (
	TextToBinary Mode = "text_to_binary_vector"
	BinaryToText Mode = "binary_to_text_vector"
)

// DefaultInterpreter runs the ordering script.
const DefaultInterpreter = "python3"

const (
	consoleRelPath  = "build/console"
	orderScriptName = "inertialflowcutter_order.py"
)

// Toolchain locates the external executables inside an InertialFlowCutter
// checkout and builds their invocations.
type Toolchain struct {
	// FlowCutterPath is the root of the InertialFlowCutter checkout.
	FlowCutterPath string

	// Interpreter runs the ordering script. Defaults to python3.
	Interpreter string
}

// New creates a Toolchain rooted at flowCutterPath with the default interpreter.
func New(flowCutterPath string) Toolchain {
	return Toolchain{
		FlowCutterPath: flowCutterPath,
		Interpreter:    DefaultInterpreter,
	}
}

// Console returns the path of the console converter binary.
func (t Toolchain) Console() string {
	return filepath.Join(t.FlowCutterPath, filepath.FromSlash(consoleRelPath))
}

// OrderScript returns the path of the ordering script.
func (t Toolchain) OrderScript() string {
	return filepath.Join(t.FlowCutterPath, orderScriptName)
}

// ConvertArgs builds the console invocation for one conversion:
// [console, mode, src, dst].
func (t Toolchain) ConvertArgs(mode Mode, src, dst string) []string {
	return []string{t.Console(), string(mode), src, dst}
}

// OrderArgs builds the ordering invocation:
// [interpreter, script, binaryDir, dst].
// binaryDir must carry its trailing slash (see workspace.Layout.BinaryDirArg).
func (t Toolchain) OrderArgs(binaryDir, dst string) []string {
	interp := t.Interpreter
	if interp == "" {
		interp = DefaultInterpreter
	}
	return []string{interp, t.OrderScript(), binaryDir, dst}
}
