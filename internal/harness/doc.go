// Package harness executes conformance scenarios against the yakstack
// engine.
//
// A scenario is a YAML file describing a frame history, a set of live steps
// (appends, commands, selection changes), and nothing else: the expected
// outcome lives in a golden file holding the final view snapshot. Scenario
// files are validated against an embedded CUE schema before execution, so a
// typo in a step name fails loudly instead of silently skipping the step.
//
// Scenarios run on an in-memory stream with sequential frame IDs
// ("frame-001", "frame-002", ...), which makes IDs referenceable from the
// YAML and keeps golden files deterministic. The synthesized threshold frame
// consumes an ID like any other, so live-phase IDs continue the sequence.
package harness
