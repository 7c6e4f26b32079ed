// Package harness provides a conformance testing framework for the
// backtrack navigation state machine.
//
// Scenarios are declared in YAML: a tab set, setup steps establishing
// an initial navigation state, a flow of discrete navigation events
// with optional per-step expectations, and final assertions over the
// resulting state.
//
// The runner drives a real tabnav.State - every consumed back event,
// tab switch and push goes through the same code paths production
// callers use. Determinism comes from two injected helpers:
//
//   - nav.PrefixedIDGenerator: reproducible entry ids
//   - testutil.DeterministicClock: reproducible trace seq values
//
// Each flow step appends one TraceEvent; the full trace can be compared
// against a golden file (see RunWithGolden), making regressions in the
// back-resolution tiers visible as a byte diff.
package harness
