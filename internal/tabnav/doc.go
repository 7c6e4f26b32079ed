// Package tabnav implements parallel per-tab navigation stacks with a
// shared selection state.
//
// A tab set is described by an immutable, validated Config: the full
// list of tabs, the initially selected tab, and the primary ("home")
// tab. Construction collects every violation before failing - an
// invalid configuration never produces a usable State.
//
// State owns one back stack per tab, each permanently seeded with the
// tab's root destination. Switching tabs never mutates any stack; every
// tab's history survives for the State's full lifetime. This
// non-destructive switch is the defining property of the design, as
// opposed to replace-and-navigate tab switching.
//
// BACK RESOLUTION:
//
// OnBack is evaluated as three ordered tiers; the first match wins and
// tiers are never combined in one call:
//
//  1. Selected tab's stack is deeper than its root: pop within the tab.
//  2. Selected tab is not the primary tab: select the primary tab
//     (this event never also pops).
//  3. Otherwise: not consumed; the event propagates outward.
//
// Tier ordering is the package's central contract. Implementations of
// new operations must never reorder or merge the tiers.
//
// Tab ids are NFC-canonicalized before comparison so that visually
// identical ids with different Unicode compositions name the same tab.
//
// The single-writer/multi-reader contract of package nav applies: all
// mutations to one State must be serialized by the caller; projections
// and signals are safe to read from any goroutine.
package tabnav
