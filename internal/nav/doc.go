// Package nav implements the backtrack navigation state machine.
//
// The package is the heart of backtrack - it owns the back-stack data
// structure, the observable navigator built on top of it, and the
// hierarchical back-press delegation protocol that composes navigators
// into a tree.
//
// ARCHITECTURE:
//
// Single-Writer Mutation Contract:
// All mutations to a given BackStack or Navigator must be serialized by
// the caller (typically confined to one event-processing goroutine).
// This ensures:
// - Predictable, atomic state transitions
// - Observers never see a partially-applied mutation
// - Simple reasoning about causality of navigation events
//
// Reads fan out freely: projections (Current, Previous, CanGoBack) take
// read locks and always reflect a fully-applied mutation.
//
// Back-Press Delegation:
// 1. A discrete back event enters at the outermost BackPressHandler
// 2. OnBack() first delegates to the attached activeChild, if any
// 3. Only when no child is attached, or the child returns false, does
//    the handler evaluate its own logic
// 4. The boolean result ("consumed") bubbles back up
//
// This yields depth-first, innermost-first resolution with O(depth)
// cost per event. No call suspends or cancels; exactly one discrete
// event triggers exactly one resolution pass.
//
// CRITICAL PATTERNS:
//
// Entry Identity:
// Every entry is stamped with a UUIDv7 id at creation. Ids never change
// and are never reused; pushing the same destination twice produces two
// distinct entries. NEVER compare entries by destination alone.
//
// Reject, Never Tear:
// Out-of-range indices and unknown ids reject the operation and leave
// state untouched. Identical inputs always produce identical
// rejections. No operation partially applies.
package nav
