// Package journal provides SQLite-backed durable storage for
// navigation event logs.
//
// The journal is an append-only log of discrete navigation events
// (navigate, back, select_tab, reset_tab, clear_tab), each stamped with
// a monotonic logical seq. Replaying the log against a tab
// configuration deterministically reconstructs the navigation state it
// produced.
//
// # Critical Patterns
//
// Logical Identity and Time
//   - All ordering uses seq INTEGER (logical clock), NEVER timestamps
//   - Enables deterministic replay regardless of wall time
//
// Deterministic Query Results
//   - All reads include: ORDER BY seq ASC, id ASC
//   - Ensures identical replay results across runs
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The journal records only tab ids and destination route strings; entry
// ids and transition descriptors never reach the wire, keeping the
// core's opaque-destination contract intact.
package journal
