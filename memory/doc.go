// Package memory implements the conversational memory core: the ordered
// message store, the token usage tracker, and the FIFO compaction policy.
//
// Invariants:
//   - A Conversation only grows by Append or shrinks by Remove; the relative
//     order of surviving messages never changes.
//   - The Tracker's running total is maintained by the owning session
//     controller in lockstep with store mutations; it is never recomputed
//     by scanning the store.
//   - Compaction evicts an oldest-first prefix of the evictable partition;
//     system messages and the pinned tail are never touched.
package memory
