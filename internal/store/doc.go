// Package store implements the append-only frame log and content-addressed
// store (CAS) backing the yakstack engine.
//
// ARCHITECTURE:
//
// Two SQLite tables: frames (the ordered, immutable event log) and cas
// (content keyed by its own SHA-256 digest). Frames never carry content
// inline; Append inserts the content into the CAS first and records only the
// hash on the frame.
//
// Delivery model:
//
//  1. OnFrame registers an in-process listener.
//  2. Subscribe streams every persisted frame in log order, then a
//     synthesized xs.threshold frame, then flips the store live.
//  3. Once live, Append delivers each new frame to all listeners before
//     returning, still in log order.
//
// The store's mutex is held across insert+deliver, so listeners observe
// frames in exactly the order they were appended. The threshold frame is
// synthesized per subscription and never persisted: it marks the
// historical/live boundary, not a log entry.
//
// Single process, single writer. Multi-writer logs and network transports
// are out of scope.
package store
