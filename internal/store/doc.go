// Package store defines the persistence contracts for learning items and learner
// progress. Core packages depend only on these interfaces and on ItemFilter,
// never on SQL; adapters live in internal/platform/postgres and
// internal/store/memory.
package store
