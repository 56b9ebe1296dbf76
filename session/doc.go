// Package session persists the per-user working schedule between turns.
//
// A session holds the active date range and the working set of entries the
// assistant is currently operating on. The Store interface keeps callers
// independent of the backend; an in-memory implementation covers tests and
// demos, a Redis implementation covers multi-process deployments.
package session
