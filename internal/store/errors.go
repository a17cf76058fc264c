// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrTokenMismatch is returned when the stored sync key no longer equals
	// the key the caller based its change on.
	ErrTokenMismatch = errors.New("stored sync key does not match")

	// ErrCollectionMismatch is returned when expected and next describe
	// different collections.
	ErrCollectionMismatch = errors.New("hierarchies belong to different collections")

	// ErrRetryable marks a failure the database classified as transient
	// (lost connection, serialization failure, busy database).
	ErrRetryable = errors.New("transient storage failure")

	// ErrUnsupportedDSN is returned by NewConnect for an empty DSN.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
