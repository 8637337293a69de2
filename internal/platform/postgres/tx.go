// Copyright (c) 2026 Harmonia. All rights reserved.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # Transaction Plumbing
//
// This file implements the TxManager/Tx contract: every
// correction-engine write runs under exactly one transaction opened at the
// public entry point. [Tx.Begin] opens a nested savepoint on the same
// handle; the materializers do not use it and run every statement
// directly on the one transaction they are given.
//
// pgx's [pgx.Tx.Begin] already issues SAVEPOINT/RELEASE SAVEPOINT when
// called on an existing transaction, so TxManager and Tx are thin,
// purpose-named wrappers around pgxpool.Pool and pgx.Tx rather than a
// reimplementation of transaction semantics.

// Tx is the handle threaded through every materializer call within one
// correction-engine operation. It is obtained from [TxManager.Begin] or
// from another [Tx] via [Tx.Begin] (a nested savepoint).
type Tx interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	// Query runs a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	// QueryRow runs a statement expected to return exactly one row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// SendBatch queues and executes a [pgx.Batch] of statements.
	SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults
	// Begin opens a nested savepoint on this transaction.
	Begin(ctx context.Context) (Tx, error)
	// Commit finalizes the transaction (or releases the savepoint).
	Commit(ctx context.Context) error
	// Rollback aborts the transaction (or rolls back to the savepoint). It
	// is a no-op if the transaction was already committed or rolled back,
	// so it is safe to defer unconditionally.
	Rollback(ctx context.Context) error
}

// TxRunner is the capability callers actually depend on: open a
// transaction, run fn, commit or roll back. Expressed as an interface
// (rather than requiring the concrete [*TxManager]) so callers like
// [correction.Engine] can be exercised against an in-memory fake in tests
// without a live Postgres connection.
type TxRunner interface {
	Run(ctx context.Context, fn func(Tx) error) error
}

// TxManager begins root transactions against the pool.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager constructs a [TxManager] bound to pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin opens a new root transaction.
func (m *TxManager) Begin(ctx context.Context) (Tx, error) {
	pgxTx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	return &txHandle{tx: pgxTx}, nil
}

// Run begins a transaction, invokes fn, and commits on success or rolls
// back on error/panic. This is the shape every correction-engine public
// entry point uses: a deferred Rollback paired with an explicit Commit
// on the success path.
func (m *TxManager) Run(ctx context.Context, fn func(Tx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return nil
}

// txHandle adapts a [pgx.Tx] to the [Tx] interface.
type txHandle struct {
	tx pgx.Tx
}

func (h *txHandle) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return h.tx.Exec(ctx, sql, args...)
}

func (h *txHandle) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return h.tx.Query(ctx, sql, args...)
}

func (h *txHandle) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return h.tx.QueryRow(ctx, sql, args...)
}

func (h *txHandle) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults {
	return h.tx.SendBatch(ctx, batch)
}

// Begin opens a nested transaction (savepoint) on the same connection.
func (h *txHandle) Begin(ctx context.Context) (Tx, error) {
	nested, err := h.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open savepoint: %w", err)
	}
	return &txHandle{tx: nested}, nil
}

func (h *txHandle) Commit(ctx context.Context) error {
	return h.tx.Commit(ctx)
}

func (h *txHandle) Rollback(ctx context.Context) error {
	return h.tx.Rollback(ctx)
}
