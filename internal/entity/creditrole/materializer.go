// Copyright (c) 2026 Harmonia. All rights reserved.

package creditrole

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for credit roles.
type Materializer struct{}

// NewMaterializer constructs a credit-role [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityCreditRole }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.CreditRoleHistory.Table,
		schema.CreditRoleHistory.Name, schema.CreditRoleHistory.ShortDescription, schema.CreditRoleHistory.Description,
		schema.CreditRoleHistory.CreatedAt,
		schema.CreditRoleHistory.ID,
	)

	var historyID string
	if err := tx.QueryRow(ctx, query, p.Name, p.ShortDescription, p.Description).Scan(&historyID); err != nil {
		return "", dberr.Wrap(err, "create credit role history")
	}

	if err := insertSuperHistory(ctx, tx, historyID, p.SuperRoleIDs); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s
	`,
		schema.CreditRole.Table,
		schema.CreditRole.Name, schema.CreditRole.ShortDescription, schema.CreditRole.Description,
		schema.CreditRole.CreatedAt, schema.CreditRole.UpdatedAt,
		schema.CreditRole.ID,
	)

	var entityID string
	if err := tx.QueryRow(ctx, query, p.Name, p.ShortDescription, p.Description).Scan(&entityID); err != nil {
		return "", dberr.Wrap(err, "create live credit role")
	}

	if err := insertSuperLive(ctx, tx, entityID, p.SuperRoleIDs); err != nil {
		return "", err
	}
	return entityID, nil
}

type creditRoleHistoryRecord struct {
	Name             string
	ShortDescription *string
	Description      *string
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*creditRoleHistoryRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.CreditRoleHistory.Name, schema.CreditRoleHistory.ShortDescription, schema.CreditRoleHistory.Description,
		schema.CreditRoleHistory.Table, schema.CreditRoleHistory.ID)

	h := &creditRoleHistoryRecord{}
	if err := tx.QueryRow(ctx, query, historyID).Scan(&h.Name, &h.ShortDescription, &h.Description); err != nil {
		return nil, dberr.Wrap(err, "load credit role history")
	}
	return h, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $1
	`,
		schema.CreditRole.Table,
		schema.CreditRole.Name, schema.CreditRole.ShortDescription, schema.CreditRole.Description, schema.CreditRole.UpdatedAt,
		schema.CreditRole.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.Name, h.ShortDescription, h.Description)
	if err != nil {
		return dberr.Wrap(err, "update live credit role")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	supers, err := selectSuperHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	return dbutil.ReplaceChildren(ctx, tx, schema.CreditRoleSuper.Table, schema.CreditRoleSuper.RoleID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.CreditRoleSuper.Table, schema.CreditRoleSuper.RoleID, schema.CreditRoleSuper.SuperRoleID),
		superRows(entityID, supers),
	)
}

func superRows(id string, superIDs []string) [][]any {
	rows := make([][]any, 0, len(superIDs))
	for _, s := range superIDs {
		rows = append(rows, []any{id, s})
	}
	return rows
}

func insertSuperHistory(ctx context.Context, tx postgres.Tx, historyID string, superIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CreditRoleSuperHistory.Table, schema.CreditRoleSuperHistory.RoleHistoryID, schema.CreditRoleSuperHistory.SuperRoleID)
	return dbutil.BatchInsert(ctx, tx, query, superRows(historyID, superIDs))
}

func selectSuperHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.CreditRoleSuperHistory.SuperRoleID, schema.CreditRoleSuperHistory.Table, schema.CreditRoleSuperHistory.RoleHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select credit role super history")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, dberr.Wrap(err, "scan credit role super history")
		}
		out = append(out, s)
	}
	return out, nil
}

func insertSuperLive(ctx context.Context, tx postgres.Tx, entityID string, superIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CreditRoleSuper.Table, schema.CreditRoleSuper.RoleID, schema.CreditRoleSuper.SuperRoleID)
	return dbutil.BatchInsert(ctx, tx, query, superRows(entityID, superIDs))
}
