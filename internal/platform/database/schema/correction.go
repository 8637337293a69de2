package schema

// CorrectionTable represents the 'correction.correction' table: one row
// per proposed change, entity-kind agnostic.
type CorrectionTable struct {
	Table      string
	ID         string
	Status     string
	Type       string
	EntityType string
	EntityID   string
	CreatedAt  string
	HandledAt  string
}

// Correction is the schema definition for correction.correction.
var Correction = CorrectionTable{
	Table:      "correction.correction",
	ID:         "id",
	Status:     "status",
	Type:       "type",
	EntityType: "entity_type",
	EntityID:   "entity_id",
	CreatedAt:  "created_at",
	HandledAt:  "handled_at",
}

func (t CorrectionTable) Columns() []string {
	return []string{t.ID, t.Status, t.Type, t.EntityType, t.EntityID, t.CreatedAt, t.HandledAt}
}

// CorrectionRevisionTable represents 'correction.correction_revision': the
// ordered list of history snapshots a correction has pointed at.
type CorrectionRevisionTable struct {
	Table           string
	CorrectionID    string
	EntityHistoryID string
	AuthorID        string
	Description     string
	Seq             string
	CreatedAt       string
}

var CorrectionRevision = CorrectionRevisionTable{
	Table:           "correction.correction_revision",
	CorrectionID:    "correction_id",
	EntityHistoryID: "entity_history_id",
	AuthorID:        "author_id",
	Description:     "description",
	Seq:             "seq",
	CreatedAt:       "created_at",
}

func (t CorrectionRevisionTable) Columns() []string {
	return []string{t.CorrectionID, t.EntityHistoryID, t.AuthorID, t.Description, t.Seq, t.CreatedAt}
}

// CorrectionUserTable represents 'correction.correction_user': the
// author/approver/rejecter join table.
type CorrectionUserTable struct {
	Table        string
	CorrectionID string
	UserID       string
	UserType     string
}

var CorrectionUser = CorrectionUserTable{
	Table:        "correction.correction_user",
	CorrectionID: "correction_id",
	UserID:       "user_id",
	UserType:     "user_type",
}

func (t CorrectionUserTable) Columns() []string {
	return []string{t.CorrectionID, t.UserID, t.UserType}
}
