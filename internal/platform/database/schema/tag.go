package schema

// TagTable represents the live 'catalog.tag' table.
type TagTable struct {
	Table            string
	ID               string
	Name             string
	Type             string
	ShortDescription string
	Description      string
	CreatedAt        string
	UpdatedAt        string
}

var Tag = TagTable{
	Table:            "catalog.tag",
	ID:               "id",
	Name:             "name",
	Type:             "type",
	ShortDescription: "short_description",
	Description:      "description",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

func (t TagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Type, t.ShortDescription, t.Description, t.CreatedAt, t.UpdatedAt}
}

type TagHistoryTable struct {
	Table            string
	ID               string
	Name             string
	Type             string
	ShortDescription string
	Description      string
	CreatedAt        string
}

var TagHistory = TagHistoryTable{
	Table:            "catalog.tag_history",
	ID:               "id",
	Name:             "name",
	Type:             "type",
	ShortDescription: "short_description",
	Description:      "description",
	CreatedAt:        "created_at",
}

func (t TagHistoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Type, t.ShortDescription, t.Description, t.CreatedAt}
}

type TagAltNameTable struct {
	Table string
	TagID string
	Name  string
}

var TagAltName = TagAltNameTable{Table: "catalog.tag_alt_name", TagID: "tag_id", Name: "name"}

type TagAltNameHistoryTable struct {
	Table        string
	TagHistoryID string
	Name         string
}

var TagAltNameHistory = TagAltNameHistoryTable{Table: "catalog.tag_alt_name_history", TagHistoryID: "tag_history_id", Name: "name"}

// TagRelationTable stores one directed edge between two tags (e.g.
// subgenre-of, derived-from); Type names the relation kind.
type TagRelationTable struct {
	Table         string
	TagID         string
	RelatedTagID  string
	Type          string
}

var TagRelation = TagRelationTable{
	Table: "catalog.tag_relation", TagID: "tag_id", RelatedTagID: "related_tag_id", Type: "type",
}

type TagRelationHistoryTable struct {
	Table        string
	TagHistoryID string
	RelatedTagID string
	Type         string
}

var TagRelationHistory = TagRelationHistoryTable{
	Table: "catalog.tag_relation_history", TagHistoryID: "tag_history_id", RelatedTagID: "related_tag_id", Type: "type",
}
