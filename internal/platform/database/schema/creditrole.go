package schema

// CreditRoleTable represents the live 'catalog.credit_role' table. Credit
// roles form a hierarchy (e.g. "Guitar" is a sub-role of "Instruments")
// via CreditRoleSuper.
type CreditRoleTable struct {
	Table            string
	ID               string
	Name             string
	ShortDescription string
	Description      string
	CreatedAt        string
	UpdatedAt        string
}

var CreditRole = CreditRoleTable{
	Table:            "catalog.credit_role",
	ID:               "id",
	Name:             "name",
	ShortDescription: "short_description",
	Description:      "description",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

func (t CreditRoleTable) Columns() []string {
	return []string{t.ID, t.Name, t.ShortDescription, t.Description, t.CreatedAt, t.UpdatedAt}
}

type CreditRoleHistoryTable struct {
	Table            string
	ID               string
	Name             string
	ShortDescription string
	Description      string
	CreatedAt        string
}

var CreditRoleHistory = CreditRoleHistoryTable{
	Table:            "catalog.credit_role_history",
	ID:               "id",
	Name:             "name",
	ShortDescription: "short_description",
	Description:      "description",
	CreatedAt:        "created_at",
}

func (t CreditRoleHistoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.ShortDescription, t.Description, t.CreatedAt}
}

type CreditRoleSuperTable struct {
	Table        string
	RoleID       string
	SuperRoleID  string
}

var CreditRoleSuper = CreditRoleSuperTable{
	Table: "catalog.credit_role_super", RoleID: "role_id", SuperRoleID: "super_role_id",
}

type CreditRoleSuperHistoryTable struct {
	Table             string
	RoleHistoryID     string
	SuperRoleID       string
}

var CreditRoleSuperHistory = CreditRoleSuperHistoryTable{
	Table: "catalog.credit_role_super_history", RoleHistoryID: "role_history_id", SuperRoleID: "super_role_id",
}
