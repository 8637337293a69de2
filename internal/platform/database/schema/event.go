package schema

// EventTable represents the live 'catalog.event' table.
type EventTable struct {
	Table              string
	ID                 string
	Name               string
	ShortDescription   string
	Description        string
	StartDate          string
	StartDatePrecision string
	EndDate            string
	EndDatePrecision   string
	CreatedAt          string
	UpdatedAt          string
}

var Event = EventTable{
	Table:              "catalog.event",
	ID:                 "id",
	Name:               "name",
	ShortDescription:   "short_description",
	Description:        "description",
	StartDate:          "start_date",
	StartDatePrecision: "start_date_precision",
	EndDate:            "end_date",
	EndDatePrecision:   "end_date_precision",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

func (t EventTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.ShortDescription, t.Description,
		t.StartDate, t.StartDatePrecision, t.EndDate, t.EndDatePrecision, t.CreatedAt, t.UpdatedAt,
	}
}

type EventHistoryTable struct {
	Table              string
	ID                 string
	Name               string
	ShortDescription   string
	Description        string
	StartDate          string
	StartDatePrecision string
	EndDate            string
	EndDatePrecision   string
	CreatedAt          string
}

var EventHistory = EventHistoryTable{
	Table:              "catalog.event_history",
	ID:                 "id",
	Name:               "name",
	ShortDescription:   "short_description",
	Description:        "description",
	StartDate:          "start_date",
	StartDatePrecision: "start_date_precision",
	EndDate:            "end_date",
	EndDatePrecision:   "end_date_precision",
	CreatedAt:          "created_at",
}

func (t EventHistoryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.ShortDescription, t.Description,
		t.StartDate, t.StartDatePrecision, t.EndDate, t.EndDatePrecision, t.CreatedAt,
	}
}

type EventAlternativeNameTable struct {
	Table   string
	EventID string
	Name    string
}

var EventAlternativeName = EventAlternativeNameTable{Table: "catalog.event_alternative_name", EventID: "event_id", Name: "name"}

type EventAlternativeNameHistoryTable struct {
	Table          string
	EventHistoryID string
	Name           string
}

var EventAlternativeNameHistory = EventAlternativeNameHistoryTable{
	Table: "catalog.event_alternative_name_history", EventHistoryID: "event_history_id", Name: "name",
}
