package schema

// LabelTable represents the live 'catalog.label' table.
type LabelTable struct {
	Table              string
	ID                 string
	Name               string
	FoundedDate        string
	FoundedDatePrecision string
	DissolvedDate        string
	DissolvedDatePrecision string
	CreatedAt          string
	UpdatedAt          string
}

var Label = LabelTable{
	Table:                  "catalog.label",
	ID:                     "id",
	Name:                   "name",
	FoundedDate:            "founded_date",
	FoundedDatePrecision:   "founded_date_precision",
	DissolvedDate:          "dissolved_date",
	DissolvedDatePrecision: "dissolved_date_precision",
	CreatedAt:              "created_at",
	UpdatedAt:              "updated_at",
}

func (t LabelTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.FoundedDate, t.FoundedDatePrecision,
		t.DissolvedDate, t.DissolvedDatePrecision, t.CreatedAt, t.UpdatedAt,
	}
}

type LabelHistoryTable struct {
	Table                  string
	ID                     string
	Name                   string
	FoundedDate            string
	FoundedDatePrecision   string
	DissolvedDate          string
	DissolvedDatePrecision string
	CreatedAt              string
}

var LabelHistory = LabelHistoryTable{
	Table:                  "catalog.label_history",
	ID:                     "id",
	Name:                   "name",
	FoundedDate:            "founded_date",
	FoundedDatePrecision:   "founded_date_precision",
	DissolvedDate:          "dissolved_date",
	DissolvedDatePrecision: "dissolved_date_precision",
	CreatedAt:              "created_at",
}

func (t LabelHistoryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.FoundedDate, t.FoundedDatePrecision,
		t.DissolvedDate, t.DissolvedDatePrecision, t.CreatedAt,
	}
}

// LabelFounderTable / history: founders are artists credited with founding the label.
type LabelFounderTable struct {
	Table    string
	LabelID  string
	ArtistID string
}

var LabelFounder = LabelFounderTable{Table: "catalog.label_founder", LabelID: "label_id", ArtistID: "artist_id"}

type LabelFounderHistoryTable struct {
	Table          string
	LabelHistoryID string
	ArtistID       string
}

var LabelFounderHistory = LabelFounderHistoryTable{
	Table: "catalog.label_founder_history", LabelHistoryID: "label_history_id", ArtistID: "artist_id",
}

type LabelLocalizedNameTable struct {
	Table      string
	LabelID    string
	LanguageID string
	Name       string
}

var LabelLocalizedName = LabelLocalizedNameTable{
	Table: "catalog.label_localized_name", LabelID: "label_id", LanguageID: "language_id", Name: "name",
}

type LabelLocalizedNameHistoryTable struct {
	Table          string
	LabelHistoryID string
	LanguageID     string
	Name           string
}

var LabelLocalizedNameHistory = LabelLocalizedNameHistoryTable{
	Table: "catalog.label_localized_name_history", LabelHistoryID: "label_history_id", LanguageID: "language_id", Name: "name",
}
