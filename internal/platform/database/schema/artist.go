package schema

// ArtistTable represents the live 'catalog.artist' table.
type ArtistTable struct {
	Table               string
	ID                  string
	Name                string
	Type                string
	TextAliases         string
	StartDate           string
	StartDatePrecision  string
	EndDate             string
	EndDatePrecision    string
	StartLocation       string
	CurrentLocation     string
	CreatedAt           string
	UpdatedAt           string
}

var Artist = ArtistTable{
	Table:              "catalog.artist",
	ID:                 "id",
	Name:               "name",
	Type:               "type",
	TextAliases:        "text_aliases",
	StartDate:          "start_date",
	StartDatePrecision: "start_date_precision",
	EndDate:            "end_date",
	EndDatePrecision:   "end_date_precision",
	StartLocation:      "start_location",
	CurrentLocation:    "current_location",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

func (t ArtistTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Type, t.TextAliases, t.StartDate, t.StartDatePrecision,
		t.EndDate, t.EndDatePrecision, t.StartLocation, t.CurrentLocation, t.CreatedAt, t.UpdatedAt,
	}
}

// ArtistHistoryTable mirrors ArtistTable but keyed by its own history id;
// it carries no foreign key back to the live row (the correlation happens
// via correction.entity_id once a correction is approved).
type ArtistHistoryTable struct {
	Table              string
	ID                 string
	Name               string
	Type               string
	TextAliases        string
	StartDate          string
	StartDatePrecision string
	EndDate            string
	EndDatePrecision   string
	StartLocation      string
	CurrentLocation    string
	// Images stores the proposed image-reference list as JSON, since the
	// live image_reference table is keyed by a live entity id that does
	// not exist until this snapshot is materialized.
	Images    string
	CreatedAt string
}

var ArtistHistory = ArtistHistoryTable{
	Table:              "catalog.artist_history",
	ID:                 "id",
	Name:               "name",
	Type:               "type",
	TextAliases:        "text_aliases",
	StartDate:          "start_date",
	StartDatePrecision: "start_date_precision",
	EndDate:            "end_date",
	EndDatePrecision:   "end_date_precision",
	StartLocation:      "start_location",
	CurrentLocation:    "current_location",
	Images:             "images",
	CreatedAt:          "created_at",
}

func (t ArtistHistoryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Type, t.TextAliases, t.StartDate, t.StartDatePrecision,
		t.EndDate, t.EndDatePrecision, t.StartLocation, t.CurrentLocation, t.Images, t.CreatedAt,
	}
}

// ArtistAliasTable stores the symmetric alias relation once per unordered
// pair, normalized (min_id, max_id).
type ArtistAliasTable struct {
	Table  string
	MinID  string
	MaxID  string
}

var ArtistAlias = ArtistAliasTable{Table: "catalog.artist_alias", MinID: "artist_id_min", MaxID: "artist_id_max"}

// ArtistAliasHistoryTable stores aliases as raw pairs exactly as authored,
// with no min/max normalization.
type ArtistAliasHistoryTable struct {
	Table           string
	ArtistHistoryID string
	OtherArtistID   string
}

var ArtistAliasHistory = ArtistAliasHistoryTable{
	Table:           "catalog.artist_alias_history",
	ArtistHistoryID: "artist_history_id",
	OtherArtistID:   "other_artist_id",
}

// ArtistLinkTable / ArtistLinkHistoryTable store external links.
type ArtistLinkTable struct {
	Table    string
	ArtistID string
	URL      string
}

var ArtistLink = ArtistLinkTable{Table: "catalog.artist_link", ArtistID: "artist_id", URL: "url"}

type ArtistLinkHistoryTable struct {
	Table           string
	ArtistHistoryID string
	URL             string
}

var ArtistLinkHistory = ArtistLinkHistoryTable{Table: "catalog.artist_link_history", ArtistHistoryID: "artist_history_id", URL: "url"}

// ArtistLocalizedNameTable / history.
type ArtistLocalizedNameTable struct {
	Table      string
	ArtistID   string
	LanguageID string
	Name       string
}

var ArtistLocalizedName = ArtistLocalizedNameTable{
	Table: "catalog.artist_localized_name", ArtistID: "artist_id", LanguageID: "language_id", Name: "name",
}

type ArtistLocalizedNameHistoryTable struct {
	Table           string
	ArtistHistoryID string
	LanguageID      string
	Name            string
}

var ArtistLocalizedNameHistory = ArtistLocalizedNameHistoryTable{
	Table: "catalog.artist_localized_name_history", ArtistHistoryID: "artist_history_id", LanguageID: "language_id", Name: "name",
}

// ArtistMembershipTable stores one row per directed membership edge. Roles
// and tenure ranges are stored inline (text[] / jsonb) rather than as
// further child tables, since both are small, order-insignificant-once-
// parsed lists scoped entirely to their owning membership row.
type ArtistMembershipTable struct {
	Table   string
	ID      string
	MemberID string
	GroupID  string
	Roles    string
	Tenure   string
}

var ArtistMembership = ArtistMembershipTable{
	Table: "catalog.artist_membership", ID: "id", MemberID: "member_id", GroupID: "group_id", Roles: "roles", Tenure: "tenure",
}

// ArtistMembershipHistoryTable stores membership rows as authored: which
// artist this artist is linked to, which side of the directed edge the
// history-owning artist was on, and its roles/tenure — raw, with no
// member_id/group_id resolution (the owning artist has no live id yet).
type ArtistMembershipHistoryTable struct {
	Table                string
	ArtistHistoryID      string
	CounterpartArtistID  string
	IsGroupSide          string
	Roles                string
	Tenure               string
}

var ArtistMembershipHistory = ArtistMembershipHistoryTable{
	Table:               "catalog.artist_membership_history",
	ArtistHistoryID:     "artist_history_id",
	CounterpartArtistID: "counterpart_artist_id",
	IsGroupSide:         "is_group_side",
	Roles:               "roles",
	Tenure:              "tenure",
}
