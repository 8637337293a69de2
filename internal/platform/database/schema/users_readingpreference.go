package schema

// UserPreferencesTable represents the 'users.preference' table
type UserPreferencesTable struct {
	Table               string
	UserID              string
	PreferredLanguage   string
	AutoApproveOwnEdits string
	NotifyOnReview      string
	HideLanguages       string
}

// UserPreferences is the schema definition for users.preference
var UserPreferences = UserPreferencesTable{
	Table:               "users.preference",
	UserID:              "userid",
	PreferredLanguage:   "preferredlanguage",
	AutoApproveOwnEdits: "autoapproveownedits",
	NotifyOnReview:      "notifyonreview",
	HideLanguages:       "hidelanguages",
}

// Columns returns all standard column names
func (t UserPreferencesTable) Columns() []string {
	return []string{t.UserID, t.PreferredLanguage, t.AutoApproveOwnEdits, t.NotifyOnReview, t.HideLanguages}
}
