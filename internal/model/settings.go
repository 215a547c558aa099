package model

// SettingsID is the fixed primary key of the settings singleton row.
const SettingsID = "settings"

// Calendar display modes. Dates are stored as ISO calendar strings either
// way; the calendar setting only affects presentation.
const (
	CalendarGregorian = "gregorian"
	CalendarJalali    = "jalali"
)

// DefaultStatuses is the initial kanban column set. The list is
// user-editable at runtime, so task status stays a plain string.
var DefaultStatuses = []string{
	"Backlog",
	"Planned",
	"In Progress",
	"Blocked",
	"Review",
	"Done",
	"Archived",
}

// Settings is the singleton workspace configuration record.
type Settings struct {
	ID             string      `json:"id"`
	Theme          string      `json:"theme"`
	Calendar       string      `json:"calendar"`
	Statuses       []string    `json:"statuses"`
	FontFamily     string      `json:"fontFamily"`
	MonoFont       string      `json:"monoFont"`
	SavedViews     []SavedView `json:"savedViews"`
	BackupReminder bool        `json:"backupReminder"`
}

// DefaultSettings returns a fresh settings record with initial values.
func DefaultSettings() Settings {
	statuses := make([]string, len(DefaultStatuses))
	copy(statuses, DefaultStatuses)
	return Settings{
		ID:             SettingsID,
		Theme:          "system",
		Calendar:       CalendarGregorian,
		Statuses:       statuses,
		FontFamily:     "system",
		MonoFont:       "JetBrains Mono",
		SavedViews:     []SavedView{},
		BackupReminder: true,
	}
}

// ValidStatus reports whether status is in the configured status list.
func (s Settings) ValidStatus(status string) bool {
	for _, known := range s.Statuses {
		if known == status {
			return true
		}
	}
	return false
}
