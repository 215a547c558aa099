package model

// Task type constants.
const (
	TaskTypeFeature  = "Feature"
	TaskTypeBug      = "Bug"
	TaskTypeFix      = "Fix"
	TaskTypeChore    = "Chore"
	TaskTypeRefactor = "Refactor"
	TaskTypeResearch = "Research"
)

// Task priority constants.
const (
	PriorityP0 = "P0"
	PriorityP1 = "P1"
	PriorityP2 = "P2"
	PriorityP3 = "P3"
)

// ChecklistItem is a sub-entry within a task's checklist.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Attachment is a labeled URL attached to a task.
type Attachment struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// TimeLog is one work interval on a task. A log with no End is an active
// timer; at most one log per task should be open at a time. That invariant
// is enforced by the start/stop operations, not by the schema.
type TimeLog struct {
	ID    string `json:"id"`
	Start int64  `json:"start"`
	End   *int64 `json:"end,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Task is a unit of work owned by exactly one project. Status is a
// free-form string validated against the workspace's configurable status
// list, not a compile-time enum.
type Task struct {
	TaskID        string          `json:"taskId" db:"task_id"`
	ProjectID     string          `json:"projectId" db:"project_id"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	Type          string          `json:"type" db:"type"`
	Status        string          `json:"status" db:"status"`
	Priority      string          `json:"priority" db:"priority"`
	Severity      string          `json:"severity,omitempty" db:"severity"` // "S1".."S4" or empty
	Effort        *Effort         `json:"effort,omitempty" db:"-"`
	StartDate     string          `json:"startDate,omitempty" db:"start_date"` // ISO calendar date
	DueDate       string          `json:"dueDate,omitempty" db:"due_date"`
	Tags          []string        `json:"tags" db:"-"`
	Assignee      string          `json:"assignee,omitempty" db:"assignee"`
	Dependencies  []string        `json:"dependencies" db:"-"` // task ids, no cycle detection
	BlockedReason string          `json:"blockedReason,omitempty" db:"blocked_reason"`
	Checklist     []ChecklistItem `json:"checklist" db:"-"`
	Attachments   []Attachment    `json:"attachments" db:"-"`
	TimeLogs      []TimeLog       `json:"timeLogs" db:"-"`
	LinkedNoteIDs []string        `json:"linkedNoteIds" db:"-"`
	CreatedAt     int64           `json:"createdAt" db:"created_at"`
	UpdatedAt     int64           `json:"updatedAt" db:"updated_at"`
}

// OpenTimeLog returns the first time log with no end, or nil.
func (t *Task) OpenTimeLog() *TimeLog {
	for i := range t.TimeLogs {
		if t.TimeLogs[i].End == nil {
			return &t.TimeLogs[i]
		}
	}
	return nil
}
