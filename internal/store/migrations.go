package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Nested sequences (repo links, checklist, attachments, time logs,
// dependencies, cross-entity link ids) live in JSON columns; multi-valued
// indexed fields (tags, tech stack) are additionally mirrored into side
// tables so they stay queryable by value.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	project_id  TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	slug        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'active',
	tech_stack  TEXT NOT NULL DEFAULT '[]',
	repo_links  TEXT NOT NULL DEFAULT '[]',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);

CREATE TABLE IF NOT EXISTS project_tech (
	project_id TEXT NOT NULL REFERENCES projects(project_id) ON DELETE CASCADE,
	tech       TEXT NOT NULL,
	PRIMARY KEY (project_id, tech)
);

CREATE INDEX IF NOT EXISTS idx_project_tech_tech ON project_tech(tech);

CREATE TABLE IF NOT EXISTS tasks (
	task_id         TEXT PRIMARY KEY,
	project_id      TEXT NOT NULL,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	type            TEXT NOT NULL DEFAULT 'Feature',
	status          TEXT NOT NULL DEFAULT 'Backlog',
	priority        TEXT NOT NULL DEFAULT 'P2',
	severity        TEXT NOT NULL DEFAULT '',
	effort          TEXT NOT NULL DEFAULT '',
	start_date      TEXT NOT NULL DEFAULT '',
	due_date        TEXT NOT NULL DEFAULT '',
	tags            TEXT NOT NULL DEFAULT '[]',
	assignee        TEXT NOT NULL DEFAULT '',
	dependencies    TEXT NOT NULL DEFAULT '[]',
	blocked_reason  TEXT NOT NULL DEFAULT '',
	checklist       TEXT NOT NULL DEFAULT '[]',
	attachments     TEXT NOT NULL DEFAULT '[]',
	time_logs       TEXT NOT NULL DEFAULT '[]',
	linked_note_ids TEXT NOT NULL DEFAULT '[]',
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_updated_at ON tasks(updated_at);
CREATE INDEX IF NOT EXISTS idx_tasks_type ON tasks(type);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);

CREATE TABLE IF NOT EXISTS task_tags (
	task_id TEXT NOT NULL REFERENCES tasks(task_id) ON DELETE CASCADE,
	tag     TEXT NOT NULL,
	PRIMARY KEY (task_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_task_tags_tag ON task_tags(tag);

CREATE TABLE IF NOT EXISTS notes (
	note_id         TEXT PRIMARY KEY,
	project_id      TEXT NOT NULL,
	title           TEXT NOT NULL,
	content         TEXT NOT NULL DEFAULT '',
	tags            TEXT NOT NULL DEFAULT '[]',
	linked_task_ids TEXT NOT NULL DEFAULT '[]',
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_project_id ON notes(project_id);
CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at);

CREATE TABLE IF NOT EXISTS note_tags (
	note_id TEXT NOT NULL REFERENCES notes(note_id) ON DELETE CASCADE,
	tag     TEXT NOT NULL,
	PRIMARY KEY (note_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag);

CREATE TABLE IF NOT EXISTS settings (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
