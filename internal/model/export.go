package model

// ExportPayload is the versioned interchange format: the full contents of
// all four collections. Timestamps are part of the payload and survive a
// round trip verbatim; import never regenerates them.
type ExportPayload struct {
	SchemaVersion int       `json:"schemaVersion"`
	ExportedAt    int64     `json:"exportedAt"`
	Projects      []Project `json:"projects"`
	Tasks         []Task    `json:"tasks"`
	Notes         []Note    `json:"notes"`
	Settings      *Settings `json:"settings,omitempty"`
}
