package catalog

import "time"

// Run records one folder ingestion reaching its terminal state.
type Run struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;index" json:"name"`
	Folder      string    `gorm:"size:512" json:"folder"`
	Loaded      int       `json:"loaded"`
	Quarantined int       `json:"quarantined"`
	FinishedAt  time.Time `json:"finished_at"`
}

// TableName overrides the default table name.
func (Run) TableName() string {
	return "ingest_runs"
}

// QuarantineRecord stores one permanently failed path of a run.
type QuarantineRecord struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	RunID uint   `gorm:"index" json:"run_id"`
	Path  string `gorm:"size:1024" json:"path"`
}

// TableName overrides the default table name.
func (QuarantineRecord) TableName() string {
	return "ingest_quarantine"
}
