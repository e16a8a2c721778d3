package models

import "time"

// AnalysisStatus is the lifecycle state of an analysis job.
// queued → processing → completed | failed; both end states are terminal.
type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is one repository-analysis job. The job id doubles as the store
// document id. Only the orchestrator mutates a job after creation, and each
// job is processed by exactly one run.
type Analysis struct {
	ID         string         `bson:"_id" json:"id"`
	RepoURL    string         `bson:"repo_url" json:"repo_url"`
	UserID     string         `bson:"user_id" json:"user_id"`
	Status     AnalysisStatus `bson:"status" json:"status"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	Flashcards []Flashcard    `bson:"flashcards" json:"flashcards"`
	TotalFiles int            `bson:"total_files" json:"total_files"`
	Languages  []string       `bson:"languages" json:"languages"`
	Error      string         `bson:"error,omitempty" json:"error,omitempty"`
}
