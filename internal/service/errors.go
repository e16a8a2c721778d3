package service

import "errors"

// Error kinds surfaced by the analysis pipeline. Submission-time errors are
// returned to the caller; errors inside a background run are captured into
// the job's error field instead.
var (
	// ErrInvalidRepoURL indicates the repository URL does not match the
	// expected github.com/owner/repo shape.
	ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")

	// ErrRepoNotFound indicates the repository is missing, private or the
	// API call failed.
	ErrRepoNotFound = errors.New("repository not found or not accessible")

	// ErrConfigurationRequired indicates the user has no saved AI
	// configuration, which submission requires.
	ErrConfigurationRequired = errors.New("AI configuration required")

	// ErrConfigurationNotFound indicates the configuration disappeared
	// between submission and the background run.
	ErrConfigurationNotFound = errors.New("AI configuration not found")

	// ErrAnalysisFailed wraps an unexpected failure inside the analysis engine.
	ErrAnalysisFailed = errors.New("AI analysis failed")

	// ErrJobNotFound indicates an unknown analysis id.
	ErrJobNotFound = errors.New("analysis not found")

	// ErrTimeout indicates the job exceeded its overall deadline.
	ErrTimeout = errors.New("analysis timed out")
)
