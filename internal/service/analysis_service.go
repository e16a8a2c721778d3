package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codelearn-ai/server/internal/models"
)

// ---- Repository layer contracts -------------------------------------------

// ConfigRepository persists per-user AI configurations.
// A missing configuration is reported as a zero-value AIConfig with a nil
// error, so callers decide what "not configured" means.
type ConfigRepository interface {
	FindByUser(ctx context.Context, userID string) (models.AIConfig, error)
	Upsert(ctx context.Context, cfg models.AIConfig) error
}

// AnalysisRepository persists analysis jobs. Status transitions are
// field-level updates so a writer never clobbers unrelated fields.
type AnalysisRepository interface {
	Insert(ctx context.Context, job models.Analysis) error
	FindByID(ctx context.Context, id string) (models.Analysis, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error)
	SetStatus(ctx context.Context, id string, status models.AnalysisStatus) error
	Complete(ctx context.Context, id string, cards []models.Flashcard, totalFiles int, languages []string) error
	Fail(ctx context.Context, id, message string) error
}

// ---- Service implementation ------------------------------------------------

const (
	defaultWorkers    = 4
	defaultJobTimeout = 5 * time.Minute
	maxUserAnalyses   = 50
	taskQueueSize     = 256
)

// AnalysisService owns the job state machine:
// queued → processing → completed | failed. Submit returns as soon as the
// job record exists; a pool of background workers does the rest.
type AnalysisService interface {
	Submit(ctx context.Context, repoURL, userID string) (string, error)
	Get(ctx context.Context, id string) (models.Analysis, error)
	ListByUser(ctx context.Context, userID string) ([]models.Analysis, error)
	Close()
}

type task struct {
	jobID   string
	repoURL string
	userID  string
}

type analysisService struct {
	configs ConfigRepository
	jobs    AnalysisRepository
	fetcher Fetcher
	engine  AnalysisEngine
	timeout time.Duration

	tasks     chan task
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAnalysisService wires dependencies and starts the worker pool.
// workers and jobTimeout fall back to defaults when <=0.
func NewAnalysisService(
	configs ConfigRepository,
	jobs AnalysisRepository,
	fetcher Fetcher,
	engine AnalysisEngine,
	workers int,
	jobTimeout time.Duration,
) AnalysisService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if jobTimeout <= 0 {
		jobTimeout = defaultJobTimeout
	}

	s := &analysisService{
		configs: configs,
		jobs:    jobs,
		fetcher: fetcher,
		engine:  engine,
		timeout: jobTimeout,
		tasks:   make(chan task, taskQueueSize),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Submit validates the prerequisite configuration, creates the job in
// `queued` and schedules the background run. The record is inserted before
// Submit returns, so a get-by-id immediately after is race-free.
func (s *analysisService) Submit(ctx context.Context, repoURL, userID string) (string, error) {
	cfg, err := s.configs.FindByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load configuration: %w", err)
	}
	if cfg.UserID == "" {
		return "", ErrConfigurationRequired
	}

	job := models.Analysis{
		ID:         uuid.NewString(),
		RepoURL:    repoURL,
		UserID:     userID,
		Status:     models.StatusQueued,
		CreatedAt:  time.Now().UTC(),
		Flashcards: []models.Flashcard{},
		Languages:  []string{},
	}
	if err := s.jobs.Insert(ctx, job); err != nil {
		return "", fmt.Errorf("create analysis: %w", err)
	}

	s.tasks <- task{jobID: job.ID, repoURL: repoURL, userID: userID}
	return job.ID, nil
}

// Get returns the job snapshot for id.
func (s *analysisService) Get(ctx context.Context, id string) (models.Analysis, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return models.Analysis{}, err
	}
	if job.ID == "" {
		return models.Analysis{}, ErrJobNotFound
	}
	return job, nil
}

// ListByUser returns the user's jobs, newest first, capped at 50.
func (s *analysisService) ListByUser(ctx context.Context, userID string) ([]models.Analysis, error) {
	return s.jobs.FindByUser(ctx, userID, maxUserAnalyses)
}

// Close stops accepting work and waits for in-flight jobs to finish.
func (s *analysisService) Close() {
	s.closeOnce.Do(func() { close(s.tasks) })
	s.wg.Wait()
}

func (s *analysisService) worker() {
	defer s.wg.Done()
	for t := range s.tasks {
		s.run(t)
	}
}

// run executes one job end to end. Every failure is captured into the job
// record; nothing escapes to a caller.
func (s *analysisService) run(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.jobs.SetStatus(ctx, t.jobID, models.StatusProcessing); err != nil {
		log.Printf("[Analysis] job %s: set processing: %v", t.jobID, err)
		return
	}

	if err := s.process(ctx, t); err != nil {
		s.fail(t.jobID, err)
	}
}

func (s *analysisService) process(ctx context.Context, t task) error {
	cfg, err := s.configs.FindByUser(ctx, t.userID)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.UserID == "" {
		return ErrConfigurationNotFound
	}

	content, err := s.fetcher.Fetch(ctx, t.repoURL)
	if err != nil {
		return fmt.Errorf("failed to fetch repository: %w", err)
	}

	cards, err := s.engine.Analyze(ctx, content.Files, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	return s.jobs.Complete(ctx, t.jobID, cards, content.TotalFiles, distinctLanguages(content.Files))
}

// fail records the captured error under a fresh context: the run context may
// already be past its deadline.
func (s *analysisService) fail(jobID string, cause error) {
	msg := cause.Error()
	if errors.Is(cause, context.DeadlineExceeded) {
		msg = ErrTimeout.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.jobs.Fail(ctx, jobID, msg); err != nil {
		log.Printf("[Analysis] job %s: record failure: %v", jobID, err)
	}
}

// distinctLanguages returns the language tags of the fetched files in
// first-seen order.
func distinctLanguages(files []models.SourceFile) []string {
	seen := make(map[string]struct{}, len(files))
	langs := []string{}
	for _, f := range files {
		if _, ok := seen[f.Language]; ok {
			continue
		}
		seen[f.Language] = struct{}{}
		langs = append(langs, f.Language)
	}
	return langs
}
