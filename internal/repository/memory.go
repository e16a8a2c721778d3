package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/codelearn-ai/server/internal/models"
)

// In-memory implementations of the store contracts, used by the test suites
// and for running the server without a MongoDB instance. They mirror the
// Mongo implementations' observable behavior: missing documents come back as
// zero values with nil errors, listings are newest-first and capped.

// MemoryConfigs is an in-memory ConfigRepository.
type MemoryConfigs struct {
	mu     sync.RWMutex
	byUser map[string]models.AIConfig
}

// NewMemoryConfigs returns an empty in-memory configuration store.
func NewMemoryConfigs() *MemoryConfigs {
	return &MemoryConfigs{byUser: make(map[string]models.AIConfig)}
}

func (s *MemoryConfigs) FindByUser(_ context.Context, userID string) (models.AIConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUser[userID], nil
}

func (s *MemoryConfigs) Upsert(_ context.Context, cfg models.AIConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[cfg.UserID] = cfg
	return nil
}

// MemoryAnalyses is an in-memory AnalysisRepository.
type MemoryAnalyses struct {
	mu   sync.RWMutex
	byID map[string]models.Analysis
}

// NewMemoryAnalyses returns an empty in-memory job store.
func NewMemoryAnalyses() *MemoryAnalyses {
	return &MemoryAnalyses{byID: make(map[string]models.Analysis)}
}

func (s *MemoryAnalyses) Insert(_ context.Context, job models.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[job.ID] = job
	return nil
}

func (s *MemoryAnalyses) FindByID(_ context.Context, id string) (models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id], nil
}

func (s *MemoryAnalyses) FindByUser(_ context.Context, userID string, limit int) ([]models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := []models.Analysis{}
	for _, job := range s.byID {
		if job.UserID == userID {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (s *MemoryAnalyses) SetStatus(_ context.Context, id string, status models.AnalysisStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[id]
	if !ok {
		return nil
	}
	job.Status = status
	s.byID[id] = job
	return nil
}

func (s *MemoryAnalyses) Complete(_ context.Context, id string, cards []models.Flashcard, totalFiles int, languages []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[id]
	if !ok {
		return nil
	}
	job.Status = models.StatusCompleted
	job.Flashcards = cards
	job.TotalFiles = totalFiles
	job.Languages = languages
	s.byID[id] = job
	return nil
}

func (s *MemoryAnalyses) Fail(_ context.Context, id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[id]
	if !ok {
		return nil
	}
	job.Status = models.StatusFailed
	job.Error = message
	s.byID[id] = job
	return nil
}
