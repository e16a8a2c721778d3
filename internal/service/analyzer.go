package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/codelearn-ai/server/internal/models"
)

// AnalysisEngine turns fetched source files into flashcards. The heuristic
// implementation below is the default; a model-backed engine plugs in as a
// peer implementation of the same contract.
type AnalysisEngine interface {
	Analyze(ctx context.Context, files []models.SourceFile, cfg models.AIConfig) ([]models.Flashcard, error)
}

// Snippet budgets for the generated cards.
const (
	architectureSnippetChars = 200
	fileSnippetChars         = 300
	filesPerLanguage         = 3
)

type heuristicEngine struct{}

// NewHeuristicEngine returns the deterministic card generator. It groups
// files by language and emits one architecture card plus up to three
// per-file cards for each language, in first-seen order.
func NewHeuristicEngine() AnalysisEngine {
	return heuristicEngine{}
}

func (heuristicEngine) Analyze(_ context.Context, files []models.SourceFile, _ models.AIConfig) ([]models.Flashcard, error) {
	byLanguage := make(map[string][]models.SourceFile)
	var order []string
	for _, f := range files {
		if _, seen := byLanguage[f.Language]; !seen {
			order = append(order, f.Language)
		}
		byLanguage[f.Language] = append(byLanguage[f.Language], f)
	}

	var cards []models.Flashcard
	for _, lang := range order {
		group := byLanguage[lang]
		upper := strings.ToUpper(lang)

		sample := group
		if len(sample) > filesPerLanguage {
			sample = sample[:filesPerLanguage]
		}
		names := make([]string, len(sample))
		for i, f := range sample {
			names[i] = path.Base(f.Path)
		}

		cards = append(cards, models.Flashcard{
			ID:          uuid.NewString(),
			Front:       fmt.Sprintf("What is the overall architecture of this %s application?", upper),
			Back:        fmt.Sprintf("This application uses %s with %d files. Key components include: %s", upper, len(group), strings.Join(names, ", ")),
			Category:    "Architecture",
			Difficulty:  models.DifficultyMedium,
			CodeSnippet: truncateRunes(group[0].Content, architectureSnippetChars),
			FilePath:    group[0].Path,
		})

		for _, f := range sample {
			cards = append(cards, models.Flashcard{
				ID:          uuid.NewString(),
				Front:       fmt.Sprintf("What is the purpose of %s?", path.Base(f.Path)),
				Back:        fmt.Sprintf("This file (%s) contains %s code and appears to handle core functionality. It's part of the main application structure.", f.Path, lang),
				Category:    fmt.Sprintf("%s Files", upper),
				Difficulty:  models.DifficultyEasy,
				CodeSnippet: truncateRunes(f.Content, fileSnippetChars),
				FilePath:    f.Path,
			})
		}
	}

	return cards, nil
}
