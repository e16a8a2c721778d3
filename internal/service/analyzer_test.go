package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelearn-ai/server/internal/models"
)

func TestHeuristicEngine_Analyze(t *testing.T) {
	engine := NewHeuristicEngine()
	cfg := models.AIConfig{UserID: "u1", Provider: models.ProviderOpenAI, Model: "gpt-4o"}

	t.Run("emits one architecture card plus one card per file", func(t *testing.T) {
		files := []models.SourceFile{
			{Path: "src/app.py", Content: strings.Repeat("a", 400), Language: "py"},
			{Path: "lib/util.py", Content: "def helper():\n    pass\n", Language: "py"},
			{Path: "web/index.js", Content: "console.log('hi')\n", Language: "js"},
		}

		cards, err := engine.Analyze(context.Background(), files, cfg)
		require.NoError(t, err)
		require.Len(t, cards, 5)

		// Grouped by first-seen language, architecture card first.
		py := cards[0]
		assert.Equal(t, "What is the overall architecture of this PY application?", py.Front)
		assert.Equal(t, "This application uses PY with 2 files. Key components include: app.py, util.py", py.Back)
		assert.Equal(t, "Architecture", py.Category)
		assert.Equal(t, models.DifficultyMedium, py.Difficulty)
		assert.Equal(t, strings.Repeat("a", 200), py.CodeSnippet)
		assert.Equal(t, "src/app.py", py.FilePath)

		assert.Equal(t, "What is the purpose of app.py?", cards[1].Front)
		assert.Equal(t, "This file (src/app.py) contains py code and appears to handle core functionality. It's part of the main application structure.", cards[1].Back)
		assert.Equal(t, "PY Files", cards[1].Category)
		assert.Equal(t, models.DifficultyEasy, cards[1].Difficulty)
		assert.Equal(t, strings.Repeat("a", 300), cards[1].CodeSnippet)

		assert.Equal(t, "What is the purpose of util.py?", cards[2].Front)

		js := cards[3]
		assert.Equal(t, "What is the overall architecture of this JS application?", js.Front)
		assert.Equal(t, "This application uses JS with 1 files. Key components include: index.js", js.Back)

		assert.Equal(t, "What is the purpose of index.js?", cards[4].Front)
		assert.Equal(t, "console.log('hi')\n", cards[4].CodeSnippet)
	})

	t.Run("caps per-file cards at three per language", func(t *testing.T) {
		files := []models.SourceFile{
			{Path: "a.go", Content: "package a", Language: "go"},
			{Path: "b.go", Content: "package b", Language: "go"},
			{Path: "c.go", Content: "package c", Language: "go"},
			{Path: "d.go", Content: "package d", Language: "go"},
			{Path: "e.go", Content: "package e", Language: "go"},
		}

		cards, err := engine.Analyze(context.Background(), files, cfg)
		require.NoError(t, err)
		require.Len(t, cards, 4) // 1 architecture + 3 file cards

		assert.Equal(t, "This application uses GO with 5 files. Key components include: a.go, b.go, c.go", cards[0].Back)
		for _, card := range cards[1:] {
			assert.Equal(t, "GO Files", card.Category)
		}
	})

	t.Run("no files, no cards", func(t *testing.T) {
		cards, err := engine.Analyze(context.Background(), nil, cfg)
		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("assigns a unique id to every card", func(t *testing.T) {
		files := []models.SourceFile{
			{Path: "x.rb", Content: "puts 1", Language: "rb"},
			{Path: "y.rb", Content: "puts 2", Language: "rb"},
		}

		cards, err := engine.Analyze(context.Background(), files, cfg)
		require.NoError(t, err)

		seen := make(map[string]struct{})
		for _, card := range cards {
			require.NotEmpty(t, card.ID)
			_, dup := seen[card.ID]
			require.False(t, dup, "duplicate card id %s", card.ID)
			seen[card.ID] = struct{}{}
		}
	})
}
