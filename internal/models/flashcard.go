package models

// Flashcard difficulty levels.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Flashcard is a single study card derived from repository source files.
// Cards are immutable once created and belong to exactly one analysis.
type Flashcard struct {
	ID          string `bson:"id" json:"id"`
	Front       string `bson:"front" json:"front"`
	Back        string `bson:"back" json:"back"`
	Category    string `bson:"category" json:"category"`
	Difficulty  string `bson:"difficulty" json:"difficulty"`
	CodeSnippet string `bson:"code_snippet,omitempty" json:"code_snippet,omitempty"`
	FilePath    string `bson:"file_path,omitempty" json:"file_path,omitempty"`
}

// SourceFile is one fetched repository file. It only lives for the duration
// of a single fetch+analyze cycle and is never persisted on its own.
type SourceFile struct {
	Path     string // repo-relative path
	Content  string // UTF-8, truncated to the content budget
	Language string // lower-cased extension without the leading dot
}
