package news

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLexicon_Default(t *testing.T) {
	lex, err := LoadLexicon("")
	if err != nil {
		t.Fatalf("LoadLexicon(\"\") failed: %v", err)
	}
	if len(lex.Technology) == 0 || len(lex.Extra) == 0 {
		t.Error("default lexicon should carry technology and flat keyword lists")
	}
}

func TestLoadLexicon_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yml")
	content := `
technology: ["технологии", "tech"]
startup: ["стартап"]
investment: []
company: []
extra: ["хакатон"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write keywords file: %v", err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon failed: %v", err)
	}
	if len(lex.Technology) != 2 {
		t.Errorf("Technology list length = %d, expected 2", len(lex.Technology))
	}

	classifier := NewClassifier(lex)
	if !classifier.IsRelevant("Стартап внедряет новые технологии") {
		t.Error("expected custom lexicon to classify the title as relevant")
	}
}

func TestLoadLexicon_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yml")
	if err := os.WriteFile(path, []byte("technology: []\n"), 0644); err != nil {
		t.Fatalf("Failed to write keywords file: %v", err)
	}

	if _, err := LoadLexicon(path); err == nil {
		t.Error("LoadLexicon should reject an empty technology list")
	}
}
