package news

import (
	"sync"
	"testing"
)

func TestClassifier_IsRelevant_CategoryCombination(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	tests := []struct {
		name     string
		title    string
		expected bool
	}{
		{
			name:     "technology plus investment",
			title:    "Казахстанский IT-стартап привлек инвестиции",
			expected: true,
		},
		{
			name:     "technology plus company in English",
			title:    "Tech company launches new platform",
			expected: true,
		},
		{
			name:     "technology without second category",
			title:    "Как работает нейросеть",
			expected: true, // matches the flat list entry
		},
		{
			name:     "no keywords at all",
			title:    "Сегодня хорошая погода",
			expected: false,
		},
		{
			name:     "investment without technology",
			title:    "Новый раунд переговоров по тарифам",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsRelevant(tt.title); got != tt.expected {
				t.Errorf("IsRelevant(%q) = %v, expected %v", tt.title, got, tt.expected)
			}
		})
	}
}

func TestClassifier_IsRelevant_CaseFolding(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	titles := []string{
		"СТАРТАП из Ташкента получил ИНВЕСТИЦИИ в технологии",
		"стартап из ташкента получил инвестиции в технологии",
		"STARTUP receives INVESTMENT in TECHNOLOGY",
	}

	for _, title := range titles {
		if !classifier.IsRelevant(title) {
			t.Errorf("IsRelevant(%q) = false, expected true regardless of case", title)
		}
	}
}

func TestClassifier_IsRelevant_EmptyTitle(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	for _, title := range []string{"", "   ", "\t\n"} {
		if classifier.IsRelevant(title) {
			t.Errorf("IsRelevant(%q) = true, expected false for blank title", title)
		}
	}
}

func TestClassifier_IsRelevant_FlatListVerbatim(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	if !classifier.IsRelevant("В Алматы прошел хакатон для школьников") {
		t.Error("expected flat-list keyword 'хакатон' to match")
	}
	if !classifier.IsRelevant("Kazakhstan opens new research center") {
		t.Error("expected flat-list keyword 'kazakhstan' to match")
	}
}

func TestClassifier_IsRelevant_Concurrent(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	titles := []string{
		"Казахстанский стартап привлек $2M инвестиций",
		"Новая компания запускает облачные технологии",
		"Сегодня хорошая погода",
		"Kazakhstan opens new research center",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, title := range titles {
					classifier.IsRelevant(title)
				}
			}
		}()
	}
	wg.Wait()
}

func TestClassifier_ScenarioFromSources(t *testing.T) {
	classifier := NewClassifier(DefaultLexicon())

	relevant := "Казахстанский стартап привлек $2M инвестиций"
	irrelevant := "Сегодня хорошая погода"

	if !classifier.IsRelevant(relevant) {
		t.Errorf("IsRelevant(%q) = false, expected true", relevant)
	}
	if classifier.IsRelevant(irrelevant) {
		t.Errorf("IsRelevant(%q) = true, expected false", irrelevant)
	}
}
