package selector

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParsePicks(t *testing.T) {
	response := `{
		"selected_jobs": [
			{"id": "job1", "bullet_indices": [0, 2], "rewritten_bullets": ["a", "b"]},
			{"id": "job2", "bullet_indices": [1]}
		]
	}`

	picks, err := parsePicks(response, "selected_jobs")
	if err != nil {
		t.Fatalf("Failed to parse picks: %v", err)
	}

	if len(picks) != 2 {
		t.Fatalf("Expected 2 picks, got %d", len(picks))
	}
	if picks[0].ID != "job1" || len(picks[0].BulletIndices) != 2 || picks[0].BulletIndices[1] != 2 {
		t.Errorf("Unexpected first pick: %+v", picks[0])
	}
	if len(picks[0].Rewritten) != 2 || picks[0].Rewritten[0] != "a" {
		t.Errorf("Unexpected rewritten bullets: %v", picks[0].Rewritten)
	}
	if picks[1].ID != "job2" || len(picks[1].Rewritten) != 0 {
		t.Errorf("Unexpected second pick: %+v", picks[1])
	}
}

func TestParsePicksMissingKey(t *testing.T) {
	picks, err := parsePicks(`{"something_else": 1}`, "selected_jobs")
	if err != nil {
		t.Fatalf("Missing key should not be an error, got: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("Expected no picks, got %+v", picks)
	}
}

func TestParsePicksInvalid(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "the best candidates are..."},
		{"key is not an array", `{"selected_jobs": {"id": "job1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePicks(tt.response, "selected_jobs")
			if !errors.Is(err, ErrSelectionParse) {
				t.Errorf("Expected ErrSelectionParse, got: %v", err)
			}
		})
	}
}

func TestParsePicksCodeFences(t *testing.T) {
	response := "```json\n{\"selected_jobs\": [{\"id\": \"job1\", \"bullet_indices\": [0]}]}\n```"

	picks, err := parsePicks(response, "selected_jobs")
	if err != nil {
		t.Fatalf("Failed to parse fenced response: %v", err)
	}
	if len(picks) != 1 || picks[0].ID != "job1" {
		t.Errorf("Unexpected picks: %+v", picks)
	}
}

func TestParseSkills(t *testing.T) {
	skills, err := parseSkills(`{"skills": ["Go", "Kubernetes"]}`)
	if err != nil {
		t.Fatalf("Failed to parse skills: %v", err)
	}
	if len(skills) != 2 || skills[0] != "Go" {
		t.Errorf("Unexpected skills: %v", skills)
	}
}

func TestParseBulletIndices(t *testing.T) {
	indices, err := parseBulletIndices(`{"bullet_indices": [3, 0, 1]}`)
	if err != nil {
		t.Fatalf("Failed to parse indices: %v", err)
	}
	if len(indices) != 3 || indices[0] != 3 {
		t.Errorf("Unexpected indices: %v", indices)
	}

	if _, err = parseBulletIndices("nope"); !errors.Is(err, ErrSelectionParse) {
		t.Errorf("Expected ErrSelectionParse, got: %v", err)
	}
}
