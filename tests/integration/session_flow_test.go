//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// Requires a running API with seeded recipes (see db/migrations).

func TestStudySessionFlow(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	info := createSession(t, baseURL, "study", 1)

	if info.Phase != "studying" {
		t.Fatalf("unexpected phase after create: %s", info.Phase)
	}
	if info.Question == nil {
		t.Fatal("create response carried no question")
	}

	// Answer every recipe on the page with blanks; grading still advances.
	for i := 0; i < info.RecipeCount; i++ {
		var q sessionInfo
		status := getJSON(t, fmt.Sprintf("%s/v1/sessions/%s/question", baseURL, info.SessionID), &q)
		if status != http.StatusOK {
			t.Fatalf("question fetch status: %d", status)
		}
		if q.Question == nil || len(q.Question.Slots) == 0 {
			t.Fatalf("question %d has no slots", i)
		}

		pairs := make([]map[string]string, 0, len(q.Question.Slots))
		for _, s := range q.Question.Slots {
			pairs = append(pairs, map[string]string{"slot_id": s.ID, "ingredient": "", "quantity": ""})
		}
		submission := map[string]any{
			"pairs":   pairs,
			"choices": map[string]string{"glass": "", "method": "", "garnish": "", "ice": ""},
		}

		var out struct {
			Phase string `json:"phase"`
		}
		status = postJSON(t, fmt.Sprintf("%s/v1/sessions/%s/answers", baseURL, info.SessionID), submission, &out)
		if status != http.StatusOK {
			t.Fatalf("submit status: %d", status)
		}
	}

	var report struct {
		TotalQuestions int `json:"total_questions"`
		TotalCorrect   int `json:"total_correct"`
		Percent        int `json:"percent"`
	}
	status := getJSON(t, fmt.Sprintf("%s/v1/sessions/%s/report", baseURL, info.SessionID), &report)
	if status != http.StatusOK {
		t.Fatalf("report status: %d", status)
	}
	if report.TotalQuestions == 0 {
		t.Fatal("report has no graded questions")
	}
	if report.TotalCorrect != 0 {
		t.Fatalf("blank answers should not score, got %d", report.TotalCorrect)
	}

	// Cleanup
	status = postJSON(t, fmt.Sprintf("%s/v1/sessions/%s/home", baseURL, info.SessionID), map[string]any{}, nil)
	if status != http.StatusNoContent {
		t.Fatalf("home status: %d", status)
	}
}

func TestSessionNotFound(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	var out struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	status := getJSON(t, fmt.Sprintf("%s/v1/sessions/%s/report", baseURL, "00000000-0000-0000-0000-000000000001"), &out)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", status)
	}
	if out.Error != "session_not_found" {
		t.Fatalf("unexpected error code: %s", out.Error)
	}
}

func TestBreakRejectedInStudyMode(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	info := createSession(t, baseURL, "study", 1)

	status := postJSON(t, fmt.Sprintf("%s/v1/sessions/%s/break", baseURL, info.SessionID),
		map[string]string{"credential": "whatever"}, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for break outside exam, got %d", status)
	}

	_ = postJSON(t, fmt.Sprintf("%s/v1/sessions/%s/home", baseURL, info.SessionID), map[string]any{}, nil)
}
