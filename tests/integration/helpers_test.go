//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

type questionSet struct {
	RecipeName        string   `json:"recipe_name"`
	Page              int      `json:"page"`
	Slots             []slot   `json:"slots"`
	IngredientOptions []string `json:"ingredient_options"`
	QuantityOptions   []string `json:"quantity_options"`
	Choices           []choice `json:"choices"`
}

type slot struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type choice struct {
	Dimension string   `json:"dimension"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
}

type sessionInfo struct {
	SessionID   string       `json:"session_id"`
	Phase       string       `json:"phase"`
	Mode        string       `json:"mode"`
	RecipeCount int          `json:"recipe_count"`
	Question    *questionSet `json:"question"`
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func postJSON(t *testing.T, url string, payload any, out any) int {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func createSession(t *testing.T, baseURL, mode string, page int) sessionInfo {
	t.Helper()

	payload := map[string]any{
		"player_name": "integration",
		"mode":        mode,
		"page":        page,
	}

	var info sessionInfo
	status := postJSON(t, fmt.Sprintf("%s/v1/sessions", baseURL), payload, &info)
	if status != http.StatusCreated {
		t.Fatalf("unexpected session create status: %d", status)
	}
	if info.SessionID == "" {
		t.Fatal("empty session id in create response")
	}
	return info
}
