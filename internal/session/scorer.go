package session

import (
	"math"
	"sort"

	"github.com/barquiz/spec-trainer/internal/quiz"
)

// recordResult appends a graded recipe and bumps the running totals.
// Each recipe adds exactly 4 to TotalQuestions (the single-choice
// dimensions); ingredient matches count toward TotalCorrect only. The skew is
// deliberate and matches the house marking sheet.
func recordResult(s *State, result quiz.RecipeResult) {
	s.Results = append(s.Results, result)
	s.TotalQuestions += len(quiz.ChoiceDimensions)
	s.TotalCorrect += result.CorrectCount
	s.HasAnswered = true
}

// FinalPercentage is the rounded session score, zero before anything was graded.
func FinalPercentage(s *State) int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.TotalCorrect) / float64(s.TotalQuestions)))
}

// Passed applies the inclusive pass threshold. Meaningful for exam mode only.
func Passed(s *State, threshold int) bool {
	return s.TotalQuestions > 0 && FinalPercentage(s) >= threshold
}

// PageReport groups graded recipes of one page for the report screen.
type PageReport struct {
	Page    int                 `json:"page"`
	Results []quiz.RecipeResult `json:"results"`
}

// Report is the session summary handed to the presentation layer.
type Report struct {
	SessionID      string       `json:"session_id"`
	PlayerName     string       `json:"player_name"`
	Mode           Mode         `json:"mode"`
	HasAnswered    bool         `json:"has_answered"`
	Pages          []PageReport `json:"pages"`
	TotalQuestions int          `json:"total_questions"`
	TotalCorrect   int          `json:"total_correct"`
	Percent        int          `json:"percent"`
	Passed         *bool        `json:"passed,omitempty"` // exam mode only
}

// BuildReport is a pure read-side projection of the session state; it mutates
// nothing and can be called at any time.
func BuildReport(s *State, passThreshold int) Report {
	byPage := map[int][]quiz.RecipeResult{}
	for _, r := range s.Results {
		byPage[r.Page] = append(byPage[r.Page], r)
	}

	pages := make([]PageReport, 0, len(byPage))
	for page, results := range byPage {
		pages = append(pages, PageReport{Page: page, Results: results})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	report := Report{
		SessionID:      s.ID.String(),
		PlayerName:     s.PlayerName,
		Mode:           s.Mode,
		HasAnswered:    s.HasAnswered,
		Pages:          pages,
		TotalQuestions: s.TotalQuestions,
		TotalCorrect:   s.TotalCorrect,
		Percent:        FinalPercentage(s),
	}
	if s.Mode == ModeExam && s.HasAnswered {
		passed := Passed(s, passThreshold)
		report.Passed = &passed
	}
	return report
}
