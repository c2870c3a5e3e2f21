package rescore

import (
	"context"

	"github.com/kmanav329/ai-resume-screener/internal/gap"
	"github.com/kmanav329/ai-resume-screener/resume/model"
	"github.com/kmanav329/ai-resume-screener/resume/render"
)

// Comparison records how the rewrite moved the match score.
type Comparison struct {
	Before gap.Report `json:"before"`
	After  gap.Report `json:"after"`
	// Delta is After minus Before and may be negative.
	Delta int `json:"delta"`
}

// Scorer re-runs gap analysis on the rewritten resume so before and after
// scores come from the same scoring path.
type Scorer struct {
	analyzer *gap.Analyzer
}

func NewScorer(analyzer *gap.Analyzer) *Scorer {
	return &Scorer{analyzer: analyzer}
}

// Score flattens the rewritten document to the same plain-text form used by
// the text renderer and analyzes it against the job description.
func (s *Scorer) Score(ctx context.Context, before gap.Report, rewritten model.Document, jobDescription string) (Comparison, error) {
	after, err := s.analyzer.Analyze(ctx, render.Flatten(rewritten), jobDescription)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Before: before,
		After:  after,
		Delta:  after.MatchPercentage - before.MatchPercentage,
	}, nil
}
