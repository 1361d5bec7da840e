// Package analyzer issues the structured-extraction calls of the pipeline:
// one per chunk, plus the final executive summary.
package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/pkg/analysis/chunker"
	"github.com/Tigierre/contractguardian/pkg/analysis/prompt"
	"github.com/Tigierre/contractguardian/pkg/analysis/retrier"
	"github.com/Tigierre/contractguardian/pkg/llm"
)

// ChunkAnalyzer turns one chunk into a typed list of findings.
type ChunkAnalyzer struct {
	provider llm.StructuredProvider
	retryCfg retrier.Config
}

func NewChunkAnalyzer(provider llm.StructuredProvider, retryCfg retrier.Config) *ChunkAnalyzer {
	return &ChunkAnalyzer{
		provider: provider,
		retryCfg: retryCfg,
	}
}

// ChunkResult is the typed outcome of one chunk-analysis call.
// HasMoreContent is an advisory hint that the chunk ended mid-sentence;
// the orchestrator does not currently act on it.
type ChunkResult struct {
	Findings       []*entity.Finding
	HasMoreContent bool
}

type findingPayload struct {
	Title             string   `json:"title"`
	ClauseText        string   `json:"clause_text"`
	Type              string   `json:"type"`
	PolicyName        string   `json:"policy_name"`
	Priority          *string  `json:"priority"`
	Explanation       string   `json:"explanation"`
	RedlineSuggestion *string  `json:"redline_suggestion"`
	Actor             *string  `json:"actor"`
	NormIds           []string `json:"norm_ids"`
}

type chunkResponse struct {
	Findings       []findingPayload `json:"findings"`
	HasMoreContent bool             `json:"has_more_content"`
}

// AnalyzeChunk runs one structured-extraction request through the retry
// executor and maps the response into findings tagged with the chunk index.
func (a *ChunkAnalyzer) AnalyzeChunk(
	ctx context.Context,
	chunk chunker.Chunk,
	totalChunks int,
	policies []*entity.Policy,
	pctx prompt.AnalysisContext,
) (*ChunkResult, error) {
	builder := prompt.NewChunkBuilder(policies, pctx)
	systemPrompt := builder.BuildSystem()
	userPrompt := builder.BuildUser(chunk.Text, chunk.Index, totalChunks)

	res, err := retrier.Do(ctx, a.retryCfg, func(ctx context.Context) (*chunkResponse, error) {
		var out chunkResponse
		if err := a.provider.ExtractStructured(ctx, systemPrompt, userPrompt, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	findings := make([]*entity.Finding, 0, len(res.Findings))
	for _, p := range res.Findings {
		findings = append(findings, a.toFinding(p, chunk.Index, pctx.Enhanced))
	}

	return &ChunkResult{
		Findings:       findings,
		HasMoreContent: res.HasMoreContent,
	}, nil
}

// toFinding maps a payload into a domain finding, normalizing it against
// the type/priority invariant the model is instructed to respect.
func (a *ChunkAnalyzer) toFinding(p findingPayload, chunkIndex int, enhanced bool) *entity.Finding {
	f := &entity.Finding{
		Id:                uuid.New(),
		Title:             p.Title,
		ClauseText:        p.ClauseText,
		Type:              p.Type,
		PolicyName:        p.PolicyName,
		Priority:          p.Priority,
		Explanation:       p.Explanation,
		RedlineSuggestion: p.RedlineSuggestion,
		SourceChunkIndex:  chunkIndex,
		CreatedAt:         time.Now(),
	}

	if f.Type != entity.FindingTypeStrength && f.Type != entity.FindingTypeImprovement {
		f.Type = entity.FindingTypeImprovement
	}

	switch f.Type {
	case entity.FindingTypeStrength:
		f.Priority = nil
		f.RedlineSuggestion = nil
	case entity.FindingTypeImprovement:
		if entity.PriorityRank(f.Priority) > 2 {
			priority := entity.PriorityConsigliato
			f.Priority = &priority
		}
	}

	if enhanced {
		actor := entity.ActorGeneral
		if p.Actor != nil {
			switch *p.Actor {
			case entity.ActorPartyA, entity.ActorPartyB, entity.ActorGeneral:
				actor = *p.Actor
			}
		}
		f.Actor = &actor
		f.NormIds = p.NormIds
	}

	return f
}

// Summarizer produces the final aggregate record over the canonical set.
type Summarizer struct {
	provider llm.StructuredProvider
	retryCfg retrier.Config
}

func NewSummarizer(provider llm.StructuredProvider, retryCfg retrier.Config) *Summarizer {
	return &Summarizer{
		provider: provider,
		retryCfg: retryCfg,
	}
}

// ExecutiveSummary is the Summarizer's structured result.
type ExecutiveSummary struct {
	Summary           string `json:"summary"`
	OverallAssessment string `json:"overall_assessment"`
	Recommendation    string `json:"recommendation"`
}

// GenerateExecutiveSummary issues the final aggregate request over the
// deduplicated finding set, via the retry executor.
func (s *Summarizer) GenerateExecutiveSummary(
	ctx context.Context,
	findings []*entity.Finding,
	documentName string,
	pctx prompt.AnalysisContext,
) (*ExecutiveSummary, error) {
	builder := prompt.NewSummaryBuilder(findings, documentName, pctx)
	systemPrompt := builder.BuildSystem()
	userPrompt := builder.BuildUser()

	res, err := retrier.Do(ctx, s.retryCfg, func(ctx context.Context) (*ExecutiveSummary, error) {
		var out ExecutiveSummary
		if err := s.provider.ExtractStructured(ctx, systemPrompt, userPrompt, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	switch res.OverallAssessment {
	case entity.AssessmentPositivo, entity.AssessmentEquilibrato, entity.AssessmentDaRivedere:
	default:
		res.OverallAssessment = entity.AssessmentEquilibrato
	}

	return res, nil
}
