package analyzer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/pkg/analysis/chunker"
	"github.com/Tigierre/contractguardian/pkg/analysis/prompt"
	"github.com/Tigierre/contractguardian/pkg/analysis/retrier"
	"github.com/Tigierre/contractguardian/pkg/llm"
)

// fakeProvider replays canned JSON responses (or errors) call by call.
type fakeProvider struct {
	responses  []string
	errs       []error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeProvider) ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, options ...llm.Option) error {
	idx := f.calls
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt

	if idx < len(f.errs) && f.errs[idx] != nil {
		return f.errs[idx]
	}
	response := f.responses[len(f.responses)-1]
	if idx < len(f.responses) {
		response = f.responses[idx]
	}
	return json.Unmarshal([]byte(response), out)
}

func fastRetry() retrier.Config {
	return retrier.Config{MaxRetries: 3, BaseDelay: time.Millisecond}
}

func testChunk() chunker.Chunk {
	return chunker.Chunk{Text: "Articolo 7: penale del 30% per ogni giorno di ritardo.", Index: 2}
}

func TestAnalyzeChunkNormalizesFindings(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{
		"findings": [
			{"title": "Penale eccessiva", "clause_text": "penale del 30%", "type": "improvement", "policy_name": "Penali sproporzionate", "priority": "importante", "explanation": "Oltre il tetto.", "redline_suggestion": "Ridurre al 10%."},
			{"title": "Riservatezza", "clause_text": "obblighi reciproci", "type": "strength", "policy_name": "Riservatezza", "priority": "importante", "explanation": "Ben bilanciata.", "redline_suggestion": "non serve"},
			{"title": "Priorità ignota", "clause_text": "clausola x", "type": "improvement", "policy_name": "P", "priority": "urgentissimo", "explanation": "..."},
			{"title": "Tipo ignoto", "clause_text": "clausola y", "type": "observation", "policy_name": "P", "explanation": "..."}
		],
		"has_more_content": true
	}`}}

	a := NewChunkAnalyzer(provider, fastRetry())
	res, err := a.AnalyzeChunk(context.Background(), testChunk(), 5, nil, prompt.AnalysisContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.HasMoreContent {
		t.Error("HasMoreContent must pass through")
	}
	if len(res.Findings) != 4 {
		t.Fatalf("got %d findings, want 4", len(res.Findings))
	}

	first := res.Findings[0]
	if first.Priority == nil || *first.Priority != entity.PriorityImportante {
		t.Error("valid improvement priority must be preserved")
	}
	if first.SourceChunkIndex != 2 {
		t.Errorf("SourceChunkIndex = %d, want 2", first.SourceChunkIndex)
	}

	second := res.Findings[1]
	if second.Priority != nil || second.RedlineSuggestion != nil {
		t.Error("a strength must carry neither priority nor redline")
	}

	third := res.Findings[2]
	if third.Priority == nil || *third.Priority != entity.PriorityConsigliato {
		t.Error("an unrecognized improvement priority must fall back to consigliato")
	}

	fourth := res.Findings[3]
	if fourth.Type != entity.FindingTypeImprovement {
		t.Errorf("unknown type = %q, want improvement fallback", fourth.Type)
	}

	// Basic mode never sets enhanced fields.
	if first.Actor != nil || first.NormIds != nil {
		t.Error("basic mode must leave actor and norm ids empty")
	}
}

func TestAnalyzeChunkEnhancedActorDefaults(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{
		"findings": [
			{"title": "A", "clause_text": "uno", "type": "improvement", "priority": "importante", "actor": "partyB", "norm_ids": ["cc-1382"]},
			{"title": "B", "clause_text": "due", "type": "improvement", "priority": "importante", "actor": "someone"},
			{"title": "C", "clause_text": "tre", "type": "improvement", "priority": "importante"}
		],
		"has_more_content": false
	}`}}

	a := NewChunkAnalyzer(provider, fastRetry())
	res, err := a.AnalyzeChunk(context.Background(), testChunk(), 3, nil, prompt.AnalysisContext{Enhanced: true, PartyA: "A", PartyB: "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := *res.Findings[0].Actor; got != entity.ActorPartyB {
		t.Errorf("actor = %q, want partyB", got)
	}
	if got := res.Findings[0].NormIds; len(got) != 1 || got[0] != "cc-1382" {
		t.Errorf("norm ids = %v, want [cc-1382]", got)
	}
	if got := *res.Findings[1].Actor; got != entity.ActorGeneral {
		t.Errorf("invalid actor = %q, want general fallback", got)
	}
	if got := *res.Findings[2].Actor; got != entity.ActorGeneral {
		t.Errorf("missing actor = %q, want general fallback", got)
	}
}

func TestAnalyzeChunkRetriesTransientFailure(t *testing.T) {
	provider := &fakeProvider{
		errs:      []error{llm.NewAIError(llm.KindRateLimit, "429", nil)},
		responses: []string{`{"findings": [], "has_more_content": false}`},
	}

	a := NewChunkAnalyzer(provider, fastRetry())
	res, err := a.AnalyzeChunk(context.Background(), testChunk(), 1, nil, prompt.AnalysisContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("calls = %d, want 2", provider.calls)
	}
	if len(res.Findings) != 0 {
		t.Errorf("findings = %d, want 0", len(res.Findings))
	}
}

func TestAnalyzeChunkFatalErrorPropagates(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{llm.NewAIError(llm.KindAuthentication, "bad key", nil)},
	}

	a := NewChunkAnalyzer(provider, fastRetry())
	_, err := a.AnalyzeChunk(context.Background(), testChunk(), 1, nil, prompt.AnalysisContext{})
	if err == nil {
		t.Fatal("expected the authentication error to propagate")
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1", provider.calls)
	}
	if kind := llm.Classify(err); kind != llm.KindAuthentication {
		t.Errorf("kind = %s, want authentication", kind)
	}
}

func TestGenerateExecutiveSummary(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"summary": "Contratto nel complesso accettabile.", "overall_assessment": "positivo", "recommendation": "Firmare dopo la revisione della penale."}`,
	}}

	s := NewSummarizer(provider, fastRetry())
	res, err := s.GenerateExecutiveSummary(context.Background(), nil, "doc.pdf", prompt.AnalysisContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallAssessment != entity.AssessmentPositivo {
		t.Errorf("assessment = %q, want positivo", res.OverallAssessment)
	}
	if res.Summary == "" || res.Recommendation == "" {
		t.Error("summary fields must pass through")
	}
}

func TestGenerateExecutiveSummaryAssessmentFallback(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"summary": "...", "overall_assessment": "ottimo", "recommendation": "..."}`,
	}}

	s := NewSummarizer(provider, fastRetry())
	res, err := s.GenerateExecutiveSummary(context.Background(), nil, "doc.pdf", prompt.AnalysisContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallAssessment != entity.AssessmentEquilibrato {
		t.Errorf("assessment = %q, want equilibrato fallback", res.OverallAssessment)
	}
}
