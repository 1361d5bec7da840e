package orchestrator

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/pkg/analysis/analyzer"
	"github.com/Tigierre/contractguardian/pkg/analysis/retrier"
	"github.com/Tigierre/contractguardian/pkg/llm"
)

type fakeStore struct {
	mu        sync.Mutex
	job       *entity.Analysis
	snapshots []entity.Analysis
	inserted  []*entity.Finding
	insertErr error
}

func (s *fakeStore) Get(ctx context.Context, id uuid.UUID) (*entity.Analysis, error) {
	if s.job == nil || s.job.Id != id {
		return nil, nil
	}
	return s.job, nil
}

func (s *fakeStore) Update(ctx context.Context, analysis *entity.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, *analysis)
	return nil
}

func (s *fakeStore) InsertFindings(ctx context.Context, analysisId uuid.UUID, findings []*entity.Finding) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = findings
	return nil
}

type fakeDocuments struct {
	doc *entity.Document
}

func (d *fakeDocuments) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return d.doc, nil
}

type fakePolicies struct{}

func (p *fakePolicies) ActivePolicies(ctx context.Context) ([]*entity.Policy, error) {
	return []*entity.Policy{{Name: "Penali sproporzionate", Content: "Penali oltre il 10% del valore del contratto.", Active: true}}, nil
}

type fakeNorms struct {
	contractTypeId string
	jurisdictionId string
	minRelevance   float64
	limit          int
	calls          int
}

func (n *fakeNorms) FindApplicable(ctx context.Context, contractTypeId, jurisdictionId string, minRelevance float64, limit int) ([]*entity.LegalNorm, error) {
	n.calls++
	n.contractTypeId = contractTypeId
	n.jurisdictionId = jurisdictionId
	n.minRelevance = minRelevance
	n.limit = limit
	return []*entity.LegalNorm{{NormId: "cc-1382", Title: "Effetti della clausola penale", Relevance: 0.9}}, nil
}

type recordingObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func (o *recordingObserver) Notify(update ProgressUpdate) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.updates = append(o.updates, update)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedProvider serves canned chunk responses and a canned summary,
// distinguishing the two by the output type.
type scriptedProvider struct {
	chunkJSON   string
	summaryJSON string
	chunkErr    error
	block       bool
	chunkCalls  int
}

func (p *scriptedProvider) ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, options ...llm.Option) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if summary, ok := out.(*analyzer.ExecutiveSummary); ok {
		return json.Unmarshal([]byte(p.summaryJSON), summary)
	}
	p.chunkCalls++
	if p.chunkErr != nil {
		return p.chunkErr
	}
	return json.Unmarshal([]byte(p.chunkJSON), out)
}

// Two paragraphs, each over the 10-token test budget, so they chunk apart.
const twoParagraphContract = "Il fornitore applica una penale del trenta per cento per ogni mese di ritardo.\n\n" +
	"Il contratto si rinnova tacitamente salvo disdetta scritta di sessanta giorni."

func testFixture(provider llm.StructuredProvider) (*Orchestrator, *fakeStore, *fakeNorms, *recordingObserver) {
	job := &entity.Analysis{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Status:     entity.AnalysisStatusPending,
		CreatedAt:  time.Now(),
	}
	store := &fakeStore{job: job}
	docs := &fakeDocuments{doc: &entity.Document{
		Id:       job.DocumentId,
		Filename: "contratto.pdf",
		Text:     twoParagraphContract,
		Language: entity.LanguageItalian,
	}}
	norms := &fakeNorms{}
	observer := &recordingObserver{}

	o := New(provider, store, docs, &fakePolicies{}, norms, observer, nopLogger{}, Config{
		Timeout:           5 * time.Second,
		MaxTokensPerChunk: 10,
		Retry:             retrier.Config{MaxRetries: 2, BaseDelay: time.Millisecond},
	})
	return o, store, norms, observer
}

func TestRunCompletesEndToEnd(t *testing.T) {
	provider := &scriptedProvider{
		chunkJSON: `{"findings": [
			{"title": "Penale eccessiva", "clause_text": "penale del trenta per cento", "type": "improvement", "policy_name": "Penali sproporzionate", "priority": "importante", "explanation": "Oltre il tetto."},
			{"title": "Forma scritta", "clause_text": "disdetta scritta", "type": "strength", "policy_name": "", "explanation": "Requisito chiaro."}
		], "has_more_content": false}`,
		summaryJSON: `{"summary": "Contratto con una penale da rivedere.", "overall_assessment": "da_rivedere", "recommendation": "Rinegoziare la penale."}`,
	}
	o, store, _, observer := testFixture(provider)

	if err := o.Run(context.Background(), store.job.Id); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	job := store.job
	if job.Status != entity.AnalysisStatusCompleted {
		t.Fatalf("status = %q, want completed", job.Status)
	}
	if job.TotalChunks != 2 || job.CurrentChunk != 2 {
		t.Errorf("chunks = %d/%d, want 2/2", job.CurrentChunk, job.TotalChunks)
	}
	if job.CompletedAt == nil || job.StartedAt == nil {
		t.Error("started/completed timestamps must be set")
	}
	if job.ExecutiveSummary == nil || job.OverallAssessment == nil || *job.OverallAssessment != entity.AssessmentDaRivedere {
		t.Error("summary fields must be persisted")
	}

	// Both chunks return the same two findings; dedup keeps one of each.
	if len(store.inserted) != 2 {
		t.Fatalf("inserted %d findings, want 2", len(store.inserted))
	}
	for rank, f := range store.inserted {
		if f.AnalysisId != job.Id {
			t.Error("findings must be bound to the analysis id")
		}
		if f.Rank != rank {
			t.Errorf("rank = %d, want %d", f.Rank, rank)
		}
	}
	if store.inserted[0].Type != entity.FindingTypeImprovement {
		t.Error("improvements must rank before strengths")
	}

	if job.TotalFindings != 2 || job.ImprovementCount != 1 || job.StrengthCount != 1 || job.ImportanteCount != 1 {
		t.Errorf("counts = total %d imp %d str %d importante %d",
			job.TotalFindings, job.ImprovementCount, job.StrengthCount, job.ImportanteCount)
	}

	// TotalChunks must be persisted before the first analyzing update.
	for _, snap := range store.snapshots {
		if snap.Stage == entity.AnalysisStageAnalyzing && snap.TotalChunks != 2 {
			t.Error("total chunk count must be persisted before analysis begins")
			break
		}
	}

	last := observer.updates[len(observer.updates)-1]
	if last.Status != entity.AnalysisStatusCompleted {
		t.Errorf("final progress status = %q, want completed", last.Status)
	}
}

func TestRunMarksFailedOnFatalProviderError(t *testing.T) {
	provider := &scriptedProvider{
		chunkErr: llm.NewAIError(llm.KindAuthentication, "invalid api key", nil),
	}
	o, store, _, _ := testFixture(provider)

	err := o.Run(context.Background(), store.job.Id)
	if err == nil {
		t.Fatal("Run() must propagate the pipeline error")
	}

	job := store.job
	if job.Status != entity.AnalysisStatusFailed {
		t.Fatalf("status = %q, want failed", job.Status)
	}
	if job.ErrorMessage == nil || !strings.Contains(*job.ErrorMessage, "invalid api key") {
		t.Error("error message must record the cause")
	}
	if job.CompletedAt == nil {
		t.Error("failed jobs still get a completion timestamp")
	}
	if provider.chunkCalls != 1 {
		t.Errorf("fatal error retried: %d calls", provider.chunkCalls)
	}
}

type panickingProvider struct{}

func (panickingProvider) ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, options ...llm.Option) error {
	panic("provider blew up")
}

func TestRunRecoversPipelinePanic(t *testing.T) {
	o, store, _, _ := testFixture(panickingProvider{})

	err := o.Run(context.Background(), store.job.Id)
	if err == nil {
		t.Fatal("Run() must surface the panic as an error")
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Errorf("error = %v, want a pipeline panic", err)
	}
	if store.job.Status != entity.AnalysisStatusFailed {
		t.Errorf("status = %q, want failed", store.job.Status)
	}
}

func TestRunMarksFailedWhenDocumentMissing(t *testing.T) {
	o, store, _, _ := testFixture(&scriptedProvider{})
	o.documents = &fakeDocuments{doc: nil}

	if err := o.Run(context.Background(), store.job.Id); err == nil {
		t.Fatal("Run() must fail when the document is gone")
	}
	if store.job.Status != entity.AnalysisStatusFailed {
		t.Errorf("status = %q, want failed", store.job.Status)
	}
}

func TestRunTimesOut(t *testing.T) {
	provider := &scriptedProvider{block: true}
	o, store, _, _ := testFixture(provider)
	o.cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	err := o.Run(context.Background(), store.job.Id)
	if err == nil {
		t.Fatal("Run() must fail on timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s, the run was not bounded", elapsed)
	}
	// markFailed writes with a fresh context, so the terminal state lands
	// even though the run context is dead.
	if store.job.Status != entity.AnalysisStatusFailed {
		t.Errorf("status = %q, want failed", store.job.Status)
	}
}

// releasableProvider ignores context cancellation and blocks until released,
// like a transport call that outlives the job timeout.
type releasableProvider struct {
	release chan struct{}
}

func (p *releasableProvider) ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, options ...llm.Option) error {
	<-p.release
	return json.Unmarshal([]byte(`{"findings": [], "has_more_content": false}`), out)
}

func TestRunTimeoutIsolatesAbandonedPipeline(t *testing.T) {
	provider := &releasableProvider{release: make(chan struct{})}
	o, store, _, _ := testFixture(provider)
	o.cfg.Timeout = 30 * time.Millisecond

	if err := o.Run(context.Background(), store.job.Id); err == nil {
		t.Fatal("Run() must fail on timeout")
	}
	if store.job.Status != entity.AnalysisStatusFailed {
		t.Fatalf("status = %q, want failed", store.job.Status)
	}

	// Let the abandoned goroutine finish its chunk calls. It must not reach
	// the shared job record: the failed terminal state stays put.
	close(provider.release)
	time.Sleep(100 * time.Millisecond)

	if store.job.Status != entity.AnalysisStatusFailed {
		t.Errorf("status = %q after the abandoned run finished, want failed", store.job.Status)
	}
	if store.job.ErrorMessage == nil {
		t.Error("failed state must keep its error message")
	}
}

func TestRunUnknownAnalysis(t *testing.T) {
	o, _, _, _ := testFixture(&scriptedProvider{})
	if err := o.Run(context.Background(), uuid.New()); err == nil {
		t.Fatal("Run() must fail for an unknown analysis id")
	}
}

func TestRunEnhancedRequiresValidatedMetadata(t *testing.T) {
	o, store, norms, _ := testFixture(&scriptedProvider{})
	store.job.Enhanced = true

	if err := o.Run(context.Background(), store.job.Id); err == nil {
		t.Fatal("Run() must fail when enhanced metadata is missing")
	}
	if store.job.Status != entity.AnalysisStatusFailed {
		t.Errorf("status = %q, want failed", store.job.Status)
	}
	if norms.calls != 0 {
		t.Error("norms must not be queried without validated metadata")
	}
}

func TestRunEnhancedLoadsApplicableNorms(t *testing.T) {
	provider := &scriptedProvider{
		chunkJSON:   `{"findings": [], "has_more_content": false}`,
		summaryJSON: `{"summary": "...", "overall_assessment": "positivo", "recommendation": "..."}`,
	}
	o, store, norms, _ := testFixture(provider)

	partyA, partyB := "Acme S.r.l.", "Beta S.p.A."
	contractType, jurisdiction := "servizi", "it"
	doc := &entity.Document{
		Id:                store.job.DocumentId,
		Filename:          "contratto.pdf",
		Text:              twoParagraphContract,
		Language:          entity.LanguageItalian,
		PartyA:            &partyA,
		PartyB:            &partyB,
		ContractTypeId:    &contractType,
		JurisdictionId:    &jurisdiction,
		MetadataValidated: true,
	}
	o.documents = &fakeDocuments{doc: doc}
	store.job.Enhanced = true

	if err := o.Run(context.Background(), store.job.Id); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if norms.calls != 1 {
		t.Fatalf("norm lookups = %d, want 1", norms.calls)
	}
	if norms.contractTypeId != contractType || norms.jurisdictionId != jurisdiction {
		t.Errorf("norm scope = %s/%s, want %s/%s", norms.contractTypeId, norms.jurisdictionId, contractType, jurisdiction)
	}
	if norms.minRelevance != DefaultNormMinRelevance || norms.limit != DefaultNormLimit {
		t.Errorf("norm bounds = %.2f/%d, want defaults", norms.minRelevance, norms.limit)
	}
	if store.job.Status != entity.AnalysisStatusCompleted {
		t.Errorf("status = %q, want completed", store.job.Status)
	}
}
