// Package orchestrator drives one document analysis job through its stages:
// chunking → analyzing → summarizing → saving. Whatever happens mid-pipeline
// the job record ends in exactly one terminal state, completed or failed.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/pkg/logger"
	"github.com/Tigierre/contractguardian/pkg/analysis/analyzer"
	"github.com/Tigierre/contractguardian/pkg/analysis/chunker"
	"github.com/Tigierre/contractguardian/pkg/analysis/dedup"
	"github.com/Tigierre/contractguardian/pkg/analysis/prompt"
	"github.com/Tigierre/contractguardian/pkg/analysis/retrier"
	"github.com/Tigierre/contractguardian/pkg/llm"
)

const (
	DefaultTimeout          = 5 * time.Minute
	DefaultNormMinRelevance = 0.7
	DefaultNormLimit        = 10
)

// JobStore is the job-record store boundary. All updates are last write
// wins on the single job row; only the orchestrator writes to a given id.
type JobStore interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Analysis, error)
	Update(ctx context.Context, analysis *entity.Analysis) error
	InsertFindings(ctx context.Context, analysisId uuid.UUID, findings []*entity.Finding) error
}

// DocumentSource provides the read-only document input.
type DocumentSource interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error)
}

// PolicySource provides the ordered risk rules injected into every
// chunk-analysis prompt.
type PolicySource interface {
	ActivePolicies(ctx context.Context) ([]*entity.Policy, error)
}

// NormSource provides the jurisdiction-specific norms for enhanced runs,
// sorted by relevance descending.
type NormSource interface {
	FindApplicable(ctx context.Context, contractTypeId, jurisdictionId string, minRelevance float64, limit int) ([]*entity.LegalNorm, error)
}

// ProgressUpdate is the advisory payload sent to the observer after every
// stage transition and every completed chunk.
type ProgressUpdate struct {
	AnalysisId   uuid.UUID `json:"analysis_id"`
	Status       string    `json:"status"`
	Stage        string    `json:"stage"`
	CurrentChunk int       `json:"current_chunk"`
	TotalChunks  int       `json:"total_chunks"`
	Message      string    `json:"message"`
}

// ProgressObserver receives progress updates. No return value is consumed.
type ProgressObserver interface {
	Notify(update ProgressUpdate)
}

// Config bounds one pipeline run.
type Config struct {
	Timeout           time.Duration
	MaxTokensPerChunk int
	Retry             retrier.Config
	NormMinRelevance  float64
	NormLimit         int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxTokensPerChunk <= 0 {
		c.MaxTokensPerChunk = chunker.DefaultMaxTokensPerChunk
	}
	if c.NormMinRelevance <= 0 {
		c.NormMinRelevance = DefaultNormMinRelevance
	}
	if c.NormLimit <= 0 {
		c.NormLimit = DefaultNormLimit
	}
	return c
}

// Orchestrator is the top-level state machine for one analysis job.
type Orchestrator struct {
	chunkAnalyzer *analyzer.ChunkAnalyzer
	summarizer    *analyzer.Summarizer
	store         JobStore
	documents     DocumentSource
	policies      PolicySource
	norms         NormSource
	observer      ProgressObserver
	logger        logger.ILogger
	cfg           Config
}

func New(
	provider llm.StructuredProvider,
	store JobStore,
	documents DocumentSource,
	policies PolicySource,
	norms NormSource,
	observer ProgressObserver,
	log logger.ILogger,
	cfg Config,
) *Orchestrator {
	cfg = cfg.withDefaults()
	return &Orchestrator{
		chunkAnalyzer: analyzer.NewChunkAnalyzer(provider, cfg.Retry),
		summarizer:    analyzer.NewSummarizer(provider, cfg.Retry),
		store:         store,
		documents:     documents,
		policies:      policies,
		norms:         norms,
		observer:      observer,
		logger:        log,
		cfg:           cfg,
	}
}

// Run executes the whole pipeline for one job id, racing it against the
// wall-clock timeout. The job record is guaranteed to end completed or
// failed; the error (if any) re-propagates so fire-and-forget invokers can
// log it.
func (o *Orchestrator) Run(ctx context.Context, analysisId uuid.UUID) error {
	job, err := o.store.Get(ctx, analysisId)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", analysisId, err)
	}
	if job == nil {
		return fmt.Errorf("analysis %s not found", analysisId)
	}

	now := time.Now()
	job.Status = entity.AnalysisStatusProcessing
	job.Stage = entity.AnalysisStageChunking
	job.StartedAt = &now
	job.ProgressDetail = "Preparazione dell'analisi"
	if err := o.store.Update(ctx, job); err != nil {
		return fmt.Errorf("mark analysis processing: %w", err)
	}
	o.notify(job)

	runCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	// The pipeline goroutine works on its own copy of the job record. On
	// timeout the goroutine is abandoned while markFailed writes the shared
	// record, so the two must never touch the same struct.
	runJob := *job
	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("pipeline panic: %v", r)
			}
		}()
		errCh <- o.run(runCtx, &runJob)
	}()

	select {
	case err = <-errCh:
		// The goroutine is done, so its copy carries the latest progress.
		*job = runJob
	case <-runCtx.Done():
		// The in-flight call is abandoned, not aborted: runCtx is dead so
		// nothing it produces can be persisted, and its copy of the job
		// record is left to it.
		err = fmt.Errorf("analysis timed out after %s", o.cfg.Timeout)
	}

	if err != nil {
		o.markFailed(job, err)
		return err
	}

	o.logger.Info("Orchestrator", "Analysis completed", map[string]interface{}{
		"analysis_id": job.Id,
		"findings":    job.TotalFindings,
	})
	return nil
}

// run drives the four stages. Any error aborts the whole job; Run turns it
// into the failed terminal state.
func (o *Orchestrator) run(ctx context.Context, job *entity.Analysis) error {
	doc, err := o.documents.FindById(ctx, job.DocumentId)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", job.DocumentId)
	}

	policies, err := o.policies.ActivePolicies(ctx)
	if err != nil {
		return fmt.Errorf("load policy set: %w", err)
	}

	pctx, err := o.buildPromptContext(ctx, job, doc)
	if err != nil {
		return err
	}

	// ═══════════════════════════════════════════════════════════════
	// STAGE 1: CHUNKING
	// ═══════════════════════════════════════════════════════════════
	result := chunker.ChunkContract(doc.Text, o.cfg.MaxTokensPerChunk)

	// Persist totalChunks before the first chunk completes so any poller
	// can compute a progress percentage.
	job.TotalChunks = result.TotalChunks
	job.CurrentChunk = 0
	job.ProgressDetail = fmt.Sprintf("Documento suddiviso in %d blocchi", result.TotalChunks)
	if err := o.transition(ctx, job, entity.AnalysisStageChunking); err != nil {
		return err
	}

	// ═══════════════════════════════════════════════════════════════
	// STAGE 2: ANALYZING (strictly sequential across chunks)
	// ═══════════════════════════════════════════════════════════════
	if err := o.transition(ctx, job, entity.AnalysisStageAnalyzing); err != nil {
		return err
	}

	var all []*entity.Finding
	for _, chunk := range result.Chunks {
		res, err := o.chunkAnalyzer.AnalyzeChunk(ctx, chunk, result.TotalChunks, policies, pctx)
		if err != nil {
			return fmt.Errorf("analyze chunk %d: %w", chunk.Index, err)
		}
		all = append(all, res.Findings...)

		job.CurrentChunk = chunk.Index + 1
		job.ProgressDetail = fmt.Sprintf("Analizzato blocco %d di %d", job.CurrentChunk, job.TotalChunks)
		if err := o.store.Update(ctx, job); err != nil {
			return fmt.Errorf("update chunk progress: %w", err)
		}
		o.notify(job)
	}

	// ═══════════════════════════════════════════════════════════════
	// STAGE 3: SUMMARIZING (dedup + canonical order first)
	// ═══════════════════════════════════════════════════════════════
	job.ProgressDetail = "Generazione del riepilogo"
	if err := o.transition(ctx, job, entity.AnalysisStageSummarizing); err != nil {
		return err
	}

	canonical := dedup.SortFindings(dedup.DeduplicateFindings(all))
	summary, err := o.summarizer.GenerateExecutiveSummary(ctx, canonical, doc.Filename, pctx)
	if err != nil {
		return fmt.Errorf("generate executive summary: %w", err)
	}

	// ═══════════════════════════════════════════════════════════════
	// STAGE 4: SAVING
	// ═══════════════════════════════════════════════════════════════
	job.ProgressDetail = "Salvataggio dei risultati"
	if err := o.transition(ctx, job, entity.AnalysisStageSaving); err != nil {
		return err
	}

	for rank, f := range canonical {
		f.AnalysisId = job.Id
		f.Rank = rank
	}

	applyCounts(job, canonical)
	completedAt := time.Now()
	job.Status = entity.AnalysisStatusCompleted
	job.CompletedAt = &completedAt
	job.ProgressDetail = "Analisi completata"
	job.ExecutiveSummary = &summary.Summary
	job.OverallAssessment = &summary.OverallAssessment
	job.Recommendation = &summary.Recommendation

	if err := o.store.InsertFindings(ctx, job.Id, canonical); err != nil {
		return fmt.Errorf("insert findings: %w", err)
	}
	if err := o.store.Update(ctx, job); err != nil {
		return fmt.Errorf("finalize analysis: %w", err)
	}
	o.notify(job)

	return nil
}

func (o *Orchestrator) buildPromptContext(ctx context.Context, job *entity.Analysis, doc *entity.Document) (prompt.AnalysisContext, error) {
	pctx := prompt.AnalysisContext{
		Language: doc.Language,
	}

	if !job.Enhanced {
		pctx.Viewpoint = entity.ViewpointClient
		if job.Viewpoint != nil && *job.Viewpoint != "" {
			pctx.Viewpoint = *job.Viewpoint
		}
		return pctx, nil
	}

	if !doc.HasValidatedMetadata() {
		return pctx, fmt.Errorf("document %s is missing validated metadata for enhanced analysis", doc.Id)
	}

	norms, err := o.norms.FindApplicable(ctx, *doc.ContractTypeId, *doc.JurisdictionId, o.cfg.NormMinRelevance, o.cfg.NormLimit)
	if err != nil {
		return pctx, fmt.Errorf("load legal norms: %w", err)
	}

	pctx.Enhanced = true
	pctx.PartyA = *doc.PartyA
	pctx.PartyB = *doc.PartyB
	pctx.Norms = norms
	return pctx, nil
}

// transition persists a stage change and notifies the observer.
func (o *Orchestrator) transition(ctx context.Context, job *entity.Analysis, stage string) error {
	job.Stage = stage
	if err := o.store.Update(ctx, job); err != nil {
		return fmt.Errorf("transition to %s: %w", stage, err)
	}
	o.notify(job)
	return nil
}

// markFailed forces the failed terminal state. It deliberately uses a fresh
// context: the run context may already be dead (timeout) and the terminal
// write must still land.
func (o *Orchestrator) markFailed(job *entity.Analysis, cause error) {
	msg := cause.Error()
	completedAt := time.Now()
	job.Status = entity.AnalysisStatusFailed
	job.ErrorMessage = &msg
	job.CompletedAt = &completedAt
	job.ProgressDetail = "Analisi fallita"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := o.store.Update(ctx, job); err != nil {
		o.logger.Error("Orchestrator", "Failed to persist failed state", map[string]interface{}{
			"analysis_id": job.Id,
			"error":       err.Error(),
		})
	}

	o.logger.Error("Orchestrator", "Analysis failed", map[string]interface{}{
		"analysis_id": job.Id,
		"kind":        string(llm.Classify(cause)),
		"error":       msg,
	})
	o.notify(job)
}

func (o *Orchestrator) notify(job *entity.Analysis) {
	if o.observer == nil {
		return
	}
	o.observer.Notify(ProgressUpdate{
		AnalysisId:   job.Id,
		Status:       job.Status,
		Stage:        job.Stage,
		CurrentChunk: job.CurrentChunk,
		TotalChunks:  job.TotalChunks,
		Message:      job.ProgressDetail,
	})
}

func applyCounts(job *entity.Analysis, findings []*entity.Finding) {
	job.TotalFindings = len(findings)
	job.StrengthCount = 0
	job.ImprovementCount = 0
	job.ImportanteCount = 0
	job.ConsigliatoCount = 0
	job.SuggerimentoCount = 0

	for _, f := range findings {
		switch f.Type {
		case entity.FindingTypeStrength:
			job.StrengthCount++
		case entity.FindingTypeImprovement:
			job.ImprovementCount++
			switch {
			case f.Priority == nil:
			case *f.Priority == entity.PriorityImportante:
				job.ImportanteCount++
			case *f.Priority == entity.PriorityConsigliato:
				job.ConsigliatoCount++
			case *f.Priority == entity.PrioritySuggerimento:
				job.SuggerimentoCount++
			}
		}
	}
}
