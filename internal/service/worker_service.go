package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"
	"github.com/Tigierre/contractguardian/pkg/analysis/orchestrator"
	"github.com/Tigierre/contractguardian/pkg/events"
	pkgNats "github.com/Tigierre/contractguardian/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IWorkerService interface {
	Consume(ctx context.Context) error
}

type workerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	orchestrator   *orchestrator.Orchestrator
	eventPublisher *pkgNats.Publisher
}

func NewWorkerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	orch *orchestrator.Orchestrator,
	eventPublisher *pkgNats.Publisher,
) IWorkerService {
	return &workerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		orchestrator:   orch,
		eventPublisher: eventPublisher,
	}
}

func (ws *workerService) Consume(ctx context.Context) error {
	messages, err := ws.pubSub.Subscribe(ctx, ws.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ws.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ws *workerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalysisJobPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing analysis job: %s", payload.AnalysisId)

	uow := ws.uowFactory.NewUnitOfWork(ctx)
	analysis, err := uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: payload.AnalysisId})
	if err != nil {
		log.Printf("[ERROR] Failed to load analysis %s: %v", payload.AnalysisId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if analysis == nil {
		log.Printf("[ERROR] Analysis not found: %s", payload.AnalysisId)
		msg.Ack() // Job deleted? Ack.
		return
	}
	if analysis.IsTerminal() {
		log.Printf("[INFO] Analysis %s already terminal (%s), skipping", analysis.Id, analysis.Status)
		msg.Ack()
		return
	}

	// The pipeline guarantees a terminal state on the job record, failures
	// included, so the message is always Acked after a run.
	runErr := ws.orchestrator.Run(ctx, payload.AnalysisId)

	ws.publishOutcome(ctx, payload, analysis, runErr)
	msg.Ack()
}

func (ws *workerService) publishOutcome(ctx context.Context, payload dto.AnalysisJobPayload, analysis *entity.Analysis, runErr error) {
	if ws.eventPublisher == nil {
		return
	}

	var evt events.Event
	if runErr != nil {
		evt = events.NewAnalysisFailed(payload.AnalysisId.String(), analysis.DocumentId.String(), runErr.Error())
	} else {
		// Re-read the job for the final counts.
		uow := ws.uowFactory.NewUnitOfWork(ctx)
		final, err := uow.AnalysisRepository().FindOne(ctx, specification.ByID{ID: payload.AnalysisId})
		if err != nil || final == nil {
			log.Printf("[WARN] Could not reload analysis %s for completion event: %v", payload.AnalysisId, err)
			return
		}
		evt = events.NewAnalysisCompleted(final.Id.String(), final.DocumentId.String(), final.TotalFindings)
	}

	// Auxiliary; a publish failure never fails the job.
	if err := ws.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", evt.EventType(), err)
	}
}
