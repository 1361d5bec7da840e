package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"

	"github.com/Tigierre/contractguardian/internal/entity"
	"github.com/Tigierre/contractguardian/internal/repository/specification"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"
	"github.com/Tigierre/contractguardian/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.AnalysisRepository())
	assert.NotNil(t, uow.FindingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Policy Repository", func(t *testing.T) {
		policies, err := uow.PolicyRepository().FindAll(context.Background())
		assert.NoError(t, err)
		t.Logf("Policy count: %d", len(policies))
	})

	t.Run("Check Analysis Repository", func(t *testing.T) {
		count, err := uow.AnalysisRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Analysis count: %d", count)
	})

	t.Run("Check Transactional Document Analysis", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		err := txUow.Begin(ctx)
		assert.NoError(t, err)
		defer txUow.Rollback()

		doc := &entity.Document{
			Id:       uuid.New(),
			Filename: "integration-" + uuid.New().String() + ".pdf",
			Text:     "Articolo 1: oggetto del contratto.\n\nArticolo 2: durata.",
			Language: entity.LanguageItalian,
		}
		err = txUow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		analysis := &entity.Analysis{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			Status:     entity.AnalysisStatusPending,
		}
		err = txUow.AnalysisRepository().Create(ctx, analysis)
		assert.NoError(t, err)

		priority := entity.PriorityImportante
		findings := []*entity.Finding{{
			Id:         uuid.New(),
			AnalysisId: analysis.Id,
			Title:      "Integration finding",
			ClauseText: "Articolo 1",
			Type:       entity.FindingTypeImprovement,
			Priority:   &priority,
		}}
		err = txUow.FindingRepository().CreateBatch(ctx, findings)
		assert.NoError(t, err)

		found, err := txUow.AnalysisRepository().FindOne(ctx,
			specification.ByDocumentId{DocumentId: doc.Id},
			specification.InFlight{},
		)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		if found != nil {
			assert.Equal(t, analysis.Id, found.Id)
		}

		// Rollback via defer keeps the database clean.
	})
}
