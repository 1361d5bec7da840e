package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tigierre/contractguardian/internal/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestSendProgressDeliversToSubscriber(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	analysisId := uuid.New()
	client := &Client{Hub: hub, AnalysisID: analysisId, Send: make(chan []byte, 4)}
	hub.register <- client

	hub.SendProgress(dto.ProgressMessage{AnalysisId: analysisId, Status: "processing", Stage: "analyzing"})

	select {
	case msg := <-client.Send:
		if len(msg) == 0 {
			t.Error("expected a serialized progress payload")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the progress message")
	}
}

func TestSlowConsumerDroppedWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	analysisId := uuid.New()
	client := &Client{Hub: hub, AnalysisID: analysisId, Send: make(chan []byte, 1)}
	hub.register <- client

	// First message fills the buffer; the following ones hit the drop path
	// repeatedly. The Send channel must be closed exactly once.
	for i := 0; i < 3; i++ {
		hub.SendProgress(dto.ProgressMessage{AnalysisId: analysisId, Status: "processing", Stage: "analyzing"})
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-client.Send:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("dropped client's Send channel was never closed")
		}
	}
}
