package websocket

import (
	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/pkg/analysis/orchestrator"
)

// ProgressObserver bridges pipeline progress updates onto the hub.
type ProgressObserver struct {
	hub *Hub
}

func NewProgressObserver(hub *Hub) *ProgressObserver {
	return &ProgressObserver{hub: hub}
}

func (o *ProgressObserver) Notify(update orchestrator.ProgressUpdate) {
	if o.hub == nil {
		return
	}
	o.hub.SendProgress(dto.ProgressMessage{
		AnalysisId:     update.AnalysisId,
		Status:         update.Status,
		Stage:          update.Stage,
		ProgressDetail: update.Message,
		TotalChunks:    update.TotalChunks,
		CurrentChunk:   update.CurrentChunk,
	})
}
