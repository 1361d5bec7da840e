package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	FindingTypeStrength    = "strength"
	FindingTypeImprovement = "improvement"
)

const (
	PriorityImportante   = "importante"
	PriorityConsigliato  = "consigliato"
	PrioritySuggerimento = "suggerimento"
)

const (
	ActorPartyA  = "partyA"
	ActorPartyB  = "partyB"
	ActorGeneral = "general"
)

// Finding is one structured observation extracted from the document.
// Invariant: a strength carries no priority and no redline; an improvement
// always carries a priority.
type Finding struct {
	Id                uuid.UUID
	AnalysisId        uuid.UUID
	Title             string
	ClauseText        string
	Type              string
	PolicyName        string
	Priority          *string
	Explanation       string
	RedlineSuggestion *string
	Actor             *string  // enhanced mode only
	NormIds           []string // enhanced mode only
	Rank              int      // position in canonical (dedup + sort) order
	SourceChunkIndex  int      // chunk the finding originated from
	CreatedAt         time.Time
}

// PriorityRank maps a priority to its canonical sort position.
// Unknown or missing priorities sort last.
func PriorityRank(priority *string) int {
	if priority == nil {
		return 3
	}
	switch *priority {
	case PriorityImportante:
		return 0
	case PriorityConsigliato:
		return 1
	case PrioritySuggerimento:
		return 2
	default:
		return 3
	}
}
