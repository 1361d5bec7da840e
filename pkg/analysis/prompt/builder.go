// Package prompt builds the system and user instructions for the two kinds
// of structured-extraction calls the pipeline issues: per-chunk clause
// analysis and the final executive summary.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Tigierre/contractguardian/internal/entity"
)

// AnalysisContext carries the mode-dependent prompt inputs. Basic mode uses
// Viewpoint; enhanced mode uses the party labels and the norm slice.
type AnalysisContext struct {
	Enhanced  bool
	Viewpoint string
	PartyA    string
	PartyB    string
	Norms     []*entity.LegalNorm
	Language  string
}

// ChunkBuilder builds prompts for one chunk-analysis call.
type ChunkBuilder struct {
	policies []*entity.Policy
	ctx      AnalysisContext
}

func NewChunkBuilder(policies []*entity.Policy, ctx AnalysisContext) *ChunkBuilder {
	return &ChunkBuilder{
		policies: policies,
		ctx:      ctx,
	}
}

// BuildSystem creates the system instruction embedding the policy set and,
// in enhanced mode, the party labels and the applicable norms.
func (b *ChunkBuilder) BuildSystem() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writePolicies(&prompt)
	if b.ctx.Enhanced {
		b.writeParties(&prompt)
		b.writeNorms(&prompt)
	}
	b.writeOutputContract(&prompt)

	return prompt.String()
}

// BuildUser creates the user instruction containing the chunk text.
func (b *ChunkBuilder) BuildUser(chunkText string, index, total int) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("<contract_excerpt part=\"%d of %d\">\n", index+1, total))
	prompt.WriteString(chunkText)
	prompt.WriteString("\n</contract_excerpt>\n\n")
	prompt.WriteString("Analyze this excerpt against every policy and return your findings as JSON:")

	return prompt.String()
}

func (b *ChunkBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a senior contract lawyer reviewing one excerpt of a longer contract.\n")
	prompt.WriteString("Extract every clause-level observation relevant to the policies below: strengths worth keeping and improvements that need a redline.\n")
	if !b.ctx.Enhanced && b.ctx.Viewpoint != "" {
		prompt.WriteString(fmt.Sprintf("Review from the analytical standpoint of the %s party.\n", b.ctx.Viewpoint))
	}
	if b.ctx.Language == entity.LanguageItalian {
		prompt.WriteString("Write every textual field in Italian.\n")
	}
	prompt.WriteString("</task>\n\n")
}

func (b *ChunkBuilder) writePolicies(prompt *strings.Builder) {
	prompt.WriteString("<policies>\n")
	for _, p := range b.policies {
		prompt.WriteString(fmt.Sprintf("- %s [%s]: %s\n", p.Name, p.Category, p.Content))
	}
	prompt.WriteString("</policies>\n\n")
}

func (b *ChunkBuilder) writeParties(prompt *strings.Builder) {
	prompt.WriteString("<parties>\n")
	prompt.WriteString(fmt.Sprintf("partyA: %s\n", b.ctx.PartyA))
	prompt.WriteString(fmt.Sprintf("partyB: %s\n", b.ctx.PartyB))
	prompt.WriteString("For each finding set \"actor\" to \"partyA\", \"partyB\" or \"general\" depending on which party the risk or benefit primarily concerns.\n")
	prompt.WriteString("</parties>\n\n")
}

func (b *ChunkBuilder) writeNorms(prompt *strings.Builder) {
	if len(b.ctx.Norms) == 0 {
		return
	}
	prompt.WriteString("<legal_norms>\n")
	for _, n := range b.ctx.Norms {
		prompt.WriteString(fmt.Sprintf("- %s | %s (%s)\n", n.NormId, n.Title, n.Citation))
	}
	prompt.WriteString("Cite norms in \"norm_ids\" ONLY from the list above. Never invent or reference a norm id that is not listed here.\n")
	prompt.WriteString("</legal_norms>\n\n")
}

func (b *ChunkBuilder) writeOutputContract(prompt *strings.Builder) {
	prompt.WriteString("<output>\n")
	prompt.WriteString("Respond with ONLY a JSON object of this exact shape:\n")
	prompt.WriteString(`{"findings": [{"title": "...", "clause_text": "...", "type": "strength"|"improvement", "policy_name": "...", "priority": "importante"|"consigliato"|"suggerimento"|null, "explanation": "...", "redline_suggestion": "..."|null`)
	if b.ctx.Enhanced {
		prompt.WriteString(`, "actor": "partyA"|"partyB"|"general", "norm_ids": ["..."]`)
	}
	prompt.WriteString("}], \"has_more_content\": true|false}\n")
	prompt.WriteString("Rules:\n")
	prompt.WriteString("- clause_text quotes the exact contract wording the finding concerns\n")
	prompt.WriteString("- a strength has priority null and redline_suggestion null\n")
	prompt.WriteString("- an improvement always has a priority and, when possible, a concrete redline_suggestion\n")
	prompt.WriteString("- has_more_content is true only when the excerpt visibly ends mid-sentence\n")
	prompt.WriteString("</output>")
}

// SummaryBuilder builds prompts for the final aggregate call over the
// deduplicated finding set.
type SummaryBuilder struct {
	findings     []*entity.Finding
	documentName string
	ctx          AnalysisContext
}

func NewSummaryBuilder(findings []*entity.Finding, documentName string, ctx AnalysisContext) *SummaryBuilder {
	return &SummaryBuilder{
		findings:     findings,
		documentName: documentName,
		ctx:          ctx,
	}
}

func (b *SummaryBuilder) BuildSystem() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a senior contract lawyer writing the executive summary of a completed contract review.\n")
	if b.ctx.Enhanced {
		prompt.WriteString(fmt.Sprintf("Address both parties: %s (partyA) and %s (partyB).\n", b.ctx.PartyA, b.ctx.PartyB))
	}
	if b.ctx.Language == entity.LanguageItalian {
		prompt.WriteString("Write in Italian.\n")
	}
	prompt.WriteString("</task>\n\n")
	prompt.WriteString("<output>\n")
	prompt.WriteString("Respond with ONLY a JSON object of this exact shape:\n")
	prompt.WriteString(`{"summary": "...", "overall_assessment": "positivo"|"equilibrato"|"da_rivedere", "recommendation": "..."}`)
	prompt.WriteString("\nsummary is a short narrative; recommendation is a single line.\n")
	prompt.WriteString("</output>")

	return prompt.String()
}

func (b *SummaryBuilder) BuildUser() string {
	var prompt strings.Builder

	strengths := make([]*entity.Finding, 0)
	improvements := make([]*entity.Finding, 0)
	tallies := map[string]int{}
	for _, f := range b.findings {
		if f.Type == entity.FindingTypeStrength {
			strengths = append(strengths, f)
		} else {
			improvements = append(improvements, f)
			if f.Priority != nil {
				tallies[*f.Priority]++
			}
		}
	}

	prompt.WriteString(fmt.Sprintf("<document>%s</document>\n\n", b.documentName))

	prompt.WriteString("<strengths>\n")
	for _, f := range strengths {
		prompt.WriteString(fmt.Sprintf("- %s: %s\n", f.Title, truncate(f.Explanation, 160)))
	}
	prompt.WriteString("</strengths>\n\n")

	prompt.WriteString("<improvements>\n")
	for _, f := range improvements {
		priority := ""
		if f.Priority != nil {
			priority = *f.Priority
		}
		prompt.WriteString(fmt.Sprintf("- [%s] %s: %s\n", priority, f.Title, truncate(f.Explanation, 160)))
	}
	prompt.WriteString("</improvements>\n\n")

	prompt.WriteString(fmt.Sprintf(
		"<tallies>strengths: %d, improvements: %d (importante: %d, consigliato: %d, suggerimento: %d)</tallies>\n\n",
		len(strengths), len(improvements),
		tallies[entity.PriorityImportante], tallies[entity.PriorityConsigliato], tallies[entity.PrioritySuggerimento],
	))

	prompt.WriteString("Write the executive summary as JSON:")

	return prompt.String()
}

// truncate cuts on rune boundaries so Italian accented text stays valid.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
