// Package chunker splits a contract into an ordered sequence of overlapping
// text chunks bounded by a token budget. Splitting preserves paragraph
// boundaries; each chunk after the first is seeded with the last paragraph
// of its predecessor so a clause straddling a boundary is never invisible
// to the model. The duplicate output that overlap produces is resolved
// later by the deduplicator.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Tigierre/contractguardian/pkg/analysis/token"
)

const (
	// DefaultMaxTokensPerChunk bounds one model call.
	DefaultMaxTokensPerChunk = 3000

	// CharsPerPage matches the upstream extractor's page sizing.
	CharsPerPage = 3000
)

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Chunk is a bounded, positionally-tracked slice of the source document.
// Offsets refer to the whitespace-normalized document (paragraphs joined by
// blank lines), so concatenating chunk texts minus the one-paragraph
// overlaps reconstructs it exactly.
type Chunk struct {
	Text          string
	Index         int
	StartChar     int
	EndChar       int
	PageEstimate  int
	TokenEstimate int
}

// Result is the outcome of one chunking pass. Chunks are produced once per
// analysis run and never persisted.
type Result struct {
	Chunks           []Chunk
	TotalChunks      int
	RequiresChunking bool
}

// ChunkContract splits text into token-bounded chunks. maxTokensPerChunk of
// zero or less means DefaultMaxTokensPerChunk.
func ChunkContract(text string, maxTokensPerChunk int) Result {
	if maxTokensPerChunk <= 0 {
		maxTokensPerChunk = DefaultMaxTokensPerChunk
	}

	trimmed := strings.TrimSpace(text)

	// Shortcut: the whole document fits one call. Also covers empty input,
	// which still yields a single (empty) chunk.
	if token.EstimateTokens(trimmed) <= maxTokensPerChunk {
		return Result{
			Chunks:           []Chunk{makeChunk(trimmed, 0, 0)},
			TotalChunks:      1,
			RequiresChunking: false,
		}
	}

	paragraphs := splitParagraphs(trimmed)

	// Normalized start offset per paragraph: paragraphs are re-joined with
	// a single blank line, so offsets advance by len(paragraph)+2.
	offsets := make([]int, len(paragraphs))
	pos := 0
	for i, p := range paragraphs {
		offsets[i] = pos
		pos += utf8.RuneCountInString(p) + 2
	}

	var chunks []Chunk
	var current []int // indices into paragraphs

	closeCurrent := func() {
		texts := make([]string, len(current))
		for i, idx := range current {
			texts[i] = paragraphs[idx]
		}
		chunkText := strings.Join(texts, "\n\n")
		chunks = append(chunks, makeChunk(chunkText, len(chunks), offsets[current[0]]))
	}

	joinedTokens := func(indices []int, next string) int {
		length := utf8.RuneCountInString(next)
		for _, idx := range indices {
			length += utf8.RuneCountInString(paragraphs[idx]) + 2
		}
		return (length + token.CharsPerToken - 1) / token.CharsPerToken
	}

	for i := range paragraphs {
		if len(current) > 0 && joinedTokens(current, paragraphs[i]) > maxTokensPerChunk {
			closeCurrent()

			// Seed the next chunk with the last paragraph of the closed one,
			// unless even that pair would overflow (a pathologically long
			// paragraph then stands alone as an oversized chunk).
			last := current[len(current)-1]
			if joinedTokens([]int{last}, paragraphs[i]) <= maxTokensPerChunk {
				current = []int{last}
			} else {
				current = nil
			}
		}
		current = append(current, i)
	}
	if len(current) > 0 {
		closeCurrent()
	}

	return Result{
		Chunks:           chunks,
		TotalChunks:      len(chunks),
		RequiresChunking: true,
	}
}

// EstimatePages approximates the page count of a text for display purposes.
// Rounds up; empty text is zero pages.
func EstimatePages(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + CharsPerPage - 1) / CharsPerPage
}

func makeChunk(text string, index, startChar int) Chunk {
	endChar := startChar + utf8.RuneCountInString(text)
	pageEstimate := (endChar + CharsPerPage - 1) / CharsPerPage
	if pageEstimate < 1 {
		pageEstimate = 1
	}
	return Chunk{
		Text:          text,
		Index:         index,
		StartChar:     startChar,
		EndChar:       endChar,
		PageEstimate:  pageEstimate,
		TokenEstimate: token.EstimateTokens(text),
	}
}

func splitParagraphs(text string) []string {
	parts := paragraphSplit.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
