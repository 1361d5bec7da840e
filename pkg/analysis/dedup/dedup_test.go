package dedup

import (
	"testing"

	"github.com/Tigierre/contractguardian/internal/entity"
)

func strPtr(s string) *string { return &s }

func improvement(title, clause, priority string) *entity.Finding {
	return &entity.Finding{
		Title:      title,
		ClauseText: clause,
		Type:       entity.FindingTypeImprovement,
		Priority:   strPtr(priority),
	}
}

func strength(title, clause string) *entity.Finding {
	return &entity.Finding{
		Title:      title,
		ClauseText: clause,
		Type:       entity.FindingTypeStrength,
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "la penale è sproporzionata", "la penale è sproporzionata", 1.0},
		{"case insensitive", "LA PENALE", "la penale", 1.0},
		{"both empty", "", "", 0},
		{"one empty", "clausola", "", 0},
		{"disjoint", "penale sproporzionata", "foro competente", 0},
		{"four of five", "a b c d", "a b c d e", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JaccardSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("JaccardSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateFindingsFirstWins(t *testing.T) {
	base := "Il fornitore può recedere dal contratto in qualsiasi momento"
	nearDuplicate := base + " senza preavviso"
	distinct := "La penale ammonta al venti percento del corrispettivo annuo"

	first := improvement("Recesso unilaterale", base, entity.PriorityImportante)
	second := improvement("Recesso libero", nearDuplicate, entity.PriorityConsigliato)
	third := improvement("Penale eccessiva", distinct, entity.PriorityImportante)

	kept := DeduplicateFindings([]*entity.Finding{first, second, third})

	if len(kept) != 2 {
		t.Fatalf("kept %d findings, want 2", len(kept))
	}
	if kept[0] != first {
		t.Error("first occurrence must win over later near-duplicates")
	}
	if kept[1] != third {
		t.Error("distinct finding must survive")
	}
}

func TestDeduplicateFindingsThresholdIsStrict(t *testing.T) {
	// Similarity of exactly 0.8 is not above the threshold.
	a := improvement("A", "a b c d", entity.PriorityImportante)
	b := improvement("B", "a b c d e", entity.PriorityImportante)

	kept := DeduplicateFindings([]*entity.Finding{a, b})
	if len(kept) != 2 {
		t.Fatalf("kept %d findings, want 2: score 0.8 must not count as duplicate", len(kept))
	}
}

func TestDeduplicateFindingsIdempotent(t *testing.T) {
	findings := []*entity.Finding{
		improvement("A", "prima clausola sul recesso anticipato", entity.PriorityImportante),
		strength("B", "seconda clausola sulla riservatezza reciproca"),
	}

	once := DeduplicateFindings(findings)
	twice := DeduplicateFindings(once)

	if len(once) != len(twice) {
		t.Errorf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestSortFindingsCanonicalOrder(t *testing.T) {
	s1 := strength("Forza 1", "clausola uno")
	imp1 := improvement("Suggerimento", "clausola due", entity.PrioritySuggerimento)
	imp2 := improvement("Importante", "clausola tre", entity.PriorityImportante)
	s2 := strength("Forza 2", "clausola quattro")
	imp3 := improvement("Consigliato", "clausola cinque", entity.PriorityConsigliato)

	input := []*entity.Finding{s1, imp1, imp2, s2, imp3}
	sorted := SortFindings(input)

	wantOrder := []*entity.Finding{imp2, imp3, imp1, s1, s2}
	for i, want := range wantOrder {
		if sorted[i] != want {
			t.Errorf("position %d: got %q, want %q", i, sorted[i].Title, want.Title)
		}
	}

	// Input slice order is untouched.
	if input[0] != s1 || input[4] != imp3 {
		t.Error("SortFindings must not mutate its input")
	}
}

func TestSortFindingsStable(t *testing.T) {
	a := improvement("Prima", "clausola a", entity.PriorityImportante)
	b := improvement("Seconda", "clausola b", entity.PriorityImportante)
	c := strength("Terza", "clausola c")
	d := strength("Quarta", "clausola d")

	sorted := SortFindings([]*entity.Finding{a, b, c, d})

	if sorted[0] != a || sorted[1] != b {
		t.Error("equal-priority improvements must preserve input order")
	}
	if sorted[2] != c || sorted[3] != d {
		t.Error("strengths must preserve input order")
	}
}

func TestSortFindingsUnknownPriorityLast(t *testing.T) {
	known := improvement("Nota", "clausola x", entity.PrioritySuggerimento)
	unknown := improvement("Ignota", "clausola y", "urgentissimo")
	missing := &entity.Finding{Title: "Senza", ClauseText: "clausola z", Type: entity.FindingTypeImprovement}

	sorted := SortFindings([]*entity.Finding{unknown, missing, known})

	if sorted[0] != known {
		t.Errorf("known priority must sort before unknown, got %q first", sorted[0].Title)
	}
}
