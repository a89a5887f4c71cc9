package analysis

import (
	"fmt"
	"strings"

	"NewspaperAnalyzer/internal/domain"
)

const promptTemplate = `AUFTRAG: Analysiere diesen Zeitungstext für die Jungen Liberalen (JuLi).
Quelle: %s
Datum: %s

KATEGORIEN & PRIORITÄTEN:
%s
FORMAT für jeden Artikel:
%s[KATEGORIE] - Überschrift%s
%s Kurze prägnante Zusammenfassung (max. 2 Sätze)
%s %s [Seitennummer falls erkennbar]
%s %s Konkrete Begründung für Relevanz
%s

WICHTIG:
- Verwende immer "JuLi" (nie "JL")
- Nur vollständige, relevante Artikel
- Fokus auf lokale/regionale Politik

TEXT CHUNK %d/%d:
%s
`

// BuildPrompt renders the instruction for one chunk. The output format
// mirrors the grammar the article parser reads.
func BuildPrompt(chunk domain.Chunk, total int, sourceName, date string) string {
	return fmt.Sprintf(promptTemplate,
		sourceName,
		date,
		renderTaxonomy(domain.Taxonomy),
		domain.TitleEmphasis, domain.TitleEmphasis,
		domain.MarkerSummary,
		domain.MarkerPage, domain.LabelPage,
		domain.MarkerRelevance, domain.LabelRelevance,
		domain.BlockSeparator,
		chunk.Index+1, total,
		chunk.Text,
	)
}

func renderTaxonomy(tiers []domain.TaxonomyTier) string {
	var b strings.Builder
	for _, tier := range tiers {
		fmt.Fprintf(&b, "%s: %s\n", tier.Heading, strings.Join(tier.Categories, ", "))
	}
	return b.String()
}
