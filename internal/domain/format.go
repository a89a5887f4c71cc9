package domain

// Markers of the article grammar the model is asked to produce and the
// parser reads back.
const (
	BlockSeparator  = "---"
	TitleEmphasis   = "**"
	MarkerSummary   = "📍"
	MarkerPage      = "📄"
	MarkerRelevance = "🎯"

	LabelPage      = "Seite:"
	LabelRelevance = "JuLi-Relevanz:"
)

// Alternative labels accepted when the model answers in English.
var (
	PageLabels      = []string{LabelPage, "Page:"}
	RelevanceLabels = []string{LabelRelevance, "JuLi relevance:"}
)

// TaxonomyTier lists the categories the model may assign for one priority.
type TaxonomyTier struct {
	Priority   Priority
	Heading    string
	Categories []string
}

// Taxonomy is the category list embedded in every analysis prompt.
var Taxonomy = []TaxonomyTier{
	{
		Priority:   PriorityHighest,
		Heading:    "🔥 HÖCHSTE PRIORITÄT",
		Categories: []string{"Kommunalpolitik", "Wirtschaft & Gewerbe", "Bildung", "Verkehr & Infrastruktur"},
	},
	{
		Priority:   PriorityHigh,
		Heading:    "⚡ HOHE PRIORITÄT",
		Categories: []string{"Digitalisierung & Innovation", "Umwelt & Nachhaltigkeit", "Bürgerbeteiligung & Demokratie", "Jugendthemen"},
	},
	{
		Priority:   PriorityStandard,
		Heading:    "📰 STANDARD",
		Categories: []string{"Kultur & Events", "Sport", "Soziales", "Sonstiges"},
	},
}
