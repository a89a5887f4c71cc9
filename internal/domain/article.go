package domain

// PageNotDetected is stored when the model output carries no page reference.
const PageNotDetected = "not detected"

// DefaultCategory is used when the article heading has no category prefix.
const DefaultCategory = "General"

// Article is one structured record extracted from the model output.
type Article struct {
	Title     string
	Category  string
	Priority  Priority
	Summary   string
	Page      string
	Relevance string
}

// Chunk is a bounded, paragraph-aligned piece of a document submitted to the model.
type Chunk struct {
	Index int
	Text  string
}

// CountByPriority returns how many articles carry the given priority.
func CountByPriority(articles []Article, p Priority) int {
	n := 0
	for _, a := range articles {
		if a.Priority == p {
			n++
		}
	}
	return n
}
