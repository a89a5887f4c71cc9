package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"NewspaperAnalyzer/internal/domain"
)

type scriptedGenerator struct {
	prompts []string
	answers map[int]string
	fail    map[int]error
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	call := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if err, ok := g.fail[call]; ok {
		return "", err
	}
	if answer, ok := g.answers[call]; ok {
		return answer, nil
	}
	return fmt.Sprintf("answer %d", call), nil
}

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}

func chunksOf(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{Index: i, Text: text}
	}
	return chunks
}

func TestAnalyzeConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{}
	pacer := &countingPacer{}
	client := NewClient(gen, pacer, nil)

	got := client.Analyze(context.Background(), chunksOf("eins", "zwei", "drei"), "Volksstimme", "2025-03-07")

	if got != "answer 0\n\nanswer 1\n\nanswer 2" {
		t.Fatalf("unexpected result %q", got)
	}
	if len(gen.prompts) != 3 {
		t.Fatalf("expected 3 model calls, got %d", len(gen.prompts))
	}
	if pacer.waits != 3 {
		t.Fatalf("expected pacer before each call, got %d waits", pacer.waits)
	}
}

func TestAnalyzeIsolatesFailures(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		fail:    map[int]error{1: errors.New("quota exceeded")},
		answers: map[int]string{2: "   "},
	}
	pacer := &countingPacer{}
	client := NewClient(gen, pacer, nil)

	got := client.Analyze(context.Background(), chunksOf("a", "b", "c", "d"), "MZ", "2025-03-07")

	parts := strings.Split(got, Separator)
	want := []string{"answer 0", ErrorMarker(1), ErrorMarker(2), "answer 3"}
	if len(parts) != len(want) {
		t.Fatalf("expected %d parts, got %d: %q", len(want), len(parts), got)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
	if pacer.waits != 4 {
		t.Fatalf("expected pacer consulted for every call, got %d", pacer.waits)
	}
	if ErrorMarker(1) != "❌ processing failed for segment 2" {
		t.Fatalf("unexpected marker %q", ErrorMarker(1))
	}
}

func TestAnalyzeWithoutChunks(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{}
	client := NewClient(gen, nil, nil)
	if got := client.Analyze(context.Background(), nil, "MZ", "2025-03-07"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("model must not be called")
	}
}

func TestBuildPromptEmbedsContext(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(domain.Chunk{Index: 1, Text: "=== PAGE 4 ===\nStadtrat tagt."}, 3, "Volksstimme", "2025-03-07")

	for _, want := range []string{
		"Quelle: Volksstimme",
		"Datum: 2025-03-07",
		"TEXT CHUNK 2/3:",
		"Stadtrat tagt.",
		"Kommunalpolitik",
		"Jugendthemen",
		"**[KATEGORIE] - Überschrift**",
		"📄 Seite:",
		"🎯 JuLi-Relevanz:",
		"\n---\n",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt misses %q", want)
		}
	}
}
