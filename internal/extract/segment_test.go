package extract

import "testing"

func TestSegment_BlankLines(t *testing.T) {
	text := "Primer párrafo del plan.\n\nSegundo párrafo del plan."
	parts := Segment(text)
	if len(parts) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %v", len(parts), parts)
	}
	if parts[0] != "Primer párrafo del plan." {
		t.Errorf("unexpected first paragraph: %q", parts[0])
	}
}

func TestSegment_SentenceBoundaries(t *testing.T) {
	// Dense page without blank lines: split at ". " followed by a capital.
	text := "Crearemos un programa de empleo. Ampliaremos la fuerza pública con más recursos."
	parts := Segment(text)
	if len(parts) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(parts), parts)
	}
	if parts[0] != "Crearemos un programa de empleo." {
		t.Errorf("unexpected first sentence: %q", parts[0])
	}
}

func TestSegment_AbbreviationsDoNotSplit(t *testing.T) {
	// Lowercase after the period: not a sentence end.
	text := "Invertiremos el 1.5 por ciento del PIB. el resto se mantiene"
	parts := Segment(text)
	if len(parts) != 1 {
		t.Fatalf("expected 1 paragraph, got %d: %v", len(parts), parts)
	}
}

func TestSegment_AccentedCapitalStartsSentence(t *testing.T) {
	text := "Reformaremos el sistema tributario. Énfasis en la progresividad del impuesto."
	parts := Segment(text)
	if len(parts) != 2 {
		t.Fatalf("expected split before accented capital, got %d: %v", len(parts), parts)
	}
}

func TestSegment_Empty(t *testing.T) {
	if parts := Segment(""); len(parts) != 0 {
		t.Errorf("expected no paragraphs, got %v", parts)
	}
	if parts := Segment("\n\n\n"); len(parts) != 0 {
		t.Errorf("expected no paragraphs for whitespace, got %v", parts)
	}
}
