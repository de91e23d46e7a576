package acquire

import (
	"strings"
	"testing"

	"github.com/ojocivico/planscore/internal/catalog"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestNormalize_StripsControlChars(t *testing.T) {
	cat := loadCatalog(t)

	got := Normalize("hola\x00 mundo\x0b de\x7f verdad", cat)
	if got != "hola mundo de verdad" {
		t.Errorf("unexpected normalization: %q", got)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	cat := loadCatalog(t)

	got := Normalize("  plan   de\t\tgobierno \n 2026  ", cat)
	if got != "plan de gobierno 2026" {
		t.Errorf("unexpected normalization: %q", got)
	}
}

func TestNormalize_OCRCorrections(t *testing.T) {
	cat := loadCatalog(t)

	// "Ia" as a standalone word is the classic l/I OCR confusion.
	got := Normalize("Ia reforma de Ia caja", cat)
	if got != "la reforma de la caja" {
		t.Errorf("expected Ia correction, got %q", got)
	}

	// Inside a word it must stay untouched.
	got = Normalize("Colombia exporta", cat)
	if got != "Colombia exporta" {
		t.Errorf("correction must respect word boundaries, got %q", got)
	}
}

func TestNormalizeKeepParagraphs(t *testing.T) {
	cat := loadCatalog(t)

	got := NormalizeKeepParagraphs("primer  párrafo\n\nsegundo   párrafo\n\n\n", cat)
	want := "primer párrafo\n\nsegundo párrafo"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCorruptRatio(t *testing.T) {
	cat := loadCatalog(t)

	if ratio := CorruptRatio("texto normal en español", cat); ratio != 0 {
		t.Errorf("clean text must score 0, got %v", ratio)
	}
	if ratio := CorruptRatio("", cat); ratio != 0 {
		t.Errorf("empty text must score 0, got %v", ratio)
	}

	// Half the runes from the corrupt glyph set.
	corrupted := "ӌǢӌǢ" + "abcd"
	if ratio := CorruptRatio(corrupted, cat); ratio != 0.5 {
		t.Errorf("expected ratio 0.5, got %v", ratio)
	}
}

func TestIsCorrupt_Threshold(t *testing.T) {
	cat := loadCatalog(t)

	clean := strings.Repeat("texto limpio ", 20)
	if corrupt, _ := IsCorrupt(clean, cat); corrupt {
		t.Error("clean page flagged as corrupt")
	}

	// Well above the per-page threshold.
	dirty := strings.Repeat("Ǣ", 10) + strings.Repeat("a", 90)
	if corrupt, ratio := IsCorrupt(dirty, cat); !corrupt {
		t.Errorf("expected corrupt verdict at ratio %v", ratio)
	}
}

func TestParsePreText(t *testing.T) {
	cat := loadCatalog(t)

	content := "preámbulo ignorado\n" +
		"--- Página 1 ---\nTexto de la primera página.\n" +
		"--- Página 2 ---\n\n" +
		"--- Página 3 ---\nTexto de la tercera.\n"
	pages := ParsePreText(content, cat)

	// Page 2 is empty and dropped; declared numbers survive.
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 3 {
		t.Errorf("unexpected page numbers: %d, %d", pages[0].Number, pages[1].Number)
	}
	if pages[0].Text != "Texto de la primera página." {
		t.Errorf("unexpected page text: %q", pages[0].Text)
	}
	if pages[0].Route != "pre_text" {
		t.Errorf("unexpected route: %s", pages[0].Route)
	}
}

func TestParsePreText_NoMarkers(t *testing.T) {
	cat := loadCatalog(t)
	if pages := ParsePreText("texto sin marcadores de página", cat); pages != nil {
		t.Errorf("expected nil for unmarked content, got %v", pages)
	}
}

func TestPreTextPath(t *testing.T) {
	if got := PreTextPath("", "plan"); got != "" {
		t.Errorf("expected empty path without a directory, got %q", got)
	}
	if got := PreTextPath("/data", "plan_pln"); !strings.HasSuffix(got, "plan_pln_ocr_text.txt") {
		t.Errorf("unexpected pre-text path %q", got)
	}
}

func TestDocumentID(t *testing.T) {
	if got := DocumentID("/planes/Plan_PLN_2026.pdf"); got != "plan_pln_2026" {
		t.Errorf("expected lowercased basename without extension, got %q", got)
	}
}
