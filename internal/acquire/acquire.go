// Package acquire turns platform PDFs into normalized page text. The routing
// chain is direct extraction, an independent parser for corrupt text layers,
// and OCR as the last resort, with hand-curated pre-extracted text always
// winning when present.
package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ojocivico/planscore/internal/cache"
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// Acquirer resolves one PDF path into a Document.
type Acquirer struct {
	cat        *catalog.Catalog
	preTextDir string
	ocrDPI     float64
	docs       *cache.DocumentCache
	ocr        OCREngine
	log        *zap.Logger
}

// New creates an Acquirer. docs and ocr may be nil: without a cache every
// run re-extracts, and without OCR corrupt pages degrade to whatever text
// the parsers produce, with a warning.
func New(cat *catalog.Catalog, cfg *model.Config, docs *cache.DocumentCache, ocr OCREngine, log *zap.Logger) *Acquirer {
	return &Acquirer{
		cat:        cat,
		preTextDir: cfg.Input.PreTextDir,
		ocrDPI:     float64(cfg.OCR.DPI),
		docs:       docs,
		ocr:        ocr,
		log:        log,
	}
}

// DocumentID derives the stable document id from a file path: the base name
// without extension, lowercased.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Acquire extracts the document at path, consulting the pre-extracted text
// directory and the extraction cache before touching the PDF.
func (a *Acquirer) Acquire(ctx context.Context, path string) (*model.Document, error) {
	id := DocumentID(path)

	if pre := PreTextPath(a.preTextDir, id); pre != "" {
		if pages, err := LoadPreText(pre, a.cat); err == nil && len(pages) > 0 {
			a.log.Info("using pre-extracted text",
				zap.String("document", id),
				zap.Int("pages", len(pages)))
			return &model.Document{
				ID:        id,
				Path:      path,
				Pages:     pages,
				Route:     model.RoutePreText,
				PageCount: len(pages),
			}, nil
		} else if err != nil && !os.IsNotExist(err) {
			a.log.Warn("pre-extracted text unreadable, extracting from pdf",
				zap.String("document", id), zap.Error(err))
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	key := cache.ExtractionKey(path, info.Size(), info.ModTime(), a.cat.Version)
	if a.docs != nil {
		if doc, ok := a.docs.Get(key); ok {
			a.log.Debug("extraction cache hit", zap.String("document", id))
			return doc, nil
		}
	}

	doc, err := a.extract(ctx, id, path)
	if err != nil {
		return nil, err
	}
	if a.docs != nil {
		if cerr := a.docs.Set(key, doc); cerr != nil {
			a.log.Warn("extraction cache write failed",
				zap.String("document", id), zap.Error(cerr))
		}
	}
	return doc, nil
}

func (a *Acquirer) extract(ctx context.Context, id, path string) (*model.Document, error) {
	reader, err := openFitz(path)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}
	defer reader.close()

	total := reader.pageCount()
	ratio := a.sampleRatio(reader, total)
	corrupt := ratio > a.cat.Thresholds.CorruptRatio

	doc := &model.Document{
		ID:        id,
		Path:      path,
		Route:     model.RouteDirect,
		Corrupt:   corrupt,
		Ratio:     ratio,
		PageCount: total,
	}

	if ratio > a.cat.Thresholds.OCRRouteRatio {
		a.log.Warn("corrupt text layer detected",
			zap.String("document", id),
			zap.Float64("ratio", ratio))
		if a.tryFallback(path, doc) {
			return doc, nil
		}
		if a.ocr != nil {
			return doc, a.ocrAllPages(ctx, reader, doc)
		}
		a.log.Warn("ocr unavailable, keeping corrupt direct text",
			zap.String("document", id))
	}

	return doc, a.directPages(ctx, reader, doc)
}

// sampleRatio measures corruption over the leading pages. The sample is
// enough to classify the text layer without reading the whole file twice.
func (a *Acquirer) sampleRatio(reader *fitzReader, total int) float64 {
	n := a.cat.Thresholds.SamplePages
	if n > total {
		n = total
	}
	var sample strings.Builder
	for i := 0; i < n; i++ {
		text, err := reader.pageText(i)
		if err != nil {
			continue
		}
		sample.WriteString(text)
	}
	return CorruptRatio(sample.String(), a.cat)
}

func (a *Acquirer) tryFallback(path string, doc *model.Document) bool {
	raw, err := fallbackPages(path)
	if err != nil {
		a.log.Warn("fallback parser failed",
			zap.String("document", doc.ID), zap.Error(err))
		return false
	}

	var pages []model.Page
	for i, text := range raw {
		normalized := NormalizeKeepParagraphs(text, a.cat)
		if normalized == "" {
			continue
		}
		pages = append(pages, model.Page{Number: i + 1, Text: normalized, Route: model.RouteFallback})
	}
	if len(pages) == 0 {
		return false
	}

	doc.Pages = pages
	doc.Route = model.RouteFallback
	a.log.Info("fallback extraction complete",
		zap.String("document", doc.ID),
		zap.Int("pages", len(pages)))
	return true
}

func (a *Acquirer) ocrAllPages(ctx context.Context, reader *fitzReader, doc *model.Document) error {
	doc.Route = model.RouteOCR
	for i := 0; i < doc.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := a.ocrPage(reader, i)
		if err != nil {
			a.log.Warn("ocr page failed",
				zap.String("document", doc.ID),
				zap.Int("page", i+1), zap.Error(err))
			continue
		}
		doc.OCRPages++
		normalized := NormalizeKeepParagraphs(text, a.cat)
		if normalized == "" {
			continue
		}
		doc.Pages = append(doc.Pages, model.Page{Number: i + 1, Text: normalized, Route: model.RouteOCR})
	}
	a.log.Info("ocr extraction complete",
		zap.String("document", doc.ID),
		zap.Int("ocr_pages", doc.OCRPages),
		zap.Int("total_pages", doc.PageCount))
	return nil
}

// directPages reads the text layer page by page, re-running the corruption
// check per page so a handful of bad pages can route through OCR without
// paying OCR cost for the whole document.
func (a *Acquirer) directPages(ctx context.Context, reader *fitzReader, doc *model.Document) error {
	for i := 0; i < doc.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		route := model.RouteDirect
		text, err := reader.pageText(i)
		if err != nil {
			a.log.Warn("page text failed",
				zap.String("document", doc.ID),
				zap.Int("page", i+1), zap.Error(err))
			continue
		}

		if pageCorrupt, _ := IsCorrupt(text, a.cat); pageCorrupt && a.ocr != nil {
			if ocrText, oerr := a.ocrPage(reader, i); oerr == nil {
				text = ocrText
				route = model.RouteOCR
				doc.OCRPages++
			} else {
				a.log.Warn("page ocr failed, keeping direct text",
					zap.String("document", doc.ID),
					zap.Int("page", i+1), zap.Error(oerr))
			}
		}

		normalized := NormalizeKeepParagraphs(text, a.cat)
		if normalized == "" {
			continue
		}
		doc.Pages = append(doc.Pages, model.Page{Number: i + 1, Text: normalized, Route: route})
	}

	if doc.OCRPages > 0 {
		a.log.Info("mixed extraction complete",
			zap.String("document", doc.ID),
			zap.Int("ocr_pages", doc.OCRPages),
			zap.Int("total_pages", doc.PageCount))
	}
	return nil
}

func (a *Acquirer) ocrPage(reader *fitzReader, i int) (string, error) {
	img, err := reader.renderPNG(i, a.ocrDPI)
	if err != nil {
		return "", err
	}
	return a.ocr.Recognize(img)
}
