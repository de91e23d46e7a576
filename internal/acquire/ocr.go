package acquire

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// OCREngine recognizes text in a rendered page image. Implementations must be
// safe for concurrent use.
type OCREngine interface {
	Recognize(png []byte) (string, error)
	Close() error
}

// TesseractEngine wraps a pool of gosseract clients. A single client is not
// safe for concurrent use, so each recognition checks one out of a channel.
type TesseractEngine struct {
	clients chan *gosseract.Client
	size    int

	closeOnce sync.Once
	closeErr  error
}

// NewTesseractEngine builds the client pool. languages uses the tesseract
// convention ("spa+eng"). Fails up front when the native library or language
// data is missing, so degraded runs are decided before any document opens.
func NewTesseractEngine(languages string, poolSize int) (*TesseractEngine, error) {
	if poolSize <= 0 {
		poolSize = 1
	}
	langs := strings.Split(languages, "+")

	e := &TesseractEngine{
		clients: make(chan *gosseract.Client, poolSize),
		size:    poolSize,
	}
	for i := 0; i < poolSize; i++ {
		client := gosseract.NewClient()
		if err := client.SetLanguage(langs...); err != nil {
			client.Close()
			e.Close()
			return nil, fmt.Errorf("tesseract language %q: %w", languages, err)
		}
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			client.Close()
			e.Close()
			return nil, fmt.Errorf("tesseract page seg mode: %w", err)
		}
		e.clients <- client
	}
	return e, nil
}

// Recognize runs OCR over a PNG-encoded page image.
func (e *TesseractEngine) Recognize(png []byte) (string, error) {
	client := <-e.clients
	defer func() { e.clients <- client }()

	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// Close releases every pooled client.
func (e *TesseractEngine) Close() error {
	e.closeOnce.Do(func() {
		pooled := len(e.clients)
		for i := 0; i < pooled; i++ {
			client := <-e.clients
			if err := client.Close(); err != nil && e.closeErr == nil {
				e.closeErr = err
			}
		}
	})
	return e.closeErr
}
