package corpus

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is one page of extracted source text with its provenance.
type Page struct {
	Text   string
	Number int
	Source string
}

// ExtractPDFPages returns the whitespace-normalized text of each
// non-empty page of a PDF. Pages that cannot be read are skipped rather
// than failing the whole document.
func ExtractPDFPages(path string) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	source := filepath.Base(path)
	var pages []Page

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}
		pages = append(pages, Page{
			Text:   text,
			Number: i,
			Source: source,
		})
	}

	return pages, nil
}
