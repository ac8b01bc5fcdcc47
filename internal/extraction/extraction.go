package extraction

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// Extractor pulls the text of a single element out of rendered HTML
type Extractor struct {
	ClassSelector string
}

// NewExtractor creates a new extractor for one class name
func NewExtractor(classSelector string) *Extractor {
	return &Extractor{
		ClassSelector: classSelector,
	}
}

// Extract returns the trimmed text of the first element carrying the class
func (e *Extractor) Extract(doc *goquery.Document) (string, error) {
	sel := First(doc, e.ClassSelector)
	if sel.Length() == 0 {
		return "", scrapeerrors.NewNotFound(documentURL(doc), e.ClassSelector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

// ExtractText parses html and returns the trimmed text of the first element
// whose class list contains classSelector
func ExtractText(html, classSelector string) (string, error) {
	doc, err := Parse(html)
	if err != nil {
		return "", err
	}
	return NewExtractor(classSelector).Extract(doc)
}

// Parse builds a goquery document from serialised HTML
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapeerrors.NewParse("", "failed to parse HTML content", err)
	}
	return doc, nil
}

// First returns the first element in document order carrying the class
func First(doc *goquery.Document, classSelector string) *goquery.Selection {
	return doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(classSelector)
	}).First()
}

// HasElement reports whether the document contains an element with the class
func HasElement(doc *goquery.Document, classSelector string) bool {
	return First(doc, classSelector).Length() > 0
}

// ClassQuery returns a CSS attribute selector matching the class token
// exactly, safe for class names that are not valid CSS identifiers
func ClassQuery(classSelector string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(classSelector)
	return fmt.Sprintf(`[class~="%s"]`, escaped)
}

func documentURL(doc *goquery.Document) string {
	if doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}
