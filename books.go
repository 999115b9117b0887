package main

import "github.com/google/uuid"

// Book is the final unit handed to the UI/export layers: the OCR-derived
// fields plus whatever a catalog lookup resolved.  PreliminaryTitle always
// keeps what we read off the spine, even after a match is chosen; BookTitle
// only ever holds a catalog title.
type Book struct {
	ID               string          `json:"id"`
	RawOCR           string          `json:"raw_ocr"`
	PreliminaryTitle string          `json:"preliminary_title"`
	BookTitle        string          `json:"booktitle"`
	Author           string          `json:"author"`
	ISBN             string          `json:"isbn_analog"`
	ISBNDigital      string          `json:"isbn_digital"`
	Cover            string          `json:"cover"`
	Confidence       Confidence      `json:"confidence"`
	Candidates       []CatalogRecord `json:"candidates"`
}

// IDs are unique per book and stable for the session, nothing more.
func newBookID() string {
	return uuid.NewString()
}
