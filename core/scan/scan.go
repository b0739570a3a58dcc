// Package scan defines the boundary between the reconciliation engine and
// the site scanners. The engine only ever sees the structured results
// defined here, never page markup.
package scan

import "pindb/core/catalog"

// ListItem is one entry scraped from a site's category list page.
type ListItem struct {
	URL     string `json:"url"`
	Name    string `json:"name"`
	Author  string `json:"author,omitempty"`
	Version string `json:"version,omitempty"`
}

// ListResult is a parsed category list page.
type ListResult struct {
	// Pages is the total page count advertised by the site, 0 if the page
	// does not expose one.
	Pages int
	Items []ListItem
}

// DetailResult is a parsed resource detail page: the site's authoritative
// metadata for a single file.
type DetailResult struct {
	URL      string   `json:"url"`
	Name     string   `json:"name,omitempty"`
	Author   string   `json:"author,omitempty"`
	Version  string   `json:"version,omitempty"`
	IPDBURL  string   `json:"ipdbUrl,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Sources enumerates a site's category list pages.
type Sources interface {
	// Sources returns the category root URLs for a kind; empty when the
	// site hosts nothing of that kind.
	Sources(kind catalog.Kind) []string
	// PageURL derives the URL of page n (1-based) of a category root.
	PageURL(kind catalog.Kind, base string, page int) string
}

// Lister parses category list pages.
type Lister interface {
	ScanList(url string, content []byte, kind catalog.Kind) (*ListResult, error)
}

// Detailer parses resource detail pages. A nil result with nil error means
// the page had none of the expected structure (deleted file, error page).
type Detailer interface {
	ScanDetail(url string, content []byte, kind catalog.Kind) (*DetailResult, error)
}

// Scanner is a full site scanner.
type Scanner interface {
	Sources
	Lister
	Detailer
}
