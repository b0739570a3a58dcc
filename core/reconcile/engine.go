package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pindb/core/catalog"
	"pindb/core/issues"
	"pindb/core/scan"
	"pindb/core/site"
)

// Getter is the page source the engine pulls list and detail pages
// through. Satisfied by fetch.Client; tests provide canned bodies.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
	GetFresh(ctx context.Context, url string) ([]byte, error)
}

// Options select what one reconciliation run covers.
type Options struct {
	// Kind limits the run to one resource kind; empty means every kind the
	// scanner has sources for.
	Kind catalog.Kind
	// Follow fetches detail pages to compare versions and to enrich
	// not-found findings.
	Follow bool
	// Record offers each finding to the ledger; only findings the ledger
	// answers WillFix for are surfaced.
	Record bool
	// Pages caps how many list pages per source are scanned; 0 means all
	// pages the site advertises.
	Pages int
	// StartPage is the first list page to scan (1-based).
	StartPage int
	// FreshLists bypasses the page cache for list pages, so a run sees
	// files uploaded since the last crawl.
	FreshLists bool
}

// FindingType classifies a discrepancy.
type FindingType string

const (
	// NotFound: the site hosts a file no catalog entry references.
	NotFound FindingType = "not_found"
	// VersionMismatch: the catalog entry and the site disagree on the
	// file's version.
	VersionMismatch FindingType = "version_mismatch"
)

// Finding is one discrepancy between the catalog and a scanned site.
type Finding struct {
	Type         FindingType
	Kind         catalog.Kind
	CanonicalURL string

	// Set for version mismatches.
	ResourceID string
	Game       string
	Stored     string
	Scanned    string

	// Scanned snapshots, for triage context.
	Item   scan.ListItem
	Detail *scan.DetailResult
}

// Describe renders the finding for console output.
func (f Finding) Describe() string {
	switch f.Type {
	case VersionMismatch:
		return fmt.Sprintf("version mismatch: %s %q (%s) has %q, site has %q: %s",
			f.Kind, f.Game, f.ResourceID, f.Stored, f.Scanned, f.CanonicalURL)
	default:
		name := f.Item.Name
		if f.Detail != nil && f.Detail.Name != "" {
			name = f.Detail.Name
		}
		return fmt.Sprintf("not found: %s %q: %s", f.Kind, name, f.CanonicalURL)
	}
}

// Engine reconciles the catalog against a scanned site. It never mutates
// the catalog; output is findings (and, with Options.Record, ledger
// entries).
type Engine struct {
	DB      *catalog.Database
	Ledger  *issues.Ledger
	Client  Getter
	Scanner scan.Scanner
	Log     *zap.Logger
}

// Run scans every selected source and returns the surfaced findings.
func (e *Engine) Run(ctx context.Context, opts Options) ([]Finding, error) {
	kinds := catalog.ResourceKinds
	if opts.Kind != "" {
		kinds = []catalog.Kind{opts.Kind}
	}

	var findings []Finding
	for _, kind := range kinds {
		for _, base := range e.Scanner.Sources(kind) {
			fs, err := e.runSource(ctx, kind, base, opts)
			if err != nil {
				return findings, err
			}
			findings = append(findings, fs...)
		}
	}
	return findings, nil
}

func (e *Engine) runSource(ctx context.Context, kind catalog.Kind, base string, opts Options) ([]Finding, error) {
	page := opts.StartPage
	if page < 1 {
		page = 1
	}
	last := 0 // unknown until the first list page reports it
	scanned := 0

	var findings []Finding
	for {
		url := e.Scanner.PageURL(kind, base, page)
		e.Log.Info("scanning list page",
			zap.String("kind", string(kind)),
			zap.String("url", url),
			zap.Int("page", page))

		content, err := e.getList(ctx, url, opts)
		if err != nil {
			return findings, err
		}
		list, err := e.Scanner.ScanList(url, content, kind)
		if err != nil {
			return findings, fmt.Errorf("scan %s: %w", url, err)
		}
		if list.Pages > 0 {
			last = list.Pages
		}

		for _, item := range list.Items {
			fs, err := e.checkItem(ctx, kind, item, opts)
			if err != nil {
				return findings, err
			}
			findings = append(findings, fs...)
		}

		scanned++
		page++
		if opts.Pages > 0 && scanned >= opts.Pages {
			break
		}
		if last > 0 && page > last {
			break
		}
		if last == 0 {
			break
		}
	}
	return findings, nil
}

func (e *Engine) getList(ctx context.Context, url string, opts Options) ([]byte, error) {
	if opts.FreshLists {
		return e.Client.GetFresh(ctx, url)
	}
	return e.Client.Get(ctx, url)
}

// checkItem reconciles one scanned list entry against the index. One
// canonical URL may belong to several resources, and each mismatched
// resource yields its own finding; an empty result means the entry is
// consistent or its issues are already triaged.
func (e *Engine) checkItem(ctx context.Context, kind catalog.Kind, item scan.ListItem, opts Options) ([]Finding, error) {
	canon, err := site.Canonical(item.URL)
	if err != nil {
		return nil, err
	}

	matches := e.DB.Kind(kind).ByURL[canon]
	if len(matches) == 0 {
		return e.notFound(ctx, kind, canon, item, opts)
	}
	if !opts.Follow {
		return nil, nil
	}
	return e.compareVersions(ctx, kind, canon, item, matches, opts)
}

func (e *Engine) notFound(ctx context.Context, kind catalog.Kind, canon string, item scan.ListItem, opts Options) ([]Finding, error) {
	f := Finding{Type: NotFound, Kind: kind, CanonicalURL: canon, Item: item}
	if opts.Follow {
		detail, err := e.detail(ctx, kind, item.URL)
		if err != nil {
			return nil, err
		}
		f.Detail = detail
	}

	issue := issues.EntryNotFound(&f.Item, f.Detail)
	known, err := e.Ledger.CheckURL(kind, canon, issue)
	if err != nil {
		return nil, err
	}
	if known {
		e.Log.Debug("suppressed known issue", zap.String("url", canon))
		return nil, nil
	}
	if opts.Record {
		disp, err := e.Ledger.ReportURL(kind, canon, issue, "")
		if err != nil {
			return nil, err
		}
		if disp != issues.WillFix {
			return nil, nil
		}
	}
	return []Finding{f}, nil
}

// compareVersions checks every resource matched at the canonical URL; a
// shared URL can disagree with several entries at once, and each gets its
// own finding and its own ledger record.
func (e *Engine) compareVersions(ctx context.Context, kind catalog.Kind, canon string, item scan.ListItem, matches []catalog.Resource, opts Options) ([]Finding, error) {
	detail, err := e.detail(ctx, kind, item.URL)
	if err != nil {
		return nil, err
	}
	if detail == nil || detail.Version == "" {
		return nil, nil
	}
	scanned := catalog.CanonicalVersion(detail.Version)

	var findings []Finding
	for _, r := range matches {
		common := r.Common()
		if catalog.CanonicalVersion(common.Version) == scanned {
			continue
		}

		issue := issues.VersionMismatch(detail.Version)
		if e.Ledger.CheckResource(kind, r.ResourceID(), issue) {
			e.Log.Debug("suppressed known issue",
				zap.String("id", r.ResourceID()),
				zap.String("url", canon))
			continue
		}
		if opts.Record {
			if e.Ledger.ReportResource(kind, r.ResourceID(), issue, "") != issues.WillFix {
				continue
			}
		}
		findings = append(findings, Finding{
			Type:         VersionMismatch,
			Kind:         kind,
			CanonicalURL: canon,
			ResourceID:   r.ResourceID(),
			Game:         common.Game.Name,
			Stored:       catalog.CanonicalVersion(common.Version),
			Scanned:      scanned,
			Item:         item,
			Detail:       detail,
		})
	}
	return findings, nil
}

func (e *Engine) detail(ctx context.Context, kind catalog.Kind, url string) (*scan.DetailResult, error) {
	content, err := e.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	detail, err := e.Scanner.ScanDetail(url, content, kind)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", url, err)
	}
	if detail == nil {
		e.Log.Warn("unparseable detail page", zap.String("url", url))
	}
	return detail, nil
}
