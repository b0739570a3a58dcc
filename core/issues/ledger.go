package issues

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pindb/core/catalog"
	"pindb/core/scan"
	"pindb/core/site"
)

// Disposition is the outcome of reporting an issue.
type Disposition int

const (
	// AlreadyExists: the ledger already holds a record for this
	// (subject, issue) pair; nothing was changed.
	AlreadyExists Disposition = iota
	// Recorded: a new record was written.
	Recorded
	// WillFix: no record was written; the caller should still surface the
	// finding this run.
	WillFix
)

func (d Disposition) String() string {
	switch d {
	case AlreadyExists:
		return "exists"
	case Recorded:
		return "recorded"
	default:
		return "will-fix"
	}
}

// GameIssue tags a defect on a game entry.
type GameIssue string

const GameEmptyThemes GameIssue = "emptyThemes"

// TableIssue tags a defect on a table entry.
type TableIssue string

const TableMissingModFeature TableIssue = "missingModFeature"

// ResourceIssueTag tags a defect on a resource of any kind.
type ResourceIssueTag string

const ResourceVersionMismatch ResourceIssueTag = "versionMismatch"

// URLIssueTag tags a defect keyed by canonical URL rather than by a
// catalog entry.
type URLIssueTag string

const URLEntryNotFound URLIssueTag = "entryNotFound"

// ResourceIssue is a resource-keyed issue. The scanned version is carried
// for context only; ledger deduplication is on the tag alone.
type ResourceIssue struct {
	Tag            ResourceIssueTag
	ScannedVersion string
}

// VersionMismatch builds the issue raised when a site's version string
// disagrees with the stored one.
func VersionMismatch(scanned string) ResourceIssue {
	return ResourceIssue{Tag: ResourceVersionMismatch, ScannedVersion: scanned}
}

// URLIssue is a URL-keyed issue. The scanned snapshots are carried for
// triage context only; two entryNotFound issues for the same canonical URL
// are the same issue even if the scanned display name changed between runs.
type URLIssue struct {
	Tag    URLIssueTag
	Item   *scan.ListItem
	Detail *scan.DetailResult
}

// EntryNotFound builds the issue raised when a scanned URL has no catalog
// entry.
func EntryNotFound(item *scan.ListItem, detail *scan.DetailResult) URLIssue {
	return URLIssue{Tag: URLEntryNotFound, Item: item, Detail: detail}
}

// Record is the persisted metadata of one triaged issue.
type Record struct {
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

func (r Record) String() string {
	return fmt.Sprintf("Entry: %s %s", r.Date.Format("Jan 2, 2006"), r.Comment)
}

// CommentResolver supplies a triage comment when the caller did not. A
// false return means "no comment": the issue is not recorded and should be
// surfaced (WillFix). The interactive implementation lives in cmd; tests
// inject stubs.
type CommentResolver func() (string, bool)

// Ledger is the persisted, deduplicating record of previously triaged
// discrepancies. At most one record exists per (subject, issue tag);
// re-reporting is idempotent.
type Ledger struct {
	GameIssues     map[string]map[GameIssue]Record                         `json:"gameIssues"`
	TableIssues    map[string]map[TableIssue]Record                        `json:"tableIssues"`
	ResourceIssues map[catalog.Kind]map[string]map[ResourceIssueTag]Record `json:"resourceIssues"`
	URLIssues      map[catalog.Kind]map[string]map[URLIssueTag]Record      `json:"urlIssues"`

	// Resolve supplies comments for reports made without one; nil means
	// never record such reports.
	Resolve CommentResolver `json:"-"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		GameIssues:     make(map[string]map[GameIssue]Record),
		TableIssues:    make(map[string]map[TableIssue]Record),
		ResourceIssues: make(map[catalog.Kind]map[string]map[ResourceIssueTag]Record),
		URLIssues:      make(map[catalog.Kind]map[string]map[URLIssueTag]Record),
	}
}

// Load reads a ledger file. A missing file yields an empty ledger (first
// run); any other failure is returned and should be fatal to the invoking
// command.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read issue ledger %s: %w", path, err)
	}

	l := NewLedger()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("decode issue ledger %s: %w", path, err)
	}
	return l, nil
}

// Save atomically replaces the ledger file. There is no partial-write
// recovery; the whole document is rewritten.
func (l *Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save issue ledger %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save issue ledger %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save issue ledger %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save issue ledger %s: %w", path, err)
	}
	return nil
}

// CheckGame reports whether a record exists for (game, issue).
func (l *Ledger) CheckGame(gameID string, issue GameIssue) bool {
	_, ok := l.GameIssues[gameID][issue]
	return ok
}

// ReportGame records a game issue, idempotently.
func (l *Ledger) ReportGame(gameID string, issue GameIssue, comment string) Disposition {
	if l.CheckGame(gameID, issue) {
		return AlreadyExists
	}
	comment, ok := l.resolveComment(comment)
	if !ok {
		return WillFix
	}
	if l.GameIssues[gameID] == nil {
		l.GameIssues[gameID] = make(map[GameIssue]Record)
	}
	l.GameIssues[gameID][issue] = Record{Comment: comment, Date: time.Now()}
	return Recorded
}

// CheckTable reports whether a record exists for (table, issue).
func (l *Ledger) CheckTable(tableID string, issue TableIssue) bool {
	_, ok := l.TableIssues[tableID][issue]
	return ok
}

// ReportTable records a table issue, idempotently.
func (l *Ledger) ReportTable(tableID string, issue TableIssue, comment string) Disposition {
	if l.CheckTable(tableID, issue) {
		return AlreadyExists
	}
	comment, ok := l.resolveComment(comment)
	if !ok {
		return WillFix
	}
	if l.TableIssues[tableID] == nil {
		l.TableIssues[tableID] = make(map[TableIssue]Record)
	}
	l.TableIssues[tableID][issue] = Record{Comment: comment, Date: time.Now()}
	return Recorded
}

// CheckResource reports whether a record exists for (kind, resource id,
// issue tag).
func (l *Ledger) CheckResource(kind catalog.Kind, resourceID string, issue ResourceIssue) bool {
	_, ok := l.ResourceIssues[kind][resourceID][issue.Tag]
	return ok
}

// ReportResource records a resource issue, idempotently. Equality is on
// the issue tag alone; the payload of an existing record is never
// overwritten.
func (l *Ledger) ReportResource(kind catalog.Kind, resourceID string, issue ResourceIssue, comment string) Disposition {
	if l.CheckResource(kind, resourceID, issue) {
		return AlreadyExists
	}
	comment, ok := l.resolveComment(comment)
	if !ok {
		return WillFix
	}
	if l.ResourceIssues[kind] == nil {
		l.ResourceIssues[kind] = make(map[string]map[ResourceIssueTag]Record)
	}
	if l.ResourceIssues[kind][resourceID] == nil {
		l.ResourceIssues[kind][resourceID] = make(map[ResourceIssueTag]Record)
	}
	l.ResourceIssues[kind][resourceID][issue.Tag] = Record{Comment: comment, Date: time.Now()}
	return Recorded
}

// CheckURL reports whether a record exists for (kind, canonical URL,
// issue tag). The URL is canonicalized here so callers may pass any
// mirror form; a malformed URL is an error, never a fresh identity.
func (l *Ledger) CheckURL(kind catalog.Kind, rawURL string, issue URLIssue) (bool, error) {
	canon, err := site.Canonical(rawURL)
	if err != nil {
		return false, err
	}
	_, ok := l.URLIssues[kind][canon][issue.Tag]
	return ok, nil
}

// ReportURL records a URL issue, idempotently on the tag alone.
func (l *Ledger) ReportURL(kind catalog.Kind, rawURL string, issue URLIssue, comment string) (Disposition, error) {
	canon, err := site.Canonical(rawURL)
	if err != nil {
		return WillFix, err
	}
	if _, ok := l.URLIssues[kind][canon][issue.Tag]; ok {
		return AlreadyExists, nil
	}
	comment, ok := l.resolveComment(comment)
	if !ok {
		return WillFix, nil
	}
	if l.URLIssues[kind] == nil {
		l.URLIssues[kind] = make(map[string]map[URLIssueTag]Record)
	}
	if l.URLIssues[kind][canon] == nil {
		l.URLIssues[kind][canon] = make(map[URLIssueTag]Record)
	}
	l.URLIssues[kind][canon][issue.Tag] = Record{Comment: comment, Date: time.Now()}
	return Recorded, nil
}

func (l *Ledger) resolveComment(comment string) (string, bool) {
	if comment != "" {
		return comment, true
	}
	if l.Resolve == nil {
		return "", false
	}
	c, ok := l.Resolve()
	if !ok || c == "" {
		return "", false
	}
	return c, true
}
