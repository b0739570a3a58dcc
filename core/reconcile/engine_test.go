package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pindb/core/catalog"
	"pindb/core/issues"
	"pindb/core/scan"
)

// stubClient returns canned bodies keyed by URL.
type stubClient struct {
	pages map[string]string
}

func (s *stubClient) Get(_ context.Context, url string) ([]byte, error) {
	return []byte(s.pages[url]), nil
}

func (s *stubClient) GetFresh(ctx context.Context, url string) ([]byte, error) {
	return s.Get(ctx, url)
}

// stubScanner serves one list page per kind and canned detail results.
type stubScanner struct {
	lists   map[catalog.Kind]*scan.ListResult
	details map[string]*scan.DetailResult
}

func (s *stubScanner) Sources(kind catalog.Kind) []string {
	if _, ok := s.lists[kind]; !ok {
		return nil
	}
	return []string{"https://vpuniverse.com/files/category/1-" + string(kind) + "/"}
}

func (s *stubScanner) PageURL(kind catalog.Kind, base string, page int) string {
	return base
}

func (s *stubScanner) ScanList(url string, content []byte, kind catalog.Kind) (*scan.ListResult, error) {
	return s.lists[kind], nil
}

func (s *stubScanner) ScanDetail(url string, content []byte, kind catalog.Kind) (*scan.DetailResult, error) {
	return s.details[url], nil
}

func testDatabase(t *testing.T) *catalog.Database {
	t.Helper()
	g := &catalog.Game{
		ID: "g1", Name: "Xenon", Manufacturer: catalog.Bally,
		Tables: []*catalog.Table{
			{ID: "t1", ResourceCommon: catalog.ResourceCommon{
				Game:    catalog.GameRef{ID: "g1", Name: "Xenon"},
				URLs:    []catalog.SourceURL{{URL: "https://vpuniverse.com/files/file/42-xyz/"}},
				Version: "1.0",
			}},
		},
	}
	db, err := catalog.Build([]*catalog.Game{g})
	require.NoError(t, err)
	return db
}

func testEngine(db *catalog.Database, ledger *issues.Ledger, scanner *stubScanner) *Engine {
	return &Engine{
		DB:      db,
		Ledger:  ledger,
		Client:  &stubClient{pages: map[string]string{}},
		Scanner: scanner,
		Log:     zap.NewNop(),
	}
}

func TestRunVersionMismatch(t *testing.T) {
	detailURL := "https://vpuniverse.com/files/file/42-xyz-v2/"
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{{URL: detailURL, Name: "Xenon"}}},
		},
		details: map[string]*scan.DetailResult{
			detailURL: {URL: detailURL, Name: "Xenon", Version: "v2.0"},
		},
	}
	e := testEngine(testDatabase(t), issues.NewLedger(), scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable, Follow: true})
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, VersionMismatch, f.Type)
	assert.Equal(t, "t1", f.ResourceID)
	assert.Equal(t, "Xenon", f.Game)
	assert.Equal(t, "1", f.Stored)
	assert.Equal(t, "2", f.Scanned)
	assert.Equal(t, "https://vpuniverse.com/files/file/42-any/", f.CanonicalURL)
}

func TestRunSharedURLReportsEveryMismatch(t *testing.T) {
	shared := "https://vpuniverse.com/files/file/42-xyz/"
	g := &catalog.Game{
		ID: "g1", Name: "Xenon", Manufacturer: catalog.Bally,
		Tables: []*catalog.Table{
			{ID: "t1", ResourceCommon: catalog.ResourceCommon{
				Game:    catalog.GameRef{ID: "g1", Name: "Xenon"},
				URLs:    []catalog.SourceURL{{URL: shared}},
				Version: "1.0",
			}},
			{ID: "t2", ResourceCommon: catalog.ResourceCommon{
				Game:    catalog.GameRef{ID: "g1", Name: "Xenon"},
				URLs:    []catalog.SourceURL{{URL: shared}},
				Version: "1.1",
			}},
		},
	}
	db, err := catalog.Build([]*catalog.Game{g})
	require.NoError(t, err)

	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{{URL: shared, Name: "Xenon"}}},
		},
		details: map[string]*scan.DetailResult{
			shared: {URL: shared, Name: "Xenon", Version: "v2.0"},
		},
	}
	e := testEngine(db, issues.NewLedger(), scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable, Follow: true})
	require.NoError(t, err)
	require.Len(t, findings, 2)

	ids := []string{findings[0].ResourceID, findings[1].ResourceID}
	assert.ElementsMatch(t, []string{"t1", "t2"}, ids)
	for _, f := range findings {
		assert.Equal(t, VersionMismatch, f.Type)
		assert.Equal(t, "2", f.Scanned)
	}
}

func TestRunSharedURLSuppressesPerResource(t *testing.T) {
	shared := "https://vpuniverse.com/files/file/42-xyz/"
	g := &catalog.Game{
		ID: "g1", Name: "Xenon", Manufacturer: catalog.Bally,
		Tables: []*catalog.Table{
			{ID: "t1", ResourceCommon: catalog.ResourceCommon{
				Game:    catalog.GameRef{ID: "g1", Name: "Xenon"},
				URLs:    []catalog.SourceURL{{URL: shared}},
				Version: "1.0",
			}},
			{ID: "t2", ResourceCommon: catalog.ResourceCommon{
				Game:    catalog.GameRef{ID: "g1", Name: "Xenon"},
				URLs:    []catalog.SourceURL{{URL: shared}},
				Version: "1.1",
			}},
		},
	}
	db, err := catalog.Build([]*catalog.Game{g})
	require.NoError(t, err)

	// t1's mismatch is already triaged; only t2's should surface
	ledger := issues.NewLedger()
	ledger.ReportResource(catalog.KindTable, "t1", issues.VersionMismatch("v2.0"), "tracked")

	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{{URL: shared, Name: "Xenon"}}},
		},
		details: map[string]*scan.DetailResult{
			shared: {URL: shared, Version: "v2.0"},
		},
	}
	e := testEngine(db, ledger, scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable, Follow: true})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "t2", findings[0].ResourceID)
}

func TestRunMatchingVersionIsQuiet(t *testing.T) {
	detailURL := "https://vpuniverse.com/files/file/42-xyz/"
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{{URL: detailURL, Name: "Xenon"}}},
		},
		details: map[string]*scan.DetailResult{
			// "v1.0" and "1.0" canonicalize to the same version
			detailURL: {URL: detailURL, Version: "v1.0"},
		},
	}
	e := testEngine(testDatabase(t), issues.NewLedger(), scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable, Follow: true})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRunNotFound(t *testing.T) {
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{
				{URL: "https://vpuniverse.com/files/file/999-unknown/", Name: "Unknown"},
			}},
		},
	}
	e := testEngine(testDatabase(t), issues.NewLedger(), scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, NotFound, findings[0].Type)
	assert.Equal(t, "https://vpuniverse.com/files/file/999-any/", findings[0].CanonicalURL)
}

func TestRunWithoutFollowSkipsVersionCheck(t *testing.T) {
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{
				{URL: "https://vpuniverse.com/files/file/42-xyz/", Name: "Xenon"},
			}},
		},
	}
	e := testEngine(testDatabase(t), issues.NewLedger(), scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRunSuppressesLedgeredIssues(t *testing.T) {
	ledger := issues.NewLedger()
	_, err := ledger.ReportURL(catalog.KindTable,
		"https://vpuniverse.com/files/file/999-unknown/", issues.EntryNotFound(nil, nil), "Obsolete")
	require.NoError(t, err)

	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{
				// different slug, same canonical identity
				{URL: "https://vpuniverse.com/files/file/999-renamed/", Name: "Unknown"},
			}},
		},
	}
	e := testEngine(testDatabase(t), ledger, scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRunRecordSuppressesAfterFirstReport(t *testing.T) {
	ledger := issues.NewLedger()
	ledger.Resolve = func() (string, bool) { return "tracked", true }

	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{
				{URL: "https://vpuniverse.com/files/file/999-unknown/", Name: "Unknown"},
			}},
		},
	}
	e := testEngine(testDatabase(t), ledger, scanner)
	opts := Options{Kind: catalog.KindTable, Record: true}

	// first run records the issue and does not surface it
	findings, err := e.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, findings)

	// second run finds it already triaged
	findings, err = e.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, findings)

	known, err := ledger.CheckURL(catalog.KindTable,
		"https://vpuniverse.com/files/file/999-unknown/", issues.EntryNotFound(nil, nil))
	require.NoError(t, err)
	assert.True(t, known)
}

func TestRunRecordWillFixSurfaces(t *testing.T) {
	ledger := issues.NewLedger()
	// no resolver and no comment: reporting declines, finding surfaces
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{
				{URL: "https://vpuniverse.com/files/file/999-unknown/", Name: "Unknown"},
			}},
		},
	}
	e := testEngine(testDatabase(t), ledger, scanner)

	findings, err := e.Run(context.Background(), Options{Kind: catalog.KindTable, Record: true})
	require.NoError(t, err)
	assert.Len(t, findings, 1)
}

func TestRunMalformedScannedURL(t *testing.T) {
	scanner := &stubScanner{
		lists: map[catalog.Kind]*scan.ListResult{
			catalog.KindTable: {Items: []scan.ListItem{{URL: "not-a-url", Name: "Bad"}}},
		},
	}
	e := testEngine(testDatabase(t), issues.NewLedger(), scanner)

	_, err := e.Run(context.Background(), Options{Kind: catalog.KindTable})
	assert.Error(t, err)
}
