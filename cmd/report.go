package cmd

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pindb/core/catalog"
	"pindb/core/fetch"
	"pindb/core/reconcile"
	"pindb/core/site"
)

var reportRecord bool

// The report sweep covers every category the two sites host; only tables
// are worth the detail-page cost of version comparison.
var reportScans = []struct {
	Site   site.Site
	Kind   catalog.Kind
	Follow bool
}{
	{site.VPUniverse, catalog.KindTable, true},
	{site.VPForums, catalog.KindTable, true},
	{site.VPUniverse, catalog.KindB2S, false},
	{site.VPForums, catalog.KindB2S, false},
	{site.VPUniverse, catalog.KindROM, false},
	{site.VPForums, catalog.KindROM, false},
	{site.VPUniverse, catalog.KindPupPack, false},
	{site.VPUniverse, catalog.KindAltColor, false},
	{site.VPUniverse, catalog.KindAltSound, false},
	{site.VPUniverse, catalog.KindPOV, false},
	{site.VPUniverse, catalog.KindWheelArt, false},
	{site.VPForums, catalog.KindWheelArt, false},
	{site.VPUniverse, catalog.KindTopper, false},
	{site.VPForums, catalog.KindTopper, false},
	{site.VPUniverse, catalog.KindMediaPack, false},
	{site.VPForums, catalog.KindMediaPack, false},
	{site.VPUniverse, catalog.KindRule, false},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the missing-resource report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		ledger, err := openLedger(cfg, false)
		if err != nil {
			return err
		}

		fetchCfg := cfg.Fetch
		fetchCfg.CacheDir = cfg.Report.CacheDir
		client := fetch.NewClient(fetchCfg, l)

		ctx := context.Background()
		var findings []reconcile.Finding
		for _, s := range reportScans {
			scanner, err := scannerFor(s.Site)
			if err != nil {
				return err
			}
			l.Info("report scan",
				zap.String("site", string(s.Site)),
				zap.String("kind", string(s.Kind)))

			engine := &reconcile.Engine{
				DB:      db,
				Ledger:  ledger,
				Client:  client,
				Scanner: scanner,
				Log:     l,
			}
			fs, err := engine.Run(ctx, reconcile.Options{
				Kind:       s.Kind,
				Follow:     s.Follow,
				Record:     reportRecord,
				FreshLists: true,
			})
			if err != nil {
				return err
			}
			findings = append(findings, fs...)
		}

		printSummary(findings)

		if len(findings) > 0 {
			if err := writeReport(cfg.Report.Output, findings); err != nil {
				return err
			}
			l.Info("report written",
				zap.String("output", cfg.Report.Output),
				zap.Int("findings", len(findings)))
		}
		if reportRecord {
			return ledger.Save(cfg.Issues.Path)
		}
		return nil
	},
}

// printSummary renders a per-site/kind finding count table on the console.
func printSummary(findings []reconcile.Finding) {
	type key struct {
		Site site.Site
		Kind catalog.Kind
	}
	counts := make(map[key]int)
	for _, f := range findings {
		counts[key{site.Of(f.CanonicalURL), f.Kind}]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Site", "Kind", "Findings"})
	for _, s := range reportScans {
		if n := counts[key{s.Site, s.Kind}]; n > 0 {
			t.AppendRow(table.Row{s.Site, s.Kind, n})
		}
	}
	t.AppendFooter(table.Row{"", "Total", len(findings)})
	t.Render()
}

const reportHeader = `<script src="https://code.jquery.com/jquery-3.7.1.min.js"></script>
<script src="https://cdn.datatables.net/2.3.0/js/dataTables.min.js"></script>
<link href="https://cdn.datatables.net/2.3.0/css/dataTables.dataTables.min.css" rel="stylesheet"></link>
`

const reportFooter = `</table>
<script>
$("#report").DataTable({
    paging:   false,
    info:     false,
    searching: true,
    order: [],
});
</script>
`

// writeReport emits the findings as a sortable standalone HTML table.
func writeReport(path string, findings []reconcile.Finding) error {
	var b strings.Builder
	b.WriteString(reportHeader)
	b.WriteString(`<table id="report" class="display">
<thead>
    <tr>
        <th>URL</th>
        <th>Site</th>
        <th>Kind</th>
        <th>Name</th>
        <th>Issue</th>
    </tr>
</thead>
`)
	for _, f := range findings {
		name := f.Item.Name
		if f.Detail != nil && f.Detail.Name != "" {
			name = f.Detail.Name
		}
		issue := "missing"
		if f.Type == reconcile.VersionMismatch {
			issue = fmt.Sprintf("version mismatch: %s vs %s", f.Stored, f.Scanned)
		}
		fmt.Fprintf(&b, `<tr>
    <td><a href="%s">%s</a></td>
    <td>%s</td>
    <td>%s</td>
    <td>%s</td>
    <td>%s</td>
</tr>
`,
			f.CanonicalURL, html.EscapeString(f.CanonicalURL),
			site.Of(f.CanonicalURL), f.Kind,
			html.EscapeString(name), html.EscapeString(issue))
	}
	b.WriteString(reportFooter)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func init() {
	reportCmd.Flags().BoolVar(&reportRecord, "record", false, "Record findings in the issue ledger")
	RootCmd.AddCommand(reportCmd)
}
