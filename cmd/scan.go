package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pindb/core/catalog"
	"pindb/core/fetch"
	"pindb/core/reconcile"
)

var (
	scanKind        string
	scanSite        string
	scanPage        int
	scanPages       int
	scanFollow      bool
	scanRecord      bool
	scanInteractive bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan file-sharing sites",
}

// scanDownloadCmd walks list pages (and with --follow, every detail page)
// to warm the local page cache without touching the catalog or ledger.
var scanDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download site pages into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		kind, err := catalog.ParseKind(scanKind)
		if err != nil {
			return err
		}
		s, err := parseSite(scanSite)
		if err != nil {
			return err
		}
		scanner, err := scannerFor(s)
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := fetch.NewClient(cfg.Fetch, l)

		for _, base := range scanner.Sources(kind) {
			page := scanPage
			last := 0
			for n := 0; ; n++ {
				url := scanner.PageURL(kind, base, page)
				content, err := client.Get(ctx, url)
				if err != nil {
					return err
				}
				list, err := scanner.ScanList(url, content, kind)
				if err != nil {
					return err
				}
				if list.Pages > 0 {
					last = list.Pages
				}
				l.Info("downloaded list page",
					zap.String("url", url),
					zap.Int("items", len(list.Items)),
					zap.Int("pages", last))

				if scanFollow {
					for _, item := range list.Items {
						if _, err := client.Get(ctx, item.URL); err != nil {
							return err
						}
						fmt.Println(item.URL)
					}
				}

				page++
				if scanPages > 0 && n+1 >= scanPages {
					break
				}
				if last == 0 || page > last {
					break
				}
			}
		}
		return nil
	},
}

// scanCheckCmd reconciles scanned listings against the catalog.
var scanCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check scanned listings against the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		kind, err := catalog.ParseKind(scanKind)
		if err != nil {
			return err
		}
		s, err := parseSite(scanSite)
		if err != nil {
			return err
		}
		scanner, err := scannerFor(s)
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		ledger, err := openLedger(cfg, scanInteractive)
		if err != nil {
			return err
		}

		engine := &reconcile.Engine{
			DB:      db,
			Ledger:  ledger,
			Client:  fetch.NewClient(cfg.Fetch, l),
			Scanner: scanner,
			Log:     l,
		}
		findings, err := engine.Run(context.Background(), reconcile.Options{
			Kind:      kind,
			Follow:    scanFollow,
			Record:    scanRecord,
			Pages:     scanPages,
			StartPage: scanPage,
		})
		if err != nil {
			return err
		}

		for _, f := range findings {
			fmt.Println(f.Describe())
		}
		l.Info("scan check complete", zap.Int("findings", len(findings)))

		if scanRecord {
			return ledger.Save(cfg.Issues.Path)
		}
		return nil
	},
}

func init() {
	scanCmd.PersistentFlags().StringVar(&scanKind, "kind", "table", "Resource kind to scan")
	scanCmd.PersistentFlags().StringVar(&scanSite, "site", "vpu", "Site to scan (vpu, vpf)")
	scanCmd.PersistentFlags().IntVar(&scanPage, "page", 1, "First list page to scan")
	scanCmd.PersistentFlags().IntVar(&scanPages, "pages", 0, "Number of list pages to scan (0 = all)")
	scanCmd.PersistentFlags().BoolVar(&scanFollow, "follow", false, "Fetch detail pages")

	scanCheckCmd.Flags().BoolVar(&scanRecord, "record", false, "Record findings in the issue ledger")
	scanCheckCmd.Flags().BoolVar(&scanInteractive, "interactive", true, "Prompt for triage comments")

	scanCmd.AddCommand(scanDownloadCmd)
	scanCmd.AddCommand(scanCheckCmd)
	RootCmd.AddCommand(scanCmd)
}
