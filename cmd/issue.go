package cmd

import (
	"github.com/spf13/cobra"

	"pindb/core/catalog"
	"pindb/core/issues"
)

var (
	ignoreKind    string
	ignoreComment string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue ledger commands",
}

// issueIgnoreCmd records an entry-not-found issue for one or more URLs so
// future scans stop reporting them.
var issueIgnoreCmd = &cobra.Command{
	Use:   "ignore [urls...]",
	Short: "Ignore scanned URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		kind, err := catalog.ParseKind(ignoreKind)
		if err != nil {
			return err
		}
		ledger, err := openLedger(cfg, false)
		if err != nil {
			return err
		}

		for _, url := range args {
			issue := issues.EntryNotFound(nil, nil)
			if _, err := ledger.ReportURL(kind, url, issue, ignoreComment); err != nil {
				return err
			}
		}
		return ledger.Save(cfg.Issues.Path)
	},
}

func init() {
	issueIgnoreCmd.Flags().StringVar(&ignoreKind, "kind", "table", "Resource kind of the ignored URLs")
	issueIgnoreCmd.Flags().StringVar(&ignoreComment, "comment", "Obsolete", "Triage comment to record")

	issueCmd.AddCommand(issueIgnoreCmd)
	RootCmd.AddCommand(issueCmd)
}
