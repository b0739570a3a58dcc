package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pindb/core/catalog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Consistency checks over the local catalog",
}

// withDatabase wraps the read-only sweep commands, which all start the
// same way.
func withDatabase(run func(db *catalog.Database) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		return run(db)
	}
}

var checkTableFormatCmd = &cobra.Command{
	Use:   "table-format",
	Short: "List tables without a table format",
	RunE: withDatabase(func(db *catalog.Database) error {
		for _, g := range db.GameList {
			for _, t := range g.Tables {
				if t.TableFormat == "" {
					fmt.Printf("%s %s\n", g, t.URL())
				}
			}
		}
		return nil
	}),
}

var checkYearCmd = &cobra.Command{
	Use:   "year",
	Short: "List games without a year",
	RunE: withDatabase(func(db *catalog.Database) error {
		for _, g := range db.GameList {
			if g.Year == 0 {
				fmt.Println(g)
			}
		}
		return nil
	}),
}

var checkThemeCmd = &cobra.Command{
	Use:   "theme",
	Short: "List games without themes",
	RunE: withDatabase(func(db *catalog.Database) error {
		for _, g := range db.GameList {
			if len(g.Theme) == 0 {
				fmt.Println(g)
			}
		}
		return nil
	}),
}

// Multiple authors on a table usually means a modified re-release; those
// entries should carry the Mod feature.
var checkModCmd = &cobra.Command{
	Use:   "mod",
	Short: "List likely mods without the Mod feature",
	RunE: withDatabase(func(db *catalog.Database) error {
		for _, g := range db.GameList {
			for _, t := range g.Tables {
				if !hasFeature(t.Features, "Mod") && len(t.Authors) > 1 {
					fmt.Printf("%s %s\n", g, t.URL())
				}
			}
		}
		return nil
	}),
}

var checkRethemeCmd = &cobra.Command{
	Use:   "retheme",
	Short: "List likely rethemes without the Retheme feature",
	RunE: withDatabase(func(db *catalog.Database) error {
		for _, g := range db.GameList {
			for _, t := range g.Tables {
				c := t.Comment
				if strings.Contains(c, "Retheme") || strings.Contains(c, "Reskin") {
					if !hasFeature(t.Features, "Retheme") {
						fmt.Printf("%s %s\n", g, t.URL())
					}
				}
			}
		}
		return nil
	}),
}

var checkIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "List duplicate resource ids",
	RunE: withDatabase(func(db *catalog.Database) error {
		if len(db.Duplicates) == 0 {
			fmt.Println("no duplicate ids")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Kind", "ID", "Count", "Game"})
		for _, d := range db.Duplicates {
			game := ""
			if r, ok := db.Kind(d.Kind).ByID[d.ID]; ok {
				game = r.Common().Game.Name
			}
			t.AppendRow(table.Row{d.Kind, d.ID, d.Count, game})
		}
		t.Render()
		return nil
	}),
}

func hasFeature(features []string, name string) bool {
	for _, f := range features {
		if f == name {
			return true
		}
	}
	return false
}

func init() {
	checkCmd.AddCommand(checkTableFormatCmd)
	checkCmd.AddCommand(checkYearCmd)
	checkCmd.AddCommand(checkThemeCmd)
	checkCmd.AddCommand(checkModCmd)
	checkCmd.AddCommand(checkRethemeCmd)
	checkCmd.AddCommand(checkIDsCmd)
	RootCmd.AddCommand(checkCmd)
}
