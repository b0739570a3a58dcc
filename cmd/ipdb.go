package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"pindb/core/catalog"
	"pindb/core/ipdb"
)

var ipdbPath string

var ipdbCmd = &cobra.Command{
	Use:   "ipdb",
	Short: "Cross-check games against the reference machine list",
}

// ipdbMissingCmd lists games without a reference link, with candidate
// entries matched by name.
var ipdbMissingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List games without a reference entry",
	RunE: withDatabase(func(db *catalog.Database) error {
		ref, err := ipdb.Load(ipdbPath)
		if err != nil {
			return err
		}

		for _, g := range db.GameList {
			if g.IPDBURL != "" || !g.ShouldHaveIPDBEntry() {
				continue
			}
			fmt.Printf("%s, %d, %s\n", g.Name, g.Year, g.Manufacturer)

			entries := ref.ByName[g.Name]
			// narrow to the game's manufacturer when any candidate matches
			var filtered []ipdb.Entry
			for _, e := range entries {
				if e.Manufacturer == g.Manufacturer {
					filtered = append(filtered, e)
				}
			}
			if filtered == nil {
				filtered = entries
			}
			sort.Slice(filtered, func(i, j int) bool { return filtered[i].Year < filtered[j].Year })

			for _, e := range filtered {
				var notes []string
				if g.Players == 0 {
					notes = append(notes, fmt.Sprintf("players: %d", e.Players))
				}
				if missingThemes(g.Theme, e.Themes) {
					notes = append(notes, "themes: "+strings.Join(e.Themes, ", "))
				}
				year := ""
				if e.Year != 0 {
					year = fmt.Sprintf("%d", e.Year)
				}
				fmt.Printf("\t%s, %s, %s %s\n", e.ID, e.Manufacturer, year, strings.Join(notes, ", "))
			}
			fmt.Println()
		}
		return nil
	}),
}

// ipdbVerifyCmd lists games whose linked reference entry disagrees with
// the catalog.
var ipdbVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "List games that do not match their reference entry",
	RunE: withDatabase(func(db *catalog.Database) error {
		ref, err := ipdb.Load(ipdbPath)
		if err != nil {
			return err
		}

		for _, g := range db.GameList {
			id := g.IPDBID()
			if id == "" {
				continue
			}

			entry, ok := ref.Entries[id]
			if !ok {
				fmt.Printf("%s, %d, %s, id=%s -- no entry found for %s\n", g.Name, g.Year, g.Manufacturer, id, id)
				for _, e := range ref.ByName[g.Name] {
					fmt.Printf("\t%s, %s, %d\n", e.ID, e.Manufacturer, e.Year)
				}
				fmt.Println()
				continue
			}

			var notes []string
			if entry.Name != g.Name {
				notes = append(notes, fmt.Sprintf("name: %s does not match entry: %s", g.Name, entry.Name))
			}
			if entry.Manufacturer != g.Manufacturer {
				notes = append(notes, fmt.Sprintf("manufacturer: %s does not match entry: %s (%s)",
					g.Manufacturer, entry.Manufacturer, entry.ManufacturerName))
			}
			if entry.Year != 0 && entry.Year != g.Year {
				notes = append(notes, fmt.Sprintf("year: %d does not match entry: %d", g.Year, entry.Year))
			}
			if entry.Players != g.Players {
				notes = append(notes, fmt.Sprintf("players: %d does not match entry: %d", g.Players, entry.Players))
			}

			if len(notes) > 0 {
				fmt.Printf("%s, %d, %s, id=%s\n", g.Name, g.Year, g.Manufacturer, id)
				fmt.Printf("\t%s\n\n", strings.Join(notes, "\n\t"))
			}
		}
		return nil
	}),
}

// missingThemes reports whether the reference entry carries themes the
// catalog entry lacks.
func missingThemes(have, want []string) bool {
	if len(want) == 0 {
		return false
	}
	if len(have) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range want {
		if !set[t] {
			return true
		}
	}
	return false
}

func init() {
	ipdbCmd.PersistentFlags().StringVar(&ipdbPath, "ipdb", "ipdb.html", "Path to the saved machine list")

	ipdbCmd.AddCommand(ipdbMissingCmd)
	ipdbCmd.AddCommand(ipdbVerifyCmd)
	RootCmd.AddCommand(ipdbCmd)
}
