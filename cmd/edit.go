package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"pindb/core/catalog"
	"pindb/core/site"
)

var editGameID string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Batch edits over the per-game files",
}

// withGameFiles wraps the edit commands: load config, then visit every
// selected per-game file with the edit.
func withGameFiles(edit func(*catalog.Game) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		return visitGames(l, cfg.Catalog.GamesDir, editGameID, edit)
	}
}

// editURLsCmd rewrites every stored resource URL to its normalized form.
var editURLsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Normalize stored resource URLs",
	RunE: withGameFiles(func(g *catalog.Game) error {
		var err error
		eachGameResource(g, func(r catalog.Resource) {
			common := r.Common()
			for i, u := range common.URLs {
				normalized, nerr := site.Normalize(u.URL)
				if nerr != nil {
					err = nerr
					return
				}
				common.URLs[i].URL = normalized
			}
		})
		return err
	}),
}

// editIDsCmd assigns ids to resources that lack one.
var editIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Assign missing resource ids",
	RunE: withGameFiles(func(g *catalog.Game) error {
		for _, b := range g.Backglasses {
			if b.ID == "" {
				b.ID = catalog.NewID()
			}
		}
		for _, s := range g.Sounds {
			if s.ID == "" {
				s.ID = catalog.NewID()
			}
		}
		return nil
	}),
}

// editTrimCmd strips stray whitespace from the hand-edited string fields.
var editTrimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim whitespace in string fields",
	RunE: withGameFiles(func(g *catalog.Game) error {
		g.Name = strings.TrimSpace(g.Name)
		g.MPU = strings.TrimSpace(g.MPU)
		for i, d := range g.Designers {
			g.Designers[i] = strings.TrimSpace(d)
		}

		eachGameResource(g, func(r catalog.Resource) {
			common := r.Common()
			common.Comment = strings.TrimSpace(common.Comment)
			common.Version = strings.TrimSpace(common.Version)
			for i, a := range common.Authors {
				common.Authors[i] = strings.TrimSpace(a)
			}
		})

		for _, t := range g.Tables {
			t.Edition = strings.TrimSpace(t.Edition)
			t.GameFileName = strings.TrimSpace(t.GameFileName)
		}
		for _, t := range g.Tutorials {
			t.YoutubeID = strings.TrimSpace(t.YoutubeID)
			t.Title = strings.TrimSpace(t.Title)
		}
		for _, a := range g.AltColors {
			a.FileName = strings.TrimSpace(a.FileName)
			a.Folder = strings.TrimSpace(a.Folder)
			a.Type = strings.TrimSpace(a.Type)
		}
		return nil
	}),
}

func eachGameResource(g *catalog.Game, visit func(catalog.Resource)) {
	for _, kind := range catalog.ResourceKinds {
		for _, r := range g.Resources(kind) {
			visit(r)
		}
	}
}

func init() {
	editCmd.PersistentFlags().StringVar(&editGameID, "id", "", "Edit a single game file by id")

	editCmd.AddCommand(editURLsCmd)
	editCmd.AddCommand(editIDsCmd)
	editCmd.AddCommand(editTrimCmd)
	RootCmd.AddCommand(editCmd)
}
