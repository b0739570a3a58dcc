package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pindb/core/catalog"
	"pindb/core/config"
	"pindb/core/issues"
	"pindb/core/logger"
	"pindb/core/scan"
	"pindb/core/site"
	"pindb/feature/vpforums"
	"pindb/feature/vpuniverse"
)

// setup loads the configuration and builds the logger every command
// starts from.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openDatabase loads and indexes the catalog. The path may be a local file
// or an https URL pointing at the published combined document.
func openDatabase(cfg *config.Config) (*catalog.Database, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(cfg.Catalog.Path, "https://") {
		resp, err := http.Get(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch catalog: unexpected response: %s", resp.Status)
		}
		if data, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
	} else if data, err = os.ReadFile(cfg.Catalog.Path); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", cfg.Catalog.Path, err)
	}

	games, err := catalog.DecodeGames(data)
	if err != nil {
		return nil, err
	}
	return catalog.Build(games)
}

// openLedger loads the issue ledger. With interactive set, reports made
// without a comment prompt on stdin; otherwise they stay unrecorded.
func openLedger(cfg *config.Config, interactive bool) (*issues.Ledger, error) {
	ledger, err := issues.Load(cfg.Issues.Path)
	if err != nil {
		return nil, err
	}
	if interactive {
		ledger.Resolve = promptComment
	}
	return ledger, nil
}

// promptComment asks for a triage comment on stdin; an empty line means
// the issue should be fixed rather than recorded.
func promptComment() (string, bool) {
	fmt.Print("comment (empty to fix): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	return line, line != ""
}

// scannerFor maps a site to its scanner. Only the two scraped sites have
// one.
func scannerFor(s site.Site) (scan.Scanner, error) {
	switch s {
	case site.VPUniverse:
		return vpuniverse.Scanner{}, nil
	case site.VPForums:
		return vpforums.Scanner{}, nil
	default:
		return nil, fmt.Errorf("no scanner for site %q", s)
	}
}

func parseSite(s string) (site.Site, error) {
	switch strings.ToLower(s) {
	case "vpu", "vpuniverse":
		return site.VPUniverse, nil
	case "vpf", "vpforums":
		return site.VPForums, nil
	default:
		return site.Other, fmt.Errorf("unknown site %q", s)
	}
}

// gameFiles lists the per-game edit files, or just one when an id is
// given.
func gameFiles(dir, id string) ([]string, error) {
	if id != "" {
		return []string{filepath.Join(dir, id+".json")}, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read games dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// visitGames applies an edit to each per-game file, rewriting only the
// files whose serialized form actually changed.
func visitGames(l *zap.Logger, dir, id string, visit func(*catalog.Game) error) error {
	files, err := gameFiles(dir, id)
	if err != nil {
		return err
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}
		game, err := catalog.DecodeGame(data)
		if err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}

		before, err := catalog.EncodeGame(game)
		if err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}
		if err := visit(game); err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}
		after, err := catalog.EncodeGame(game)
		if err != nil {
			return fmt.Errorf("edit %s: %w", path, err)
		}

		if string(before) != string(after) {
			l.Info("updating game file", zap.String("file", filepath.Base(path)))
			if err := catalog.WriteGameFile(path, game); err != nil {
				return fmt.Errorf("edit %s: %w", path, err)
			}
		}
	}
	return nil
}
