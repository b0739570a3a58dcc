package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GameDecodeError wraps a decode failure with the offending game's id and
// name (best-effort extraction), so one malformed entry can be diagnosed
// without re-parsing the whole catalog.
type GameDecodeError struct {
	ID   string
	Name string
	Err  error
}

func (e *GameDecodeError) Error() string {
	return fmt.Sprintf("decode game %s (%q): %v", e.ID, e.Name, e.Err)
}

func (e *GameDecodeError) Unwrap() error {
	return e.Err
}

// DecodeGames decodes the catalog document: a flat JSON array of games.
// Back-references and other derived fields are recomputed, never trusted
// from storage.
func DecodeGames(data []byte) ([]*Game, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	games := make([]*Game, 0, len(raw))
	for _, r := range raw {
		g, err := DecodeGame(r)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

// DecodeGame decodes a single game object and recomputes its derived
// fields.
func DecodeGame(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, &GameDecodeError{
			ID:   probeField(data, "id"),
			Name: probeField(data, "name"),
			Err:  err,
		}
	}
	connect(&g)
	return &g, nil
}

// probeField pulls one string field out of a game object that failed full
// decoding.
func probeField(data []byte, field string) string {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return "missing"
	}
	var s string
	if err := json.Unmarshal(probe[field], &s); err != nil {
		return "missing"
	}
	return s
}

// connect recomputes the derived state of a freshly decoded game: resource
// back-references, fallback ids for the kinds that may lack one, and the
// reference-link placeholder the upstream exporter emits for machines
// without an entry.
func connect(g *Game) {
	ref := GameRef{ID: g.ID, Name: g.Name}
	g.eachResource(func(kind Kind, r Resource) {
		r.Common().Game = ref
	})

	for _, b := range g.Backglasses {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
	}
	for _, s := range g.Sounds {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
	}

	if strings.Contains(g.IPDBURL, "Not%20Available") || strings.HasSuffix(g.IPDBURL, "Not Available") {
		g.IPDBURL = ""
	}

	if g.Designers == nil {
		g.Designers = []string{}
	}
}

// EncodeGames serializes the catalog back to its on-disk form. Derived
// fields are omitted by construction (see ResourceCommon.Game).
func EncodeGames(games []*Game) ([]byte, error) {
	return json.Marshal(games)
}

// EncodeGame serializes one game the way the per-game edit files store it.
func EncodeGame(g *Game) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// LoadGames reads and decodes a catalog file.
func LoadGames(path string) ([]*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return DecodeGames(data)
}

// WriteGameFile atomically replaces a per-game JSON file.
func WriteGameFile(path string, g *Game) error {
	data, err := EncodeGame(g)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
