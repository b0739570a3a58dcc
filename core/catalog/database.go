package catalog

import (
	"fmt"
	"sort"
)

// Database is the fully indexed catalog. It is rebuilt from scratch on
// every load; there is no incremental index maintenance.
type Database struct {
	Games       map[string]*Game
	GamesByName map[string][]*Game
	GameList    []*Game // sorted by name

	Tables      Index[*Table]
	Backglasses Index[*B2S]
	Tutorials   Index[*Tutorial]
	ROMs        Index[*ROM]
	PupPacks    Index[*PupPack]
	AltColors   Index[*AltColors]
	AltSounds   Index[*AltSound]
	POVs        Index[*POV]
	Wheels      Index[*WheelArt]
	Toppers     Index[*Topper]
	MediaPacks  Index[*MediaPack]
	Rules       Index[*Rules]
	Sounds      Index[*Sound]

	// Duplicates collects resource ids seen more than once within a kind,
	// for the audit path.
	Duplicates []Duplicate

	kinds map[Kind]KindIndex
}

// Build indexes a decoded game list. Construction is read-only over the
// games; a stored URL that cannot be canonicalized fails the build, since
// a wrong identity is worse than no index.
func Build(games []*Game) (*Database, error) {
	db := &Database{
		Games:       make(map[string]*Game, len(games)),
		GamesByName: make(map[string][]*Game),
		kinds:       make(map[Kind]KindIndex, len(ResourceKinds)),
	}

	for _, g := range games {
		if prev, ok := db.Games[g.ID]; ok {
			return nil, fmt.Errorf("duplicate game id %s (%q / %q)", g.ID, prev.Name, g.Name)
		}
		db.Games[g.ID] = g
		db.GamesByName[g.Name] = append(db.GamesByName[g.Name], g)
		db.GameList = append(db.GameList, g)
	}
	sort.Slice(db.GameList, func(i, j int) bool {
		return db.GameList[i].Name < db.GameList[j].Name
	})

	var err error
	if db.Tables, err = index(db, KindTable, func(g *Game) []*Table { return g.Tables }); err != nil {
		return nil, err
	}
	if db.Backglasses, err = index(db, KindB2S, func(g *Game) []*B2S { return g.Backglasses }); err != nil {
		return nil, err
	}
	if db.Tutorials, err = index(db, KindTutorial, func(g *Game) []*Tutorial { return g.Tutorials }); err != nil {
		return nil, err
	}
	if db.ROMs, err = index(db, KindROM, func(g *Game) []*ROM { return g.ROMs }); err != nil {
		return nil, err
	}
	if db.PupPacks, err = index(db, KindPupPack, func(g *Game) []*PupPack { return g.PupPacks }); err != nil {
		return nil, err
	}
	if db.AltColors, err = index(db, KindAltColor, func(g *Game) []*AltColors { return g.AltColors }); err != nil {
		return nil, err
	}
	if db.AltSounds, err = index(db, KindAltSound, func(g *Game) []*AltSound { return g.AltSounds }); err != nil {
		return nil, err
	}
	if db.POVs, err = index(db, KindPOV, func(g *Game) []*POV { return g.POVs }); err != nil {
		return nil, err
	}
	if db.Wheels, err = index(db, KindWheelArt, func(g *Game) []*WheelArt { return g.Wheels }); err != nil {
		return nil, err
	}
	if db.Toppers, err = index(db, KindTopper, func(g *Game) []*Topper { return g.Toppers }); err != nil {
		return nil, err
	}
	if db.MediaPacks, err = index(db, KindMediaPack, func(g *Game) []*MediaPack { return g.MediaPacks }); err != nil {
		return nil, err
	}
	if db.Rules, err = index(db, KindRule, func(g *Game) []*Rules { return g.Rules }); err != nil {
		return nil, err
	}
	if db.Sounds, err = index(db, KindSound, func(g *Game) []*Sound { return g.Sounds }); err != nil {
		return nil, err
	}

	sort.Slice(db.Duplicates, func(i, j int) bool {
		a, b := db.Duplicates[i], db.Duplicates[j]
		if a.Kind != b.Kind {
			return a.Kind.SortOrder() < b.Kind.SortOrder()
		}
		return a.ID < b.ID
	})

	return db, nil
}

// index builds one typed index and registers its erased view and
// duplicate-id findings on the database.
func index[T Resource](db *Database, kind Kind, pick func(*Game) []T) (Index[T], error) {
	idx, dups, err := buildIndex(kind, db.GameList, pick)
	if err != nil {
		return idx, err
	}
	db.Duplicates = append(db.Duplicates, dups...)
	db.kinds[kind] = erase(idx)
	return idx, nil
}

// Kind returns the type-erased index for one resource kind. KindGame has
// no erased index; use Games / GamesByName.
func (db *Database) Kind(kind Kind) KindIndex {
	return db.kinds[kind]
}

// GameOf resolves a resource's owning game through its back-reference.
func (db *Database) GameOf(r Resource) *Game {
	return db.Games[r.Common().Game.ID]
}
