package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame(id, name string, tables ...*Table) *Game {
	g := &Game{ID: id, Name: name, Manufacturer: Bally, Tables: tables}
	ref := GameRef{ID: id, Name: name}
	for _, t := range tables {
		t.Game = ref
	}
	return g
}

func TestBuildIndexesEveryResource(t *testing.T) {
	db, err := Build([]*Game{
		testGame("g1", "Alpha",
			&Table{ID: "t1", ResourceCommon: ResourceCommon{
				URLs: []SourceURL{{URL: "https://vpuniverse.com/files/file/1-alpha/"}},
			}},
			&Table{ID: "t2", ResourceCommon: ResourceCommon{
				URLs: []SourceURL{{URL: "https://vpuniverse.com/files/file/2-alpha-mod/"}},
			}},
		),
		testGame("g2", "Beta",
			&Table{ID: "t3", ResourceCommon: ResourceCommon{
				URLs: []SourceURL{{URL: "https://www.vpforums.org/index.php?app=downloads&showfile=9"}},
			}},
		),
	})
	require.NoError(t, err)

	assert.Len(t, db.Tables.All, 3)
	assert.Len(t, db.Tables.ByID, 3)
	assert.Len(t, db.GameList, 2)
	assert.Equal(t, "Alpha", db.GameList[0].Name)

	// the erased view matches the typed one
	assert.Len(t, db.Kind(KindTable).All, 3)
}

func TestBuildCollapsesURLVariants(t *testing.T) {
	db, err := Build([]*Game{
		testGame("g1", "Alpha",
			&Table{ID: "t1", ResourceCommon: ResourceCommon{
				URLs: []SourceURL{{URL: "http://vpuniverse.com/files/file/1-old-slug/"}},
			}},
		),
	})
	require.NoError(t, err)

	// a retitled, https mirror of the same file resolves to t1
	matches, err := db.Kind(KindTable).Lookup("https://vpuniverse.com/files/file/1-brand-new-slug/")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "t1", matches[0].ResourceID())
}

func TestBuildSharedURL(t *testing.T) {
	shared := "https://vpuniverse.com/files/file/7-shared/"
	db, err := Build([]*Game{
		testGame("g1", "Alpha",
			&Table{ID: "t1", ResourceCommon: ResourceCommon{URLs: []SourceURL{{URL: shared}}}},
			&Table{ID: "t2", ResourceCommon: ResourceCommon{URLs: []SourceURL{{URL: shared}}}},
		),
	})
	require.NoError(t, err)

	matches, err := db.Kind(KindTable).Lookup(shared)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestBuildDuplicateIDs(t *testing.T) {
	db, err := Build([]*Game{
		testGame("g1", "Alpha", &Table{ID: "dup"}),
		testGame("g2", "Beta", &Table{ID: "dup"}),
	})
	require.NoError(t, err)

	// last writer wins in ByID; the collision is surfaced for audit
	require.Len(t, db.Duplicates, 1)
	assert.Equal(t, KindTable, db.Duplicates[0].Kind)
	assert.Equal(t, "dup", db.Duplicates[0].ID)
	assert.Equal(t, 2, db.Duplicates[0].Count)
	assert.NotNil(t, db.Tables.ByID["dup"])
}

func TestBuildDuplicateGameID(t *testing.T) {
	_, err := Build([]*Game{
		testGame("g1", "Alpha"),
		testGame("g1", "Beta"),
	})
	assert.Error(t, err)
}

func TestBuildMalformedURLFails(t *testing.T) {
	_, err := Build([]*Game{
		testGame("g1", "Alpha",
			&Table{ID: "t1", ResourceCommon: ResourceCommon{
				URLs: []SourceURL{{URL: "not-a-url"}},
			}},
		),
	})
	assert.Error(t, err)
}

func TestGameOf(t *testing.T) {
	table := &Table{ID: "t1"}
	db, err := Build([]*Game{testGame("g1", "Alpha", table)})
	require.NoError(t, err)
	require.NotNil(t, db.GameOf(table))
	assert.Equal(t, "g1", db.GameOf(table).ID)
}
