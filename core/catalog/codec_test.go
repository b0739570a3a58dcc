package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGame = `{
	"id": "g1",
	"name": "Future Spa",
	"manufacturer": "Bally",
	"year": 1979,
	"designers": ["George Christian"],
	"ipdbUrl": "https://www.ipdb.org/machine.cgi?id=950",
	"tableFiles": [
		{
			"id": "t1",
			"urls": [{"url": "https://vpuniverse.com/files/file/42-future-spa/"}],
			"authors": ["someone"],
			"version": "1.0",
			"tableFormat": "VPX",
			"createdAt": 1577836800000
		}
	],
	"b2sFiles": [
		{
			"id": "",
			"urls": [{"url": "https://vpuniverse.com/files/file/43-future-spa-b2s/"}]
		}
	]
}`

func TestDecodeGameBackReferences(t *testing.T) {
	g, err := DecodeGame([]byte(sampleGame))
	require.NoError(t, err)

	require.Len(t, g.Tables, 1)
	assert.Equal(t, "g1", g.Tables[0].Game.ID)
	assert.Equal(t, "Future Spa", g.Tables[0].Game.Name)
	assert.Equal(t, "Future Spa", g.Backglasses[0].Game.Name)
}

func TestDecodeGameFallbackIDs(t *testing.T) {
	g, err := DecodeGame([]byte(sampleGame))
	require.NoError(t, err)

	require.Len(t, g.Backglasses, 1)
	assert.NotEmpty(t, g.Backglasses[0].ID)
}

func TestDecodeGameScrubsPlaceholderIPDB(t *testing.T) {
	g, err := DecodeGame([]byte(`{
		"id": "g1", "name": "X", "manufacturer": "Original",
		"ipdbUrl": "https://www.ipdb.org/Not%20Available"
	}`))
	require.NoError(t, err)
	assert.Empty(t, g.IPDBURL)
}

func TestDecodeGameError(t *testing.T) {
	_, err := DecodeGame([]byte(`{"id": "g9", "name": "Broken", "manufacturer": "Bally", "year": "nineteen"}`))
	require.Error(t, err)

	var decodeErr *GameDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "g9", decodeErr.ID)
	assert.Equal(t, "Broken", decodeErr.Name)
}

func TestDecodeGameRejectsUnknownManufacturer(t *testing.T) {
	_, err := DecodeGame([]byte(`{"id": "g1", "name": "X", "manufacturer": "Nonsense Corp"}`))
	assert.Error(t, err)
}

func TestEncodeOmitsDerivedFields(t *testing.T) {
	g, err := DecodeGame([]byte(sampleGame))
	require.NoError(t, err)

	data, err := EncodeGame(g)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	var tables []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["tableFiles"], &tables))
	require.Len(t, tables, 1)
	// the back-reference is derived and must never serialize
	assert.NotContains(t, tables[0], "game")
	// empty designers are still emitted
	assert.Contains(t, raw, "designers")
}

func TestTimestampRoundTrip(t *testing.T) {
	g, err := DecodeGame([]byte(sampleGame))
	require.NoError(t, err)
	assert.Equal(t, int64(1577836800000), g.Tables[0].CreatedAt.UnixMilli())

	data, err := json.Marshal(g.Tables[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "1577836800000")
}

func TestTimestampNull(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte("null"), &ts))
	assert.True(t, ts.IsZero())
}

func TestDecodeGames(t *testing.T) {
	games, err := DecodeGames([]byte("[" + sampleGame + "]"))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g1", games[0].ID)
}
