package ipdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pindb/core/catalog"
)

const machineList = `<html><body><table>
<tr><th>Name</th><th>Manufacturer</th><th>Date</th><th>Players</th><th>Type</th><th>Theme</th></tr>
<tr>
  <td><a href="machine.cgi?gid=2539&puid=44280">"300"</a></td>
  <td>D. Gottlieb &amp; Company</td>
  <td>August, 1975</td>
  <td>4</td>
  <td>EM</td>
  <td>Sports - Bowling</td>
</tr>
<tr>
  <td><a href="machine.cgi?gid=871&puid=1">Future Spa</a></td>
  <td>Bally Manufacturing Corporation</td>
  <td>December, 1979</td>
  <td>4</td>
  <td>SS</td>
  <td>Fantasy - Health</td>
</tr>
<tr><td>no link in this row</td></tr>
</table></body></html>`

func TestParse(t *testing.T) {
	db, err := Parse([]byte(machineList))
	require.NoError(t, err)
	require.Len(t, db.Entries, 2)

	entry, ok := db.Entries["871"]
	require.True(t, ok)
	assert.Equal(t, "Future Spa", entry.Name)
	assert.Equal(t, catalog.Bally, entry.Manufacturer)
	assert.Equal(t, "Bally Manufacturing Corporation", entry.ManufacturerName)
	assert.Equal(t, 1979, entry.Year)
	assert.Equal(t, 4, entry.Players)
	assert.Equal(t, catalog.TypeSS, entry.Type)
	assert.Equal(t, []string{"Fantasy", "Health"}, entry.Themes)
}

func TestParseByName(t *testing.T) {
	db, err := Parse([]byte(machineList))
	require.NoError(t, err)

	entries := db.ByName[`"300"`]
	require.Len(t, entries, 1)
	assert.Equal(t, "2539", entries[0].ID)
	assert.Equal(t, 1975, entries[0].Year)
}

func TestParseUnknownManufacturer(t *testing.T) {
	db, err := Parse([]byte(`<table>
<tr><th>h</th></tr>
<tr><td><a href="machine.cgi?gid=1">X</a></td><td>Garage Shop</td><td>1999</td><td>2</td><td>SS</td><td></td></tr>
</table>`))
	require.NoError(t, err)
	require.Len(t, db.Entries, 1)
	assert.Equal(t, catalog.UnknownManufacturer, db.Entries["1"].Manufacturer)
}
