package vpforums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pindb/core/catalog"
)

const listPage = `<html><body>
<ul class="pagination">
  <li class="last"><a href="https://www.vpforums.org/index.php?app=downloads&amp;showcat=50&amp;sort_order=desc&amp;sort_key=file_updated&amp;num=10&amp;st=2260" title="Go to last page" rel="last">&raquo;</a></li>
</ul>
<h3 class="ipsType_subtitle">
  <a href="https://www.vpforums.org/index.php?app=downloads&amp;showfile=18336" title="View file named Close Encounters">Close Encounters <span class="ipsType_small">1.4.3</span></a>
</h3>
<h3 class="ipsType_subtitle">
  <a href="https://www.vpforums.org/index.php?app=downloads&amp;showfile=17011">Future Spa</a>
</h3>
</body></html>`

func TestScanList(t *testing.T) {
	result, err := Scanner{}.ScanList("https://www.vpforums.org/index.php?app=downloads&showcat=50", []byte(listPage), catalog.KindTable)
	require.NoError(t, err)

	assert.Equal(t, 227, result.Pages)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "https://www.vpforums.org/index.php?app=downloads&showfile=18336", result.Items[0].URL)
	assert.Equal(t, "Close Encounters 1.4.3", result.Items[0].Name)
}

func TestScanDetailManufacturerTitle(t *testing.T) {
	page := `<html><body><h1 class='ipsType_pagetitle'>
<a href='#' class='download_button rounded right'>Download</a>
Future Spa (Bally 1979) 5.5.1
</h1></body></html>`

	detail, err := Scanner{}.ScanDetail("https://www.vpforums.org/index.php?showfile=17011", []byte(page), catalog.KindTable)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Future Spa (Bally 1979)", detail.Name)
	assert.Equal(t, "5.5.1", detail.Version)
}

func TestScanDetailPlainTitle(t *testing.T) {
	page := `<html><body><h1 class='ipsType_pagetitle'>Close Encounters 1.4.3</h1></body></html>`

	detail, err := Scanner{}.ScanDetail("https://www.vpforums.org/index.php?showfile=18336", []byte(page), catalog.KindTable)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Close Encounters", detail.Name)
	assert.Equal(t, "1.4.3", detail.Version)
}

func TestScanDetailUnparseable(t *testing.T) {
	detail, err := Scanner{}.ScanDetail("https://www.vpforums.org/x", []byte("<html><body>error</body></html>"), catalog.KindTable)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSources(t *testing.T) {
	tables := Scanner{}.Sources(catalog.KindTable)
	require.Len(t, tables, 1)
	assert.Contains(t, tables[0], "showcat=50")

	assert.Empty(t, Scanner{}.Sources(catalog.KindPupPack))
}

func TestPageURL(t *testing.T) {
	s := Scanner{}
	base := s.Sources(catalog.KindTable)[0]

	assert.Equal(t, base, s.PageURL(catalog.KindTable, base, 1))

	page3 := s.PageURL(catalog.KindTable, base, 3)
	assert.Contains(t, page3, "num=10")
	assert.Contains(t, page3, "st=20")
	assert.NotContains(t, page3, "dosort")
	assert.NotContains(t, page3, "filter_key")
}
