package vpuniverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pindb/core/catalog"
)

const listPage = `<html><body>
<ul class="ipsPagination">
  <li class='ipsPagination_pageJump'>
    <form>
      <input type='number' min='1' max='85' placeholder='Page number' class='ipsField_fullWidth' name='page'>
    </form>
  </li>
</ul>
<div class="ipsDataItem_main">
  <h4><span class="ipsType_break ipsContained"><a href="https://vpuniverse.com/files/file/25136-iron-eagle-original-2025/" title="View the file Iron Eagle">Iron Eagle (Original 2025)</a></span></h4>
</div>
<div class="ipsDataItem_main">
  <h4><a href="https://vpuniverse.com/tags/some-tag/">some tag</a></h4>
</div>
<div class="ipsDataItem_main">
  <h4><a href="https://vpuniverse.com/files/file/24527-rush-le-tribute-v104/">Rush LE Tribute</a></h4>
</div>
</body></html>`

const detailPage = `<html><body>
<div id='ipsTabs_tabs_file_file_tab_downloads_field_21_panel' class="ipsTabs_panel">
  <div class='ipsType_richText ipsContained ipsType_break'>Yes</div>
</div>
<div id='ipsTabs_tabs_file_file_tab_downloads_field_2_panel' class="ipsTabs_panel">
  <div class='ipsType_richText ipsContained ipsType_break'>https://www.ipdb.org/machine.cgi?id=4858</div>
</div>
<script type='application/ld+json'>
{
  "@context": "http://schema.org",
  "@type": "WebApplication",
  "name": "Rush LE Tribute",
  "description": "Includes nFozzy physics and Fleep sounds.",
  "softwareVersion": "1.0.4",
  "author": {"name": "somebody"}
}
</script>
</body></html>`

func TestScanList(t *testing.T) {
	result, err := Scanner{}.ScanList("https://vpuniverse.com/files/category/104-visual-pinball/", []byte(listPage), catalog.KindTable)
	require.NoError(t, err)

	assert.Equal(t, 85, result.Pages)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "https://vpuniverse.com/files/file/25136-iron-eagle-original-2025/", result.Items[0].URL)
	assert.Equal(t, "Iron Eagle (Original 2025)", result.Items[0].Name)
	assert.Equal(t, "Rush LE Tribute", result.Items[1].Name)
}

func TestScanDetail(t *testing.T) {
	url := "https://vpuniverse.com/files/file/24527-rush-le-tribute-v104/"
	detail, err := Scanner{}.ScanDetail(url, []byte(detailPage), catalog.KindTable)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Rush LE Tribute", detail.Name)
	assert.Equal(t, "somebody", detail.Author)
	assert.Equal(t, "1.0.4", detail.Version)
	assert.Equal(t, "https://www.ipdb.org/machine.cgi?id=4858", detail.IPDBURL)
	assert.Contains(t, detail.Features, "nFozzy")
	assert.Contains(t, detail.Features, "Fleep")
	assert.Contains(t, detail.Features, "VR")
}

func TestScanDetailUnparseable(t *testing.T) {
	detail, err := Scanner{}.ScanDetail("https://vpuniverse.com/x", []byte("<html><body>gone</body></html>"), catalog.KindTable)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSources(t *testing.T) {
	assert.NotEmpty(t, Scanner{}.Sources(catalog.KindTable))
	assert.NotEmpty(t, Scanner{}.Sources(catalog.KindB2S))
	// the site hosts no tutorials
	assert.Empty(t, Scanner{}.Sources(catalog.KindTutorial))
}

func TestPageURL(t *testing.T) {
	base := "https://vpuniverse.com/files/category/104-visual-pinball/"
	s := Scanner{}
	assert.Equal(t, base, s.PageURL(catalog.KindTable, base, 1))
	assert.Equal(t, base+"page/3", s.PageURL(catalog.KindTable, base, 3))
}

func TestScanFeatures(t *testing.T) {
	features := scanFeatures("Full VR Room support with nFozzy physics")
	assert.Contains(t, features, "VR")
	assert.Contains(t, features, "nFozzy")
	assert.Empty(t, scanFeatures("plain description"))
}
