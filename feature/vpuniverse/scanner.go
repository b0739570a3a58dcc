// Package vpuniverse scrapes vpuniverse.com download listings.
package vpuniverse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pindb/core/catalog"
	"pindb/core/scan"
)

// Scanner parses vpuniverse.com category and file pages. The site runs
// Invision Community, so list markup is the stock ipsData* layout and the
// file metadata is duplicated into an ld+json script block.
type Scanner struct{}

var sources = map[catalog.Kind]string{
	// The dedicated VPX category (82) shows fewer pages than its parent, so
	// tables are scanned through the parent category.
	catalog.KindTable:     "https://vpuniverse.com/files/category/104-visual-pinball/",
	catalog.KindB2S:       "https://vpuniverse.com/files/category/33-b2s-directb2s-backglass-downloads/",
	catalog.KindROM:       "https://vpuniverse.com/files/category/15-pinmame-roms/",
	catalog.KindPupPack:   "https://vpuniverse.com/files/category/120-pup-packs/",
	catalog.KindAltColor:  "https://vpuniverse.com/files/category/101-pin2dmd-colorizations-virtual-pinball/",
	catalog.KindAltSound:  "https://vpuniverse.com/files/category/113-altsound/",
	catalog.KindPOV:       "https://vpuniverse.com/files/category/68-vpx-pov-point-of-view-physics-sets/",
	catalog.KindWheelArt:  "https://vpuniverse.com/files/category/70-wheel-images/",
	catalog.KindTopper:    "https://vpuniverse.com/files/category/160-topper-videos/",
	catalog.KindMediaPack: "https://vpuniverse.com/files/category/9-hyperpin-media-packs/",
	catalog.KindRule:      "https://vpuniverse.com/files/category/91-instruction-cards/",
}

func (Scanner) Sources(kind catalog.Kind) []string {
	if base, ok := sources[kind]; ok {
		return []string{base}
	}
	return nil
}

func (Scanner) PageURL(kind catalog.Kind, base string, page int) string {
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%spage/%d", base, page)
}

func (Scanner) ScanList(url string, content []byte, kind catalog.Kind) (*scan.ListResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	result := &scan.ListResult{}

	// <li class='ipsPagination_pageJump'> ... <input type='number' max='85'>
	if input := doc.Find("li.ipsPagination_pageJump input").First(); input.Length() > 0 {
		if max, err := strconv.Atoi(input.AttrOr("max", "")); err == nil {
			result.Pages = max
		}
	}

	doc.Find("div.ipsDataItem_main h4 a").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		title := strings.TrimSpace(a.Text())
		// tag navigation links share the item markup
		if href == "" || title == "" || strings.Contains(href, "/tags/") {
			return
		}
		result.Items = append(result.Items, scan.ListItem{URL: href, Name: title})
	})

	return result, nil
}

// ldMeta is the slice of the ld+json metadata block the scanner needs.
type ldMeta struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	SoftwareVersion string `json:"softwareVersion"`
	Author          struct {
		Name string `json:"name"`
	} `json:"author"`
}

func (s Scanner) ScanDetail(url string, content []byte, kind catalog.Kind) (*scan.DetailResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	// Custom download fields render as tab panels; field 21 is the VR Room
	// flag, field 2 the IPDB link.
	vr := false
	doc.Find("div#ipsTabs_tabs_file_file_tab_downloads_field_21_panel div.ipsType_richText").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "Yes" {
			vr = true
		}
	})

	ipdbURL := ""
	doc.Find("div#ipsTabs_tabs_file_file_tab_downloads_field_2_panel div.ipsType_richText").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			ipdbURL = text
		}
	})

	var result *scan.DetailResult
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var meta ldMeta
		if err := json.Unmarshal([]byte(script.Text()), &meta); err != nil {
			return true
		}
		if meta.Name == "" {
			return true
		}

		features := scanFeatures(meta.Description)
		if vr && !contains(features, "VR") {
			features = append(features, "VR")
		}
		result = &scan.DetailResult{
			URL:      url,
			Name:     meta.Name,
			Author:   meta.Author.Name,
			Version:  meta.SoftwareVersion,
			IPDBURL:  ipdbURL,
			Features: features,
		}
		return false
	})

	return result, nil
}

var (
	nfozzyRe = regexp.MustCompile(`(?i)fozzy`)
	fleepRe  = regexp.MustCompile(`(?i)fleep`)
	vrRe     = regexp.MustCompile(`(?i)vr ?room`)
	mrRe     = regexp.MustCompile(`(?i)mixed reality`)
)

// scanFeatures sniffs well-known feature names out of the free-form file
// description.
func scanFeatures(text string) []string {
	var features []string
	if nfozzyRe.MatchString(text) {
		features = append(features, "nFozzy")
	}
	if fleepRe.MatchString(text) {
		features = append(features, "Fleep")
	}
	if vrRe.MatchString(text) {
		features = append(features, "VR")
	}
	if mrRe.MatchString(text) {
		features = append(features, "Mixed Reality")
	}
	return features
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
