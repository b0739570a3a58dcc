// Package vpforums scrapes www.vpforums.org download listings.
package vpforums

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pindb/core/catalog"
	"pindb/core/scan"
)

// Scanner parses www.vpforums.org category and file pages. The site runs
// an old IP.Board downloads module: categories are showcat query
// parameters, paging is a 10-per-page st offset, and the only structured
// version data is the page title.
type Scanner struct{}

var categories = map[catalog.Kind]string{
	catalog.KindTable:     "50",
	catalog.KindB2S:       "42",
	catalog.KindROM:       "9",
	catalog.KindWheelArt:  "27",
	catalog.KindTopper:    "55",
	catalog.KindMediaPack: "35",
}

func (Scanner) Sources(kind catalog.Kind) []string {
	cat, ok := categories[kind]
	if !ok {
		return nil
	}
	return []string{
		"https://www.vpforums.org/index.php?app=downloads&showcat=" + cat +
			"&dosort=1&sort_key=file_updated&sort_order=desc&num=&filter_key=",
	}
}

func (Scanner) PageURL(kind catalog.Kind, base string, page int) string {
	if page <= 1 {
		return base
	}
	// page 2+ drops the sort-form noise and pages by item offset
	u := strings.NewReplacer("num=&", "", "filter_key=", "", "dosort=1&", "").Replace(base)
	return fmt.Sprintf("%s&num=10&st=%d", strings.TrimSuffix(u, "&"), (page-1)*10)
}

func (Scanner) ScanList(pageURL string, content []byte, kind catalog.Kind) (*scan.ListResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	result := &scan.ListResult{}

	// The "go to last page" arrow carries the final item offset:
	// <li class="last"><a href="...&num=10&st=2260" rel="last">
	if arrow := doc.Find("li.last a").First(); arrow.Length() > 0 {
		if u, err := url.Parse(arrow.AttrOr("href", "")); err == nil {
			if st, err := strconv.Atoi(u.Query().Get("st")); err == nil {
				result.Pages = st/10 + 1
			}
		}
	}

	// <h3 class="ipsType_subtitle"><a href="...&showfile=18336">Close Encounters <span>1.4.3</span></a>
	doc.Find("h3.ipsType_subtitle a").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		title := strings.TrimSpace(a.Text())
		if href == "" || title == "" {
			return
		}
		result.Items = append(result.Items, scan.ListItem{URL: href, Name: title})
	})

	return result, nil
}

func (Scanner) ScanDetail(pageURL string, content []byte, kind catalog.Kind) (*scan.DetailResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	title := doc.Find("h1.ipsType_pagetitle").First()
	if title.Length() == 0 {
		return nil, nil
	}

	// "Download Future Spa (Bally 1979) 5.5.1"
	text := strings.Join(strings.Fields(title.Text()), " ")
	text = strings.TrimPrefix(text, "Download ")

	if name, version, ok := strings.Cut(text, ") "); ok && !strings.Contains(version, ") ") {
		return &scan.DetailResult{
			URL:     pageURL,
			Name:    name + ")",
			Version: version,
		}, nil
	}

	// No "(Manufacturer Year)" in the title: take the last token as the
	// version.
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return &scan.DetailResult{URL: pageURL}, nil
	}
	return &scan.DetailResult{
		URL:     pageURL,
		Name:    strings.Join(fields[:len(fields)-1], " "),
		Version: fields[len(fields)-1],
	}, nil
}
