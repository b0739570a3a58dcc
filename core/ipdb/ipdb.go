// Package ipdb parses a saved copy of the Internet Pinball Database
// machine list into a lookup structure for cross-checking catalog games.
package ipdb

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pindb/core/catalog"
)

// Entry is one machine row from the reference list.
type Entry struct {
	ID               string
	Name             string
	Manufacturer     catalog.Manufacturer
	ManufacturerName string
	Year             int
	Players          int
	Type             catalog.GameType
	Themes           []string
}

// DB is the parsed reference list.
type DB struct {
	Entries map[string]Entry
	ByName  map[string][]Entry
}

// Load parses an ipdb.html file saved from the site's full machine list.
func Load(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ipdb list %s: %w", path, err)
	}
	return Parse(data)
}

// Parse reads the machine-list table. Each data row links the machine name
// to machine.cgi?gid=N and carries manufacturer, date, player count, type
// and themes in the following columns.
func Parse(data []byte) (*DB, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse ipdb list: %w", err)
	}

	db := &DB{
		Entries: make(map[string]Entry),
		ByName:  make(map[string][]Entry),
	}

	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		link := row.Find("a").First()
		if link.Length() == 0 {
			return
		}

		entry := Entry{Name: strings.TrimSpace(link.Text())}
		if u, err := url.Parse(link.AttrOr("href", "")); err == nil {
			entry.ID = u.Query().Get("gid")
		}
		if entry.ID == "" {
			return
		}

		cols := row.Find("td")
		entry.ManufacturerName = strings.TrimSpace(cols.Eq(1).Text())
		entry.Manufacturer = catalog.LookupManufacturer(entry.ManufacturerName)
		entry.Year = parseYear(cols.Eq(2).Text())
		entry.Players, _ = strconv.Atoi(strings.TrimSpace(cols.Eq(3).Text()))
		entry.Type = catalog.GameType(strings.TrimSpace(cols.Eq(4).Text()))
		entry.Themes = parseThemes(cols.Eq(5).Text())

		db.Entries[entry.ID] = entry
		db.ByName[entry.Name] = append(db.ByName[entry.Name], entry)
	})

	return db, nil
}

// parseYear pulls the year out of a "August, 1975" style date cell.
func parseYear(s string) int {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "19") || strings.HasPrefix(part, "20") {
			if year, err := strconv.Atoi(part); err == nil {
				return year
			}
		}
	}
	return 0
}

func parseThemes(s string) []string {
	var themes []string
	for _, part := range strings.Split(s, " - ") {
		if part = strings.TrimSpace(part); part != "" {
			themes = append(themes, part)
		}
	}
	return themes
}
