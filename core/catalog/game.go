package catalog

import (
	"fmt"
	"net/url"
)

// GameType is the machine technology generation.
type GameType string

const (
	TypeEM GameType = "EM"
	TypeSS GameType = "SS"
	TypePM GameType = "PM"
	TypeDG GameType = "DG"
)

// Game is the root entity of the catalog. Its id is unique across all
// games; its name is not, because the community tracks re-releases and
// near-duplicates as separate entries.
type Game struct {
	ID string `json:"id"`

	CreatedAt     Timestamp `json:"createdAt,omitzero"`
	UpdatedAt     Timestamp `json:"updatedAt,omitzero"`
	LastCreatedAt Timestamp `json:"lastCreatedAt,omitzero"`

	Name         string       `json:"name"`
	Manufacturer Manufacturer `json:"manufacturer"`
	ImageURL     string       `json:"imageUrl,omitempty"`

	MPU  string `json:"MPU,omitempty"`
	Year int    `json:"year,omitempty"`

	Theme []string `json:"theme,omitempty"`

	// an empty designers array is still emitted
	Designers []string `json:"designers"`

	Type    GameType `json:"type,omitempty"`
	Players int      `json:"players,omitempty"`

	IPDBURL string `json:"ipdbUrl,omitempty"`
	ImgURL  string `json:"imgUrl,omitempty"`

	Tables      []*Table     `json:"tableFiles,omitempty"`
	Backglasses []*B2S       `json:"b2sFiles,omitempty"`
	Tutorials   []*Tutorial  `json:"tutorialFiles,omitempty"`
	ROMs        []*ROM       `json:"romFiles,omitempty"`
	PupPacks    []*PupPack   `json:"pupPackFiles,omitempty"`
	AltColors   []*AltColors `json:"altColorFiles,omitempty"`
	AltSounds   []*AltSound  `json:"altSoundFiles,omitempty"`
	POVs        []*POV       `json:"povFiles,omitempty"`
	Wheels      []*WheelArt  `json:"wheelArtFiles,omitempty"`
	Toppers     []*Topper    `json:"topperFiles,omitempty"`
	MediaPacks  []*MediaPack `json:"mediaPackFiles,omitempty"`
	Rules       []*Rules     `json:"ruleFiles,omitempty"`

	// largely obsolete, kept for the handful of entries that still carry them
	Sounds []*Sound `json:"soundFiles,omitempty"`

	URLs []string `json:"urls,omitempty"`

	Broken bool `json:"broken,omitempty"`
}

// Resources returns the collection for one kind as the shared capability
// interface. KindGame returns nil; games are not resources.
func (g *Game) Resources(kind Kind) []Resource {
	switch kind {
	case KindTable:
		return asResources(g.Tables)
	case KindB2S:
		return asResources(g.Backglasses)
	case KindTutorial:
		return asResources(g.Tutorials)
	case KindROM:
		return asResources(g.ROMs)
	case KindPupPack:
		return asResources(g.PupPacks)
	case KindAltColor:
		return asResources(g.AltColors)
	case KindAltSound:
		return asResources(g.AltSounds)
	case KindPOV:
		return asResources(g.POVs)
	case KindWheelArt:
		return asResources(g.Wheels)
	case KindTopper:
		return asResources(g.Toppers)
	case KindMediaPack:
		return asResources(g.MediaPacks)
	case KindRule:
		return asResources(g.Rules)
	case KindSound:
		return asResources(g.Sounds)
	default:
		return nil
	}
}

func asResources[T Resource](items []T) []Resource {
	out := make([]Resource, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// eachResource visits every resource of every kind.
func (g *Game) eachResource(visit func(kind Kind, r Resource)) {
	for _, kind := range ResourceKinds {
		for _, r := range g.Resources(kind) {
			visit(kind, r)
		}
	}
}

// IPDBID extracts the numeric machine id from the reference database link,
// e.g. https://www.ipdb.org/machine.cgi?id=1654 -> "1654".
func (g *Game) IPDBID() string {
	if g.IPDBURL == "" {
		return ""
	}
	u, err := url.Parse(g.IPDBURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}

// ShouldHaveIPDBEntry reports whether the game is expected to link into
// the reference database.
func (g *Game) ShouldHaveIPDBEntry() bool {
	return g.Manufacturer.ShouldHaveIPDBEntry()
}

func (g *Game) String() string {
	return fmt.Sprintf("%s %s (%d)", g.Name, g.Manufacturer, g.Year)
}
