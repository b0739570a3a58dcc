package catalog

import (
	"encoding/json"
	"time"
)

// Timestamp is a time encoded as milliseconds since the Unix epoch.
// Zero values are omitted on encode and null decodes to zero; a few
// catalog entries still carry "createdAt": null.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UnixMilli())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// SourceURL is one download location for a resource. A resource may list
// several mirrors of the same file; all of them take part in URL indexing.
type SourceURL struct {
	URL    string `json:"url"`
	Broken bool   `json:"broken,omitempty"`
}

// GameRef is the denormalized back-reference from a resource to its owning
// game. It is derived, never authoritative: the loader recomputes it from
// the owning game and it is excluded from the serialized form.
type GameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResourceCommon carries the metadata shared by all thirteen resource
// kinds. Resource structs embed it, so its fields sit at the top level of
// the serialized object, next to the kind-specific ones.
type ResourceCommon struct {
	CreatedAt Timestamp   `json:"createdAt,omitzero"`
	UpdatedAt Timestamp   `json:"updatedAt,omitzero"`
	Comment   string      `json:"comment,omitempty"`
	Game      GameRef     `json:"-"`
	URLs      []SourceURL `json:"urls,omitempty"`
	Authors   []string    `json:"authors,omitempty"`
	Version   string      `json:"version,omitempty"`
}

// Common returns the embedded metadata; it satisfies half of the Resource
// interface for every kind that embeds ResourceCommon.
func (c *ResourceCommon) Common() *ResourceCommon {
	return c
}

// URL returns the primary (first) source URL, or "" if the resource has none.
func (c *ResourceCommon) URL() string {
	if len(c.URLs) == 0 {
		return ""
	}
	return c.URLs[0].URL
}

// URLStrings returns all source URLs.
func (c *ResourceCommon) URLStrings() []string {
	out := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		out = append(out, u.URL)
	}
	return out
}

// Resource is the capability interface shared by all thirteen resource
// kinds: an id (unique within the kind, not globally) plus the common
// metadata block.
type Resource interface {
	ResourceID() string
	Common() *ResourceCommon
}

// TableFormat is the simulator format of a table file.
type TableFormat string

const (
	FormatFP  TableFormat = "FP"
	FormatFX  TableFormat = "FX"
	FormatFX2 TableFormat = "FX2"
	FormatFX3 TableFormat = "FX3"
	FormatM   TableFormat = "M"
	FormatVP9 TableFormat = "VP9"
	FormatVPX TableFormat = "VPX"
	FormatPM5 TableFormat = "PM5"
)

// Table is a playable table file.
type Table struct {
	ID string `json:"id"`
	ResourceCommon
	Features     []string    `json:"features,omitempty"`
	TableFormat  TableFormat `json:"tableFormat,omitempty"`
	Edition      string      `json:"edition,omitempty"`
	GameFileName string      `json:"gameFileName,omitempty"`
	ImgURL       string      `json:"imgUrl,omitempty"`
}

func (t *Table) ResourceID() string { return t.ID }

// B2S is a backglass. Backglasses for FX tables can arrive without an id;
// the loader assigns one.
type B2S struct {
	ID string `json:"id"`
	ResourceCommon
	Features []string `json:"features,omitempty"`
	ImgURL   string   `json:"imgUrl,omitempty"`
}

func (b *B2S) ResourceID() string { return b.ID }

// Tutorial is a video walkthrough.
type Tutorial struct {
	ID string `json:"id"`
	ResourceCommon
	YoutubeID string `json:"youtubeId"`
	Title     string `json:"title"`
}

func (t *Tutorial) ResourceID() string { return t.ID }

// ROM is a machine ROM image.
type ROM struct {
	ID string `json:"id"`
	ResourceCommon
}

func (r *ROM) ResourceID() string { return r.ID }

// PupPack is a pop-up-display media pack.
type PupPack struct {
	ID string `json:"id"`
	ResourceCommon
}

func (p *PupPack) ResourceID() string { return p.ID }

// AltColors is a DMD colorization set.
type AltColors struct {
	ID string `json:"id"`
	ResourceCommon
	FileName string `json:"fileName,omitempty"`
	Folder   string `json:"folder,omitempty"`
	Type     string `json:"type,omitempty"`
}

func (a *AltColors) ResourceID() string { return a.ID }

// AltSound is an alternative sound set.
type AltSound struct {
	ID string `json:"id"`
	ResourceCommon
}

func (a *AltSound) ResourceID() string { return a.ID }

// Sound is a standalone sound file. These are largely obsolete and often
// arrive without an id; the loader assigns one.
type Sound struct {
	ID string `json:"id"`
	ResourceCommon
}

func (s *Sound) ResourceID() string { return s.ID }

// POV is a point-of-view physics/camera file.
type POV struct {
	ID string `json:"id"`
	ResourceCommon
}

func (p *POV) ResourceID() string { return p.ID }

// WheelArt is wheel artwork for front-ends.
type WheelArt struct {
	ID string `json:"id"`
	ResourceCommon
}

func (w *WheelArt) ResourceID() string { return w.ID }

// Topper is a topper video.
type Topper struct {
	ID string `json:"id"`
	ResourceCommon
}

func (t *Topper) ResourceID() string { return t.ID }

// MediaPack is a front-end media pack.
type MediaPack struct {
	ID string `json:"id"`
	ResourceCommon
}

func (m *MediaPack) ResourceID() string { return m.ID }

// Rules is a rule sheet or instruction card set.
type Rules struct {
	ID string `json:"id"`
	ResourceCommon
}

func (r *Rules) ResourceID() string { return r.ID }
