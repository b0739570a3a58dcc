package catalog

import "fmt"

// Kind identifies one of the typed resource collections a game owns,
// plus the pseudo-kind "game" for the games themselves.
type Kind string

const (
	KindGame      Kind = "game"
	KindTable     Kind = "table"
	KindB2S       Kind = "b2s"
	KindTutorial  Kind = "tutorial"
	KindROM       Kind = "rom"
	KindPupPack   Kind = "pupPack"
	KindAltColor  Kind = "altColor"
	KindAltSound  Kind = "altSound"
	KindPOV       Kind = "pov"
	KindWheelArt  Kind = "wheelArt"
	KindTopper    Kind = "topper"
	KindMediaPack Kind = "mediaPack"
	KindRule      Kind = "rule"
	KindSound     Kind = "sound"
)

// ResourceKinds lists the thirteen resource kinds in their stable sort order.
// KindGame is deliberately not included; games are indexed separately.
var ResourceKinds = []Kind{
	KindTable, KindB2S, KindTutorial, KindROM, KindPupPack,
	KindAltColor, KindAltSound, KindPOV, KindWheelArt, KindTopper,
	KindMediaPack, KindRule, KindSound,
}

var kindOrder = map[Kind]int{
	KindGame: 0, KindTable: 1, KindB2S: 2, KindTutorial: 3, KindROM: 4,
	KindPupPack: 5, KindAltColor: 6, KindAltSound: 7, KindPOV: 8,
	KindWheelArt: 9, KindTopper: 10, KindMediaPack: 11, KindRule: 12,
	KindSound: 13,
}

// SortOrder returns the stable ordering position of the kind.
func (k Kind) SortOrder() int {
	return kindOrder[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kindOrder[k]; !ok {
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
	return k, nil
}
