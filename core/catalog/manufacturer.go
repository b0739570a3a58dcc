package catalog

import (
	"encoding/json"
	"fmt"
)

// Manufacturer is the closed enumeration of machine manufacturers used by
// the catalog. The reference machine database spells many of these with
// their full historical corporate names; those spellings are accepted as
// aliases and collapse to the catalog form.
type Manufacturer string

const (
	APirmischer          Manufacturer = "A. Pirmischer"
	ABT                  Manufacturer = "A.B.T."
	Abbey                Manufacturer = "Abbey"
	AlvinG               Manufacturer = "Alvin G."
	AppleTime            Manufacturer = "Apple Time"
	Arkon                Manufacturer = "Arkon"
	AstroGames           Manufacturer = "Astro Games"
	Atari                Manufacturer = "Atari"
	Automatic            Manufacturer = "Automatic"
	Automaticos          Manufacturer = "Automaticos"
	Bally                Manufacturer = "Bally"
	Barok                Manufacturer = "Barok Co"
	Belgamko             Manufacturer = "Belgamko"
	BellGames            Manufacturer = "Bell Games"
	Benchmark            Manufacturer = "Benchmark Games"
	BillPort             Manufacturer = "Bill Port"
	Brunswick            Manufacturer = "Brunswick"
	CICPlay              Manufacturer = "CIC Play"
	Capcom               Manufacturer = "Capcom"
	ChicagoCoin          Manufacturer = "Chicago Coin"
	Cirsa                Manufacturer = "Cirsa"
	Codemasters          Manufacturer = "Codemasters"
	Culik                Manufacturer = "Culik Pinball"
	CunningDevelopments  Manufacturer = "Cunning Developments"
	DataEast             Manufacturer = "Data East"
	Daval                Manufacturer = "Daval"
	DigitalIllusions     Manufacturer = "Digital Illusions"
	DozingCatSoftware    Manufacturer = "Dozing Cat Software"
	Durham               Manufacturer = "Durham"
	Electromatic         Manufacturer = "Electromatic"
	Emagar               Manufacturer = "Emagar"
	Exhibit              Manufacturer = "Exhibit"
	FabulousFantasies    Manufacturer = "Fabulous Fantasies"
	Fipermatic           Manufacturer = "Fipermatic"
	GamePlan             Manufacturer = "Game Plan"
	Geiger               Manufacturer = "Geiger"
	Genco                Manufacturer = "Genco"
	Gottlieb             Manufacturer = "Gottlieb"
	GrandProducts        Manufacturer = "Grand Products"
	Hankin               Manufacturer = "Hankin"
	HiSkor               Manufacturer = "Hi-Skor"
	Hutchison            Manufacturer = "Hutchison"
	IDSA                 Manufacturer = "IDSA"
	InOutdoor            Manufacturer = "In & Outdoor"
	Inder                Manufacturer = "Inder"
	Interflip            Manufacturer = "Interflip"
	InternationalConcept Manufacturer = "International Concepts"
	JEsteban             Manufacturer = "J. Esteban"
	JFLinck              Manufacturer = "J.F. Linck"
	JPSeeburg            Manufacturer = "J.P. Seeburg"
	Jennings             Manufacturer = "Jennings"
	Jocmatic             Manufacturer = "Jocmatic"
	Joctronic            Manufacturer = "Joctronic"
	JuegosPopulares      Manufacturer = "Juegos Populares"
	Keeney               Manufacturer = "Keeney"
	Komaya               Manufacturer = "Komaya"
	LTDBrasil            Manufacturer = "LTD do Brasil"
	MAC                  Manufacturer = "MAC"
	MarbleGames          Manufacturer = "Marble Games"
	Maresa               Manufacturer = "Maresa"
	Maxis                Manufacturer = "Maxis"
	Microsoft            Manufacturer = "Microsoft"
	Midway               Manufacturer = "Midway"
	Mills                Manufacturer = "Mills Novelty Company"
	NSM                  Manufacturer = "NSM"
	Nintendo             Manufacturer = "Nintendo"
	NuovaBellGames       Manufacturer = "Nuova Bell Games"
	OriginalGame         Manufacturer = "Original"
	PAMCO                Manufacturer = "PAMCO"
	Pace                 Manufacturer = "Pace"
	Peo                  Manufacturer = "Peo"
	Petaco               Manufacturer = "Petaco"
	Peyper               Manufacturer = "Peyper"
	Pierce               Manufacturer = "Pierce"
	PinballDreams        Manufacturer = "Pinball Dreams"
	Pinstar              Manufacturer = "Pinstar"
	Pinventions          Manufacturer = "Pinventions"
	Playmatic            Manufacturer = "Playmatic"
	ProfessionalPinball  Manufacturer = "Professional Pinball"
	QuetzalPinball       Manufacturer = "Quetzal Pinball"
	Rally                Manufacturer = "Rally"
	Recel                Manufacturer = "Recel"
	RecreativosFranco    Manufacturer = "Recreativos Franco"
	RockOla              Manufacturer = "Rock-ola"
	Rowamet              Manufacturer = "Rowamet"
	Sega                 Manufacturer = "Sega"
	Segasa               Manufacturer = "Segasa"
	Sleic                Manufacturer = "Sleic"
	Sonic                Manufacturer = "Sonic"
	Spinball             Manufacturer = "Spinball S.A.L."
	Spooky               Manufacturer = "Spooky Pinball"
	Sportmatic           Manufacturer = "Sport matic"
	Staal                Manufacturer = "Staal"
	Stern                Manufacturer = "Stern"
	Stoner               Manufacturer = "Stoner"
	Taito                Manufacturer = "Taito"
	TaitoBrasil          Manufacturer = "Taito do Brasil"
	Tecnoplay            Manufacturer = "Tecnoplay"
	Tekhan               Manufacturer = "Tekhan"
	TiltMovie            Manufacturer = "Tilt Movie"
	Unidesa              Manufacturer = "Unidesa"
	United               Manufacturer = "United"
	VideoDens            Manufacturer = "Video Dens"
	WalterSteiner        Manufacturer = "Walter Steiner"
	WhizBang             Manufacturer = "WhizBang Pinball"
	Wico                 Manufacturer = "Wico"
	Williams             Manufacturer = "Williams"
	Zaccaria             Manufacturer = "Zaccaria"
	ZenStudios           Manufacturer = "Zen Studios"
	NoManufacturer       Manufacturer = ""
	UnknownManufacturer  Manufacturer = "unknown"
)

var manufacturers = func() map[Manufacturer]struct{} {
	all := []Manufacturer{
		APirmischer, ABT, Abbey, AlvinG, AppleTime, Arkon, AstroGames,
		Atari, Automatic, Automaticos, Bally, Barok, Belgamko, BellGames,
		Benchmark, BillPort, Brunswick, CICPlay, Capcom, ChicagoCoin,
		Cirsa, Codemasters, Culik, CunningDevelopments, DataEast, Daval,
		DigitalIllusions, DozingCatSoftware, Durham, Electromatic, Emagar,
		Exhibit, FabulousFantasies, Fipermatic, GamePlan, Geiger, Genco,
		Gottlieb, GrandProducts, Hankin, HiSkor, Hutchison, IDSA,
		InOutdoor, Inder, Interflip, InternationalConcept, JEsteban,
		JFLinck, JPSeeburg, Jennings, Jocmatic, Joctronic, JuegosPopulares,
		Keeney, Komaya, LTDBrasil, MAC, MarbleGames, Maresa, Maxis,
		Microsoft, Midway, Mills, NSM, Nintendo, NuovaBellGames,
		OriginalGame, PAMCO, Pace, Peo, Petaco, Peyper, Pierce,
		PinballDreams, Pinstar, Pinventions, Playmatic,
		ProfessionalPinball, QuetzalPinball, Rally, Recel,
		RecreativosFranco, RockOla, Rowamet, Sega, Segasa, Sleic, Sonic,
		Spinball, Spooky, Sportmatic, Staal, Stern, Stoner, Taito,
		TaitoBrasil, Tecnoplay, Tekhan, TiltMovie, Unidesa, United,
		VideoDens, WalterSteiner, WhizBang, Wico, Williams, Zaccaria,
		ZenStudios, NoManufacturer, UnknownManufacturer,
	}
	m := make(map[Manufacturer]struct{}, len(all))
	for _, v := range all {
		m[v] = struct{}{}
	}
	return m
}()

// manufacturerAliases maps the reference database's full corporate names
// onto the catalog enumeration.
var manufacturerAliases = map[string]Manufacturer{
	"A.B.T. Manufacturing Company":                       ABT,
	"Alvin G. and Company":                               AlvinG,
	"Arkon Automaten, GmbH":                              Arkon,
	"Astro Games Incorporated":                           AstroGames,
	"Atari, Incorporated":                                Atari,
	"Talleres del Llobregat S.A. [Automaticos]":          Automaticos,
	"Automaticos MonteCarlo":                             Automaticos,
	"Automaticos C.M.C.":                                 Automaticos,
	"Automatic Industries, Incorporated":                 Automatic,
	"Automatic Industries, Ltd.":                         Automatic,
	"Bally Manufacturing Corporation":                    Bally,
	"Bally Midway Manufacturing Company":                 Bally,
	"Midway Manufacturing Company, a subsidiary of WMS Industries, Incorporated": Bally,
	"Barok Company": Barok,
	"Briarwood, A Division Of Brunswick Manufacturing Company": Brunswick,
	"Brunswick Manufacturing Company":                          Brunswick,
	"Capcom Coin-Op, Incorporated":                             Capcom,
	"Chicago Coin Machine Manufacturing Company":               ChicagoCoin,
	"CIC Play, S.A.":                                           CICPlay,
	"Data East Pinball, Incorporated":                          DataEast,
	"Daval Manufacturing Co.":                                  Daval,
	"G.B. Daval Company Inc.":                                  Daval,
	"Electromatic Brasil":                                      Electromatic,
	"Eusebio Martinez Garcia":                                  Emagar,
	"Exhibit Supply Company":                                   Exhibit,
	"Game Plan, Incorporated":                                  GamePlan,
	"Geiger-Automatenbau GmbH":                                 Geiger,
	"Genco Manufacturing Company":                              Genco,
	"D. Gottlieb & Company":                                    Gottlieb,
	"D. Gottlieb & Company, a Columbia Pictures Industries Company": Gottlieb,
	"Premier Technology":                            Gottlieb,
	"Mylstar Electronics, Incorporated":             Gottlieb,
	"Grand Products Incorporated":                   GrandProducts,
	"A. Hankin & Company":                           Hankin,
	"Hi-Skor Amusement Company":                     HiSkor,
	"Hutchison Engineering Company":                 Hutchison,
	"Ideas y Diseños, Sociedad Anónima":             IDSA,
	"In and Outdoor Games Company":                  InOutdoor,
	"Industria (Electromecánica) de Recreativos S.A": Inder,
	"Interflip S. A.":                               Interflip,
	"O. D. Jennings and Company":                    Jennings,
	"J. F. Linck Corp.":                             JFLinck,
	"J. P. Seeburg Corporation":                     JPSeeburg,
	"Juegos Populares, S.A.":                        JuegosPopulares,
	"Jocmatic S.A.":                                 Jocmatic,
	"Joctronic Juegos Electronicos S.A.":            Joctronic,
	"J. H. Keeney and Company Incorporated":         Keeney,
	"LTD do Brasil Diversões Eletrônicas Ltda":      LTDBrasil,
	"Maquinas Automaticas Computerizadas, S.A.":     MAC,
	"Maquinas Recreativas Sociedad Anonima":         Maresa,
	"Midway Manufacturing Company":                  Midway,
	"NSM Apparatebau KG":                            NSM,
	"Pace Manufacturing Company Incorporated":       Pace,
	"Pacific Amusement Manufacturing Company":       PAMCO,
	"Peo Manufacturing Corporation":                 Peo,
	"Procedimientos Electromagnéticos de Tanteo y Color": Petaco,
	"Pierce Tool and Manufacturing Company":              Pierce,
	"Rally a.k.a. Rally Play Company":                    Rally,
	"Recel S. A.":                                        Recel,
	"Rock-ola Manufacturing Corporation":                 RockOla,
	"Rowamet Indústria Eletrometalúrgica LTDA":           Rowamet,
	"Sega Pinball, Incorporated":                         Sega,
	"Sega Enterprises, Ltd.":                             Sega,
	"Sega of America":                                    Sega,
	"Creaciones e Investigaciones Electrónicas, Sociedad Limitada": Sleic,
	"Segasa d.b.a. Sonic":                     Sonic,
	"Spinball":                                Spinball,
	"Spooky Pinball LLC":                      Spooky,
	"Sport matic, S.A.":                       Sportmatic,
	"Staal Society":                           Staal,
	"Stern Pinball, Incorporated":             Stern,
	"Stern Electronics, Incorporated":         Stern,
	"Stoner Manufacturing Company":            Stoner,
	"U.S Tehkan Inc.":                         Tekhan,
	"Taito do Brasil, a division of Taito, Japan": TaitoBrasil,
	"Mecatronics, a.k.a. Taito (Brazil), a division of Taito": TaitoBrasil,
	"United Manufacturing Company":                            United,
	"Universal de Desarrollos Electronicos, S.A.":             Unidesa,
	"Video Dens, S.A.":                                        VideoDens,
	"Wico Corporation":                                        Wico,
	"Williams Electronics, Incorporated":                      Williams,
	"Williams Electronic Manufacturing Corporation":           Williams,
	"Williams Manufacturing Company":                          Williams,
	"Williams Electronics Games, Incorporated, a subsidiary of WMS Ind., Incorporated": Williams,
}

// ParseManufacturer resolves a name to the closed enumeration, accepting
// historical aliases. Unknown names are an error; the catalog must not
// silently grow new manufacturers.
func ParseManufacturer(s string) (Manufacturer, error) {
	m := Manufacturer(s)
	if _, ok := manufacturers[m]; ok {
		return m, nil
	}
	if m, ok := manufacturerAliases[s]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown manufacturer %q", s)
}

// LookupManufacturer is the lenient form used for external reference data:
// names that resolve to nothing become UnknownManufacturer.
func LookupManufacturer(s string) Manufacturer {
	m, err := ParseManufacturer(s)
	if err != nil {
		return UnknownManufacturer
	}
	return m
}

// ShouldHaveIPDBEntry reports whether games by this manufacturer are
// expected to have a reference database entry. Purely digital originals
// never do.
func (m Manufacturer) ShouldHaveIPDBEntry() bool {
	switch m {
	case ZenStudios, OriginalGame:
		return false
	default:
		return true
	}
}

func (m *Manufacturer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseManufacturer(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
