package seed

import (
	"fmt"
	"math/rand/v2"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
)

// Constants for ranking generation.
const (
	topPoints          = 11830
	pointsStepMin      = 40
	pointsStepRange    = 360
	movementSpread     = 11 // movement drawn from [-5, 5]
	playedMin          = 12
	playedRange        = 14
	syntheticIDBase    = 900000
	syntheticCountries = 4
)

// DefaultSeed is the random seed used when WithSeed is not given.
const DefaultSeed uint64 = 1

// Dataset is everything Write stores.
type Dataset struct {
	Categories   []model.Category
	Competitions []model.Competition
	Complexes    []model.Complex
	Venues       []model.Venue
	Competitors  []model.Competitor
	Rankings     []model.CompetitorRanking
}

// Option configures Generate.
type Option func(*generator)

type generator struct {
	seed      uint64
	synthetic int
}

// WithSeed fixes the random source; equal seeds give equal datasets.
func WithSeed(seed uint64) Option {
	return func(g *generator) { g.seed = seed }
}

// WithSyntheticCompetitors appends n generated ranked competitors.
func WithSyntheticCompetitors(n int) Option {
	return func(g *generator) {
		if n > 0 {
			g.synthetic = n
		}
	}
}

type player struct {
	name, country, code, abbr string
}

// Ranked players in ranking order. The doubles pair carries no country.
var players = []player{
	{"Sinner, Jannik", "Italy", "ITA", "SIN"},
	{"Alcaraz, Carlos", "Spain", "ESP", "ALC"},
	{"Zverev, Alexander", "Germany", "DEU", "ZVE"},
	{"Fritz, Taylor", "USA", "USA", "FRI"},
	{"Draper, Jack", "Great Britain", "GBR", "DRA"},
	{"Djokovic, Novak", "Serbia", "SRB", "DJO"},
	{"de Minaur, Alex", "Australia", "AUS", "DEM"},
	{"Ruud, Casper", "Norway", "NOR", "RUU"},
	{"Medvedev, Daniil", "Russia", "RUS", "MED"},
	{"Rune, Holger", "Denmark", "DNK", "RUN"},
	{"Paul, Tommy", "USA", "USA", "PAU"},
	{"Musetti, Lorenzo", "Italy", "ITA", "MUS"},
	{"Tsitsipas, Stefanos", "Greece", "GRC", "TSI"},
	{"Shelton, Ben", "USA", "USA", "SHE"},
	{"Fils, Arthur", "France", "FRA", "FIL"},
	{"Mensik, Jakub", "Czechia", "CZE", "MEN"},
	{"Sabalenka, Aryna", "Belarus", "BLR", "SAB"},
	{"Swiatek, Iga", "Poland", "POL", "SWI"},
	{"Gauff, Coco", "USA", "USA", "GAU"},
	{"Paolini, Jasmine", "Italy", "ITA", "PAO"},
	{"Rybakina, Elena", "Kazakhstan", "KAZ", "RYB"},
	{"Andreeva, Mirra", "Russia", "RUS", "AND"},
	{"Navarro, Emma", "USA", "USA", "NAV"},
	{"Zheng, Qinwen", "China", "CHN", "ZHE"},
	{"Granollers, Marcel / Zeballos, Horacio", "", "", "G/Z"},
}

// unranked appears in competitors only, so inner joins drop it.
var unranked = player{"Nadal, Rafael", "Spain", "ESP", "NAD"}

var synthCountries = [syntheticCountries][2]string{
	{"Argentina", "ARG"}, {"Japan", "JPN"}, {"Canada", "CAN"}, {"Chile", "CHL"},
}

// Generate builds the demo dataset. The catalog fixtures are fixed; ranking
// points, movement and competitions played come from the seeded source.
// Points never increase with rank, rank 1 holds the unique maximum and
// never moves.
func Generate(opts ...Option) Dataset {
	g := &generator{seed: DefaultSeed}
	for _, opt := range opts {
		opt(g)
	}
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))

	ds := Dataset{
		Categories:   categories(),
		Competitions: competitions(),
		Complexes:    complexes(),
		Venues:       venues(),
	}

	all := append([]player(nil), players...)
	for i := 0; i < g.synthetic; i++ {
		c := synthCountries[i%syntheticCountries]
		all = append(all, player{
			name:    fmt.Sprintf("Player %03d", i+1),
			country: c[0],
			code:    c[1],
			abbr:    fmt.Sprintf("P%02d", (i+1)%100),
		})
	}

	points := int64(topPoints)
	for i, p := range all {
		id := fmt.Sprintf("sr:competitor:%d", 225050+i*7)
		if i >= len(players) {
			id = fmt.Sprintf("sr:competitor:%d", syntheticIDBase+i)
		}
		ds.Competitors = append(ds.Competitors, p.competitor(id))

		movement := int64(rng.IntN(movementSpread) - movementSpread/2)
		if i == 0 {
			movement = 0
		}
		ds.Rankings = append(ds.Rankings, model.CompetitorRanking{
			CompetitorID:       id,
			Rank:               int64(i + 1),
			Points:             points,
			Movement:           movement,
			CompetitionsPlayed: int64(playedMin + rng.IntN(playedRange)),
		})
		points -= int64(pointsStepMin + rng.IntN(pointsStepRange))
		if points < 1 {
			points = 1
		}
	}
	ds.Competitors = append(ds.Competitors, unranked.competitor("sr:competitor:14486"))
	return ds
}

func (p player) competitor(id string) model.Competitor {
	c := model.Competitor{ID: id, Name: p.name, Abbreviation: optional(p.abbr)}
	c.Country = optional(p.country)
	c.CountryCode = optional(p.code)
	return c
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return model.Ptr(s)
}

func categories() []model.Category {
	return []model.Category{
		{ID: "sr:category:3", Name: "ATP"},
		{ID: "sr:category:6", Name: "WTA"},
		{ID: "sr:category:72", Name: "Challenger"},
		{ID: "sr:category:785", Name: "ITF Men"},
		{ID: "sr:category:213", Name: "ITF Women"},
	}
}

func competitions() []model.Competition {
	c := func(id, name, typ, gender, category, parent string) model.Competition {
		return model.Competition{
			ID:         "sr:competition:" + id,
			Name:       name,
			Type:       optional(typ),
			Gender:     optional(gender),
			CategoryID: "sr:category:" + category,
			ParentID:   optional(parent),
		}
	}
	return []model.Competition{
		c("2555", "Australian Open Men Singles", "singles", "men", "3", ""),
		c("2559", "Australian Open Men Doubles", "doubles", "men", "3", ""),
		c("2567", "Australian Open Women Singles", "singles", "women", "6", ""),
		c("2571", "Australian Open Women Doubles", "doubles", "women", "6", ""),
		c("2575", "Australian Open Mixed Doubles", "mixed", "mixed", "3", ""),
		c("2579", "Wimbledon Men Singles", "singles", "men", "3", ""),
		c("2583", "Wimbledon Women Singles", "singles", "women", "6", ""),
		c("2587", "Wimbledon Men Singles Qualification", "singles", "men", "3", "sr:competition:2579"),
		c("2591", "Wimbledon Women Singles Qualification", "singles", "women", "6", "sr:competition:2583"),
		c("2625", "Challenger Bergamo, Italy Men Singles", "singles", "men", "72", ""),
		c("2629", "Challenger Bergamo, Italy Men Doubles", "doubles", "men", "72", ""),
		c("2633", "ITF Monastir Men Singles", "singles", "men", "785", ""),
		c("2637", "ITF Monastir Women Singles", "singles", "women", "213", ""),
		c("2641", "ITF Monastir Women Doubles", "doubles", "women", "213", ""),
		c("2699", "Hopman Cup", "mixed", "", "3", ""),
	}
}

func complexes() []model.Complex {
	return []model.Complex{
		{ID: "sr:complex:705", Name: model.Ptr("Melbourne Park")},
		{ID: "sr:complex:1234", Name: model.Ptr("All England Lawn Tennis Club")},
		{ID: "sr:complex:3380", Name: model.Ptr("Foro Italico")},
		{ID: "sr:complex:4560", Name: model.Ptr("Monastir Tennis Academy")},
		{ID: "sr:complex:9999", Name: model.Ptr("Rod Laver Centre")},
	}
}

func venues() []model.Venue {
	v := func(id, name, city, country, code, tz, complexID string) model.Venue {
		return model.Venue{
			ID:          "sr:venue:" + id,
			Name:        optional(name),
			CityName:    optional(city),
			CountryName: optional(country),
			CountryCode: optional(code),
			Timezone:    optional(tz),
			ComplexID:   optional(complexID),
		}
	}
	return []model.Venue{
		v("11", "Rod Laver Arena", "Melbourne", "Australia", "AUS", "Australia/Melbourne", "sr:complex:705"),
		v("12", "Margaret Court Arena", "Melbourne", "Australia", "AUS", "Australia/Melbourne", "sr:complex:705"),
		v("13", "John Cain Arena", "Melbourne", "Australia", "AUS", "Australia/Melbourne", "sr:complex:705"),
		v("21", "Centre Court", "London", "United Kingdom", "GBR", "Europe/London", "sr:complex:1234"),
		v("22", "No. 1 Court", "London", "United Kingdom", "GBR", "Europe/London", "sr:complex:1234"),
		v("31", "Campo Centrale", "Rome", "Italy", "ITA", "Europe/Rome", "sr:complex:3380"),
		v("41", "Court 1", "Monastir", "Tunisia", "TUN", "Africa/Tunis", "sr:complex:4560"),
		v("51", "Campo 3", "Bergamo", "Italy", "ITA", "Europe/Rome", "sr:complex:404"),
	}
}
