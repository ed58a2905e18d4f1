package cards

import "strings"

// Category is a display/sort grouping tag. Classification never affects
// filter semantics, only ordering and presentation.
type Category string

const (
	CategoryPokemon       Category = "pokemon"
	CategorySupporter     Category = "trainer/supporter"
	CategoryItem          Category = "trainer/item"
	CategoryTool          Category = "trainer/tool"
	CategoryToolAceSpec   Category = "trainer/tool/acespec"
	CategoryStadium       Category = "trainer/stadium"
	CategoryEnergyBasic   Category = "energy/basic"
	CategoryEnergySpecial Category = "energy/special"
)

// categoryRank orders categories for report sorting: pokemon first, then
// trainers by subtype, then energy.
var categoryRank = map[Category]int{
	CategoryPokemon:       0,
	CategorySupporter:     1,
	CategoryItem:          2,
	CategoryTool:          3,
	CategoryToolAceSpec:   4,
	CategoryStadium:       5,
	CategoryEnergyBasic:   6,
	CategoryEnergySpecial: 7,
}

// Rank returns the sort position of a category. Unknown categories sort last.
func Rank(c Category) int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryRank)
}

// Keyword tables below stand in for authoritative per-card metadata. They are
// plain data so they can be swapped for a real card-database lookup without
// touching callers.

// supporterNames is a curated list of supporter card names. Matched as a
// whole-name prefix so "Boss's Orders (Ghetsis)" still classifies.
var supporterNames = []string{
	"arven",
	"boss's orders",
	"brigette",
	"cheren",
	"colress's experiment",
	"cynthia",
	"cyrus",
	"giacomo",
	"guzma",
	"iono",
	"jacq",
	"judge",
	"lance",
	"lillie",
	"lusamine",
	"marnie",
	"melony",
	"miriam",
	"n's resolve",
	"nemona",
	"penny",
	"professor sada's vitality",
	"professor turo's scenario",
	"professor's research",
	"raihan",
	"roxanne",
	"serena",
	"team yell's cheer",
	"thorton",
	"tulip",
	"youngster",
}

// stadiumKeywords mark stadium cards by common naming patterns.
var stadiumKeywords = []string{
	"stadium",
	"arena",
	"academy",
	"gym",
	"temple",
	"tower",
	"lab",
	"laboratory",
	"beach court",
	"town store",
	"pokestop",
	"lost city",
	"collapsed stadium",
	"artazon",
	"mesagoza",
	"levincia",
	"area zero underdepths",
}

// toolKeywords mark attached tool cards.
var toolKeywords = []string{
	"belt",
	"band",
	"cape",
	"charm",
	"helmet",
	"vest",
	"weight",
	"cloak",
	"headset",
	"forest seal stone",
	"hero's cape",
	"technical machine",
}

// aceSpecKeywords mark ACE SPEC tools, which get their own grouping.
var aceSpecKeywords = []string{
	"ace spec",
	"prime catcher",
	"master ball",
	"computer search",
	"maximum belt",
	"neo upper energy",
	"survival brace",
	"awakening drum",
}

// basicEnergyNames are the eleven basic energy cards.
var basicEnergyNames = []string{
	"grass energy",
	"fire energy",
	"water energy",
	"lightning energy",
	"psychic energy",
	"fighting energy",
	"darkness energy",
	"metal energy",
	"fairy energy",
	"basic grass energy",
	"basic fire energy",
	"basic water energy",
	"basic lightning energy",
	"basic psychic energy",
	"basic fighting energy",
	"basic darkness energy",
	"basic metal energy",
}

// Hints carries whatever explicit metadata the input format supplied. All
// fields are optional; classification falls back to name heuristics.
type Hints struct {
	Category  string   // explicit category field, e.g. "trainer/item"
	Supertype string   // e.g. "Pokémon", "Trainer", "Energy"
	Subtypes  []string // e.g. ["Supporter"], ["Item", "Tool"]
}

// Classify returns the category slug for a card. Priority order: explicit
// category field, explicit type fields, then keyword/name heuristics. Ties
// default to pokemon.
func Classify(name string, hints Hints) Category {
	if c, ok := categoryFromExplicit(hints.Category); ok {
		return c
	}
	if c, ok := categoryFromTypes(name, hints.Supertype, hints.Subtypes); ok {
		return c
	}
	return categoryFromName(name)
}

// ClassifyName classifies using the card name alone. Decklist exports rarely
// carry type metadata, so this is the common path.
func ClassifyName(name string) Category {
	return Classify(name, Hints{})
}

func categoryFromExplicit(raw string) (Category, bool) {
	slug := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := categoryRank[slug]; ok {
		return slug, true
	}
	return "", false
}

func categoryFromTypes(name, supertype string, subtypes []string) (Category, bool) {
	super := strings.ToLower(strings.TrimSpace(supertype))
	subs := make(map[string]bool, len(subtypes))
	for _, s := range subtypes {
		subs[strings.ToLower(strings.TrimSpace(s))] = true
	}

	switch super {
	case "pokémon", "pokemon":
		return CategoryPokemon, true
	case "energy":
		if subs["special"] {
			return CategoryEnergySpecial, true
		}
		return CategoryEnergyBasic, true
	case "trainer":
		switch {
		case subs["supporter"]:
			return CategorySupporter, true
		case subs["stadium"]:
			return CategoryStadium, true
		case subs["pokémon tool"] || subs["pokemon tool"] || subs["tool"]:
			if subs["ace spec"] {
				return CategoryToolAceSpec, true
			}
			return CategoryTool, true
		case subs["item"]:
			return CategoryItem, true
		default:
			return CategoryItem, true
		}
	}
	return "", false
}

func categoryFromName(name string) Category {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return CategoryPokemon
	}

	if c, ok := energyFromName(lower); ok {
		return c
	}
	if trainer, sub := trainerFromName(lower); trainer {
		return sub
	}
	return CategoryPokemon
}

func energyFromName(lower string) (Category, bool) {
	if !strings.Contains(lower, "energy") {
		return "", false
	}
	for _, basic := range basicEnergyNames {
		if lower == basic {
			return CategoryEnergyBasic, true
		}
	}
	// Pokemon with Energy in an attack name don't reach here; only card
	// names ending in "energy" are energy cards.
	if strings.HasSuffix(lower, "energy") {
		return CategoryEnergySpecial, true
	}
	return "", false
}

func trainerFromName(lower string) (bool, Category) {
	for _, supporter := range supporterNames {
		if lower == supporter || strings.HasPrefix(lower, supporter+" (") {
			return true, CategorySupporter
		}
	}
	for _, kw := range aceSpecKeywords {
		if strings.Contains(lower, kw) {
			return true, CategoryToolAceSpec
		}
	}
	for _, kw := range stadiumKeywords {
		if strings.Contains(lower, kw) {
			return true, CategoryStadium
		}
	}
	for _, kw := range toolKeywords {
		if strings.Contains(lower, kw) {
			return true, CategoryTool
		}
	}
	for _, kw := range itemKeywords {
		if strings.Contains(lower, kw) {
			return true, CategoryItem
		}
	}
	return false, CategoryPokemon
}

// itemKeywords mark the broad remainder of trainer items.
var itemKeywords = []string{
	"ball",
	"rod",
	"catcher",
	"switch",
	"rope",
	"candy",
	"hammer",
	"stretcher",
	"scoop",
	"trolley",
	"vacuum",
	"retrieval",
	"pokégear",
	"pokegear",
	"energy search",
	"nest",
	"earthen vessel",
	"counter",
	"letter",
	"capsule",
	"carts",
	"machine",
	"potion",
	"incense",
	"pal pad",
	"town map",
	"battle vip pass",
	"cram-o-matic",
	"trekking shoes",
}
