// Package savetest builds save documents shaped like the game's XML for tests.
package savetest

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"

	"github.com/cory-johannsen/checkup/internal/save"
)

type pet struct {
	kind       string
	name       string
	friendship int
}

// Builder accumulates player state and renders it as a save.Element tree.
// Setting the same key twice keeps the last value.
type Builder struct {
	scalars     map[string]string
	experience  []int
	friendship  map[string]int
	cookKnown   map[string]int
	cooked      map[string]int
	craftKnown  map[string]int
	fish        map[string]int
	shipped     map[string]int
	artifacts   map[string]int
	minerals    map[string]int
	donations   []string
	kills       map[string]int
	stats       map[string]string
	mail        map[string]bool
	events      map[string]bool
	achieve     map[string]bool
	kids        []string
	pets        []pet
	year        string
	season      string
	day         string
	oldFriendly bool
}

// New starts a save for the named farmer and farm.
func New(farmer, farm string) *Builder {
	return &Builder{
		scalars:    map[string]string{"name": farmer, "farmName": farm},
		friendship: map[string]int{},
		cookKnown:  map[string]int{},
		cooked:     map[string]int{},
		craftKnown: map[string]int{},
		fish:       map[string]int{},
		shipped:    map[string]int{},
		artifacts:  map[string]int{},
		minerals:   map[string]int{},
		kills:      map[string]int{},
		stats:      map[string]string{},
		mail:       map[string]bool{},
		events:     map[string]bool{},
		achieve:    map[string]bool{},
	}
}

func (b *Builder) scalar(tag string, v int) *Builder {
	b.scalars[tag] = strconv.Itoa(v)
	return b
}

// Money sets current gold.
func (b *Builder) Money(n int) *Builder { return b.scalar("money", n) }

// TotalMoneyEarned sets lifetime earnings.
func (b *Builder) TotalMoneyEarned(n int) *Builder { return b.scalar("totalMoneyEarned", n) }

// DeepestMineLevel sets the deepest floor reached.
func (b *Builder) DeepestMineLevel(n int) *Builder { return b.scalar("deepestMineLevel", n) }

// HouseUpgradeLevel sets the farmhouse level.
func (b *Builder) HouseUpgradeLevel(n int) *Builder { return b.scalar("houseUpgradeLevel", n) }

// MillisecondsPlayed sets play time.
func (b *Builder) MillisecondsPlayed(n int) *Builder { return b.scalar("millisecondsPlayed", n) }

// Spouse sets the spouse's name.
func (b *Builder) Spouse(name string) *Builder {
	b.scalars["spouse"] = name
	return b
}

// RustyKey grants the sewer key.
func (b *Builder) RustyKey() *Builder {
	b.scalars["hasRustyKey"] = "true"
	return b
}

// SkullKey grants the Skull Cavern key.
func (b *Builder) SkullKey() *Builder {
	b.scalars["hasSkullKey"] = "true"
	return b
}

// Experience sets experience points in skill-slot order.
func (b *Builder) Experience(xp ...int) *Builder {
	b.experience = append([]int(nil), xp...)
	return b
}

// QuestsCompleted sets the quest counter.
func (b *Builder) QuestsCompleted(n int) *Builder {
	b.stats["questsCompleted"] = strconv.Itoa(n)
	return b
}

// Friendship sets friendship points for a relation.
func (b *Builder) Friendship(name string, points int) *Builder {
	b.friendship[name] = points
	return b
}

// LegacyFriendships renders friendships in the pre-friendshipData layout.
func (b *Builder) LegacyFriendships() *Builder {
	b.oldFriendly = true
	return b
}

// CookingKnown records a known cooking recipe by the name the save uses.
func (b *Builder) CookingKnown(names ...string) *Builder {
	for _, n := range names {
		b.cookKnown[n] = 0
	}
	return b
}

// Cooked records a dish cooked n times.
func (b *Builder) Cooked(id string, n int) *Builder {
	b.cooked[id] = n
	return b
}

// CraftingKnown records a known crafting recipe crafted n times.
func (b *Builder) CraftingKnown(name string, n int) *Builder {
	b.craftKnown[name] = n
	return b
}

// FishCaught records n catches of a fish.
func (b *Builder) FishCaught(id string, n int) *Builder {
	b.fish[id] = n
	return b
}

// Shipped records n shipments of an item.
func (b *Builder) Shipped(id string, n int) *Builder {
	b.shipped[id] = n
	return b
}

// ArtifactFound records an artifact as found.
func (b *Builder) ArtifactFound(ids ...string) *Builder {
	for _, id := range ids {
		b.artifacts[id] = 1
	}
	return b
}

// MineralFound records a mineral as found.
func (b *Builder) MineralFound(ids ...string) *Builder {
	for _, id := range ids {
		b.minerals[id] = 1
	}
	return b
}

// Donate places items in the museum.
func (b *Builder) Donate(ids ...string) *Builder {
	b.donations = append(b.donations, ids...)
	return b
}

// Kills records kills of a specific monster.
func (b *Builder) Kills(monster string, n int) *Builder {
	b.kills[monster] = n
	return b
}

// Mail records received mail flags.
func (b *Builder) Mail(flags ...string) *Builder {
	for _, f := range flags {
		b.mail[f] = true
	}
	return b
}

// Event records seen events.
func (b *Builder) Event(ids ...string) *Builder {
	for _, id := range ids {
		b.events[id] = true
	}
	return b
}

// Achievement records unlocked achievements.
func (b *Builder) Achievement(ids ...string) *Builder {
	for _, id := range ids {
		b.achieve[id] = true
	}
	return b
}

// Child adds a child to the farmhouse.
func (b *Builder) Child(name string) *Builder {
	b.kids = append(b.kids, name)
	return b
}

// Pet adds an animal of kind ("Cat", "Dog" or "Horse") to the farm.
func (b *Builder) Pet(kind, name string, friendship int) *Builder {
	b.pets = append(b.pets, pet{kind: kind, name: name, friendship: friendship})
	return b
}

// Date sets the calendar date.
func (b *Builder) Date(year int, season string, day int) *Builder {
	b.year, b.season, b.day = strconv.Itoa(year), season, strconv.Itoa(day)
	return b
}

// Build renders the document element.
func (b *Builder) Build() *save.Element {
	player := save.E("player")
	for _, k := range sortedKeys(b.scalars) {
		player.Append(save.T(k, b.scalars[k]))
	}
	if b.experience != nil {
		xp := save.E("experiencePoints")
		for _, v := range b.experience {
			xp.Append(save.T("int", strconv.Itoa(v)))
		}
		player.Append(xp)
	}
	if b.oldFriendly {
		player.Append(dict("friendships", "string", b.friendship, arrayValue))
	} else {
		player.Append(dict("friendshipData", "string", b.friendship, func(v int) *save.Element {
			return save.E("Friendship", save.T("Points", strconv.Itoa(v)))
		}))
	}
	player.Append(
		dict("cookingRecipes", "string", b.cookKnown, intValue),
		dict("recipesCooked", "int", b.cooked, intValue),
		dict("craftingRecipes", "string", b.craftKnown, intValue),
		dict("fishCaught", "int", b.fish, arrayValue),
		dict("basicShipped", "int", b.shipped, intValue),
		dict("archaeologyFound", "int", b.artifacts, arrayValue),
		dict("mineralsFound", "int", b.minerals, intValue),
		set("mailReceived", "string", b.mail),
		set("eventsSeen", "int", b.events),
		set("achievements", "int", b.achieve),
	)
	stats := save.E("stats")
	for _, k := range sortedKeys(b.stats) {
		stats.Append(save.T(k, b.stats[k]))
	}
	stats.Append(dict("specificMonstersKilled", "string", b.kills, intValue))
	player.Append(stats)

	farm := save.E("GameLocation", save.T("name", "Farm")).WithAttr("xsi:type", "Farm")
	farmChars := save.E("characters")
	for _, p := range b.pets {
		farmChars.Append(save.E("NPC",
			save.T("name", p.name),
			save.T("friendshipTowardFarmer", strconv.Itoa(p.friendship)),
		).WithAttr("xsi:type", p.kind))
	}
	farm.Append(farmChars)

	house := save.E("GameLocation", save.T("name", "FarmHouse")).WithAttr("xsi:type", "FarmHouse")
	houseChars := save.E("characters")
	for _, k := range b.kids {
		houseChars.Append(save.E("NPC", save.T("name", k)).WithAttr("xsi:type", "Child"))
	}
	house.Append(houseChars)

	museum := save.E("GameLocation", save.T("name", "ArchaeologyHouse")).WithAttr("xsi:type", "LibraryMuseum")
	pieces := save.E("museumPieces")
	for i, id := range b.donations {
		pieces.Append(save.E("item",
			save.E("key", save.E("Vector2", save.T("X", strconv.Itoa(i)), save.T("Y", "0"))),
			save.E("value", save.T("int", id)),
		))
	}
	museum.Append(pieces)

	root := save.E(save.RootElement, player, save.E("locations", farm, house, museum))
	if b.year != "" {
		root.Append(save.T("year", b.year), save.T("currentSeason", b.season), save.T("dayOfMonth", b.day))
	}
	return root
}

// XML serializes the built document as a save file.
func (b *Builder) XML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := toEtree(b.Build())
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	doc.SetRoot(root)
	doc.Indent(2)
	return doc.WriteToBytes()
}

func toEtree(e *save.Element) *etree.Element {
	out := etree.NewElement(e.Tag)
	for _, k := range sortedKeys(e.Attrs) {
		out.CreateAttr(k, e.Attrs[k])
	}
	if e.Value != "" {
		out.SetText(e.Value)
	}
	for _, kid := range e.Kids {
		out.AddChild(toEtree(kid))
	}
	return out
}

func intValue(v int) *save.Element { return save.T("int", strconv.Itoa(v)) }

func arrayValue(v int) *save.Element {
	return save.E("ArrayOfInt", save.T("int", strconv.Itoa(v)), save.T("int", "0"))
}

func dict(tag, keyElem string, m map[string]int, value func(int) *save.Element) *save.Element {
	out := save.E(tag)
	for _, k := range sortedKeys(m) {
		out.Append(save.E("item",
			save.E("key", save.T(keyElem, k)),
			save.E("value", value(m[k])),
		))
	}
	return out
}

func set(tag, elem string, m map[string]bool) *save.Element {
	out := save.E(tag)
	for _, k := range sortedKeys(m) {
		out.Append(save.T(elem, k))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
