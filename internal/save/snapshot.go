package save

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDocument is returned when a document is not shaped like a save
// game at all. Individual missing fields are never errors.
var ErrMalformedDocument = errors.New("malformed save document")

// RootElement is the tag of a save game's document element.
const RootElement = "SaveGame"

// museumLocationType is the xsi:type of the location holding donations.
const museumLocationType = "LibraryMuseum"

// Skill indexes the experiencePoints array.
type Skill int

const (
	Farming Skill = iota
	Fishing
	Foraging
	Mining
	Combat
	Luck
)

// SkillCount is the number of experience slots a save carries.
const SkillCount = 6

var skillNames = [SkillCount]string{"Farming", "Fishing", "Foraging", "Mining", "Combat", "Luck"}

// String returns the skill's display name.
func (s Skill) String() string {
	if s < 0 || int(s) >= SkillCount {
		return fmt.Sprintf("Skill(%d)", int(s))
	}
	return skillNames[s]
}

// PersonKind discriminates the entities found in location character lists.
type PersonKind int

const (
	KindVillager PersonKind = iota
	KindChild
	KindPet
	KindHorse
)

// Person is a character entity read from a location.
type Person struct {
	Kind       PersonKind
	Name       string
	Location   string
	Friendship int
}

// Date is the in-game calendar date.
type Date struct {
	Year   int
	Season string
	Day    int
}

// Snapshot is a read-only, typed view over one save document.
//
// Every getter tolerates absent nodes and returns its zero value. Getters that
// return maps or slices return fresh values the caller may keep.
type Snapshot struct {
	root   Node
	player Node
}

// NewSnapshot wraps doc.
//
// Precondition: doc is the document element of a parsed save.
// Postcondition: Returns a Snapshot, or an error wrapping ErrMalformedDocument
// when doc is nil, is not a SaveGame element, or has no player element.
func NewSnapshot(doc Node) (*Snapshot, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}
	if doc.Name() != RootElement {
		return nil, fmt.Errorf("%w: root element is %q, want %q", ErrMalformedDocument, doc.Name(), RootElement)
	}
	player := doc.Child("player")
	if player == nil {
		return nil, fmt.Errorf("%w: no player element", ErrMalformedDocument)
	}
	return &Snapshot{root: doc, player: player}, nil
}

// FarmerName returns the player's name.
func (s *Snapshot) FarmerName() string { return text(at(s.player, "name")) }

// FarmName returns the farm's name without the " Farm" suffix.
func (s *Snapshot) FarmName() string { return text(at(s.player, "farmName")) }

// Money returns the player's current gold.
func (s *Snapshot) Money() int { return atoi(text(at(s.player, "money"))) }

// TotalMoneyEarned returns lifetime earnings.
func (s *Snapshot) TotalMoneyEarned() int { return atoi(text(at(s.player, "totalMoneyEarned"))) }

// DeepestMineLevel returns the deepest floor reached; floors past 120 are in
// the Skull Cavern.
func (s *Snapshot) DeepestMineLevel() int { return atoi(text(at(s.player, "deepestMineLevel"))) }

// HouseUpgradeLevel returns the farmhouse upgrade level (0–3).
func (s *Snapshot) HouseUpgradeLevel() int { return atoi(text(at(s.player, "houseUpgradeLevel"))) }

// MillisecondsPlayed returns total play time.
func (s *Snapshot) MillisecondsPlayed() int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(text(at(s.player, "millisecondsPlayed"))), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Experience returns the experience points for every skill slot.
func (s *Snapshot) Experience() [SkillCount]int {
	var out [SkillCount]int
	for i, n := range children(at(s.player, "experiencePoints"), "int") {
		if i >= SkillCount {
			break
		}
		out[i] = atoi(text(n))
	}
	return out
}

// QuestsCompleted returns the number of quests finished.
func (s *Snapshot) QuestsCompleted() int {
	return atoi(text(at(s.player, "stats", "questsCompleted")))
}

// HasRustyKey reports whether the sewer key has been received.
func (s *Snapshot) HasRustyKey() bool { return isTrue(at(s.player, "hasRustyKey")) }

// HasSkullKey reports whether the Skull Cavern key has been found.
func (s *Snapshot) HasSkullKey() bool { return isTrue(at(s.player, "hasSkullKey")) }

// Spouse returns the spouse's name, or "" when unmarried.
func (s *Snapshot) Spouse() string { return strings.TrimSpace(text(at(s.player, "spouse"))) }

// Date returns the current in-game date.
func (s *Snapshot) Date() Date {
	return Date{
		Year:   atoi(text(at(s.root, "year"))),
		Season: text(at(s.root, "currentSeason")),
		Day:    atoi(text(at(s.root, "dayOfMonth"))),
	}
}

// Friendship returns friendship points per relation. Both the friendshipData
// layout and the older friendships layout are understood.
func (s *Snapshot) Friendship() map[string]int {
	if fd := at(s.player, "friendshipData"); fd != nil {
		return readDict(fd, "string", func(v Node) int {
			return atoi(text(at(v, "Friendship", "Points")))
		})
	}
	return readDict(at(s.player, "friendships"), "string", firstOfArray)
}

// CookingRecipesKnown returns known cooking recipes keyed by recipe name.
func (s *Snapshot) CookingRecipesKnown() map[string]int {
	return readDict(at(s.player, "cookingRecipes"), "string", intValue)
}

// RecipesCooked returns cooked dishes keyed by object id.
func (s *Snapshot) RecipesCooked() map[string]int {
	return readDict(at(s.player, "recipesCooked"), "int", intValue)
}

// CraftingRecipesKnown returns known crafting recipes keyed by recipe name,
// valued by the number of times each was crafted.
func (s *Snapshot) CraftingRecipesKnown() map[string]int {
	return readDict(at(s.player, "craftingRecipes"), "string", intValue)
}

// FishCaught returns catch counts keyed by fish id.
func (s *Snapshot) FishCaught() map[string]int {
	return readDict(at(s.player, "fishCaught"), "int", firstOfArray)
}

// BasicShipped returns shipped amounts keyed by item id.
func (s *Snapshot) BasicShipped() map[string]int {
	return readDict(at(s.player, "basicShipped"), "int", intValue)
}

// ArchaeologyFound returns artifacts found keyed by item id.
func (s *Snapshot) ArchaeologyFound() map[string]int {
	return readDict(at(s.player, "archaeologyFound"), "int", firstOfArray)
}

// MineralsFound returns minerals found keyed by item id.
func (s *Snapshot) MineralsFound() map[string]int {
	return readDict(at(s.player, "mineralsFound"), "int", intValue)
}

// MuseumDonations returns the set of item ids placed in the museum.
func (s *Snapshot) MuseumDonations() map[string]bool {
	out := make(map[string]bool)
	for _, loc := range s.locations() {
		if loc.Attr("xsi:type") != museumLocationType {
			continue
		}
		for _, item := range children(at(loc, "museumPieces"), "item") {
			if id := strings.TrimSpace(text(at(item, "value", "int"))); id != "" {
				out[id] = true
			}
		}
	}
	return out
}

// MonstersKilled returns kill counts keyed by specific monster name.
func (s *Snapshot) MonstersKilled() map[string]int {
	return readDict(at(s.player, "stats", "specificMonstersKilled"), "string", intValue)
}

// MailReceived returns the set of mail flags.
func (s *Snapshot) MailReceived() map[string]bool {
	return readSet(at(s.player, "mailReceived"), "string")
}

// EventsSeen returns the set of event ids.
func (s *Snapshot) EventsSeen() map[string]bool {
	return readSet(at(s.player, "eventsSeen"), "int")
}

// Achievements returns the set of unlocked achievement ids.
func (s *Snapshot) Achievements() map[string]bool {
	return readSet(at(s.player, "achievements"), "int")
}

// People returns every character entity found in location data, classified
// by its type discriminator.
func (s *Snapshot) People() []Person {
	var out []Person
	for _, loc := range s.locations() {
		locName := text(at(loc, "name"))
		for _, npc := range children(at(loc, "characters"), "NPC") {
			out = append(out, Person{
				Kind:       kindOf(npc.Attr("xsi:type")),
				Name:       text(at(npc, "name")),
				Location:   locName,
				Friendship: atoi(text(at(npc, "friendshipTowardFarmer"))),
			})
		}
	}
	return out
}

// Children returns the player's children.
func (s *Snapshot) Children() []Person { return s.peopleOfKind(KindChild) }

// Pets returns the farm's pets.
func (s *Snapshot) Pets() []Person { return s.peopleOfKind(KindPet) }

// Horses returns the farm's horses.
func (s *Snapshot) Horses() []Person { return s.peopleOfKind(KindHorse) }

func (s *Snapshot) peopleOfKind(k PersonKind) []Person {
	var out []Person
	for _, p := range s.People() {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

func (s *Snapshot) locations() []Node {
	return children(at(s.root, "locations"), "GameLocation")
}

func kindOf(xsiType string) PersonKind {
	switch xsiType {
	case "Child":
		return KindChild
	case "Pet", "Cat", "Dog":
		return KindPet
	case "Horse":
		return KindHorse
	default:
		return KindVillager
	}
}

// readDict reads a serialized dictionary of <item><key><K/></key><value/></item>
// entries. Entries with an empty key are skipped.
func readDict(n Node, keyElem string, value func(Node) int) map[string]int {
	out := make(map[string]int)
	for _, item := range children(n, "item") {
		key := strings.TrimSpace(text(at(item, "key", keyElem)))
		if key == "" {
			continue
		}
		out[key] = value(at(item, "value"))
	}
	return out
}

func readSet(n Node, elem string) map[string]bool {
	out := make(map[string]bool)
	for _, c := range children(n, elem) {
		if v := strings.TrimSpace(text(c)); v != "" {
			out[v] = true
		}
	}
	return out
}

func intValue(v Node) int { return atoi(text(at(v, "int"))) }

func firstOfArray(v Node) int {
	ints := children(at(v, "ArrayOfInt"), "int")
	if len(ints) == 0 {
		return 0
	}
	return atoi(text(ints[0]))
}

func isTrue(n Node) bool {
	return strings.EqualFold(strings.TrimSpace(text(n)), "true")
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
