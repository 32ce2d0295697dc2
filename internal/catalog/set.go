package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Set bundles every table the evaluators consult.
type Set struct {
	Cooking          *Catalog
	CookingAliases   Aliases
	Crafting         *NameList
	CraftingAliases  Aliases
	Fish             *Catalog
	FishExcluded     *Catalog
	Shipping         *Catalog
	Polyculture      *Catalog
	MonocultureBonus *Catalog
	Artifacts        *Catalog
	Minerals         *Catalog
	Monsters         *MonsterTable
	Grandpa          GrandpaTable

	stardrops []Stardrop
}

// Stardrops returns the stardrop sources in presentation order.
func (s *Set) Stardrops() []Stardrop {
	out := make([]Stardrop, len(s.stardrops))
	copy(out, s.stardrops)
	return out
}

var defaultSet = MustLoad(dataFS)

// Default returns the process-wide catalog set decoded from the embedded data.
func Default() *Set { return defaultSet }

type cookingFile struct {
	Recipes []Entry           `yaml:"recipes"`
	Aliases map[string]string `yaml:"aliases"`
}

type craftingFile struct {
	Recipes []string          `yaml:"recipes"`
	Aliases map[string]string `yaml:"aliases"`
}

type fishFile struct {
	Fish     []Entry `yaml:"fish"`
	Excluded []Entry `yaml:"excluded"`
}

type shippingFile struct {
	Items []Entry `yaml:"items"`
}

type cropsFile struct {
	Polyculture      []Entry `yaml:"polyculture"`
	MonocultureBonus []Entry `yaml:"monoculture_bonus"`
}

type museumFile struct {
	Artifacts []Entry `yaml:"artifacts"`
	Minerals  []Entry `yaml:"minerals"`
}

type monstersFile struct {
	Categories []MonsterCategory `yaml:"categories"`
}

type stardropsFile struct {
	Stardrops []Stardrop `yaml:"stardrops"`
}

type grandpaFile struct {
	Achievements   []Entry `yaml:"achievements"`
	CommunityRooms []Entry `yaml:"community_rooms"`
	CeremonyEvent  string  `yaml:"ceremony_event"`
}

// Load decodes a catalog Set from the data/*.yaml files in fsys.
//
// Precondition: fsys contains data/cooking.yaml, data/crafting.yaml, data/fish.yaml,
// data/shipping.yaml, data/crops.yaml, data/museum.yaml, data/monsters.yaml,
// data/stardrops.yaml and data/grandpa.yaml.
// Postcondition: Returns a fully populated Set or a non-nil error naming the bad file.
func Load(fsys fs.FS) (*Set, error) {
	var (
		cook  cookingFile
		craft craftingFile
		fish  fishFile
		ship  shippingFile
		crops cropsFile
		mus   museumFile
		mon   monstersFile
		star  stardropsFile
		gp    grandpaFile
	)
	files := []struct {
		name string
		out  interface{}
	}{
		{"cooking.yaml", &cook},
		{"crafting.yaml", &craft},
		{"fish.yaml", &fish},
		{"shipping.yaml", &ship},
		{"crops.yaml", &crops},
		{"museum.yaml", &mus},
		{"monsters.yaml", &mon},
		{"stardrops.yaml", &star},
		{"grandpa.yaml", &gp},
	}
	for _, f := range files {
		if err := decodeFile(fsys, "data/"+f.name, f.out); err != nil {
			return nil, err
		}
	}

	s := &Set{
		CookingAliases:  NewAliases(cook.Aliases),
		CraftingAliases: NewAliases(craft.Aliases),
	}
	var err error
	if s.Cooking, err = NewCatalog("cooking", cook.Recipes); err != nil {
		return nil, err
	}
	if s.Crafting, err = NewNameList("crafting", craft.Recipes); err != nil {
		return nil, err
	}
	if s.Fish, err = NewCatalog("fish", fish.Fish); err != nil {
		return nil, err
	}
	if s.FishExcluded, err = NewCatalog("fish_excluded", fish.Excluded); err != nil {
		return nil, err
	}
	for _, e := range fish.Excluded {
		if s.Fish.Contains(e.ID) {
			return nil, fmt.Errorf("catalog fish: %q is both counted and excluded", e.ID)
		}
	}
	if s.Shipping, err = NewCatalog("shipping", ship.Items); err != nil {
		return nil, err
	}
	if s.Polyculture, err = NewCatalog("polyculture", crops.Polyculture); err != nil {
		return nil, err
	}
	if s.MonocultureBonus, err = NewCatalog("monoculture_bonus", crops.MonocultureBonus); err != nil {
		return nil, err
	}
	for _, e := range crops.MonocultureBonus {
		if s.Polyculture.Contains(e.ID) {
			return nil, fmt.Errorf("catalog crops: %q listed as both polyculture and monoculture bonus", e.ID)
		}
	}
	if s.Artifacts, err = NewCatalog("artifacts", mus.Artifacts); err != nil {
		return nil, err
	}
	if s.Minerals, err = NewCatalog("minerals", mus.Minerals); err != nil {
		return nil, err
	}
	if s.Monsters, err = NewMonsterTable(mon.Categories); err != nil {
		return nil, err
	}
	for _, sd := range star.Stardrops {
		if sd.Flag == "" || sd.Source == "" {
			return nil, fmt.Errorf("catalog stardrops: flag and source must be non-empty")
		}
	}
	s.stardrops = append([]Stardrop(nil), star.Stardrops...)

	if gp.CeremonyEvent == "" {
		return nil, fmt.Errorf("catalog grandpa: ceremony_event must not be empty")
	}
	s.Grandpa = GrandpaTable{
		achievements:   append([]Entry(nil), gp.Achievements...),
		communityRooms: append([]Entry(nil), gp.CommunityRooms...),
		ceremonyEvent:  gp.CeremonyEvent,
	}
	return s, nil
}

// MustLoad calls Load and panics on error. Used for the embedded data.
func MustLoad(fsys fs.FS) *Set {
	s, err := Load(fsys)
	if err != nil {
		panic("catalog: MustLoad failed: " + err.Error())
	}
	return s
}

func decodeFile(fsys fs.FS, path string, out interface{}) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	return nil
}
