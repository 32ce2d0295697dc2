package catalog

import "fmt"

// MonsterCategory is an Adventurer's Guild slaying goal.
type MonsterCategory struct {
	Name     string   `yaml:"name"`
	Goal     int      `yaml:"goal"`
	Monsters []string `yaml:"monsters"`
}

// MonsterTable maps specific monster names onto their goal categories.
type MonsterTable struct {
	categories []MonsterCategory
	byMonster  map[string]string
}

// NewMonsterTable validates and indexes cats.
//
// Postcondition: every monster name belongs to exactly one category; returns an
// error otherwise or when a category has no name or a non-positive goal.
func NewMonsterTable(cats []MonsterCategory) (*MonsterTable, error) {
	t := &MonsterTable{byMonster: make(map[string]string)}
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if c.Name == "" {
			return nil, fmt.Errorf("catalog monsters: category with empty name")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("catalog monsters: duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		if c.Goal <= 0 {
			return nil, fmt.Errorf("catalog monsters: category %q goal must be > 0, got %d", c.Name, c.Goal)
		}
		for _, m := range c.Monsters {
			if other, dup := t.byMonster[m]; dup {
				return nil, fmt.Errorf("catalog monsters: %q listed under both %q and %q", m, other, c.Name)
			}
			t.byMonster[m] = c.Name
		}
		members := make([]string, len(c.Monsters))
		copy(members, c.Monsters)
		t.categories = append(t.categories, MonsterCategory{Name: c.Name, Goal: c.Goal, Monsters: members})
	}
	return t, nil
}

// CategoryOf returns the category a specific monster counts toward.
func (t *MonsterTable) CategoryOf(monster string) (string, bool) {
	c, ok := t.byMonster[monster]
	return c, ok
}

// Categories returns a deep copy of the categories in goal-board order.
func (t *MonsterTable) Categories() []MonsterCategory {
	out := make([]MonsterCategory, len(t.categories))
	for i, c := range t.categories {
		members := make([]string, len(c.Monsters))
		copy(members, c.Monsters)
		out[i] = MonsterCategory{Name: c.Name, Goal: c.Goal, Monsters: members}
	}
	return out
}

// Stardrop is one of the fixed stardrop sources, tracked by the mail flag the
// game sets when the stardrop is collected.
type Stardrop struct {
	Flag   string `yaml:"flag"`
	Source string `yaml:"source"`
}

// GrandpaTable lists the flags Grandpa's evaluation inspects.
type GrandpaTable struct {
	achievements   []Entry
	communityRooms []Entry
	ceremonyEvent  string
}

// Achievements returns the achievement ids (and names) worth one point each.
func (g GrandpaTable) Achievements() []Entry {
	out := make([]Entry, len(g.achievements))
	copy(out, g.achievements)
	return out
}

// CommunityRooms returns the room-completion mail flags (and room names).
func (g GrandpaTable) CommunityRooms() []Entry {
	out := make([]Entry, len(g.communityRooms))
	copy(out, g.communityRooms)
	return out
}

// CeremonyEvent returns the event id of the community center ceremony.
func (g GrandpaTable) CeremonyEvent() string { return g.ceremonyEvent }
