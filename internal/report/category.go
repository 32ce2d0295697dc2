package report

// Category identifies a report section.
type Category string

const (
	Summary      Category = "summary"
	Money        Category = "money"
	Skills       Category = "skills"
	Quests       Category = "quests"
	Monsters     Category = "monsters"
	Stardrops    Category = "stardrops"
	Family       Category = "family"
	Social       Category = "social"
	Cooking      Category = "cooking"
	Crafting     Category = "crafting"
	Fishing      Category = "fishing"
	Shipping     Category = "shipping"
	CropShipping Category = "crop_shipping"
	Museum       Category = "museum"
	Grandpa      Category = "grandpa"
	CustomGoals  Category = "custom_goals"
)

// Order is the fixed presentation order of the built-in sections.
var Order = []Category{
	Summary, Money, Skills, Quests, Monsters, Stardrops, Family, Social,
	Cooking, Crafting, Fishing, Shipping, CropShipping, Museum, Grandpa,
}

var headings = map[Category]string{
	Summary:      "Summary",
	Money:        "Money",
	Skills:       "Skills",
	Quests:       "Quests",
	Monsters:     "Monster Hunting",
	Stardrops:    "Stardrops",
	Family:       "Home and Family",
	Social:       "Social",
	Cooking:      "Cooking",
	Crafting:     "Crafting",
	Fishing:      "Fishing",
	Shipping:     "Basic Shipping",
	CropShipping: "Crop Shipping",
	Museum:       "Museum Collection",
	Grandpa:      "Grandpa's Evaluation",
	CustomGoals:  "Custom Goals",
}

// Heading returns the display heading.
func (c Category) Heading() string {
	if h, ok := headings[c]; ok {
		return h
	}
	return string(c)
}
