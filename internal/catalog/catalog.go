package catalog

import "fmt"

// Category classifies the cognitive skill a game exercises.
type Category string

const (
	CategoryMemory          Category = "memory"
	CategoryAttention       Category = "attention"
	CategoryProcessingSpeed Category = "processingSpeed"
	CategoryReasoning       Category = "reasoning"
)

// Categories lists all valid categories in declaration order.
var Categories = []Category{
	CategoryMemory,
	CategoryAttention,
	CategoryProcessingSpeed,
	CategoryReasoning,
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty grades a game. It drives the difficulty multiplier in scoring.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists all valid difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether the difficulty is one of the known values.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Game is a single catalog entry. Games are immutable after loading;
// challenges hold copies, never pointers into the catalog.
//
// DefaultRequirement is the numeric threshold a challenge built from this
// game starts with. Its unit depends on the challenge type applied to it
// (points for score, seconds for time, multiplier for streak).
type Game struct {
	ID                 string     `yaml:"id" json:"id"`
	Name               string     `yaml:"name" json:"name"`
	Description        string     `yaml:"description,omitempty" json:"description,omitempty"`
	Category           Category   `yaml:"category" json:"category"`
	Difficulty         Difficulty `yaml:"difficulty" json:"difficulty"`
	DefaultRequirement int        `yaml:"default_requirement" json:"defaultRequirement"`
	Color              string     `yaml:"color,omitempty" json:"color,omitempty"`
}

// Catalog is an ordered, immutable list of games.
type Catalog struct {
	games []Game
	byID  map[string]int
}

// New builds a Catalog from games, validating each entry.
// The slice is copied to keep the catalog immutable.
func New(games []Game) (*Catalog, error) {
	c := &Catalog{
		games: make([]Game, len(games)),
		byID:  make(map[string]int, len(games)),
	}
	copy(c.games, games)

	for i, g := range c.games {
		if g.ID == "" {
			return nil, fmt.Errorf("catalog: game at index %d has empty id", i)
		}
		if g.Name == "" {
			return nil, fmt.Errorf("catalog: game %q has empty name", g.ID)
		}
		if !g.Category.Valid() {
			return nil, fmt.Errorf("catalog: game %q has unknown category %q", g.ID, g.Category)
		}
		if !g.Difficulty.Valid() {
			return nil, fmt.Errorf("catalog: game %q has unknown difficulty %q", g.ID, g.Difficulty)
		}
		if g.DefaultRequirement <= 0 {
			return nil, fmt.Errorf("catalog: game %q has non-positive requirement %d", g.ID, g.DefaultRequirement)
		}
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate game id %q", g.ID)
		}
		c.byID[g.ID] = i
	}
	return c, nil
}

// Len returns the number of games in the catalog.
func (c *Catalog) Len() int {
	return len(c.games)
}

// Games returns a copy of the game list in catalog order.
func (c *Catalog) Games() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// Get returns the game with the given id.
func (c *Catalog) Get(id string) (Game, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// Excluding returns the games whose IDs are not in the exclude set,
// in catalog order. Used by refresh to find substitute games.
func (c *Catalog) Excluding(exclude map[string]bool) []Game {
	var out []Game
	for _, g := range c.games {
		if !exclude[g.ID] {
			out = append(out, g)
		}
	}
	return out
}
