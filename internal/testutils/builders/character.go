// Package builders provides fluent builders for character test data
package builders

import (
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// CharacterBuilder builds characters past creation: scores, skills,
// gear and levels.
type CharacterBuilder struct {
	input  dnd5e.NewCharacterInput
	scores map[dnd5e.AbilityType]int
	saves  []dnd5e.AbilityType
	tiers  map[dnd5e.SkillType]dnd5e.SkillTier
	extra  []func(*dnd5e.Character)
}

// NewCharacterBuilder creates a builder with minimal defaults
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		input: dnd5e.NewCharacterInput{
			ID:        "char-test-123",
			PlayerID:  "player-test-123",
			Name:      "Test Character",
			WelcomeID: "note-test-welcome",
		},
		scores: make(map[dnd5e.AbilityType]int),
		tiers:  make(map[dnd5e.SkillType]dnd5e.SkillTier),
	}
}

// WithID sets the character ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.input.ID = id
	return b
}

// WithPlayerID sets the owning player
func (b *CharacterBuilder) WithPlayerID(playerID string) *CharacterBuilder {
	b.input.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.input.Name = name
	return b
}

// WithRace sets the race and optionally the subrace
func (b *CharacterBuilder) WithRace(race dnd5e.Race, subrace ...dnd5e.Subrace) *CharacterBuilder {
	b.input.Race = race
	if len(subrace) > 0 {
		b.input.Subrace = subrace[0]
	}
	return b
}

// WithClass sets the primary class
func (b *CharacterBuilder) WithClass(class dnd5e.Class) *CharacterBuilder {
	b.input.Class = class
	return b
}

// WithLevel sets the primary class level
func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	b.input.Level = level
	return b
}

// WithBackground sets the background
func (b *CharacterBuilder) WithBackground(bg dnd5e.Background) *CharacterBuilder {
	b.input.Background = bg
	return b
}

// WithAbility sets one ability score
func (b *CharacterBuilder) WithAbility(t dnd5e.AbilityType, score int) *CharacterBuilder {
	b.scores[t] = score
	return b
}

// WithSave marks a saving throw as proficient
func (b *CharacterBuilder) WithSave(t dnd5e.AbilityType) *CharacterBuilder {
	b.saves = append(b.saves, t)
	return b
}

// WithSkill sets a skill tier
func (b *CharacterBuilder) WithSkill(t dnd5e.SkillType, tier dnd5e.SkillTier) *CharacterBuilder {
	b.tiers[t] = tier
	return b
}

// WithWeapon adds a catalog weapon
func (b *CharacterBuilder) WithWeapon(id, typeName string) *CharacterBuilder {
	b.extra = append(b.extra, func(c *dnd5e.Character) {
		if wt, ok := dnd5e.LookupWeapon(typeName); ok {
			c.AddWeapon(dnd5e.NewHeldWeapon(id, "", wt), nil)
		}
	})
	return b
}

// WithEquipment adds an equipment row
func (b *CharacterBuilder) WithEquipment(name string, quantity int) *CharacterBuilder {
	b.extra = append(b.extra, func(c *dnd5e.Character) {
		c.AddEquipment(dnd5e.Equipment{Name: name, Quantity: quantity}, nil)
	})
	return b
}

// Build returns the character or panics when the input is invalid
func (b *CharacterBuilder) Build() *dnd5e.Character {
	c, err := dnd5e.NewCharacter(b.input)
	if err != nil {
		panic(err)
	}

	for t, score := range b.scores {
		c.Abilities.SetScore(t, score)
	}
	for _, t := range b.saves {
		c.Abilities.SetSave(t, true)
	}
	for t, tier := range b.tiers {
		if err := c.SetSkillTier(t, tier); err != nil {
			panic(err)
		}
	}
	for _, fn := range b.extra {
		fn(c)
	}

	return c
}
