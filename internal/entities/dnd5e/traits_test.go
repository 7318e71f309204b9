package dnd5e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

func TestRacialTraits(t *testing.T) {
	testCases := []struct {
		name     string
		race     dnd5e.Race
		subrace  dnd5e.Subrace
		expected []string
	}{
		{
			name:     "human has a defined trait list",
			race:     dnd5e.RaceHuman,
			expected: []string{"Ability Score Increase", "Extra Language"},
		},
		{
			name:     "hill dwarf",
			race:     dnd5e.RaceDwarf,
			subrace:  dnd5e.SubraceHillDwarf,
			expected: []string{"Darkvision (60 ft)", "Dwarven Resilience", "Stonecunning", "Dwarven Toughness"},
		},
		{
			name:     "dark elf overrides darkvision in place",
			race:     dnd5e.RaceElf,
			subrace:  dnd5e.SubraceDarkElf,
			expected: []string{"Darkvision (120 ft)", "Fey Ancestry", "Trance", "Sunlight Sensitivity", "Drow Magic (3rd & 5th level)"},
		},
		{
			name:     "wood elf",
			race:     dnd5e.RaceElf,
			subrace:  dnd5e.SubraceWoodElf,
			expected: []string{"Darkvision (60 ft)", "Fey Ancestry", "Trance", "Mask of the Wild"},
		},
		{
			name:     "halfling without subrace",
			race:     dnd5e.RaceHalfling,
			expected: []string{"Lucky", "Brave", "Halfling Nimbleness"},
		},
		{
			name:     "rock gnome",
			race:     dnd5e.RaceGnome,
			subrace:  dnd5e.SubraceRockGnome,
			expected: []string{"Darkvision (60 ft)", "Gnome Cunning", "Artificer's Lore", "Tinker"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, dnd5e.RacialTraits(tc.race, tc.subrace))
		})
	}
}

func TestEveryRaceHasTraits(t *testing.T) {
	for _, r := range dnd5e.Races {
		assert.NotEmpty(t, dnd5e.RacialTraits(r, dnd5e.SubraceNone), r)
	}
}

func TestBackgroundCatalog(t *testing.T) {
	for _, b := range dnd5e.Backgrounds {
		assert.NotEmpty(t, b.Feature(), b)
		for _, sk := range b.Skills() {
			assert.True(t, sk.Valid(), b)
		}
	}
	assert.Equal(t, "Researcher", dnd5e.BackgroundSage.Feature())
}
