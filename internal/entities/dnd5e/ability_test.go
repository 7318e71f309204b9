package dnd5e_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

func TestAbilityModifierFloors(t *testing.T) {
	testCases := []struct {
		score    int
		expected int
	}{
		{1, -5},
		{3, -4},
		{7, -2},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{20, 5},
		{30, 10},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, dnd5e.Ability{Score: tc.score}.Modifier(), "score %d", tc.score)
	}
}

func TestAbilityModifierMatchesFloorFormula(t *testing.T) {
	for score := -10; score <= 40; score++ {
		d := score - 10
		want := d / 2
		if d%2 != 0 && d < 0 {
			want--
		}
		assert.Equal(t, want, dnd5e.Ability{Score: score}.Modifier(), "score %d", score)
	}
}

func TestAbilityScoresAccessors(t *testing.T) {
	scores := dnd5e.DefaultAbilityScores()
	scores.SetScore(dnd5e.AbilityDexterity, 14)
	scores.SetSave(dnd5e.AbilityDexterity, true)

	dex := scores.Get(dnd5e.AbilityDexterity)
	assert.Equal(t, 14, dex.Score)
	assert.True(t, dex.Save)
	assert.Equal(t, 10, scores.Get(dnd5e.AbilityWisdom).Score)
	assert.Equal(t, dnd5e.Ability{}, scores.Get("luck"))
}

func TestCatalogTagDecodeRejectsUnknown(t *testing.T) {
	var holder struct {
		Race dnd5e.Race `json:"race"`
	}
	err := json.Unmarshal([]byte(`{"race":"RACE_WARFORGED"}`), &holder)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoss(err))

	require.NoError(t, json.Unmarshal([]byte(`{"race":"RACE_GNOME"}`), &holder))
	assert.Equal(t, dnd5e.RaceGnome, holder.Race)
}

func TestParseTags(t *testing.T) {
	race, err := dnd5e.ParseRace("half-orc")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.RaceHalfOrc, race)

	sub, err := dnd5e.ParseSubrace("hill dwarf")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.SubraceHillDwarf, sub)

	sub, err = dnd5e.ParseSubrace("")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.SubraceNone, sub)

	skill, err := dnd5e.ParseSkill("Sleight of Hand")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.SkillSleightOfHand, skill)

	coin, err := dnd5e.ParseCoinType("gp")
	require.NoError(t, err)
	assert.Equal(t, dnd5e.CoinGold, coin)

	_, err = dnd5e.ParseClass("artificer")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
