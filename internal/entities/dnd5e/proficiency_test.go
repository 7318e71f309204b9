package dnd5e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

func TestDeriveProficienciesDeterministic(t *testing.T) {
	for _, race := range dnd5e.Races {
		subraces := []dnd5e.Subrace{dnd5e.SubraceNone}
		for _, sub := range dnd5e.Subraces {
			if sub.Race() == race {
				subraces = append(subraces, sub)
			}
		}
		for _, sub := range subraces {
			for _, class := range dnd5e.Classes {
				a := dnd5e.DeriveProficiencies(race, sub, class)
				b := dnd5e.DeriveProficiencies(race, sub, class)
				assert.ElementsMatch(t, a.Proficiencies, b.Proficiencies, "%s %s %s", race, sub, class)
				assert.Equal(t, a.Saves, b.Saves)

				keys := dnd5e.SortedProficiencyKeys(a.Proficiencies)
				for i := 1; i < len(keys); i++ {
					assert.NotEqual(t, keys[i-1], keys[i], "duplicate proficiency for %s %s %s", race, sub, class)
				}
			}
		}
	}
}

func TestDeriveProficienciesRacialBranches(t *testing.T) {
	mountain := dnd5e.DeriveProficiencies(dnd5e.RaceDwarf, dnd5e.SubraceMountainDwarf, dnd5e.ClassWizard)
	assert.True(t, mountain.Has(dnd5e.ProficiencyArmor, dnd5e.ArmorMedium))
	assert.True(t, mountain.Has(dnd5e.ProficiencyWeapon, dnd5e.WeaponWarhammer))
	assert.True(t, mountain.Has(dnd5e.ProficiencyLanguage, dnd5e.LanguageDwarvish))

	hill := dnd5e.DeriveProficiencies(dnd5e.RaceDwarf, dnd5e.SubraceHillDwarf, dnd5e.ClassWizard)
	assert.False(t, hill.Has(dnd5e.ProficiencyArmor, dnd5e.ArmorMedium))

	high := dnd5e.DeriveProficiencies(dnd5e.RaceElf, dnd5e.SubraceHighElf, dnd5e.ClassWizard)
	assert.True(t, high.Has(dnd5e.ProficiencyWeapon, dnd5e.WeaponLongbow))
	assert.False(t, high.Has(dnd5e.ProficiencyWeapon, dnd5e.WeaponRapier))

	dark := dnd5e.DeriveProficiencies(dnd5e.RaceElf, dnd5e.SubraceDarkElf, dnd5e.ClassWizard)
	assert.True(t, dark.Has(dnd5e.ProficiencyWeapon, dnd5e.WeaponCrossbowHand))
	assert.False(t, dark.Has(dnd5e.ProficiencyWeapon, dnd5e.WeaponLongsword))

	rock := dnd5e.DeriveProficiencies(dnd5e.RaceGnome, dnd5e.SubraceRockGnome, dnd5e.ClassCleric)
	assert.True(t, rock.Has(dnd5e.ProficiencyTool, dnd5e.ToolTinkers))

	human := dnd5e.DeriveProficiencies(dnd5e.RaceHuman, dnd5e.SubraceNone, dnd5e.ClassMonk)
	assert.True(t, human.Has(dnd5e.ProficiencyLanguage, dnd5e.LanguageCommon))
	assert.Equal(t, [2]dnd5e.AbilityType{dnd5e.AbilityStrength, dnd5e.AbilityDexterity}, human.Saves)
}

func TestResetProficienciesReplaces(t *testing.T) {
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{Race: dnd5e.RaceElf, Subrace: dnd5e.SubraceHighElf, Class: dnd5e.ClassWizard})
	require.NoError(t, err)
	first := append([]dnd5e.Proficiency(nil), char.Proficiencies...)

	char.ResetProficiencies()
	char.ResetProficiencies()
	assert.Equal(t, first, char.Proficiencies)

	require.NoError(t, char.SetIdentity(dnd5e.RaceDwarf, dnd5e.SubraceNone, dnd5e.ClassBarbarian,
		dnd5e.BackgroundSoldier, dnd5e.AlignmentLawfulNeutral))
	assert.False(t, char.HasProficiency(dnd5e.ProficiencyLanguage, dnd5e.LanguageElvish))
	assert.True(t, char.HasProficiency(dnd5e.ProficiencyLanguage, dnd5e.LanguageDwarvish))
	assert.True(t, char.Abilities.Strength.Save)
	assert.True(t, char.Abilities.Constitution.Save)
	assert.False(t, char.Abilities.Intelligence.Save)
	assert.False(t, char.Abilities.Wisdom.Save)
}

func TestWeaponProficiencyDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		race     dnd5e.Race
		subrace  dnd5e.Subrace
		class    dnd5e.Class
		expected []string
	}{
		{
			name:     "fighter covers the catalog",
			race:     dnd5e.RaceHuman,
			class:    dnd5e.ClassFighter,
			expected: []string{"All Weapons"},
		},
		{
			name:     "cleric gets simple weapons only",
			race:     dnd5e.RaceHuman,
			class:    dnd5e.ClassCleric,
			expected: []string{"Simple Weapons"},
		},
		{
			name:     "bard lists martial exceptions",
			race:     dnd5e.RaceHuman,
			class:    dnd5e.ClassBard,
			expected: []string{"Simple Weapons", "Crossbow (Hand)", "Longsword", "Rapier", "Shortsword"},
		},
		{
			name:     "wood elf bard keeps racial weapons first",
			race:     dnd5e.RaceElf,
			subrace:  dnd5e.SubraceWoodElf,
			class:    dnd5e.ClassBard,
			expected: []string{"Simple Weapons", "Shortsword", "Longsword", "Longbow", "Crossbow (Hand)", "Rapier"},
		},
		{
			name:     "wizard lists every weapon",
			race:     dnd5e.RaceHuman,
			class:    dnd5e.ClassWizard,
			expected: []string{"Dagger", "Dart", "Sling", "Quarterstaff", "Crossbow (Light)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := dnd5e.DeriveProficiencies(tc.race, tc.subrace, tc.class)
			assert.Equal(t, tc.expected, dnd5e.WeaponProficiencyDisplay(set.Proficiencies))
		})
	}
}

func TestProficiencyNamesNonWeapon(t *testing.T) {
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{Race: dnd5e.RaceHalfOrc, Class: dnd5e.ClassPaladin})
	require.NoError(t, err)

	assert.Equal(t, []string{dnd5e.LanguageCommon, dnd5e.LanguageOrc}, char.ProficiencyNames(dnd5e.ProficiencyLanguage))
	assert.Equal(t, []string{dnd5e.ArmorLight, dnd5e.ArmorMedium, dnd5e.ArmorHeavy, dnd5e.ArmorShields},
		char.ProficiencyNames(dnd5e.ProficiencyArmor))
	assert.Empty(t, char.ProficiencyNames(dnd5e.ProficiencyTool))
}

func TestLookupWeapon(t *testing.T) {
	w, ok := dnd5e.LookupWeapon("crossbow (light)")
	require.True(t, ok)
	assert.Equal(t, dnd5e.WeaponCrossbowLight, w.Name)
	assert.Equal(t, "Crossbow (Light)", w.DisplayName())

	w, ok = dnd5e.LookupWeapon("RAPIER")
	require.True(t, ok)
	assert.True(t, w.HasProperty(dnd5e.PropertyFinesse))

	_, ok = dnd5e.LookupWeapon("lightsaber")
	assert.False(t, ok)
}
