package dnd5e_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type CharacterTestSuite struct {
	suite.Suite
	now  time.Time
	char *dnd5e.Character
}

func TestCharacterSuite(t *testing.T) {
	suite.Run(t, new(CharacterTestSuite))
}

func (s *CharacterTestSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{
		ID:        "char-1",
		PlayerID:  "player-1",
		Name:      "Thorin Oakenshield",
		Race:      dnd5e.RaceDwarf,
		Subrace:   dnd5e.SubraceHillDwarf,
		Class:     dnd5e.ClassFighter,
		WelcomeID: "note-0",
		Now:       s.now,
	})
	s.Require().NoError(err)
	s.char = char
}

func (s *CharacterTestSuite) TestNewCharacterDefaults() {
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{ID: "c", WelcomeID: "n", Now: s.now})
	s.Require().NoError(err)

	s.Equal(dnd5e.RaceHuman, char.Race)
	s.Equal(dnd5e.BackgroundAcolyte, char.Background)
	s.Equal(dnd5e.AlignmentTrueNeutral, char.Alignment)
	s.Equal(1, char.Level())
	s.Equal(0, char.Experience)
	s.Len(char.Skills, len(dnd5e.SkillTypes))
	for _, sk := range char.Skills {
		s.Equal(dnd5e.SkillTierNone, sk.Tier)
	}
	s.Require().Len(char.Notes, 1)
	s.Equal(dnd5e.WelcomeNote, char.Notes[0].Text)
	s.True(char.Preferences.ShowNotes)
	s.Equal(10, char.Armor)
	s.Equal(1, char.HP)
	s.Equal(1, char.BaseHP)
	s.NotEmpty(char.Proficiencies)
	s.NoError(char.CheckIntegrity())
}

func (s *CharacterTestSuite) TestNewCharacterAboveLevelOneSetsExperience() {
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{Class: dnd5e.ClassRogue, Level: 5, Now: s.now})
	s.Require().NoError(err)
	s.Equal(6_500, char.Experience)
	s.Equal(5, char.Job.Dice)
	s.False(char.HasToLevelUp())
}

func (s *CharacterTestSuite) TestNewCharacterRejectsForeignSubrace() {
	_, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{Race: dnd5e.RaceElf, Subrace: dnd5e.SubraceRockGnome})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestProficiencyBonusBands() {
	expected := map[int]int{1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 12: 4, 13: 5, 16: 5, 17: 6, 20: 6}
	prev := 0
	for level := 1; level <= dnd5e.MaxLevel; level++ {
		pb := dnd5e.ProficiencyBonusForLevel(level)
		s.GreaterOrEqual(pb, prev)
		prev = pb
		if want, ok := expected[level]; ok {
			s.Equal(want, pb, "level %d", level)
		}
	}
}

func (s *CharacterTestSuite) TestMaxHPUsesConstitutionPerLevel() {
	s.char.BaseHP = 12
	s.char.Abilities.Constitution.Score = 14
	s.char.Job.Level = 3
	s.Equal(12+2*3, s.char.MaxHP())
}

func (s *CharacterTestSuite) TestDisplayedArmorClassRoundTrip() {
	for dex := 1; dex <= 24; dex++ {
		s.char.Abilities.Dexterity.Score = dex
		s.char.SetDisplayedArmorClass(16)
		s.Equal(16, s.char.ArmorClass(), "dex %d", dex)
	}
}

func (s *CharacterTestSuite) TestDisplayedInitiativeAndSpeedRoundTrip() {
	s.char.Job = dnd5e.Job{Class: dnd5e.ClassBard, Level: 6, Dice: 6}
	s.char.Abilities.Dexterity.Score = 17

	s.char.SetDisplayedInitiative(7)
	s.Equal(7, s.char.Initiative())

	s.char.SetDisplayedSpeed(40)
	s.Equal(40, s.char.Speed())
	s.Equal(15, s.char.SpeedModifier)
}

func (s *CharacterTestSuite) TestDisplayedMaxHPHealsToFull() {
	s.char.Abilities.Constitution.Score = 16
	s.char.Job.Level = 4
	s.char.HP = 3

	s.char.SetDisplayedMaxHP(40)

	s.Equal(40-3*4, s.char.BaseHP)
	s.Equal(40, s.char.MaxHP())
	s.Equal(40, s.char.HP)
}

func (s *CharacterTestSuite) TestBardJackOfAllTradesInitiative() {
	s.char.Job = dnd5e.Job{Class: dnd5e.ClassBard, Level: 2, Dice: 2}
	s.char.Abilities.Dexterity.Score = 14
	s.char.InitiativeModifier = 1

	s.True(s.char.IsJackOfAllTrades())
	s.Equal(1+2+s.char.ProficiencyBonus()/2, s.char.Initiative())

	s.char.Job.Level = 1
	s.False(s.char.IsJackOfAllTrades())
	s.Equal(1+2, s.char.Initiative())
}

func (s *CharacterTestSuite) TestSpeedPrefersSubrace() {
	s.Equal(25, s.char.Speed())

	s.Require().NoError(s.char.SetIdentity(dnd5e.RaceElf, dnd5e.SubraceWoodElf, dnd5e.ClassRanger,
		dnd5e.BackgroundOutlander, dnd5e.AlignmentChaoticGood))
	s.Equal(35, s.char.Speed())

	s.Require().NoError(s.char.SetIdentity(dnd5e.RaceElf, dnd5e.SubraceNone, dnd5e.ClassRanger,
		dnd5e.BackgroundOutlander, dnd5e.AlignmentChaoticGood))
	s.Equal(30, s.char.Speed())
}

func (s *CharacterTestSuite) TestPassivePerceptionTiers() {
	s.char.Abilities.Wisdom.Score = 14
	s.Equal(12, s.char.PassivePerception())

	s.Require().NoError(s.char.SetSkillTier(dnd5e.SkillPerception, dnd5e.SkillTierFull))
	s.Equal(14, s.char.PassivePerception())

	s.Require().NoError(s.char.SetSkillTier(dnd5e.SkillPerception, dnd5e.SkillTierExpert))
	s.Equal(16, s.char.PassivePerception())

	s.Require().NoError(s.char.SetSkillTier(dnd5e.SkillPerception, dnd5e.SkillTierNone))
	s.char.Job = dnd5e.Job{Class: dnd5e.ClassBard, Level: 5, Dice: 5}
	s.Equal(10+2+1, s.char.PassivePerception())
}

func (s *CharacterTestSuite) TestSavingThrowModifier() {
	s.char.Abilities.Strength.Score = 16
	s.Equal(3+2, s.char.SavingThrowModifier(dnd5e.AbilityStrength))
	s.Equal(0, s.char.SavingThrowModifier(dnd5e.AbilityWisdom))
}

func (s *CharacterTestSuite) TestDeathSaveStabilization() {
	for successes := 0; successes <= 2; successes++ {
		for failures := 0; failures <= 3; failures++ {
			s.char.DeathSaves = dnd5e.DeathSaves{Successes: successes, Failures: failures}
			s.char.HP = 0

			s.Require().NoError(s.char.ApplyDeathSaves(3, failures))

			s.Equal(dnd5e.DeathSaves{}, s.char.DeathSaves)
			s.Equal(1, s.char.HP)
		}
	}
}

func (s *CharacterTestSuite) TestDeathSavesRecordedBelowThree() {
	s.char.HP = 0
	s.Require().NoError(s.char.ApplyDeathSaves(2, 1))
	s.Equal(dnd5e.DeathSaves{Successes: 2, Failures: 1}, s.char.DeathSaves)
	s.Equal(0, s.char.HP)

	err := s.char.ApplyDeathSaves(1, 4)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestLevelUpPrimaryAppendsNotes() {
	s.char.Preferences.ShowNotes = false
	ids := 0
	nextID := func() string { ids++; return "lvl-note" }

	job, err := s.char.LevelUp(dnd5e.ClassFighter, s.now, nextID)
	s.Require().NoError(err)

	s.Equal(2, job.Level)
	s.Equal(2, s.char.Job.Dice)
	s.True(s.char.Preferences.ShowNotes)
	s.Equal(2, ids)
	s.Len(s.char.Notes, 3)
	s.Contains(s.char.Notes[2].Text, "Action Surge")
}

func (s *CharacterTestSuite) TestLevelUpMulticlass() {
	_, err := s.char.LevelUp(dnd5e.ClassRogue, s.now, func() string { return "n" })
	s.Require().NoError(err)
	_, err = s.char.LevelUp(dnd5e.ClassRogue, s.now, func() string { return "n" })
	s.Require().NoError(err)

	s.Require().Len(s.char.Multiclasses, 1)
	s.Equal(2, s.char.Multiclasses[0].Level)
	s.Equal(3, s.char.Level())
}

func (s *CharacterTestSuite) TestLevelUpCapped() {
	s.char.Job.Level = 20
	_, err := s.char.LevelUp(dnd5e.ClassFighter, s.now, func() string { return "n" })
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *CharacterTestSuite) TestAttacksPerActionTakesBestJob() {
	s.char.Job = dnd5e.Job{Class: dnd5e.ClassWizard, Level: 3}
	s.char.Multiclasses = []dnd5e.Job{{Class: dnd5e.ClassFighter, Level: 11}}
	s.Equal(3, s.char.AttacksPerAction())
}

func (s *CharacterTestSuite) TestDescriptionAndFirstName() {
	s.Equal("Hill Dwarf Fighter, Level 1", s.char.Description())
	s.Equal("Thorin", s.char.FirstName())

	s.char.Name = "  Mary-Jane Watson"
	s.Equal("Mary", s.char.FirstName())
}

func (s *CharacterTestSuite) TestJSONRoundTripKeepsIntegrity() {
	data, err := json.Marshal(s.char)
	s.Require().NoError(err)

	var decoded dnd5e.Character
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.NoError(decoded.CheckIntegrity())
	s.Equal(s.char.Proficiencies, decoded.Proficiencies)
	s.Equal(s.char.Race, decoded.Race)
}

func (s *CharacterTestSuite) TestCheckIntegrityFlagsMissingSkill() {
	s.char.Skills = s.char.Skills[1:]
	err := s.char.CheckIntegrity()
	s.Require().Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *CharacterTestSuite) TestCheckIntegrityFlagsMissingRace() {
	s.char.Race = ""
	s.True(errors.IsDataLoss(s.char.CheckIntegrity()))
}

func (s *CharacterTestSuite) TestCloneSharesNothing() {
	wt, ok := dnd5e.LookupWeapon(dnd5e.WeaponRapier)
	s.Require().True(ok)
	s.char.AddWeapon(dnd5e.NewHeldWeapon("w1", "", wt), nil)
	s.Require().NoError(s.char.UpdateNote(s.char.Notes[0].ID, dnd5e.NoteUpdateToggleArchived, "", s.now))

	clone := s.char.Clone()
	s.Equal(s.char, clone)

	clone.Notes[0].Text = "changed"
	*clone.Notes[0].Archived = s.now.Add(time.Hour)
	clone.Weapons[0].Properties[0] = "changed"
	clone.Skills[0].Tier = dnd5e.SkillTierExpert

	s.Equal(dnd5e.WelcomeNote, s.char.Notes[0].Text)
	s.Equal(s.now, *s.char.Notes[0].Archived)
	s.NotEqual("changed", s.char.Weapons[0].Properties[0])
	s.Equal(dnd5e.SkillTierNone, s.char.Skills[0].Tier)
}
