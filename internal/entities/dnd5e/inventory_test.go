package dnd5e_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type InventoryTestSuite struct {
	suite.Suite
	char *dnd5e.Character
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func (s *InventoryTestSuite) SetupTest() {
	char, err := dnd5e.NewCharacter(dnd5e.NewCharacterInput{ID: "c1", WelcomeID: "welcome"})
	s.Require().NoError(err)
	s.char = char
}

func (s *InventoryTestSuite) TestAddEquipmentMergesCaseInsensitive() {
	s.False(s.char.AddEquipment(dnd5e.Equipment{Name: "Torch", Quantity: 2}, nil))
	s.True(s.char.AddEquipment(dnd5e.Equipment{Name: "tORCH"}, nil))

	s.Require().Len(s.char.Equipment, 1)
	s.Equal(3, s.char.Equipment[0].Quantity)
	s.Equal("Torch", s.char.Equipment[0].Name)
}

func (s *InventoryTestSuite) TestAddEquipmentAtIndex() {
	s.char.AddEquipment(dnd5e.Equipment{Name: "Rope"}, nil)
	s.char.AddEquipment(dnd5e.Equipment{Name: "Rations"}, nil)
	idx := 1
	s.char.AddEquipment(dnd5e.Equipment{Name: "Bedroll"}, &idx)

	names := []string{}
	for _, e := range s.char.Equipment {
		names = append(names, e.Name)
	}
	s.Equal([]string{"Rope", "Bedroll", "Rations"}, names)
}

func (s *InventoryTestSuite) TestSetEquipmentQuantityZeroDeletes() {
	s.char.AddEquipment(dnd5e.Equipment{Name: "Arrows", Quantity: 20}, nil)

	s.Require().NoError(s.char.SetEquipmentQuantity("arrows", 12))
	e, ok := s.char.FindEquipment("ARROWS")
	s.Require().True(ok)
	s.Equal(12, e.Quantity)

	s.Require().NoError(s.char.SetEquipmentQuantity("Arrows", 0))
	s.Empty(s.char.Equipment)

	err := s.char.SetEquipmentQuantity("Arrows", 3)
	s.True(errors.IsNotFound(err))
}

func (s *InventoryTestSuite) TestRemoveEquipmentMissing() {
	s.True(errors.IsNotFound(s.char.RemoveEquipment("Lantern")))
}

func (s *InventoryTestSuite) TestCoins() {
	s.Require().NoError(s.char.Coins.Set(dnd5e.CoinGold, 15))
	s.Equal(15, s.char.Coins.Gold)
	s.True(errors.IsInvalidArgument(s.char.Coins.Set("COIN_DOUBLOON", 1)))
}

func (s *InventoryTestSuite) TestPreferenceToggle() {
	s.Require().NoError(s.char.Preferences.Toggle(dnd5e.ToggleShowSpells))
	s.True(s.char.Preferences.ShowSpells)
	s.Require().NoError(s.char.Preferences.Toggle(dnd5e.ToggleShowSpells))
	s.False(s.char.Preferences.ShowSpells)
	s.True(errors.IsInvalidArgument(s.char.Preferences.Toggle("")))
}

func (s *InventoryTestSuite) TestNoteUpdates() {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	s.Require().NoError(s.char.UpdateNote("welcome", dnd5e.NoteUpdateText, "hello", now))
	n, err := s.char.Note("welcome")
	s.Require().NoError(err)
	s.Equal("hello", n.Text)

	s.Require().NoError(s.char.UpdateNote("welcome", dnd5e.NoteUpdateToggleArchived, "", now))
	s.Require().NotNil(n.Archived)
	s.Equal(now, *n.Archived)

	s.Require().NoError(s.char.UpdateNote("welcome", dnd5e.NoteUpdateToggleArchived, "", now))
	s.Nil(n.Archived)
}

func (s *InventoryTestSuite) TestNoteUpdateUnsetKindRejected() {
	err := s.char.UpdateNote("welcome", dnd5e.NoteUpdateUnset, "ignored", time.Now())
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	n, _ := s.char.Note("welcome")
	s.Equal(dnd5e.WelcomeNote, n.Text)
}

func (s *InventoryTestSuite) TestRemoveNote() {
	s.Require().NoError(s.char.RemoveNote("welcome"))
	s.Empty(s.char.Notes)
	s.True(errors.IsNotFound(s.char.RemoveNote("welcome")))
}

func (s *InventoryTestSuite) TestSpellsUniqueByName() {
	s.Require().NoError(s.char.AddSpell(dnd5e.KnownSpell{Name: "Magic Missile", Level: 1}, nil))
	err := s.char.AddSpell(dnd5e.KnownSpell{Name: "magic missile"}, nil)
	s.True(errors.IsAlreadyExists(err))

	sp, err := s.char.Spell("MAGIC MISSILE")
	s.Require().NoError(err)
	sp.Prepared = true
	s.True(s.char.Spells[0].Prepared)

	s.Require().NoError(s.char.RemoveSpell("Magic Missile"))
	s.True(errors.IsNotFound(s.char.RemoveSpell("Magic Missile")))
}

func (s *InventoryTestSuite) TestSpellSlots() {
	s.Require().NoError(s.char.SetSpellSlot(3, 2, 1))
	s.Equal(dnd5e.SpellSlot{Total: 2, Used: 1}, s.char.SpellSlots[2])

	s.True(errors.IsInvalidArgument(s.char.SetSpellSlot(10, 1, 0)))
	s.True(errors.IsInvalidArgument(s.char.SetSpellSlot(1, 1, 2)))
}

func (s *InventoryTestSuite) TestWeaponAttackBonus() {
	s.char.Abilities.Strength.Score = 16
	s.char.Abilities.Dexterity.Score = 18

	rapier, _ := dnd5e.LookupWeapon("Rapier")
	w := dnd5e.NewHeldWeapon("w1", "", rapier)
	w.Proficient = true
	s.Equal(4+2, s.char.WeaponAttackBonus(w))

	maul, _ := dnd5e.LookupWeapon("Maul")
	m := dnd5e.NewHeldWeapon("w2", "Big Maul", maul)
	m.Bonus = 1
	s.Equal(3+1, s.char.WeaponAttackBonus(m))

	bow, _ := dnd5e.LookupWeapon("Longbow")
	s.Equal(4, s.char.WeaponAttackBonus(dnd5e.NewHeldWeapon("w3", "", bow)))
}

func (s *InventoryTestSuite) TestWeaponsById() {
	club, _ := dnd5e.LookupWeapon("Club")
	s.char.AddWeapon(dnd5e.NewHeldWeapon("w1", "", club), nil)

	w, err := s.char.Weapon("w1")
	s.Require().NoError(err)
	s.Equal("Club", w.Name)

	s.Require().NoError(s.char.RemoveWeapon("w1"))
	s.True(errors.IsNotFound(s.char.RemoveWeapon("w1")))
}
