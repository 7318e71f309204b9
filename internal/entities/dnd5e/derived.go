package dnd5e

// DerivedStats is a read model of every computed value on a character
type DerivedStats struct {
	Level             int
	Description       string
	MaxHP             int
	ProficiencyBonus  int
	ArmorClass        int
	Initiative        int
	Speed             int
	PassivePerception int
	JackOfAllTrades   bool
	AttacksPerAction  int
	ExpLevel          int
	ExpToNextLevel    int
	HasToLevelUp      bool
	RacialTraits      []string
	ClassFeatures     []string
	BackgroundFeature string

	AbilityModifiers map[AbilityType]int
	SavingThrows     map[AbilityType]int
	SkillModifiers   map[SkillType]int
	Proficiencies    map[ProficiencyType][]string
	WeaponAttacks    map[string]int
}

// DerivedStats computes the read model
func (c *Character) DerivedStats() DerivedStats {
	d := DerivedStats{
		Level:             c.Level(),
		Description:       c.Description(),
		MaxHP:             c.MaxHP(),
		ProficiencyBonus:  c.ProficiencyBonus(),
		ArmorClass:        c.ArmorClass(),
		Initiative:        c.Initiative(),
		Speed:             c.Speed(),
		PassivePerception: c.PassivePerception(),
		JackOfAllTrades:   c.IsJackOfAllTrades(),
		AttacksPerAction:  c.AttacksPerAction(),
		ExpLevel:          c.ExpLevel(),
		ExpToNextLevel:    c.ExpToNextLevel(),
		HasToLevelUp:      c.HasToLevelUp(),
		RacialTraits:      c.RacialTraits(),
		ClassFeatures:     c.ClassFeatures(),
		BackgroundFeature: c.Background.Feature(),
		AbilityModifiers:  make(map[AbilityType]int, len(AbilityTypes)),
		SavingThrows:      make(map[AbilityType]int, len(AbilityTypes)),
		SkillModifiers:    make(map[SkillType]int, len(SkillTypes)),
		Proficiencies:     make(map[ProficiencyType][]string, len(ProficiencyTypes)),
		WeaponAttacks:     make(map[string]int, len(c.Weapons)),
	}
	for _, a := range AbilityTypes {
		d.AbilityModifiers[a] = c.Abilities.Get(a).Modifier()
		d.SavingThrows[a] = c.SavingThrowModifier(a)
	}
	for _, s := range SkillTypes {
		d.SkillModifiers[s] = c.SkillModifier(s)
	}
	for _, t := range ProficiencyTypes {
		d.Proficiencies[t] = c.ProficiencyNames(t)
	}
	for _, w := range c.Weapons {
		d.WeaponAttacks[w.ID] = c.WeaponAttackBonus(w)
	}
	return d
}
