package dnd5e

import "github.com/KirkDiggler/rpg-sheet/internal/errors"

// SkillType is a closed tag for the eighteen skills
type SkillType string

// Skill constants
const (
	SkillAcrobatics     SkillType = "SKILL_ACROBATICS"
	SkillAnimalHandling SkillType = "SKILL_ANIMAL_HANDLING"
	SkillArcana         SkillType = "SKILL_ARCANA"
	SkillAthletics      SkillType = "SKILL_ATHLETICS"
	SkillDeception      SkillType = "SKILL_DECEPTION"
	SkillHistory        SkillType = "SKILL_HISTORY"
	SkillInsight        SkillType = "SKILL_INSIGHT"
	SkillIntimidation   SkillType = "SKILL_INTIMIDATION"
	SkillInvestigation  SkillType = "SKILL_INVESTIGATION"
	SkillMedicine       SkillType = "SKILL_MEDICINE"
	SkillNature         SkillType = "SKILL_NATURE"
	SkillPerception     SkillType = "SKILL_PERCEPTION"
	SkillPerformance    SkillType = "SKILL_PERFORMANCE"
	SkillPersuasion     SkillType = "SKILL_PERSUASION"
	SkillReligion       SkillType = "SKILL_RELIGION"
	SkillSleightOfHand  SkillType = "SKILL_SLEIGHT_OF_HAND"
	SkillStealth        SkillType = "SKILL_STEALTH"
	SkillSurvival       SkillType = "SKILL_SURVIVAL"
)

// SkillTypes lists every skill alphabetically, the order skills are seeded in
var SkillTypes = []SkillType{
	SkillAcrobatics, SkillAnimalHandling, SkillArcana, SkillAthletics, SkillDeception,
	SkillHistory, SkillInsight, SkillIntimidation, SkillInvestigation, SkillMedicine,
	SkillNature, SkillPerception, SkillPerformance, SkillPersuasion, SkillReligion,
	SkillSleightOfHand, SkillStealth, SkillSurvival,
}

// ParseSkill resolves user input such as "sleight of hand" into a SkillType
func ParseSkill(s string) (SkillType, error) { return parseTag[SkillType]("skill", "SKILL_", s) }

// Valid reports whether s is a known skill
func (s SkillType) Valid() bool {
	return s.Ability() != ""
}

// UnmarshalText rejects unknown skill tags
func (s *SkillType) UnmarshalText(text []byte) error {
	v, err := decodeTag[SkillType]("skill", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Ability returns the ability the skill keys off
func (s SkillType) Ability() AbilityType {
	switch s {
	case SkillAthletics:
		return AbilityStrength
	case SkillAcrobatics, SkillSleightOfHand, SkillStealth:
		return AbilityDexterity
	case SkillArcana, SkillHistory, SkillInvestigation, SkillNature, SkillReligion:
		return AbilityIntelligence
	case SkillAnimalHandling, SkillInsight, SkillMedicine, SkillPerception, SkillSurvival:
		return AbilityWisdom
	case SkillDeception, SkillIntimidation, SkillPerformance, SkillPersuasion:
		return AbilityCharisma
	}
	return ""
}

// DisplayName returns the human readable skill name
func (s SkillType) DisplayName() string {
	switch s {
	case SkillAcrobatics:
		return "Acrobatics"
	case SkillAnimalHandling:
		return "Animal Handling"
	case SkillArcana:
		return "Arcana"
	case SkillAthletics:
		return "Athletics"
	case SkillDeception:
		return "Deception"
	case SkillHistory:
		return "History"
	case SkillInsight:
		return "Insight"
	case SkillIntimidation:
		return "Intimidation"
	case SkillInvestigation:
		return "Investigation"
	case SkillMedicine:
		return "Medicine"
	case SkillNature:
		return "Nature"
	case SkillPerception:
		return "Perception"
	case SkillPerformance:
		return "Performance"
	case SkillPersuasion:
		return "Persuasion"
	case SkillReligion:
		return "Religion"
	case SkillSleightOfHand:
		return "Sleight of Hand"
	case SkillStealth:
		return "Stealth"
	case SkillSurvival:
		return "Survival"
	}
	return string(s)
}

// SkillTier is how proficient a character is in a skill
type SkillTier string

// Skill tiers
const (
	SkillTierNone   SkillTier = "TIER_NONE"
	SkillTierFull   SkillTier = "TIER_FULL"
	SkillTierExpert SkillTier = "TIER_EXPERT"
)

// ParseSkillTier resolves user input such as "expert" into a SkillTier
func ParseSkillTier(s string) (SkillTier, error) {
	return parseTag[SkillTier]("proficiency tier", "TIER_", s)
}

// Valid reports whether t is a known tier
func (t SkillTier) Valid() bool {
	switch t {
	case SkillTierNone, SkillTierFull, SkillTierExpert:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tier tags
func (t *SkillTier) UnmarshalText(text []byte) error {
	v, err := decodeTag[SkillTier]("skill tier", text)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Skill is one row of the skill table
type Skill struct {
	Type SkillType `json:"type"`
	Tier SkillTier `json:"tier"`
}

// DefaultSkills seeds one unproficient entry per skill type
func DefaultSkills() []Skill {
	skills := make([]Skill, len(SkillTypes))
	for i, t := range SkillTypes {
		skills[i] = Skill{Type: t, Tier: SkillTierNone}
	}
	return skills
}

// Skill returns the entry for t
func (c *Character) Skill(t SkillType) (Skill, bool) {
	for _, s := range c.Skills {
		if s.Type == t {
			return s, true
		}
	}
	return Skill{}, false
}

// SetSkillTier updates the tier of an existing skill entry
func (c *Character) SetSkillTier(t SkillType, tier SkillTier) error {
	if !tier.Valid() {
		return errors.InvalidArgumentf("unknown proficiency tier %q", tier)
	}
	for i := range c.Skills {
		if c.Skills[i].Type == t {
			c.Skills[i].Tier = tier
			return nil
		}
	}
	return errors.NotFoundf("skill %s not found", t)
}

// SkillModifier is the ability modifier plus the tier bonus. Unproficient
// skills get half the proficiency bonus as a jack of all trades.
func (c *Character) SkillModifier(t SkillType) int {
	mod := c.Abilities.Get(t.Ability()).Modifier()
	s, _ := c.Skill(t)
	return mod + c.tierBonus(s.Tier)
}

func (c *Character) tierBonus(tier SkillTier) int {
	switch tier {
	case SkillTierFull:
		return c.ProficiencyBonus()
	case SkillTierExpert:
		return c.ProficiencyBonus() * 2
	default:
		if c.IsJackOfAllTrades() {
			return c.ProficiencyBonus() / 2
		}
		return 0
	}
}
