package dnd5e

import (
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Race is a closed tag for the playable races
type Race string

// Race constants
const (
	RaceHuman      Race = "RACE_HUMAN"
	RaceDwarf      Race = "RACE_DWARF"
	RaceElf        Race = "RACE_ELF"
	RaceHalfling   Race = "RACE_HALFLING"
	RaceDragonborn Race = "RACE_DRAGONBORN"
	RaceGnome      Race = "RACE_GNOME"
	RaceHalfElf    Race = "RACE_HALF_ELF"
	RaceHalfOrc    Race = "RACE_HALF_ORC"
	RaceTiefling   Race = "RACE_TIEFLING"
)

// Races lists every race in catalog order
var Races = []Race{
	RaceDwarf, RaceElf, RaceHalfling, RaceHuman, RaceDragonborn,
	RaceGnome, RaceHalfElf, RaceHalfOrc, RaceTiefling,
}

// Subrace is a closed tag for race refinements. The zero value means none.
type Subrace string

// Subrace constants
const (
	SubraceNone              Subrace = ""
	SubraceHillDwarf         Subrace = "SUBRACE_HILL_DWARF"
	SubraceMountainDwarf     Subrace = "SUBRACE_MOUNTAIN_DWARF"
	SubraceHighElf           Subrace = "SUBRACE_HIGH_ELF"
	SubraceWoodElf           Subrace = "SUBRACE_WOOD_ELF"
	SubraceDarkElf           Subrace = "SUBRACE_DARK_ELF"
	SubraceLightfootHalfling Subrace = "SUBRACE_LIGHTFOOT_HALFLING"
	SubraceStoutHalfling     Subrace = "SUBRACE_STOUT_HALFLING"
	SubraceForestGnome       Subrace = "SUBRACE_FOREST_GNOME"
	SubraceRockGnome         Subrace = "SUBRACE_ROCK_GNOME"
)

// Subraces lists every subrace in catalog order
var Subraces = []Subrace{
	SubraceHillDwarf, SubraceMountainDwarf, SubraceHighElf, SubraceWoodElf, SubraceDarkElf,
	SubraceLightfootHalfling, SubraceStoutHalfling, SubraceForestGnome, SubraceRockGnome,
}

// Class is a closed tag for the character classes
type Class string

// Class constants
const (
	ClassBarbarian Class = "CLASS_BARBARIAN"
	ClassBard      Class = "CLASS_BARD"
	ClassCleric    Class = "CLASS_CLERIC"
	ClassDruid     Class = "CLASS_DRUID"
	ClassFighter   Class = "CLASS_FIGHTER"
	ClassMonk      Class = "CLASS_MONK"
	ClassPaladin   Class = "CLASS_PALADIN"
	ClassRanger    Class = "CLASS_RANGER"
	ClassRogue     Class = "CLASS_ROGUE"
	ClassSorcerer  Class = "CLASS_SORCERER"
	ClassWarlock   Class = "CLASS_WARLOCK"
	ClassWizard    Class = "CLASS_WIZARD"
)

// Classes lists every class in catalog order
var Classes = []Class{
	ClassBarbarian, ClassBard, ClassCleric, ClassDruid, ClassFighter, ClassMonk,
	ClassPaladin, ClassRanger, ClassRogue, ClassSorcerer, ClassWarlock, ClassWizard,
}

// Background is a closed tag for character backgrounds
type Background string

// Background constants
const (
	BackgroundAcolyte      Background = "BACKGROUND_ACOLYTE"
	BackgroundCharlatan    Background = "BACKGROUND_CHARLATAN"
	BackgroundCriminal     Background = "BACKGROUND_CRIMINAL"
	BackgroundEntertainer  Background = "BACKGROUND_ENTERTAINER"
	BackgroundFolkHero     Background = "BACKGROUND_FOLK_HERO"
	BackgroundGuildArtisan Background = "BACKGROUND_GUILD_ARTISAN"
	BackgroundHermit       Background = "BACKGROUND_HERMIT"
	BackgroundNoble        Background = "BACKGROUND_NOBLE"
	BackgroundOutlander    Background = "BACKGROUND_OUTLANDER"
	BackgroundSage         Background = "BACKGROUND_SAGE"
	BackgroundSailor       Background = "BACKGROUND_SAILOR"
	BackgroundSoldier      Background = "BACKGROUND_SOLDIER"
	BackgroundUrchin       Background = "BACKGROUND_URCHIN"
)

// Backgrounds lists every background in catalog order
var Backgrounds = []Background{
	BackgroundAcolyte, BackgroundCharlatan, BackgroundCriminal, BackgroundEntertainer,
	BackgroundFolkHero, BackgroundGuildArtisan, BackgroundHermit, BackgroundNoble,
	BackgroundOutlander, BackgroundSage, BackgroundSailor, BackgroundSoldier, BackgroundUrchin,
}

// Alignment is a closed tag for the nine alignments
type Alignment string

// Alignment constants
const (
	AlignmentLawfulGood     Alignment = "ALIGNMENT_LAWFUL_GOOD"
	AlignmentNeutralGood    Alignment = "ALIGNMENT_NEUTRAL_GOOD"
	AlignmentChaoticGood    Alignment = "ALIGNMENT_CHAOTIC_GOOD"
	AlignmentLawfulNeutral  Alignment = "ALIGNMENT_LAWFUL_NEUTRAL"
	AlignmentTrueNeutral    Alignment = "ALIGNMENT_TRUE_NEUTRAL"
	AlignmentChaoticNeutral Alignment = "ALIGNMENT_CHAOTIC_NEUTRAL"
	AlignmentLawfulEvil     Alignment = "ALIGNMENT_LAWFUL_EVIL"
	AlignmentNeutralEvil    Alignment = "ALIGNMENT_NEUTRAL_EVIL"
	AlignmentChaoticEvil    Alignment = "ALIGNMENT_CHAOTIC_EVIL"
)

// Alignments lists every alignment in catalog order
var Alignments = []Alignment{
	AlignmentLawfulGood, AlignmentNeutralGood, AlignmentChaoticGood,
	AlignmentLawfulNeutral, AlignmentTrueNeutral, AlignmentChaoticNeutral,
	AlignmentLawfulEvil, AlignmentNeutralEvil, AlignmentChaoticEvil,
}

// catalogTag is satisfied by every closed tag type in this package
type catalogTag interface {
	~string
	Valid() bool
}

// decodeTag validates a stored tag. Stored records are trusted input, so an
// unknown tag is corruption rather than a caller mistake.
func decodeTag[T catalogTag](kind string, text []byte) (T, error) {
	v := T(text)
	if !v.Valid() {
		var zero T
		return zero, errors.DataLossf("unknown %s tag %q", kind, string(text)).
			WithMeta("tag_kind", kind)
	}
	return v, nil
}

// parseTag resolves user input such as "hill dwarf", "HILL_DWARF" or
// "SUBRACE_HILL_DWARF" into a tag.
func parseTag[T catalogTag](kind, prefix, s string) (T, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(norm)
	if prefix != "" && !strings.HasPrefix(norm, prefix) {
		norm = prefix + norm
	}
	v := T(norm)
	if !v.Valid() {
		var zero T
		return zero, errors.InvalidArgumentf("unknown %s %q", kind, s)
	}
	return v, nil
}

// ParseRace resolves user input into a Race
func ParseRace(s string) (Race, error) { return parseTag[Race]("race", "RACE_", s) }

// ParseSubrace resolves user input into a Subrace. Blank input is SubraceNone.
func ParseSubrace(s string) (Subrace, error) {
	if strings.TrimSpace(s) == "" {
		return SubraceNone, nil
	}
	return parseTag[Subrace]("subrace", "SUBRACE_", s)
}

// ParseClass resolves user input into a Class
func ParseClass(s string) (Class, error) { return parseTag[Class]("class", "CLASS_", s) }

// ParseBackground resolves user input into a Background
func ParseBackground(s string) (Background, error) {
	return parseTag[Background]("background", "BACKGROUND_", s)
}

// ParseAlignment resolves user input into an Alignment
func ParseAlignment(s string) (Alignment, error) {
	return parseTag[Alignment]("alignment", "ALIGNMENT_", s)
}

// Valid reports whether r is a known race
func (r Race) Valid() bool {
	switch r {
	case RaceHuman, RaceDwarf, RaceElf, RaceHalfling, RaceDragonborn,
		RaceGnome, RaceHalfElf, RaceHalfOrc, RaceTiefling:
		return true
	}
	return false
}

// UnmarshalText rejects unknown race tags
func (r *Race) UnmarshalText(text []byte) error {
	v, err := decodeTag[Race]("race", text)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// DisplayName returns the human readable race name
func (r Race) DisplayName() string {
	switch r {
	case RaceHuman:
		return "Human"
	case RaceDwarf:
		return "Dwarf"
	case RaceElf:
		return "Elf"
	case RaceHalfling:
		return "Halfling"
	case RaceDragonborn:
		return "Dragonborn"
	case RaceGnome:
		return "Gnome"
	case RaceHalfElf:
		return "Half-Elf"
	case RaceHalfOrc:
		return "Half-Orc"
	case RaceTiefling:
		return "Tiefling"
	}
	return string(r)
}

// Speed returns the walking speed in feet
func (r Race) Speed() int {
	switch r {
	case RaceDwarf, RaceHalfling, RaceGnome:
		return 25
	default:
		return 30
	}
}

// Valid reports whether s is a known subrace or none
func (s Subrace) Valid() bool {
	switch s {
	case SubraceNone, SubraceHillDwarf, SubraceMountainDwarf, SubraceHighElf, SubraceWoodElf,
		SubraceDarkElf, SubraceLightfootHalfling, SubraceStoutHalfling,
		SubraceForestGnome, SubraceRockGnome:
		return true
	}
	return false
}

// UnmarshalText rejects unknown subrace tags
func (s *Subrace) UnmarshalText(text []byte) error {
	v, err := decodeTag[Subrace]("subrace", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Race returns the race a subrace belongs to
func (s Subrace) Race() Race {
	switch s {
	case SubraceHillDwarf, SubraceMountainDwarf:
		return RaceDwarf
	case SubraceHighElf, SubraceWoodElf, SubraceDarkElf:
		return RaceElf
	case SubraceLightfootHalfling, SubraceStoutHalfling:
		return RaceHalfling
	case SubraceForestGnome, SubraceRockGnome:
		return RaceGnome
	}
	return ""
}

// DisplayName returns the human readable subrace name
func (s Subrace) DisplayName() string {
	switch s {
	case SubraceHillDwarf:
		return "Hill Dwarf"
	case SubraceMountainDwarf:
		return "Mountain Dwarf"
	case SubraceHighElf:
		return "High Elf"
	case SubraceWoodElf:
		return "Wood Elf"
	case SubraceDarkElf:
		return "Dark Elf"
	case SubraceLightfootHalfling:
		return "Lightfoot Halfling"
	case SubraceStoutHalfling:
		return "Stout Halfling"
	case SubraceForestGnome:
		return "Forest Gnome"
	case SubraceRockGnome:
		return "Rock Gnome"
	}
	return ""
}

// Speed returns the subrace walking speed, inherited from the parent race
// unless the subrace overrides it.
func (s Subrace) Speed() int {
	if s == SubraceWoodElf {
		return 35
	}
	return s.Race().Speed()
}

// Valid reports whether c is a known class
func (c Class) Valid() bool {
	switch c {
	case ClassBarbarian, ClassBard, ClassCleric, ClassDruid, ClassFighter, ClassMonk,
		ClassPaladin, ClassRanger, ClassRogue, ClassSorcerer, ClassWarlock, ClassWizard:
		return true
	}
	return false
}

// UnmarshalText rejects unknown class tags
func (c *Class) UnmarshalText(text []byte) error {
	v, err := decodeTag[Class]("class", text)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// DisplayName returns the human readable class name
func (c Class) DisplayName() string {
	switch c {
	case ClassBarbarian:
		return "Barbarian"
	case ClassBard:
		return "Bard"
	case ClassCleric:
		return "Cleric"
	case ClassDruid:
		return "Druid"
	case ClassFighter:
		return "Fighter"
	case ClassMonk:
		return "Monk"
	case ClassPaladin:
		return "Paladin"
	case ClassRanger:
		return "Ranger"
	case ClassRogue:
		return "Rogue"
	case ClassSorcerer:
		return "Sorcerer"
	case ClassWarlock:
		return "Warlock"
	case ClassWizard:
		return "Wizard"
	}
	return string(c)
}

// HitDie returns the die size rolled for hit points
func (c Class) HitDie() int {
	switch c {
	case ClassBarbarian:
		return 12
	case ClassFighter, ClassPaladin, ClassRanger:
		return 10
	case ClassSorcerer, ClassWizard:
		return 6
	default:
		return 8
	}
}

// SavingThrows returns the two abilities the class is proficient in saving with
func (c Class) SavingThrows() [2]AbilityType {
	switch c {
	case ClassBarbarian, ClassFighter:
		return [2]AbilityType{AbilityStrength, AbilityConstitution}
	case ClassBard:
		return [2]AbilityType{AbilityDexterity, AbilityCharisma}
	case ClassCleric, ClassPaladin, ClassWarlock:
		return [2]AbilityType{AbilityWisdom, AbilityCharisma}
	case ClassDruid, ClassWizard:
		return [2]AbilityType{AbilityIntelligence, AbilityWisdom}
	case ClassMonk, ClassRanger:
		return [2]AbilityType{AbilityStrength, AbilityDexterity}
	case ClassRogue:
		return [2]AbilityType{AbilityDexterity, AbilityIntelligence}
	case ClassSorcerer:
		return [2]AbilityType{AbilityConstitution, AbilityCharisma}
	}
	return [2]AbilityType{}
}

// Valid reports whether b is a known background
func (b Background) Valid() bool {
	switch b {
	case BackgroundAcolyte, BackgroundCharlatan, BackgroundCriminal, BackgroundEntertainer,
		BackgroundFolkHero, BackgroundGuildArtisan, BackgroundHermit, BackgroundNoble,
		BackgroundOutlander, BackgroundSage, BackgroundSailor, BackgroundSoldier, BackgroundUrchin:
		return true
	}
	return false
}

// UnmarshalText rejects unknown background tags
func (b *Background) UnmarshalText(text []byte) error {
	v, err := decodeTag[Background]("background", text)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// DisplayName returns the human readable background name
func (b Background) DisplayName() string {
	switch b {
	case BackgroundAcolyte:
		return "Acolyte"
	case BackgroundCharlatan:
		return "Charlatan"
	case BackgroundCriminal:
		return "Criminal"
	case BackgroundEntertainer:
		return "Entertainer"
	case BackgroundFolkHero:
		return "Folk Hero"
	case BackgroundGuildArtisan:
		return "Guild Artisan"
	case BackgroundHermit:
		return "Hermit"
	case BackgroundNoble:
		return "Noble"
	case BackgroundOutlander:
		return "Outlander"
	case BackgroundSage:
		return "Sage"
	case BackgroundSailor:
		return "Sailor"
	case BackgroundSoldier:
		return "Soldier"
	case BackgroundUrchin:
		return "Urchin"
	}
	return string(b)
}

// Feature returns the background feature name
func (b Background) Feature() string {
	switch b {
	case BackgroundAcolyte:
		return "Shelter of the Faithful"
	case BackgroundCharlatan:
		return "False Identity"
	case BackgroundCriminal:
		return "Criminal Contact"
	case BackgroundEntertainer:
		return "By Popular Demand"
	case BackgroundFolkHero:
		return "Rustic Hospitality"
	case BackgroundGuildArtisan:
		return "Guild Membership"
	case BackgroundHermit:
		return "Discovery"
	case BackgroundNoble:
		return "Position of Privilege"
	case BackgroundOutlander:
		return "Wanderer"
	case BackgroundSage:
		return "Researcher"
	case BackgroundSailor:
		return "Ship's Passage"
	case BackgroundSoldier:
		return "Military Rank"
	case BackgroundUrchin:
		return "City Secrets"
	}
	return ""
}

// Skills returns the two skills the background grants
func (b Background) Skills() [2]SkillType {
	switch b {
	case BackgroundAcolyte:
		return [2]SkillType{SkillInsight, SkillReligion}
	case BackgroundCharlatan:
		return [2]SkillType{SkillDeception, SkillSleightOfHand}
	case BackgroundCriminal:
		return [2]SkillType{SkillDeception, SkillStealth}
	case BackgroundEntertainer:
		return [2]SkillType{SkillAcrobatics, SkillPerformance}
	case BackgroundFolkHero:
		return [2]SkillType{SkillAnimalHandling, SkillSurvival}
	case BackgroundGuildArtisan:
		return [2]SkillType{SkillInsight, SkillPersuasion}
	case BackgroundHermit:
		return [2]SkillType{SkillMedicine, SkillReligion}
	case BackgroundNoble:
		return [2]SkillType{SkillHistory, SkillPersuasion}
	case BackgroundOutlander:
		return [2]SkillType{SkillAthletics, SkillSurvival}
	case BackgroundSage:
		return [2]SkillType{SkillArcana, SkillHistory}
	case BackgroundSailor:
		return [2]SkillType{SkillAthletics, SkillPerception}
	case BackgroundSoldier:
		return [2]SkillType{SkillAthletics, SkillIntimidation}
	case BackgroundUrchin:
		return [2]SkillType{SkillSleightOfHand, SkillStealth}
	}
	return [2]SkillType{}
}

// Valid reports whether a is a known alignment
func (a Alignment) Valid() bool {
	switch a {
	case AlignmentLawfulGood, AlignmentNeutralGood, AlignmentChaoticGood,
		AlignmentLawfulNeutral, AlignmentTrueNeutral, AlignmentChaoticNeutral,
		AlignmentLawfulEvil, AlignmentNeutralEvil, AlignmentChaoticEvil:
		return true
	}
	return false
}

// UnmarshalText rejects unknown alignment tags
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := decodeTag[Alignment]("alignment", text)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// DisplayName returns the human readable alignment
func (a Alignment) DisplayName() string {
	switch a {
	case AlignmentLawfulGood:
		return "Lawful Good"
	case AlignmentNeutralGood:
		return "Neutral Good"
	case AlignmentChaoticGood:
		return "Chaotic Good"
	case AlignmentLawfulNeutral:
		return "Lawful Neutral"
	case AlignmentTrueNeutral:
		return "True Neutral"
	case AlignmentChaoticNeutral:
		return "Chaotic Neutral"
	case AlignmentLawfulEvil:
		return "Lawful Evil"
	case AlignmentNeutralEvil:
		return "Neutral Evil"
	case AlignmentChaoticEvil:
		return "Chaotic Evil"
	}
	return string(a)
}
