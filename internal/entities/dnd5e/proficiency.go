package dnd5e

import (
	"sort"
	"strings"
)

// ProficiencyType groups proficiencies on the sheet
type ProficiencyType string

// Proficiency types
const (
	ProficiencyWeapon   ProficiencyType = "PROFICIENCY_WEAPON"
	ProficiencyArmor    ProficiencyType = "PROFICIENCY_ARMOR"
	ProficiencyTool     ProficiencyType = "PROFICIENCY_TOOL"
	ProficiencyLanguage ProficiencyType = "PROFICIENCY_LANGUAGE"
)

// ProficiencyTypes lists the types in display order
var ProficiencyTypes = []ProficiencyType{
	ProficiencyArmor, ProficiencyWeapon, ProficiencyTool, ProficiencyLanguage,
}

// ParseProficiencyType resolves user input such as "tool" into a ProficiencyType
func ParseProficiencyType(s string) (ProficiencyType, error) {
	return parseTag[ProficiencyType]("proficiency type", "PROFICIENCY_", s)
}

// Valid reports whether t is a known proficiency type
func (t ProficiencyType) Valid() bool {
	switch t {
	case ProficiencyWeapon, ProficiencyArmor, ProficiencyTool, ProficiencyLanguage:
		return true
	}
	return false
}

// UnmarshalText rejects unknown proficiency types
func (t *ProficiencyType) UnmarshalText(text []byte) error {
	v, err := decodeTag[ProficiencyType]("proficiency type", text)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Armor categories
const (
	ArmorLight   = "Light Armor"
	ArmorMedium  = "Medium Armor"
	ArmorHeavy   = "Heavy Armor"
	ArmorShields = "Shields"
)

// Languages
const (
	LanguageCommon   = "Common"
	LanguageDwarvish = "Dwarvish"
	LanguageElvish   = "Elvish"
	LanguageHalfling = "Halfling"
	LanguageDraconic = "Draconic"
	LanguageGnomish  = "Gnomish"
	LanguageOrc      = "Orc"
	LanguageInfernal = "Infernal"
)

// ToolTinkers is granted to rock gnomes
const ToolTinkers = "Tinker's Tools"

// Proficiency is one named entry in the proficiency set
type Proficiency struct {
	Type ProficiencyType `json:"type"`
	Name string          `json:"name"`
}

func (p Proficiency) key() string {
	return string(p.Type) + "|" + strings.ToLower(p.Name)
}

// ProficiencySet is the derivation output: the class save pair and the
// complete deduplicated proficiency list.
type ProficiencySet struct {
	Saves         [2]AbilityType
	Proficiencies []Proficiency
}

// Has reports whether the set contains a proficiency, ignoring name case
func (s ProficiencySet) Has(t ProficiencyType, name string) bool {
	return containsProficiency(s.Proficiencies, t, name)
}

type proficiencyBuilder struct {
	seen map[string]struct{}
	list []Proficiency
}

func (b *proficiencyBuilder) add(t ProficiencyType, names ...string) {
	for _, n := range names {
		p := Proficiency{Type: t, Name: n}
		if _, ok := b.seen[p.key()]; ok {
			continue
		}
		b.seen[p.key()] = struct{}{}
		b.list = append(b.list, p)
	}
}

// DeriveProficiencies computes the full proficiency set for a race,
// subrace and primary class. Passes run in a fixed order: saves, racial,
// class. The result is deterministic and never contains duplicates, so
// callers replace the stored set with it.
func DeriveProficiencies(race Race, subrace Subrace, class Class) ProficiencySet {
	b := &proficiencyBuilder{seen: make(map[string]struct{})}
	racialProficiencies(b, race, subrace)
	classProficiencies(b, class)
	return ProficiencySet{
		Saves:         class.SavingThrows(),
		Proficiencies: b.list,
	}
}

func racialProficiencies(b *proficiencyBuilder, race Race, subrace Subrace) {
	b.add(ProficiencyLanguage, LanguageCommon)

	switch race {
	case RaceDwarf:
		b.add(ProficiencyLanguage, LanguageDwarvish)
		b.add(ProficiencyWeapon, WeaponBattleaxe, WeaponHandaxe, WeaponLightHammer, WeaponWarhammer)
		if subrace == SubraceMountainDwarf {
			b.add(ProficiencyArmor, ArmorLight, ArmorMedium)
		}
	case RaceElf:
		b.add(ProficiencyLanguage, LanguageElvish)
		b.add(ProficiencyWeapon, WeaponShortsword)
		switch subrace {
		case SubraceHighElf, SubraceWoodElf:
			b.add(ProficiencyWeapon, WeaponLongsword, WeaponLongbow, WeaponShortbow)
		case SubraceDarkElf:
			b.add(ProficiencyWeapon, WeaponRapier, WeaponCrossbowHand)
		}
	case RaceHalfling:
		b.add(ProficiencyLanguage, LanguageHalfling)
	case RaceHuman:
	case RaceDragonborn:
		b.add(ProficiencyLanguage, LanguageDraconic)
	case RaceGnome:
		b.add(ProficiencyLanguage, LanguageGnomish)
		if subrace == SubraceRockGnome {
			b.add(ProficiencyTool, ToolTinkers)
		}
	case RaceHalfElf:
		b.add(ProficiencyLanguage, LanguageElvish)
	case RaceHalfOrc:
		b.add(ProficiencyLanguage, LanguageOrc)
	case RaceTiefling:
		b.add(ProficiencyLanguage, LanguageInfernal)
	}
}

func classProficiencies(b *proficiencyBuilder, class Class) {
	all := weaponNames(false)
	simple := weaponNames(true)

	switch class {
	case ClassBarbarian, ClassRanger:
		b.add(ProficiencyArmor, ArmorLight, ArmorMedium, ArmorShields)
		b.add(ProficiencyWeapon, all...)
	case ClassBard, ClassRogue:
		b.add(ProficiencyArmor, ArmorLight)
		b.add(ProficiencyWeapon, simple...)
		b.add(ProficiencyWeapon, WeaponCrossbowHand, WeaponLongsword, WeaponRapier, WeaponShortsword)
	case ClassCleric:
		b.add(ProficiencyArmor, ArmorLight, ArmorMedium, ArmorShields)
		b.add(ProficiencyWeapon, simple...)
	case ClassDruid:
		b.add(ProficiencyArmor, ArmorLight, ArmorMedium, ArmorShields)
		b.add(ProficiencyWeapon, WeaponClub, WeaponDagger, WeaponDart, WeaponJavelin, WeaponMace,
			WeaponQuarterstaff, WeaponScimitar, WeaponSickle, WeaponSling, WeaponSpear)
	case ClassFighter, ClassPaladin:
		b.add(ProficiencyArmor, ArmorLight, ArmorMedium, ArmorHeavy, ArmorShields)
		b.add(ProficiencyWeapon, all...)
	case ClassMonk:
		b.add(ProficiencyWeapon, simple...)
		b.add(ProficiencyWeapon, WeaponShortsword)
	case ClassSorcerer, ClassWizard:
		b.add(ProficiencyWeapon, WeaponDagger, WeaponDart, WeaponSling, WeaponQuarterstaff, WeaponCrossbowLight)
	case ClassWarlock:
		b.add(ProficiencyArmor, ArmorLight)
		b.add(ProficiencyWeapon, simple...)
	}
}

// ResetProficiencies re-derives saves and proficiencies from the current
// race, subrace and primary class, replacing whatever was stored.
func (c *Character) ResetProficiencies() {
	set := DeriveProficiencies(c.Race, c.Subrace, c.Job.Class)
	for _, a := range AbilityTypes {
		c.Abilities.SetSave(a, false)
	}
	for _, a := range set.Saves {
		c.Abilities.SetSave(a, true)
	}
	c.Proficiencies = set.Proficiencies
}

// HasProficiency reports whether the stored set contains a proficiency
func (c *Character) HasProficiency(t ProficiencyType, name string) bool {
	return containsProficiency(c.Proficiencies, t, name)
}

func containsProficiency(list []Proficiency, t ProficiencyType, name string) bool {
	for _, p := range list {
		if p.Type == t && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// ProficiencyNames renders the stored proficiencies of one type. Weapons
// collapse to "All Weapons" when the whole catalog is covered, or to
// "Simple Weapons" plus the martial exceptions when every simple weapon is.
func (c *Character) ProficiencyNames(t ProficiencyType) []string {
	if t != ProficiencyWeapon {
		var out []string
		for _, p := range c.Proficiencies {
			if p.Type == t {
				out = append(out, p.Name)
			}
		}
		return out
	}
	return WeaponProficiencyDisplay(c.Proficiencies)
}

// WeaponProficiencyDisplay collapses weapon proficiencies for display
func WeaponProficiencyDisplay(list []Proficiency) []string {
	var weapons []string
	for _, p := range list {
		if p.Type == ProficiencyWeapon {
			weapons = append(weapons, p.Name)
		}
	}

	covers := func(names []string) bool {
		for _, n := range names {
			if !containsProficiency(list, ProficiencyWeapon, n) {
				return false
			}
		}
		return true
	}

	if covers(weaponNames(false)) {
		return []string{"All Weapons"}
	}

	if covers(weaponNames(true)) {
		out := []string{"Simple Weapons"}
		for _, n := range weapons {
			if wt, ok := LookupWeapon(n); ok && wt.Simple {
				continue
			}
			out = append(out, weaponDisplayName(n))
		}
		return out
	}

	out := make([]string, 0, len(weapons))
	for _, n := range weapons {
		out = append(out, weaponDisplayName(n))
	}
	return out
}

// SortedProficiencyKeys returns type|name keys in lexical order. Used to
// compare two derivations as sets.
func SortedProficiencyKeys(list []Proficiency) []string {
	keys := make([]string, len(list))
	for i, p := range list {
		keys[i] = p.key()
	}
	sort.Strings(keys)
	return keys
}
