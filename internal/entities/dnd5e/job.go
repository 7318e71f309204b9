package dnd5e

import "fmt"

// MaxLevel is the highest total character level
const MaxLevel = 20

// Job is one class track. A character has a primary job and any number of
// multiclass jobs whose levels sum into the total level.
type Job struct {
	Class Class `json:"class"`
	Level int   `json:"level"`
	// Dice is the number of hit dice currently available
	Dice int `json:"dice"`
}

// NewJob returns a level 1 job for class
func NewJob(class Class) Job {
	return Job{Class: class, Level: 1, Dice: 1}
}

// HitDie returns the job's hit die size
func (j Job) HitDie() int {
	return j.Class.HitDie()
}

// AttacksPerAction is a pure lookup on class and level
func (j Job) AttacksPerAction() int {
	switch j.Class {
	case ClassFighter:
		switch {
		case j.Level >= 20:
			return 4
		case j.Level >= 11:
			return 3
		case j.Level >= 5:
			return 2
		}
	case ClassBarbarian, ClassMonk, ClassPaladin, ClassRanger:
		if j.Level >= 5 {
			return 2
		}
	}
	return 1
}

// Features returns every class feature unlocked up to the current level
func (j Job) Features() []string {
	table := classFeatures(j.Class)
	var out []string
	for lvl := 1; lvl <= j.Level && lvl <= MaxLevel; lvl++ {
		out = append(out, table[lvl]...)
	}
	return out
}

// LevelNotes returns the note texts produced when the job reaches its
// current level: a heading, then one entry per newly unlocked feature.
func (j Job) LevelNotes() []string {
	notes := []string{
		fmt.Sprintf("%s Level %d\nHit dice: %dd%d", j.Class.DisplayName(), j.Level, j.Dice, j.HitDie()),
	}
	for _, f := range classFeatures(j.Class)[j.Level] {
		notes = append(notes, fmt.Sprintf("New %s feature: %s", j.Class.DisplayName(), f))
	}
	return notes
}

const asi = "Ability Score Improvement"

func classFeatures(c Class) map[int][]string {
	switch c {
	case ClassBarbarian:
		return barbarianFeatures
	case ClassBard:
		return bardFeatures
	case ClassCleric:
		return clericFeatures
	case ClassDruid:
		return druidFeatures
	case ClassFighter:
		return fighterFeatures
	case ClassMonk:
		return monkFeatures
	case ClassPaladin:
		return paladinFeatures
	case ClassRanger:
		return rangerFeatures
	case ClassRogue:
		return rogueFeatures
	case ClassSorcerer:
		return sorcererFeatures
	case ClassWarlock:
		return warlockFeatures
	case ClassWizard:
		return wizardFeatures
	}
	return nil
}

var barbarianFeatures = map[int][]string{
	1:  {"Rage", "Unarmored Defense"},
	2:  {"Reckless Attack", "Danger Sense"},
	3:  {"Primal Path"},
	4:  {asi},
	5:  {"Extra Attack", "Fast Movement"},
	6:  {"Path Feature"},
	7:  {"Feral Instinct"},
	8:  {asi},
	9:  {"Brutal Critical (1 die)"},
	10: {"Path Feature"},
	11: {"Relentless Rage"},
	12: {asi},
	13: {"Brutal Critical (2 dice)"},
	14: {"Path Feature"},
	15: {"Persistent Rage"},
	16: {asi},
	17: {"Brutal Critical (3 dice)"},
	18: {"Indomitable Might"},
	19: {asi},
	20: {"Primal Champion"},
}

var bardFeatures = map[int][]string{
	1:  {"Spellcasting", "Bardic Inspiration (d6)"},
	2:  {"Jack of All Trades", "Song of Rest (d6)"},
	3:  {"Bard College", "Expertise"},
	4:  {asi},
	5:  {"Bardic Inspiration (d8)", "Font of Inspiration"},
	6:  {"Countercharm", "Bard College Feature"},
	8:  {asi},
	9:  {"Song of Rest (d8)"},
	10: {"Bardic Inspiration (d10)", "Expertise", "Magical Secrets"},
	12: {asi},
	13: {"Song of Rest (d10)"},
	14: {"Magical Secrets", "Bard College Feature"},
	15: {"Bardic Inspiration (d12)"},
	16: {asi},
	17: {"Song of Rest (d12)"},
	18: {"Magical Secrets"},
	19: {asi},
	20: {"Superior Inspiration"},
}

var clericFeatures = map[int][]string{
	1:  {"Spellcasting", "Divine Domain"},
	2:  {"Channel Divinity (1/rest)", "Divine Domain Feature"},
	4:  {asi},
	5:  {"Destroy Undead (CR 1/2)"},
	6:  {"Channel Divinity (2/rest)", "Divine Domain Feature"},
	8:  {asi, "Destroy Undead (CR 1)", "Divine Domain Feature"},
	10: {"Divine Intervention"},
	11: {"Destroy Undead (CR 2)"},
	12: {asi},
	14: {"Destroy Undead (CR 3)"},
	16: {asi},
	17: {"Destroy Undead (CR 4)", "Divine Domain Feature"},
	18: {"Channel Divinity (3/rest)"},
	19: {asi},
	20: {"Divine Intervention Improvement"},
}

var druidFeatures = map[int][]string{
	1:  {"Druidic", "Spellcasting"},
	2:  {"Wild Shape", "Druid Circle"},
	4:  {"Wild Shape Improvement", asi},
	6:  {"Druid Circle Feature"},
	8:  {"Wild Shape Improvement", asi},
	10: {"Druid Circle Feature"},
	12: {asi},
	14: {"Druid Circle Feature"},
	16: {asi},
	18: {"Timeless Body", "Beast Spells"},
	19: {asi},
	20: {"Archdruid"},
}

var fighterFeatures = map[int][]string{
	1:  {"Fighting Style", "Second Wind"},
	2:  {"Action Surge (one use)"},
	3:  {"Martial Archetype"},
	4:  {asi},
	5:  {"Extra Attack"},
	6:  {asi},
	7:  {"Martial Archetype Feature"},
	8:  {asi},
	9:  {"Indomitable (one use)"},
	10: {"Martial Archetype Feature"},
	11: {"Extra Attack (2)"},
	12: {asi},
	13: {"Indomitable (two uses)"},
	14: {asi},
	15: {"Martial Archetype Feature"},
	16: {asi},
	17: {"Action Surge (two uses)", "Indomitable (three uses)"},
	18: {"Martial Archetype Feature"},
	19: {asi},
	20: {"Extra Attack (3)"},
}

var monkFeatures = map[int][]string{
	1:  {"Unarmored Defense", "Martial Arts"},
	2:  {"Ki", "Unarmored Movement"},
	3:  {"Monastic Tradition", "Deflect Missiles"},
	4:  {asi, "Slow Fall"},
	5:  {"Extra Attack", "Stunning Strike"},
	6:  {"Ki-Empowered Strikes", "Monastic Tradition Feature"},
	7:  {"Evasion", "Stillness of Mind"},
	8:  {asi},
	9:  {"Unarmored Movement Improvement"},
	10: {"Purity of Body"},
	11: {"Monastic Tradition Feature"},
	12: {asi},
	13: {"Tongue of the Sun and Moon"},
	14: {"Diamond Soul"},
	15: {"Timeless Body"},
	16: {asi},
	17: {"Monastic Tradition Feature"},
	18: {"Empty Body"},
	19: {asi},
	20: {"Perfect Self"},
}

var paladinFeatures = map[int][]string{
	1:  {"Divine Sense", "Lay on Hands"},
	2:  {"Fighting Style", "Spellcasting", "Divine Smite"},
	3:  {"Divine Health", "Sacred Oath"},
	4:  {asi},
	5:  {"Extra Attack"},
	6:  {"Aura of Protection"},
	7:  {"Sacred Oath Feature"},
	8:  {asi},
	10: {"Aura of Courage"},
	11: {"Improved Divine Smite"},
	12: {asi},
	14: {"Cleansing Touch"},
	15: {"Sacred Oath Feature"},
	16: {asi},
	18: {"Aura Improvements"},
	19: {asi},
	20: {"Sacred Oath Feature"},
}

var rangerFeatures = map[int][]string{
	1:  {"Favored Enemy", "Natural Explorer"},
	2:  {"Fighting Style", "Spellcasting"},
	3:  {"Ranger Archetype", "Primeval Awareness"},
	4:  {asi},
	5:  {"Extra Attack"},
	6:  {"Favored Enemy Improvement", "Natural Explorer Improvement"},
	7:  {"Ranger Archetype Feature"},
	8:  {asi, "Land's Stride"},
	10: {"Natural Explorer Improvement", "Hide in Plain Sight"},
	11: {"Ranger Archetype Feature"},
	12: {asi},
	14: {"Favored Enemy Improvement", "Vanish"},
	15: {"Ranger Archetype Feature"},
	16: {asi},
	18: {"Feral Senses"},
	19: {asi},
	20: {"Foe Slayer"},
}

var rogueFeatures = map[int][]string{
	1:  {"Expertise", "Sneak Attack (1d6)", "Thieves' Cant"},
	2:  {"Cunning Action"},
	3:  {"Roguish Archetype", "Sneak Attack (2d6)"},
	4:  {asi},
	5:  {"Uncanny Dodge", "Sneak Attack (3d6)"},
	6:  {"Expertise"},
	7:  {"Evasion", "Sneak Attack (4d6)"},
	8:  {asi},
	9:  {"Roguish Archetype Feature", "Sneak Attack (5d6)"},
	10: {asi},
	11: {"Reliable Talent", "Sneak Attack (6d6)"},
	12: {asi},
	13: {"Roguish Archetype Feature", "Sneak Attack (7d6)"},
	14: {"Blindsense"},
	15: {"Slippery Mind", "Sneak Attack (8d6)"},
	16: {asi},
	17: {"Roguish Archetype Feature", "Sneak Attack (9d6)"},
	18: {"Elusive"},
	19: {asi, "Sneak Attack (10d6)"},
	20: {"Stroke of Luck"},
}

var sorcererFeatures = map[int][]string{
	1:  {"Spellcasting", "Sorcerous Origin"},
	2:  {"Font of Magic"},
	3:  {"Metamagic"},
	4:  {asi},
	6:  {"Sorcerous Origin Feature"},
	8:  {asi},
	10: {"Metamagic"},
	12: {asi},
	14: {"Sorcerous Origin Feature"},
	16: {asi},
	17: {"Metamagic"},
	18: {"Sorcerous Origin Feature"},
	19: {asi},
	20: {"Sorcerous Restoration"},
}

var warlockFeatures = map[int][]string{
	1:  {"Otherworldly Patron", "Pact Magic"},
	2:  {"Eldritch Invocations"},
	3:  {"Pact Boon"},
	4:  {asi},
	6:  {"Otherworldly Patron Feature"},
	8:  {asi},
	10: {"Otherworldly Patron Feature"},
	11: {"Mystic Arcanum (6th level)"},
	12: {asi},
	13: {"Mystic Arcanum (7th level)"},
	14: {"Otherworldly Patron Feature"},
	15: {"Mystic Arcanum (8th level)"},
	16: {asi},
	17: {"Mystic Arcanum (9th level)"},
	19: {asi},
	20: {"Eldritch Master"},
}

var wizardFeatures = map[int][]string{
	1:  {"Spellcasting", "Arcane Recovery"},
	2:  {"Arcane Tradition"},
	4:  {asi},
	6:  {"Arcane Tradition Feature"},
	8:  {asi},
	10: {"Arcane Tradition Feature"},
	12: {asi},
	14: {"Arcane Tradition Feature"},
	16: {asi},
	18: {"Spell Mastery"},
	19: {asi},
	20: {"Signature Spells"},
}
