// Package dnd5e implements the character sheet rules: catalogs, the
// proficiency derivation engine and the Character aggregate with its
// derived statistics.
package dnd5e

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// WelcomeNote is seeded into every new character
const WelcomeNote = "Welcome to your character sheet!\n\n" +
	"Set your skills and abilities from the sheet. " +
	"Archive this note once you're done."

// Character is the root aggregate. Derived values are computed on every
// call and never stored.
type Character struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`

	Name           string `json:"name"`
	ImagePath      string `json:"image_path,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	HasInspiration bool   `json:"has_inspiration"`

	Experience   int   `json:"experience"`
	Job          Job   `json:"primary"`
	Multiclasses []Job `json:"multiclasses,omitempty"`

	Race       Race       `json:"race"`
	Subrace    Subrace    `json:"subrace,omitempty"`
	Alignment  Alignment  `json:"alignment"`
	Background Background `json:"background"`
	About      string     `json:"about,omitempty"`

	Abilities AbilityScores `json:"abilities"`

	Armor              int `json:"armor"`
	InitiativeModifier int `json:"initiative_modifier"`
	SpeedModifier      int `json:"speed_modifier"`

	HP         int        `json:"hp"`
	BaseHP     int        `json:"base_hp"`
	TempHP     int        `json:"temp_hp"`
	DeathSaves DeathSaves `json:"death_saves"`

	Coins         Coins         `json:"coins"`
	Notes         []Note        `json:"notes"`
	Proficiencies []Proficiency `json:"proficiencies"`
	Skills        []Skill       `json:"skills"`
	Equipment     []Equipment   `json:"equipment"`
	Weapons       []HeldWeapon  `json:"weapons"`
	Spells        []KnownSpell  `json:"spells"`
	SpellSlots    SpellSlots    `json:"spell_slots"`
	Preferences   Preferences   `json:"preferences"`
}

// DeathSaves counts death saving throws
type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// NewCharacterInput carries the choices made when a character is created.
// Zero values fall back to Human, Acolyte and True Neutral.
type NewCharacterInput struct {
	ID         string
	PlayerID   string
	Name       string
	Race       Race
	Subrace    Subrace
	Class      Class
	Background Background
	Alignment  Alignment
	Level      int
	WelcomeID  string
	Now        time.Time
}

// NewCharacter builds a fully populated character: one skill row per skill
// type, the welcome note, default preferences and derived proficiencies.
func NewCharacter(input NewCharacterInput) (*Character, error) {
	if input.Race == "" {
		input.Race = RaceHuman
	}
	if input.Background == "" {
		input.Background = BackgroundAcolyte
	}
	if input.Alignment == "" {
		input.Alignment = AlignmentTrueNeutral
	}
	if input.Class == "" {
		input.Class = ClassFighter
	}
	if input.Level == 0 {
		input.Level = 1
	}

	if err := validateIdentity(input.Race, input.Subrace, input.Class, input.Background, input.Alignment); err != nil {
		return nil, err
	}
	if input.Level < 1 || input.Level > MaxLevel {
		return nil, errors.InvalidArgumentf("level must be between 1 and %d", MaxLevel)
	}

	job := NewJob(input.Class)
	job.Level = input.Level
	job.Dice = input.Level

	c := &Character{
		ID:          input.ID,
		PlayerID:    input.PlayerID,
		Created:     input.Now,
		Updated:     input.Now,
		Name:        input.Name,
		Job:         job,
		Race:        input.Race,
		Subrace:     input.Subrace,
		Alignment:   input.Alignment,
		Background:  input.Background,
		Abilities:   DefaultAbilityScores(),
		Armor:       10,
		HP:          1,
		BaseHP:      1,
		Notes:       []Note{{ID: input.WelcomeID, Text: WelcomeNote, Created: input.Now}},
		Skills:      DefaultSkills(),
		Preferences: DefaultPreferences(),
	}
	c.ResetProficiencies()
	if c.Level() > 1 {
		c.SetExpToLevel()
	}
	return c, nil
}

func validateIdentity(race Race, subrace Subrace, class Class, bg Background, al Alignment) error {
	vb := errors.NewValidationBuilder()
	if !race.Valid() {
		vb.InvalidField("race", string(race))
	}
	if !subrace.Valid() {
		vb.InvalidField("subrace", string(subrace))
	} else if subrace != SubraceNone && subrace.Race() != race {
		vb.Fieldf("subrace", "%s is not a %s subrace", subrace.DisplayName(), race.DisplayName())
	}
	if !class.Valid() {
		vb.InvalidField("class", string(class))
	}
	if !bg.Valid() {
		vb.InvalidField("background", string(bg))
	}
	if !al.Valid() {
		vb.InvalidField("alignment", string(al))
	}
	return vb.Build()
}

// CheckIntegrity verifies every stored catalog tag resolves. Decoders call
// it after unmarshalling because absent JSON fields bypass UnmarshalText.
func (c *Character) CheckIntegrity() error {
	bad := func(kind string, v string) error {
		return errors.DataLossf("character %s has unresolvable %s %q", c.ID, kind, v).
			WithMeta("character_id", c.ID)
	}
	switch {
	case !c.Race.Valid():
		return bad("race", string(c.Race))
	case !c.Subrace.Valid():
		return bad("subrace", string(c.Subrace))
	case !c.Alignment.Valid():
		return bad("alignment", string(c.Alignment))
	case !c.Background.Valid():
		return bad("background", string(c.Background))
	case !c.Job.Class.Valid():
		return bad("class", string(c.Job.Class))
	}
	for _, j := range c.Multiclasses {
		if !j.Class.Valid() {
			return bad("class", string(j.Class))
		}
	}

	seen := make(map[SkillType]bool, len(SkillTypes))
	for _, s := range c.Skills {
		if !s.Type.Valid() {
			return bad("skill", string(s.Type))
		}
		if !s.Tier.Valid() {
			return bad("skill tier", string(s.Tier))
		}
		seen[s.Type] = true
	}
	if len(seen) != len(SkillTypes) || len(c.Skills) != len(SkillTypes) {
		return errors.DataLossf("character %s skill table has %d entries, want one per skill", c.ID, len(c.Skills)).
			WithMeta("character_id", c.ID)
	}
	if c.Level() < 1 {
		return errors.DataLossf("character %s has level %d", c.ID, c.Level()).
			WithMeta("character_id", c.ID)
	}
	return nil
}

// SetIdentity changes the catalog choices and re-derives proficiencies.
// Changing the class of the primary job keeps its level.
func (c *Character) SetIdentity(race Race, subrace Subrace, class Class, bg Background, al Alignment) error {
	if err := validateIdentity(race, subrace, class, bg, al); err != nil {
		return err
	}
	c.Race = race
	c.Subrace = subrace
	c.Job.Class = class
	c.Background = bg
	c.Alignment = al
	c.ResetProficiencies()
	return nil
}

// Level is the primary job level plus every multiclass level
func (c *Character) Level() int {
	level := c.Job.Level
	for _, j := range c.Multiclasses {
		level += j.Level
	}
	return level
}

// MaxHP is base hit points plus the constitution modifier per level
func (c *Character) MaxHP() int {
	return c.BaseHP + c.Abilities.Constitution.Modifier()*c.Level()
}

// ProficiencyBonus steps up at levels 5, 9, 13 and 17
func (c *Character) ProficiencyBonus() int {
	return ProficiencyBonusForLevel(c.Level())
}

// ProficiencyBonusForLevel is the proficiency bonus at a total level
func ProficiencyBonusForLevel(level int) int {
	switch {
	case level < 5:
		return 2
	case level < 9:
		return 3
	case level < 13:
		return 4
	case level < 17:
		return 5
	default:
		return 6
	}
}

// IsJackOfAllTrades is true for a primary bard above level 1
func (c *Character) IsJackOfAllTrades() bool {
	return c.Job.Class == ClassBard && c.Job.Level > 1
}

func (c *Character) jackOfAllTradesBonus() int {
	if c.IsJackOfAllTrades() {
		return c.ProficiencyBonus() / 2
	}
	return 0
}

// ArmorClass is stored armor plus the dexterity modifier
func (c *Character) ArmorClass() int {
	return c.Armor + c.Abilities.Dexterity.Modifier()
}

// Initiative adds the dexterity modifier and any jack of all trades bonus
func (c *Character) Initiative() int {
	return c.InitiativeModifier + c.Abilities.Dexterity.Modifier() + c.jackOfAllTradesBonus()
}

// BaseSpeed is the subrace speed when a subrace is set, else the race speed
func (c *Character) BaseSpeed() int {
	if c.Subrace != SubraceNone {
		return c.Subrace.Speed()
	}
	return c.Race.Speed()
}

// Speed is the base speed plus the stored modifier
func (c *Character) Speed() int {
	return c.SpeedModifier + c.BaseSpeed()
}

// PassivePerception is 10 plus the perception skill modifier
func (c *Character) PassivePerception() int {
	return 10 + c.SkillModifier(SkillPerception)
}

// SavingThrowModifier adds the proficiency bonus when the save flag is set
func (c *Character) SavingThrowModifier(t AbilityType) int {
	a := c.Abilities.Get(t)
	if a.Save {
		return a.Modifier() + c.ProficiencyBonus()
	}
	return a.Modifier()
}

// AttacksPerAction is the best value across all jobs
func (c *Character) AttacksPerAction() int {
	best := c.Job.AttacksPerAction()
	for _, j := range c.Multiclasses {
		best = max(best, j.AttacksPerAction())
	}
	return best
}

// ClassFeatures lists the primary job's unlocked features
func (c *Character) ClassFeatures() []string {
	return c.Job.Features()
}

// Description renders "Hill Dwarf Fighter, Level 3"
func (c *Character) Description() string {
	who := c.Race.DisplayName()
	if c.Subrace != SubraceNone {
		who = c.Subrace.DisplayName()
	}
	return fmt.Sprintf("%s %s, Level %d", who, c.Job.Class.DisplayName(), c.Job.Level)
}

var nonLetters = regexp.MustCompile(`[^a-zA-Z]`)

// FirstName is the leading run of letters in the name
func (c *Character) FirstName() string {
	cleaned := strings.TrimLeft(nonLetters.ReplaceAllString(c.Name, " "), " ")
	first, _, _ := strings.Cut(cleaned, " ")
	return first
}

// SetDisplayedArmorClass solves Armor so that ArmorClass returns ac
func (c *Character) SetDisplayedArmorClass(ac int) {
	c.Armor = ac - c.Abilities.Dexterity.Modifier()
}

// SetDisplayedInitiative solves InitiativeModifier so that Initiative returns i
func (c *Character) SetDisplayedInitiative(i int) {
	c.InitiativeModifier = i - c.Abilities.Dexterity.Modifier() - c.jackOfAllTradesBonus()
}

// SetDisplayedSpeed solves SpeedModifier so that Speed returns s
func (c *Character) SetDisplayedSpeed(s int) {
	c.SpeedModifier = s - c.BaseSpeed()
}

// SetDisplayedMaxHP solves BaseHP so that MaxHP returns m, then heals to full
func (c *Character) SetDisplayedMaxHP(m int) {
	c.BaseHP = m - c.Abilities.Constitution.Modifier()*c.Level()
	c.HP = c.MaxHP()
}

// ApplyDeathSaves records death save counters. A third success stabilizes
// the character: both counters reset and hit points become 1, whatever
// failure count was supplied.
func (c *Character) ApplyDeathSaves(successes, failures int) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("successes", successes, 0, 3, vb)
	errors.ValidateRange("failures", failures, 0, 3, vb)
	if err := vb.Build(); err != nil {
		return err
	}
	if successes >= 3 {
		c.DeathSaves = DeathSaves{}
		c.HP = 1
		return nil
	}
	c.DeathSaves = DeathSaves{Successes: successes, Failures: failures}
	return nil
}

// LevelUp advances the job for class, adding a multiclass job when the
// character has none of that class yet. Level notes are appended and the
// notes panel forced visible. newNoteID supplies ids for those notes.
func (c *Character) LevelUp(class Class, now time.Time, newNoteID func() string) (*Job, error) {
	if !class.Valid() {
		return nil, errors.InvalidArgumentf("unknown class %q", class)
	}
	if c.Level() >= MaxLevel {
		return nil, errors.FailedPreconditionf("character is already level %d", MaxLevel)
	}

	job := c.jobFor(class)
	if job == nil {
		c.Multiclasses = append(c.Multiclasses, NewJob(class))
		job = &c.Multiclasses[len(c.Multiclasses)-1]
	} else {
		job.Level++
		job.Dice++
	}

	c.Preferences.ShowNotes = true
	for _, text := range job.LevelNotes() {
		c.Notes = append(c.Notes, Note{ID: newNoteID(), Text: text, Created: now})
	}
	return job, nil
}

func (c *Character) jobFor(class Class) *Job {
	if c.Job.Class == class {
		return &c.Job
	}
	for i := range c.Multiclasses {
		if c.Multiclasses[i].Class == class {
			return &c.Multiclasses[i]
		}
	}
	return nil
}

// Clone returns a deep copy that shares no slices or pointers with c
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Multiclasses = slices.Clone(c.Multiclasses)
	out.Proficiencies = slices.Clone(c.Proficiencies)
	out.Skills = slices.Clone(c.Skills)
	out.Equipment = slices.Clone(c.Equipment)
	out.Spells = slices.Clone(c.Spells)

	out.Notes = slices.Clone(c.Notes)
	for i := range out.Notes {
		if at := out.Notes[i].Archived; at != nil {
			t := *at
			out.Notes[i].Archived = &t
		}
	}

	out.Weapons = slices.Clone(c.Weapons)
	for i := range out.Weapons {
		out.Weapons[i].Properties = slices.Clone(out.Weapons[i].Properties)
	}
	return &out
}
