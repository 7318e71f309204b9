package dnd5e

import (
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// CoinType names a currency denomination
type CoinType string

// Coin types
const (
	CoinCopper   CoinType = "COIN_COPPER"
	CoinSilver   CoinType = "COIN_SILVER"
	CoinElectrum CoinType = "COIN_ELECTRUM"
	CoinGold     CoinType = "COIN_GOLD"
	CoinPlatinum CoinType = "COIN_PLATINUM"
)

// ParseCoinType resolves user input such as "gold" or "gp" into a CoinType
func ParseCoinType(s string) (CoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cp":
		return CoinCopper, nil
	case "sp":
		return CoinSilver, nil
	case "ep":
		return CoinElectrum, nil
	case "gp":
		return CoinGold, nil
	case "pp":
		return CoinPlatinum, nil
	}
	return parseTag[CoinType]("coin type", "COIN_", s)
}

// Valid reports whether t is a known denomination
func (t CoinType) Valid() bool {
	switch t {
	case CoinCopper, CoinSilver, CoinElectrum, CoinGold, CoinPlatinum:
		return true
	}
	return false
}

// Coins is the purse
type Coins struct {
	Copper   int `json:"copper"`
	Silver   int `json:"silver"`
	Electrum int `json:"electrum"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}

// Set replaces the amount of one denomination
func (c *Coins) Set(t CoinType, amount int) error {
	switch t {
	case CoinCopper:
		c.Copper = amount
	case CoinSilver:
		c.Silver = amount
	case CoinElectrum:
		c.Electrum = amount
	case CoinGold:
		c.Gold = amount
	case CoinPlatinum:
		c.Platinum = amount
	default:
		return errors.InvalidArgumentf("unknown coin type %q", t)
	}
	return nil
}

// Equipment is a stack of carried items keyed by case-insensitive name
type Equipment struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	AmmunitionType string `json:"ammunition_type,omitempty"`
}

// KnownSpell is a spell the character can cast, keyed by name
type KnownSpell struct {
	Name               string `json:"name"`
	Level              int    `json:"level"`
	Requirements       string `json:"requirements,omitempty"`
	Range              string `json:"range,omitempty"`
	School             string `json:"school,omitempty"`
	Prepared           bool   `json:"prepared"`
	CastsSinceLongRest int    `json:"casts_since_long_rest"`
}

// MaxSpellLevel is the highest spell slot level
const MaxSpellLevel = 9

// SpellSlot tracks one spell level's slots
type SpellSlot struct {
	Total int `json:"total"`
	Used  int `json:"used"`
}

// SpellSlots holds slots for spell levels 1 through 9, index 0 is level 1
type SpellSlots [MaxSpellLevel]SpellSlot

// Note is a free text entry on the sheet
type Note struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Created  time.Time  `json:"created"`
	Archived *time.Time `json:"archived,omitempty"`
}

// NoteUpdateKind selects which part of a note an update touches
type NoteUpdateKind string

// Note update kinds. The zero value is unset and always rejected.
const (
	NoteUpdateUnset          NoteUpdateKind = ""
	NoteUpdateText           NoteUpdateKind = "NOTE_UPDATE_TEXT"
	NoteUpdateToggleArchived NoteUpdateKind = "NOTE_UPDATE_TOGGLE_ARCHIVED"
)

// Valid reports whether k is a handled update kind
func (k NoteUpdateKind) Valid() bool {
	switch k {
	case NoteUpdateText, NoteUpdateToggleArchived:
		return true
	}
	return false
}

// Preferences are per-character sheet toggles
type Preferences struct {
	EditAllSkills       bool `json:"edit_all_skills"`
	SortSkillsByAbility bool `json:"sort_skills_by_ability"`
	ShowNotes           bool `json:"show_notes"`
	ShowSpells          bool `json:"show_spells"`
}

// DefaultPreferences shows the notes panel so the welcome note is visible
func DefaultPreferences() Preferences {
	return Preferences{ShowNotes: true}
}

// PreferenceToggle names one preference flag
type PreferenceToggle string

// Preference toggles
const (
	ToggleEditSkills PreferenceToggle = "TOGGLE_EDIT_SKILLS"
	ToggleSortSkills PreferenceToggle = "TOGGLE_SORT_SKILLS"
	ToggleShowNotes  PreferenceToggle = "TOGGLE_SHOW_NOTES"
	ToggleShowSpells PreferenceToggle = "TOGGLE_SHOW_SPELLS"
)

// ParsePreferenceToggle resolves user input such as "show notes"
func ParsePreferenceToggle(s string) (PreferenceToggle, error) {
	return parseTag[PreferenceToggle]("preference", "TOGGLE_", s)
}

// Valid reports whether p is a known toggle
func (p PreferenceToggle) Valid() bool {
	switch p {
	case ToggleEditSkills, ToggleSortSkills, ToggleShowNotes, ToggleShowSpells:
		return true
	}
	return false
}

// Toggle flips one preference
func (p *Preferences) Toggle(t PreferenceToggle) error {
	switch t {
	case ToggleEditSkills:
		p.EditAllSkills = !p.EditAllSkills
	case ToggleSortSkills:
		p.SortSkillsByAbility = !p.SortSkillsByAbility
	case ToggleShowNotes:
		p.ShowNotes = !p.ShowNotes
	case ToggleShowSpells:
		p.ShowSpells = !p.ShowSpells
	default:
		return errors.InvalidArgumentf("unknown preference toggle %q", t)
	}
	return nil
}

// insertAt inserts v at index, or appends when index is nil or past the end
func insertAt[T any](list []T, v T, index *int) []T {
	if index == nil || *index >= len(list) {
		return append(list, v)
	}
	i := *index
	if i < 0 {
		i = 0
	}
	list = append(list, v)
	copy(list[i+1:], list[i:])
	list[i] = v
	return list
}

// AddEquipment merges into an existing stack with the same name, ignoring
// case, or inserts a new one. It reports whether a merge happened.
func (c *Character) AddEquipment(e Equipment, index *int) bool {
	if e.Quantity < 1 {
		e.Quantity = 1
	}
	for i := range c.Equipment {
		if strings.EqualFold(c.Equipment[i].Name, e.Name) {
			c.Equipment[i].Quantity += e.Quantity
			return true
		}
	}
	c.Equipment = insertAt(c.Equipment, e, index)
	return false
}

// SetEquipmentQuantity replaces a stack's quantity. Zero or less removes it.
func (c *Character) SetEquipmentQuantity(name string, quantity int) error {
	i := c.equipmentIndex(name)
	if i < 0 {
		return errors.NotFoundf("equipment %q not found", name)
	}
	if quantity <= 0 {
		c.Equipment = append(c.Equipment[:i], c.Equipment[i+1:]...)
		return nil
	}
	c.Equipment[i].Quantity = quantity
	return nil
}

// RemoveEquipment deletes a stack by name
func (c *Character) RemoveEquipment(name string) error {
	i := c.equipmentIndex(name)
	if i < 0 {
		return errors.NotFoundf("equipment %q not found", name)
	}
	c.Equipment = append(c.Equipment[:i], c.Equipment[i+1:]...)
	return nil
}

// FindEquipment looks up a stack by name, ignoring case
func (c *Character) FindEquipment(name string) (Equipment, bool) {
	if i := c.equipmentIndex(name); i >= 0 {
		return c.Equipment[i], true
	}
	return Equipment{}, false
}

func (c *Character) equipmentIndex(name string) int {
	for i := range c.Equipment {
		if strings.EqualFold(c.Equipment[i].Name, name) {
			return i
		}
	}
	return -1
}

// AddWeapon inserts a held weapon
func (c *Character) AddWeapon(w HeldWeapon, index *int) {
	c.Weapons = insertAt(c.Weapons, w, index)
}

// Weapon returns a pointer to the held weapon with id
func (c *Character) Weapon(id string) (*HeldWeapon, error) {
	for i := range c.Weapons {
		if c.Weapons[i].ID == id {
			return &c.Weapons[i], nil
		}
	}
	return nil, errors.NotFoundf("weapon %s not found", id)
}

// RemoveWeapon deletes a held weapon by id
func (c *Character) RemoveWeapon(id string) error {
	for i := range c.Weapons {
		if c.Weapons[i].ID == id {
			c.Weapons = append(c.Weapons[:i], c.Weapons[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("weapon %s not found", id)
}

// WeaponAttackBonus is STR for melee, DEX for ranged, the better of the two
// for finesse weapons, plus proficiency when proficient and any magic bonus.
func (c *Character) WeaponAttackBonus(w HeldWeapon) int {
	str := c.Abilities.Strength.Modifier()
	dex := c.Abilities.Dexterity.Modifier()

	mod := str
	switch {
	case w.finesse():
		mod = max(str, dex)
	case w.Ranged:
		mod = dex
	}
	if w.Proficient {
		mod += c.ProficiencyBonus()
	}
	return mod + w.Bonus
}

// AddSpell inserts a known spell. Names are unique, ignoring case.
func (c *Character) AddSpell(s KnownSpell, index *int) error {
	if _, err := c.Spell(s.Name); err == nil {
		return errors.AlreadyExistsf("spell %q already known", s.Name)
	}
	c.Spells = insertAt(c.Spells, s, index)
	return nil
}

// Spell returns a pointer to the known spell called name
func (c *Character) Spell(name string) (*KnownSpell, error) {
	for i := range c.Spells {
		if strings.EqualFold(c.Spells[i].Name, name) {
			return &c.Spells[i], nil
		}
	}
	return nil, errors.NotFoundf("spell %q not found", name)
}

// RemoveSpell deletes a known spell by name
func (c *Character) RemoveSpell(name string) error {
	for i := range c.Spells {
		if strings.EqualFold(c.Spells[i].Name, name) {
			c.Spells = append(c.Spells[:i], c.Spells[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("spell %q not found", name)
}

// SetSpellSlot replaces the slot counts for one spell level
func (c *Character) SetSpellSlot(level, total, used int) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", level, 1, MaxSpellLevel, vb)
	errors.ValidateNonNegative("total", total, vb)
	errors.ValidateRange("used", used, 0, max(total, 0), vb)
	if err := vb.Build(); err != nil {
		return err
	}
	c.SpellSlots[level-1] = SpellSlot{Total: total, Used: used}
	return nil
}

// AddNote inserts a note
func (c *Character) AddNote(n Note, index *int) {
	c.Notes = insertAt(c.Notes, n, index)
}

// Note returns a pointer to the note with id
func (c *Character) Note(id string) (*Note, error) {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			return &c.Notes[i], nil
		}
	}
	return nil, errors.NotFoundf("note %s not found", id)
}

// UpdateNote applies one kind of note edit. Toggling archived stamps the
// archive time, or clears it when already archived.
func (c *Character) UpdateNote(id string, kind NoteUpdateKind, text string, now time.Time) error {
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	switch kind {
	case NoteUpdateText:
		n.Text = text
	case NoteUpdateToggleArchived:
		if n.Archived == nil {
			t := now
			n.Archived = &t
		} else {
			n.Archived = nil
		}
	default:
		return errors.InvalidArgumentf("unhandled note update kind %q", kind)
	}
	return nil
}

// RemoveNote deletes a note by id
func (c *Character) RemoveNote(id string) error {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("note %s not found", id)
}
