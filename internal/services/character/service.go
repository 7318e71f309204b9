// Package character defines the interface for character sheet operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-sheet/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// Operation names attached to change notifications
const (
	OpCreateCharacter    = "create_character"
	OpDeleteCharacter    = "delete_character"
	OpUpdateAvatar       = "update_avatar"
	OpUpdateExperience   = "update_experience"
	OpLevelUp            = "level_up"
	OpUpdateDeathSaves   = "update_death_saves"
	OpUpdateStatus       = "update_status"
	OpUpdateHP           = "update_hp"
	OpUpdateMaxHP        = "update_max_hp"
	OpUpdateAbilities    = "update_abilities"
	OpUpdateSaves        = "update_saves"
	OpUpdateSkill        = "update_skill"
	OpCreateNote         = "create_note"
	OpUpdateNote         = "update_note"
	OpDeleteNote         = "delete_note"
	OpUpdateCoin         = "update_coin"
	OpCreateEquipment    = "create_equipment"
	OpUpdateEquipment    = "update_equipment"
	OpDeleteEquipment    = "delete_equipment"
	OpCreateWeapon       = "create_weapon"
	OpCreateCustomWeapon = "create_custom_weapon"
	OpUpdateWeapon       = "update_weapon"
	OpDeleteWeapon       = "delete_weapon"
	OpCreateSpell        = "create_spell"
	OpUpdateSpell        = "update_spell"
	OpDeleteSpell        = "delete_spell"
	OpUpdateSpellSlot    = "update_spell_slot"
	OpUpdateIdentity     = "update_identity"
	OpTogglePreference   = "toggle_preference"
)

// Service defines the interface for character sheet operations. Every
// mutation loads the character, applies one change, stamps Updated and
// commits atomically.
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)
	GetDerivedStats(ctx context.Context, input *GetDerivedStatsInput) (*GetDerivedStatsOutput, error)

	// Sheet header and progression
	UpdateAvatar(ctx context.Context, input *UpdateAvatarInput) (*UpdateAvatarOutput, error)
	UpdateExperience(ctx context.Context, input *UpdateExperienceInput) (*UpdateExperienceOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
	UpdateIdentity(ctx context.Context, input *UpdateIdentityInput) (*UpdateIdentityOutput, error)

	// Combat
	UpdateDeathSaves(ctx context.Context, input *UpdateDeathSavesInput) (*UpdateDeathSavesOutput, error)
	UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error)
	UpdateHP(ctx context.Context, input *UpdateHPInput) (*UpdateHPOutput, error)
	UpdateMaxHP(ctx context.Context, input *UpdateMaxHPInput) (*UpdateMaxHPOutput, error)

	// Abilities and skills
	UpdateAbilities(ctx context.Context, input *UpdateAbilitiesInput) (*UpdateAbilitiesOutput, error)
	UpdateSaves(ctx context.Context, input *UpdateSavesInput) (*UpdateSavesOutput, error)
	UpdateSkill(ctx context.Context, input *UpdateSkillInput) (*UpdateSkillOutput, error)

	// Notes
	CreateNote(ctx context.Context, input *CreateNoteInput) (*CreateNoteOutput, error)
	UpdateNote(ctx context.Context, input *UpdateNoteInput) (*UpdateNoteOutput, error)
	DeleteNote(ctx context.Context, input *DeleteNoteInput) (*DeleteNoteOutput, error)

	// Purse and equipment
	UpdateCoin(ctx context.Context, input *UpdateCoinInput) (*UpdateCoinOutput, error)
	CreateEquipment(ctx context.Context, input *CreateEquipmentInput) (*CreateEquipmentOutput, error)
	UpdateEquipment(ctx context.Context, input *UpdateEquipmentInput) (*UpdateEquipmentOutput, error)
	DeleteEquipment(ctx context.Context, input *DeleteEquipmentInput) (*DeleteEquipmentOutput, error)

	// Weapons
	CreateWeapon(ctx context.Context, input *CreateWeaponInput) (*CreateWeaponOutput, error)
	CreateCustomWeapon(ctx context.Context, input *CreateCustomWeaponInput) (*CreateWeaponOutput, error)
	UpdateWeapon(ctx context.Context, input *UpdateWeaponInput) (*UpdateWeaponOutput, error)
	DeleteWeapon(ctx context.Context, input *DeleteWeaponInput) (*DeleteWeaponOutput, error)

	// Spells
	CreateSpell(ctx context.Context, input *CreateSpellInput) (*CreateSpellOutput, error)
	UpdateSpell(ctx context.Context, input *UpdateSpellInput) (*UpdateSpellOutput, error)
	DeleteSpell(ctx context.Context, input *DeleteSpellInput) (*DeleteSpellOutput, error)
	UpdateSpellSlot(ctx context.Context, input *UpdateSpellSlotInput) (*UpdateSpellSlotOutput, error)

	// Preferences
	TogglePreference(ctx context.Context, input *TogglePreferenceInput) (*TogglePreferenceOutput, error)
}

// Lifecycle types

// CreateCharacterInput defines the request for creating a character.
// Empty catalog fields fall back to the sheet defaults.
type CreateCharacterInput struct {
	PlayerID   string
	Name       string
	Race       dnd5e.Race
	Subrace    dnd5e.Subrace // Optional
	Class      dnd5e.Class
	Background dnd5e.Background
	Alignment  dnd5e.Alignment
	Level      int // Defaults to 1
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *dnd5e.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *dnd5e.Character
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*dnd5e.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Message string
}

// GetDerivedStatsInput defines the request for the derived stat block
type GetDerivedStatsInput struct {
	CharacterID string
}

// GetDerivedStatsOutput carries the character and everything derived from it
type GetDerivedStatsOutput struct {
	Character *dnd5e.Character
	Stats     dnd5e.DerivedStats
}

// Header and progression types

// UpdateAvatarInput replaces the portrait and inspiration flag
type UpdateAvatarInput struct {
	CharacterID    string
	ImagePath      string
	ImageURL       string
	HasInspiration bool
}

// UpdateAvatarOutput defines the response for updating the avatar
type UpdateAvatarOutput struct {
	Character *dnd5e.Character
}

// UpdateExperienceInput carries the new experience total
type UpdateExperienceInput struct {
	CharacterID string
	Experience  int
}

// UpdateExperienceOutput defines the response for updating experience
type UpdateExperienceOutput struct {
	Character *dnd5e.Character
}

// LevelUpInput selects the class gaining a level. RollHitPoints rolls the
// class hit die and adds the result to maximum hit points.
type LevelUpInput struct {
	CharacterID   string
	Class         dnd5e.Class
	RollHitPoints bool
}

// LevelUpOutput defines the response for leveling up
type LevelUpOutput struct {
	Character     *dnd5e.Character
	Job           dnd5e.Job
	HitPointRolls []int // Empty unless RollHitPoints was set
}

// UpdateIdentityInput changes who the character is. Nil fields are kept.
// Race, subrace and class changes re-derive proficiencies.
type UpdateIdentityInput struct {
	CharacterID string
	Name        *string
	About       *string
	Race        *dnd5e.Race
	Subrace     *dnd5e.Subrace
	Class       *dnd5e.Class
	Background  *dnd5e.Background
	Alignment   *dnd5e.Alignment
}

// UpdateIdentityOutput defines the response for updating identity
type UpdateIdentityOutput struct {
	Character *dnd5e.Character
}

// Combat types

// UpdateDeathSavesInput carries both death save counters
type UpdateDeathSavesInput struct {
	CharacterID string
	Successes   int
	Failures    int
}

// UpdateDeathSavesOutput defines the response for updating death saves.
// Stabilized reports that the third success reset the counters.
type UpdateDeathSavesOutput struct {
	Character  *dnd5e.Character
	Stabilized bool
}

// UpdateStatusInput carries the combat block as displayed on the sheet.
// Stored modifiers are solved so each value reads back exactly.
type UpdateStatusInput struct {
	CharacterID string
	HP          int
	ArmorClass  int
	Initiative  int
	Speed       int
	HitDice     int
}

// UpdateStatusOutput defines the response for updating status
type UpdateStatusOutput struct {
	Character *dnd5e.Character
}

// UpdateHPInput sets current hit points. TempHP is kept when nil.
type UpdateHPInput struct {
	CharacterID string
	HP          int
	TempHP      *int
}

// UpdateHPOutput defines the response for updating hit points
type UpdateHPOutput struct {
	Character *dnd5e.Character
}

// UpdateMaxHPInput carries the displayed maximum hit points
type UpdateMaxHPInput struct {
	CharacterID string
	MaxHP       int
}

// UpdateMaxHPOutput defines the response for updating maximum hit points
type UpdateMaxHPOutput struct {
	Character *dnd5e.Character
}

// Ability and skill types

// UpdateAbilitiesInput sets ability scores. Abilities missing from the map
// are left alone.
type UpdateAbilitiesInput struct {
	CharacterID string
	Scores      map[dnd5e.AbilityType]int
}

// UpdateAbilitiesOutput defines the response for updating abilities
type UpdateAbilitiesOutput struct {
	Character *dnd5e.Character
}

// UpdateSavesInput sets saving throw proficiency flags. Abilities missing
// from the map are left alone.
type UpdateSavesInput struct {
	CharacterID string
	Saves       map[dnd5e.AbilityType]bool
}

// UpdateSavesOutput defines the response for updating saves
type UpdateSavesOutput struct {
	Character *dnd5e.Character
}

// UpdateSkillInput sets one skill's proficiency tier
type UpdateSkillInput struct {
	CharacterID string
	Skill       dnd5e.SkillType
	Tier        dnd5e.SkillTier
}

// UpdateSkillOutput defines the response for updating a skill
type UpdateSkillOutput struct {
	Character *dnd5e.Character
}

// Note types

// CreateNoteInput adds a note, at Index when given
type CreateNoteInput struct {
	CharacterID string
	Text        string
	Index       *int
}

// CreateNoteOutput defines the response for creating a note
type CreateNoteOutput struct {
	Character *dnd5e.Character
	Note      dnd5e.Note
}

// UpdateNoteInput edits a note. Kind selects the edit; Text is used only
// for text updates.
type UpdateNoteInput struct {
	CharacterID string
	NoteID      string
	Kind        dnd5e.NoteUpdateKind
	Text        string
}

// UpdateNoteOutput defines the response for updating a note
type UpdateNoteOutput struct {
	Character *dnd5e.Character
}

// DeleteNoteInput removes a note
type DeleteNoteInput struct {
	CharacterID string
	NoteID      string
}

// DeleteNoteOutput defines the response for deleting a note
type DeleteNoteOutput struct {
	Character *dnd5e.Character
}

// Purse and equipment types

// UpdateCoinInput sets one denomination
type UpdateCoinInput struct {
	CharacterID string
	Type        dnd5e.CoinType
	Amount      int
}

// UpdateCoinOutput defines the response for updating coins
type UpdateCoinOutput struct {
	Character *dnd5e.Character
}

// CreateEquipmentInput adds items. A stack with the same name, ignoring
// case, grows by Quantity instead.
type CreateEquipmentInput struct {
	CharacterID    string
	Name           string
	Quantity       int
	AmmunitionType string
	Index          *int
}

// CreateEquipmentOutput defines the response for creating equipment
type CreateEquipmentOutput struct {
	Character *dnd5e.Character
	Merged    bool
}

// UpdateEquipmentInput sets a stack's quantity. Zero or less removes it.
type UpdateEquipmentInput struct {
	CharacterID string
	Name        string
	Quantity    int
}

// UpdateEquipmentOutput defines the response for updating equipment
type UpdateEquipmentOutput struct {
	Character *dnd5e.Character
	Removed   bool
}

// DeleteEquipmentInput removes a stack by name
type DeleteEquipmentInput struct {
	CharacterID string
	Name        string
}

// DeleteEquipmentOutput defines the response for deleting equipment
type DeleteEquipmentOutput struct {
	Character *dnd5e.Character
}

// Weapon types

// CreateWeaponInput adds a catalog weapon. Name defaults to the catalog
// display name.
type CreateWeaponInput struct {
	CharacterID string
	Type        string
	Name        string
	Description string
	Bonus       int
	Proficient  *bool // Defaults to the character's proficiency
	Index       *int
}

// CreateWeaponOutput defines the response for creating a weapon
type CreateWeaponOutput struct {
	Character *dnd5e.Character
	Weapon    dnd5e.HeldWeapon
}

// CreateCustomWeaponInput adds a hand entered weapon. Catalog stats are
// copied from Type when it names a catalog weapon.
type CreateCustomWeaponInput struct {
	CharacterID string
	Name        string
	Type        string // Optional
	Simple      bool
	Ranged      bool
	Damage      string
	DamageType  string
	Properties  []string
	Description string
	Bonus       int
	Proficient  bool
}

// UpdateWeaponInput edits a held weapon. Nil fields are kept.
type UpdateWeaponInput struct {
	CharacterID string
	WeaponID    string
	Name        *string
	Description *string
	Bonus       *int
	Proficient  *bool
}

// UpdateWeaponOutput defines the response for updating a weapon
type UpdateWeaponOutput struct {
	Character *dnd5e.Character
	Weapon    dnd5e.HeldWeapon
}

// DeleteWeaponInput removes a held weapon
type DeleteWeaponInput struct {
	CharacterID string
	WeaponID    string
}

// DeleteWeaponOutput defines the response for deleting a weapon
type DeleteWeaponOutput struct {
	Character *dnd5e.Character
}

// Spell types

// CreateSpellInput adds a known spell. When SRDKey is set the spell's
// level, school, range and requirements are looked up and fill any field
// left empty.
type CreateSpellInput struct {
	CharacterID  string
	Name         string
	SRDKey       string // Optional
	Level        int
	Requirements string
	Range        string
	School       string
	Prepared     bool
	Index        *int
}

// CreateSpellOutput defines the response for creating a spell
type CreateSpellOutput struct {
	Character *dnd5e.Character
	Spell     dnd5e.KnownSpell
}

// UpdateSpellInput edits a known spell. Nil fields are kept.
type UpdateSpellInput struct {
	CharacterID        string
	Name               string
	Prepared           *bool
	CastsSinceLongRest *int
}

// UpdateSpellOutput defines the response for updating a spell
type UpdateSpellOutput struct {
	Character *dnd5e.Character
}

// DeleteSpellInput removes a known spell by name
type DeleteSpellInput struct {
	CharacterID string
	Name        string
}

// DeleteSpellOutput defines the response for deleting a spell
type DeleteSpellOutput struct {
	Character *dnd5e.Character
}

// UpdateSpellSlotInput sets slot counts for one spell level
type UpdateSpellSlotInput struct {
	CharacterID string
	Level       int
	Total       int
	Used        int
}

// UpdateSpellSlotOutput defines the response for updating a spell slot
type UpdateSpellSlotOutput struct {
	Character *dnd5e.Character
}

// Preference types

// TogglePreferenceInput flips one preference
type TogglePreferenceInput struct {
	CharacterID string
	Toggle      dnd5e.PreferenceToggle
}

// TogglePreferenceOutput defines the response for toggling a preference
type TogglePreferenceOutput struct {
	Character *dnd5e.Character
}
