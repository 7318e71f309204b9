package character

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// CreateNote adds a note at the requested position
func (o *Orchestrator) CreateNote(
	ctx context.Context,
	input *character.CreateNoteInput,
) (*character.CreateNoteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	note := dnd5e.Note{
		ID:   o.idGen.Generate(),
		Text: input.Text,
	}
	char, err := o.mutate(ctx, character.OpCreateNote, input.CharacterID, func(c *dnd5e.Character) error {
		note.Created = o.clock.Now()
		c.AddNote(note, input.Index)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.CreateNoteOutput{
		Character: char,
		Note:      note,
	}, nil
}

// UpdateNote edits a note's text or toggles whether it is archived
func (o *Orchestrator) UpdateNote(
	ctx context.Context,
	input *character.UpdateNoteInput,
) (*character.UpdateNoteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("noteID", input.NoteID, vb)
	if !input.Kind.Valid() {
		vb.InvalidField("kind", "note update kind must be set")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateNote, input.CharacterID, func(c *dnd5e.Character) error {
		return c.UpdateNote(input.NoteID, input.Kind, input.Text, o.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateNoteOutput{Character: char}, nil
}

// DeleteNote removes a note
func (o *Orchestrator) DeleteNote(
	ctx context.Context,
	input *character.DeleteNoteInput,
) (*character.DeleteNoteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.NoteID == "" {
		return nil, errors.InvalidArgument("note ID is required")
	}

	char, err := o.mutate(ctx, character.OpDeleteNote, input.CharacterID, func(c *dnd5e.Character) error {
		return c.RemoveNote(input.NoteID)
	})
	if err != nil {
		return nil, err
	}

	return &character.DeleteNoteOutput{Character: char}, nil
}

// UpdateCoin sets the amount of one denomination
func (o *Orchestrator) UpdateCoin(
	ctx context.Context,
	input *character.UpdateCoinInput,
) (*character.UpdateCoinOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	if !input.Type.Valid() {
		vb.InvalidField("type", "unknown coin type "+string(input.Type))
	}
	errors.ValidateNonNegative("amount", input.Amount, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateCoin, input.CharacterID, func(c *dnd5e.Character) error {
		return c.Coins.Set(input.Type, input.Amount)
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateCoinOutput{Character: char}, nil
}

// CreateEquipment adds a stack, or grows the stack already carried under
// the same name
func (o *Orchestrator) CreateEquipment(
	ctx context.Context,
	input *character.CreateEquipmentInput,
) (*character.CreateEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateNonNegative("quantity", input.Quantity, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var merged bool
	char, err := o.mutate(ctx, character.OpCreateEquipment, input.CharacterID, func(c *dnd5e.Character) error {
		merged = c.AddEquipment(dnd5e.Equipment{
			Name:           strings.TrimSpace(input.Name),
			Quantity:       input.Quantity,
			AmmunitionType: input.AmmunitionType,
		}, input.Index)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.CreateEquipmentOutput{
		Character: char,
		Merged:    merged,
	}, nil
}

// UpdateEquipment sets a stack's quantity. Zero or less removes the stack.
func (o *Orchestrator) UpdateEquipment(
	ctx context.Context,
	input *character.UpdateEquipmentInput,
) (*character.UpdateEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument("equipment name is required")
	}

	char, err := o.mutate(ctx, character.OpUpdateEquipment, input.CharacterID, func(c *dnd5e.Character) error {
		return c.SetEquipmentQuantity(input.Name, input.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateEquipmentOutput{
		Character: char,
		Removed:   input.Quantity <= 0,
	}, nil
}

// DeleteEquipment removes a stack by name
func (o *Orchestrator) DeleteEquipment(
	ctx context.Context,
	input *character.DeleteEquipmentInput,
) (*character.DeleteEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument("equipment name is required")
	}

	char, err := o.mutate(ctx, character.OpDeleteEquipment, input.CharacterID, func(c *dnd5e.Character) error {
		return c.RemoveEquipment(input.Name)
	})
	if err != nil {
		return nil, err
	}

	return &character.DeleteEquipmentOutput{Character: char}, nil
}

// CreateWeapon adds a catalog weapon. Proficiency defaults to whether the
// character's proficiencies cover the weapon type.
func (o *Orchestrator) CreateWeapon(
	ctx context.Context,
	input *character.CreateWeaponInput,
) (*character.CreateWeaponOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	wt, ok := dnd5e.LookupWeapon(input.Type)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown weapon type %q", input.Type)
	}

	weapon := dnd5e.NewHeldWeapon(o.idGen.Generate(), strings.TrimSpace(input.Name), wt)
	weapon.Description = input.Description
	weapon.Bonus = input.Bonus

	char, err := o.mutate(ctx, character.OpCreateWeapon, input.CharacterID, func(c *dnd5e.Character) error {
		if input.Proficient != nil {
			weapon.Proficient = *input.Proficient
		} else {
			weapon.Proficient = c.HasProficiency(dnd5e.ProficiencyWeapon, wt.Name)
		}
		c.AddWeapon(weapon, input.Index)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.CreateWeaponOutput{
		Character: char,
		Weapon:    weapon,
	}, nil
}

// CreateCustomWeapon adds a hand entered weapon, starting from catalog
// stats when Type names a catalog weapon
func (o *Orchestrator) CreateCustomWeapon(
	ctx context.Context,
	input *character.CreateCustomWeaponInput,
) (*character.CreateWeaponOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	weapon := dnd5e.HeldWeapon{
		ID:         o.idGen.Generate(),
		Name:       strings.TrimSpace(input.Name),
		Simple:     input.Simple,
		Ranged:     input.Ranged,
		Damage:     input.Damage,
		DamageType: input.DamageType,
		Properties: append([]string(nil), input.Properties...),
	}
	if input.Type != "" {
		wt, ok := dnd5e.LookupWeapon(input.Type)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown weapon type %q", input.Type)
		}
		weapon = dnd5e.NewHeldWeapon(weapon.ID, weapon.Name, wt)
	}
	weapon.Custom = true
	weapon.Description = input.Description
	weapon.Bonus = input.Bonus
	weapon.Proficient = input.Proficient

	char, err := o.mutate(ctx, character.OpCreateCustomWeapon, input.CharacterID, func(c *dnd5e.Character) error {
		c.AddWeapon(weapon, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.CreateWeaponOutput{
		Character: char,
		Weapon:    weapon,
	}, nil
}

// UpdateWeapon edits a held weapon's name, description, bonus or proficiency
func (o *Orchestrator) UpdateWeapon(
	ctx context.Context,
	input *character.UpdateWeaponInput,
) (*character.UpdateWeaponOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("weaponID", input.WeaponID, vb)
	if input.Name != nil {
		errors.ValidateRequired("name", *input.Name, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var updated dnd5e.HeldWeapon
	char, err := o.mutate(ctx, character.OpUpdateWeapon, input.CharacterID, func(c *dnd5e.Character) error {
		w, err := c.Weapon(input.WeaponID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			w.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			w.Description = *input.Description
		}
		if input.Bonus != nil {
			w.Bonus = *input.Bonus
		}
		if input.Proficient != nil {
			w.Proficient = *input.Proficient
		}
		updated = *w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateWeaponOutput{
		Character: char,
		Weapon:    updated,
	}, nil
}

// DeleteWeapon removes a held weapon
func (o *Orchestrator) DeleteWeapon(
	ctx context.Context,
	input *character.DeleteWeaponInput,
) (*character.DeleteWeaponOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.WeaponID == "" {
		return nil, errors.InvalidArgument("weapon ID is required")
	}

	char, err := o.mutate(ctx, character.OpDeleteWeapon, input.CharacterID, func(c *dnd5e.Character) error {
		return c.RemoveWeapon(input.WeaponID)
	})
	if err != nil {
		return nil, err
	}

	return &character.DeleteWeaponOutput{Character: char}, nil
}

// CreateSpell adds a known spell. An SRD key is resolved before the
// character is loaded; looked up values only fill fields left empty.
func (o *Orchestrator) CreateSpell(
	ctx context.Context,
	input *character.CreateSpellInput,
) (*character.CreateSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	spell := dnd5e.KnownSpell{
		Name:         strings.TrimSpace(input.Name),
		Level:        input.Level,
		Requirements: input.Requirements,
		Range:        input.Range,
		School:       input.School,
		Prepared:     input.Prepared,
	}
	if input.SRDKey != "" {
		if err := o.fillFromSRD(ctx, &spell, input.SRDKey); err != nil {
			return nil, err
		}
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", spell.Name, vb)
	errors.ValidateRange("level", spell.Level, 0, dnd5e.MaxSpellLevel, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpCreateSpell, input.CharacterID, func(c *dnd5e.Character) error {
		return c.AddSpell(spell, input.Index)
	})
	if err != nil {
		return nil, err
	}

	return &character.CreateSpellOutput{
		Character: char,
		Spell:     spell,
	}, nil
}

func (o *Orchestrator) fillFromSRD(ctx context.Context, spell *dnd5e.KnownSpell, key string) error {
	if o.srdClient == nil {
		return errors.FailedPrecondition("SRD lookups are not configured")
	}

	ref, err := o.srdClient.GetSpell(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "SRD spell lookup failed",
			"spell_key", key,
			"error", err)
		return errors.Wrapf(err, "failed to look up spell %q", key)
	}

	if spell.Name == "" {
		spell.Name = ref.Name
	}
	if spell.Level == 0 {
		spell.Level = ref.Level
	}
	if spell.Requirements == "" {
		spell.Requirements = ref.Requirements()
	}
	if spell.Range == "" {
		spell.Range = ref.Range
	}
	if spell.School == "" {
		spell.School = ref.School
	}
	return nil
}

// UpdateSpell edits whether a spell is prepared and how often it was cast
func (o *Orchestrator) UpdateSpell(
	ctx context.Context,
	input *character.UpdateSpellInput,
) (*character.UpdateSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if input.CastsSinceLongRest != nil {
		errors.ValidateNonNegative("castsSinceLongRest", *input.CastsSinceLongRest, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateSpell, input.CharacterID, func(c *dnd5e.Character) error {
		s, err := c.Spell(input.Name)
		if err != nil {
			return err
		}
		if input.Prepared != nil {
			s.Prepared = *input.Prepared
		}
		if input.CastsSinceLongRest != nil {
			s.CastsSinceLongRest = *input.CastsSinceLongRest
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateSpellOutput{Character: char}, nil
}

// DeleteSpell removes a known spell by name
func (o *Orchestrator) DeleteSpell(
	ctx context.Context,
	input *character.DeleteSpellInput,
) (*character.DeleteSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument("spell name is required")
	}

	char, err := o.mutate(ctx, character.OpDeleteSpell, input.CharacterID, func(c *dnd5e.Character) error {
		return c.RemoveSpell(input.Name)
	})
	if err != nil {
		return nil, err
	}

	return &character.DeleteSpellOutput{Character: char}, nil
}

// UpdateSpellSlot sets total and used slots for one spell level
func (o *Orchestrator) UpdateSpellSlot(
	ctx context.Context,
	input *character.UpdateSpellSlotInput,
) (*character.UpdateSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	char, err := o.mutate(ctx, character.OpUpdateSpellSlot, input.CharacterID, func(c *dnd5e.Character) error {
		return c.SetSpellSlot(input.Level, input.Total, input.Used)
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateSpellSlotOutput{Character: char}, nil
}

// TogglePreference flips one sheet preference
func (o *Orchestrator) TogglePreference(
	ctx context.Context,
	input *character.TogglePreferenceInput,
) (*character.TogglePreferenceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if !input.Toggle.Valid() {
		return nil, errors.InvalidArgumentf("unknown preference toggle %q", input.Toggle)
	}

	char, err := o.mutate(ctx, character.OpTogglePreference, input.CharacterID, func(c *dnd5e.Character) error {
		return c.Preferences.Toggle(input.Toggle)
	})
	if err != nil {
		return nil, err
	}

	return &character.TogglePreferenceOutput{Character: char}, nil
}
