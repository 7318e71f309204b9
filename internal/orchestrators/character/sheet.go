package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// UpdateAvatar replaces the portrait and inspiration flag
func (o *Orchestrator) UpdateAvatar(
	ctx context.Context,
	input *character.UpdateAvatarInput,
) (*character.UpdateAvatarOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	char, err := o.mutate(ctx, character.OpUpdateAvatar, input.CharacterID, func(c *dnd5e.Character) error {
		c.ImagePath = input.ImagePath
		c.ImageURL = input.ImageURL
		c.HasInspiration = input.HasInspiration
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateAvatarOutput{Character: char}, nil
}

// UpdateExperience sets the experience total. Leveling is never automatic;
// callers check HasToLevelUp on the result.
func (o *Orchestrator) UpdateExperience(
	ctx context.Context,
	input *character.UpdateExperienceInput,
) (*character.UpdateExperienceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("experience", input.Experience, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateExperience, input.CharacterID, func(c *dnd5e.Character) error {
		c.Experience = input.Experience
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateExperienceOutput{Character: char}, nil
}

// LevelUp advances one class by a level. With RollHitPoints the class hit
// die is rolled and the gain, never below 1, is added to both maximum and
// current hit points.
func (o *Orchestrator) LevelUp(
	ctx context.Context,
	input *character.LevelUpInput,
) (*character.LevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if !input.Class.Valid() {
		return nil, errors.InvalidArgumentf("unknown class %q", input.Class)
	}

	var (
		job   dnd5e.Job
		rolls []int
	)
	char, err := o.mutate(ctx, character.OpLevelUp, input.CharacterID, func(c *dnd5e.Character) error {
		var roll *engine.RollHitPointsOutput
		if input.RollHitPoints {
			if c.Level() >= dnd5e.MaxLevel {
				return errors.FailedPreconditionf("character is already level %d", dnd5e.MaxLevel)
			}
			var err error
			roll, err = o.engine.RollHitPoints(ctx, &engine.RollHitPointsInput{
				HitDie:               input.Class.HitDie(),
				Count:                1,
				ConstitutionModifier: c.Abilities.Constitution.Modifier(),
			})
			if err != nil {
				return errors.Wrap(err, "failed to roll hit points")
			}
		}

		leveled, err := c.LevelUp(input.Class, o.clock.Now(), o.idGen.Generate)
		if err != nil {
			return err
		}
		job = *leveled

		if roll != nil {
			c.BaseHP += roll.BaseGain
			c.HP += roll.MaxHPGain
			rolls = roll.Rolls
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "character leveled up",
		"character_id", char.ID,
		"class", job.Class,
		"level", char.Level())

	return &character.LevelUpOutput{
		Character:     char,
		Job:           job,
		HitPointRolls: rolls,
	}, nil
}

// UpdateIdentity changes name, about and catalog choices. Changing race
// without naming a subrace drops a subrace that no longer fits.
func (o *Orchestrator) UpdateIdentity(
	ctx context.Context,
	input *character.UpdateIdentityInput,
) (*character.UpdateIdentityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.Name != nil {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("name", *input.Name, vb)
		if err := vb.Build(); err != nil {
			return nil, err
		}
	}

	char, err := o.mutate(ctx, character.OpUpdateIdentity, input.CharacterID, func(c *dnd5e.Character) error {
		race, subrace, class := c.Race, c.Subrace, c.Job.Class
		bg, al := c.Background, c.Alignment

		if input.Race != nil {
			race = *input.Race
			if input.Subrace == nil && subrace != "" && subrace.Race() != race {
				subrace = ""
			}
		}
		if input.Subrace != nil {
			subrace = *input.Subrace
		}
		if input.Class != nil {
			class = *input.Class
		}
		if input.Background != nil {
			bg = *input.Background
		}
		if input.Alignment != nil {
			al = *input.Alignment
		}

		if err := c.SetIdentity(race, subrace, class, bg, al); err != nil {
			return err
		}
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.About != nil {
			c.About = *input.About
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateIdentityOutput{Character: char}, nil
}

// UpdateDeathSaves records death saves. A third success stabilizes the
// character regardless of the failures supplied.
func (o *Orchestrator) UpdateDeathSaves(
	ctx context.Context,
	input *character.UpdateDeathSavesInput,
) (*character.UpdateDeathSavesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	char, err := o.mutate(ctx, character.OpUpdateDeathSaves, input.CharacterID, func(c *dnd5e.Character) error {
		return c.ApplyDeathSaves(input.Successes, input.Failures)
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateDeathSavesOutput{
		Character:  char,
		Stabilized: input.Successes >= 3,
	}, nil
}

// UpdateStatus takes the combat block as displayed. Armor, initiative and
// speed modifiers are solved so each displayed value reads back exactly:
//
//	Armor              = AC - DEX
//	InitiativeModifier = Initiative - DEX - jack of all trades bonus
//	SpeedModifier      = Speed - race or subrace speed
func (o *Orchestrator) UpdateStatus(
	ctx context.Context,
	input *character.UpdateStatusInput,
) (*character.UpdateStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("hp", input.HP, vb)
	errors.ValidateNonNegative("hitDice", input.HitDice, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateStatus, input.CharacterID, func(c *dnd5e.Character) error {
		if input.HitDice > c.Job.Level {
			return errors.InvalidArgumentf("hit dice %d exceeds %s level %d",
				input.HitDice, c.Job.Class.DisplayName(), c.Job.Level)
		}
		c.HP = input.HP
		c.SetDisplayedArmorClass(input.ArmorClass)
		c.SetDisplayedInitiative(input.Initiative)
		c.SetDisplayedSpeed(input.Speed)
		c.Job.Dice = input.HitDice
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateStatusOutput{Character: char}, nil
}

// UpdateHP sets current and optionally temporary hit points. Values above
// the maximum are kept as entered.
func (o *Orchestrator) UpdateHP(
	ctx context.Context,
	input *character.UpdateHPInput,
) (*character.UpdateHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("hp", input.HP, vb)
	if input.TempHP != nil {
		errors.ValidateNonNegative("tempHP", *input.TempHP, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateHP, input.CharacterID, func(c *dnd5e.Character) error {
		c.HP = input.HP
		if input.TempHP != nil {
			c.TempHP = *input.TempHP
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateHPOutput{Character: char}, nil
}

// UpdateMaxHP solves BaseHP = MaxHP - CON*level and heals to the new maximum
func (o *Orchestrator) UpdateMaxHP(
	ctx context.Context,
	input *character.UpdateMaxHPInput,
) (*character.UpdateMaxHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}
	if input.MaxHP < 1 {
		return nil, errors.InvalidArgument("max hp must be at least 1")
	}

	char, err := o.mutate(ctx, character.OpUpdateMaxHP, input.CharacterID, func(c *dnd5e.Character) error {
		c.SetDisplayedMaxHP(input.MaxHP)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateMaxHPOutput{Character: char}, nil
}

// UpdateAbilities sets the given ability scores
func (o *Orchestrator) UpdateAbilities(
	ctx context.Context,
	input *character.UpdateAbilitiesInput,
) (*character.UpdateAbilitiesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	if len(input.Scores) == 0 {
		vb.RequiredField("scores")
	}
	for ability, score := range input.Scores {
		if !ability.Valid() {
			vb.InvalidField("scores", "unknown ability "+string(ability))
			continue
		}
		errors.ValidateRange(string(ability), score, minAbilityScore, maxAbilityScore, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateAbilities, input.CharacterID, func(c *dnd5e.Character) error {
		for ability, score := range input.Scores {
			c.Abilities.SetScore(ability, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateAbilitiesOutput{Character: char}, nil
}

// UpdateSaves sets saving throw proficiency flags
func (o *Orchestrator) UpdateSaves(
	ctx context.Context,
	input *character.UpdateSavesInput,
) (*character.UpdateSavesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	if len(input.Saves) == 0 {
		vb.RequiredField("saves")
	}
	for ability := range input.Saves {
		if !ability.Valid() {
			vb.InvalidField("saves", "unknown ability "+string(ability))
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateSaves, input.CharacterID, func(c *dnd5e.Character) error {
		for ability, save := range input.Saves {
			c.Abilities.SetSave(ability, save)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateSavesOutput{Character: char}, nil
}

// UpdateSkill sets one skill's proficiency tier
func (o *Orchestrator) UpdateSkill(
	ctx context.Context,
	input *character.UpdateSkillInput,
) (*character.UpdateSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(msgInputRequired)
	}

	vb := errors.NewValidationBuilder()
	if !input.Skill.Valid() {
		vb.InvalidField("skill", "unknown skill "+string(input.Skill))
	}
	if !input.Tier.Valid() {
		vb.InvalidField("tier", "unknown proficiency tier "+string(input.Tier))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.mutate(ctx, character.OpUpdateSkill, input.CharacterID, func(c *dnd5e.Character) error {
		return c.SetSkillTier(input.Skill, input.Tier)
	})
	if err != nil {
		return nil, err
	}

	return &character.UpdateSkillOutput{Character: char}, nil
}
