package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	charactersvc "github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// edit submits one change to a character and prints the committed sheet
func edit(cmd *cobra.Command, id string, apply func(ctx context.Context) (*dnd5e.Character, error)) error {
	var char *dnd5e.Character
	err := sheet.submit(cmd.Context(), id, func(ctx context.Context) error {
		c, err := apply(ctx)
		char = c
		return err
	})
	if err != nil {
		return err
	}
	return printCharacter(char)
}

var (
	avatarPath        string
	avatarURL         string
	avatarInspiration bool

	levelUpClass string
	levelUpRoll  bool

	identityName       string
	identityAbout      string
	identityRace       string
	identitySubrace    string
	identityClass      string
	identityBackground string
	identityAlignment  string

	hpTemp int

	statusHP         int
	statusAC         int
	statusInitiative int
	statusSpeed      int
	statusHitDice    int
)

var avatarCmd = &cobra.Command{
	Use:   "avatar CHARACTER_ID",
	Short: "Set the portrait and inspiration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateAvatar(ctx, &charactersvc.UpdateAvatarInput{
				CharacterID:    args[0],
				ImagePath:      avatarPath,
				ImageURL:       avatarURL,
				HasInspiration: avatarInspiration,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var expCmd = &cobra.Command{
	Use:   "exp CHARACTER_ID POINTS",
	Short: "Set experience points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := intArg("points", args[1])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateExperience(ctx, &charactersvc.UpdateExperienceInput{
				CharacterID: args[0],
				Experience:  points,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var levelUpCmd = &cobra.Command{
	Use:   "level-up CHARACTER_ID",
	Short: "Gain a level in the primary class or a multiclass",
	Long: `Gain a level. Without --class the primary class levels up; naming a
class the character does not have yet adds it as a multiclass at level 1.
With --roll the new hit die is rolled and added to hit points.`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelUp,
}

var identityCmd = &cobra.Command{
	Use:   "identity CHARACTER_ID",
	Short: "Change name, about, race, class, background or alignment",
	Long: `Change identity fields. Only the flags given are changed. A race or
class change re-derives saving throws and proficiencies.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentity,
}

var hpCmd = &cobra.Command{
	Use:   "hp CHARACTER_ID HP",
	Short: "Set current hit points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hp, err := intArg("hp", args[1])
		if err != nil {
			return err
		}
		input := &charactersvc.UpdateHPInput{CharacterID: args[0], HP: hp}
		if cmd.Flags().Changed("temp") {
			input.TempHP = &hpTemp
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateHP(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var maxHPCmd = &cobra.Command{
	Use:   "max-hp CHARACTER_ID MAX_HP",
	Short: "Set maximum hit points as shown on the sheet and heal to full",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxHP, err := intArg("max hp", args[1])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateMaxHP(ctx, &charactersvc.UpdateMaxHPInput{
				CharacterID: args[0],
				MaxHP:       maxHP,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status CHARACTER_ID",
	Short: "Set the combat block as displayed",
	Long: `Set hit points, armor class, initiative, speed and remaining hit dice
to the values shown on the sheet. Values not given keep what the sheet
shows now. The stored modifiers are solved so the derived values read
back exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

var deathSavesCmd = &cobra.Command{
	Use:   "death-saves CHARACTER_ID SUCCESSES FAILURES",
	Short: "Record death saving throws",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		successes, err := intArg("successes", args[1])
		if err != nil {
			return err
		}
		failures, err := intArg("failures", args[2])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateDeathSaves(ctx, &charactersvc.UpdateDeathSavesInput{
				CharacterID: args[0],
				Successes:   successes,
				Failures:    failures,
			})
			if err != nil {
				return nil, err
			}
			if out.Stabilized && !jsonOutput {
				fmt.Println("Stabilized at 1 hit point.")
			}
			return out.Character, nil
		})
	},
}

var abilitiesCmd = &cobra.Command{
	Use:     "abilities CHARACTER_ID ABILITY=SCORE...",
	Short:   "Set ability scores",
	Example: "  sheet abilities char_1 str=15 dex=14 con=13",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores := make(map[dnd5e.AbilityType]int, len(args)-1)
		for _, pair := range args[1:] {
			key, value, err := splitPair(pair)
			if err != nil {
				return err
			}
			score, err := intArg(key, value)
			if err != nil {
				return err
			}
			scores[dnd5e.AbilityType(key)] = score
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateAbilities(ctx, &charactersvc.UpdateAbilitiesInput{
				CharacterID: args[0],
				Scores:      scores,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var savesCmd = &cobra.Command{
	Use:     "saves CHARACTER_ID ABILITY=BOOL...",
	Short:   "Set saving throw proficiencies",
	Example: "  sheet saves char_1 wis=true cha=false",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		saves := make(map[dnd5e.AbilityType]bool, len(args)-1)
		for _, pair := range args[1:] {
			key, value, err := splitPair(pair)
			if err != nil {
				return err
			}
			save, err := strconv.ParseBool(value)
			if err != nil {
				return errors.InvalidArgumentf("%s must be true or false, got %q", key, value)
			}
			saves[dnd5e.AbilityType(key)] = save
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateSaves(ctx, &charactersvc.UpdateSavesInput{
				CharacterID: args[0],
				Saves:       saves,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var skillCmd = &cobra.Command{
	Use:     "skill CHARACTER_ID SKILL TIER",
	Short:   "Set a skill to none, full or expert",
	Example: "  sheet skill char_1 \"sleight of hand\" expert",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, err := dnd5e.ParseSkill(args[1])
		if err != nil {
			return err
		}
		tier, err := dnd5e.ParseSkillTier(args[2])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateSkill(ctx, &charactersvc.UpdateSkillInput{
				CharacterID: args[0],
				Skill:       skill,
				Tier:        tier,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle CHARACTER_ID PREFERENCE",
	Short: "Flip a sheet preference: edit skills, sort skills, show notes or show spells",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		toggle, err := dnd5e.ParsePreferenceToggle(args[1])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.TogglePreference(ctx, &charactersvc.TogglePreferenceInput{
				CharacterID: args[0],
				Toggle:      toggle,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var coinCmd = &cobra.Command{
	Use:   "coin CHARACTER_ID TYPE AMOUNT",
	Short: "Set the amount of one coin type (cp, sp, ep, gp, pp)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		coin, err := dnd5e.ParseCoinType(args[1])
		if err != nil {
			return err
		}
		amount, err := intArg("amount", args[2])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateCoin(ctx, &charactersvc.UpdateCoinInput{
				CharacterID: args[0],
				Type:        coin,
				Amount:      amount,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

func init() {
	avatarCmd.Flags().StringVar(&avatarPath, "image-path", "", "Local portrait path")
	avatarCmd.Flags().StringVar(&avatarURL, "image-url", "", "Portrait URL")
	avatarCmd.Flags().BoolVar(&avatarInspiration, "inspiration", false, "Character has inspiration")

	levelUpCmd.Flags().StringVar(&levelUpClass, "class", "", "Class to level (default the primary class)")
	levelUpCmd.Flags().BoolVar(&levelUpRoll, "roll", false, "Roll the new hit die and add it to hit points")

	identityCmd.Flags().StringVar(&identityName, "name", "", "New name")
	identityCmd.Flags().StringVar(&identityAbout, "about", "", "Free text description")
	identityCmd.Flags().StringVar(&identityRace, "race", "", "New race")
	identityCmd.Flags().StringVar(&identitySubrace, "subrace", "", "New subrace, empty for none")
	identityCmd.Flags().StringVar(&identityClass, "class", "", "New primary class")
	identityCmd.Flags().StringVar(&identityBackground, "background", "", "New background")
	identityCmd.Flags().StringVar(&identityAlignment, "alignment", "", "New alignment")

	hpCmd.Flags().IntVar(&hpTemp, "temp", 0, "Temporary hit points")

	statusCmd.Flags().IntVar(&statusHP, "hp", 0, "Current hit points")
	statusCmd.Flags().IntVar(&statusAC, "ac", 0, "Armor class as displayed")
	statusCmd.Flags().IntVar(&statusInitiative, "initiative", 0, "Initiative as displayed")
	statusCmd.Flags().IntVar(&statusSpeed, "speed", 0, "Speed in feet as displayed")
	statusCmd.Flags().IntVar(&statusHitDice, "hit-dice", 0, "Remaining hit dice of the primary class")
}

func runLevelUp(cmd *cobra.Command, args []string) error {
	id := args[0]

	var output *charactersvc.LevelUpOutput
	err := sheet.submit(cmd.Context(), id, func(ctx context.Context) error {
		class, err := levelUpTarget(ctx, id)
		if err != nil {
			return err
		}
		output, err = sheet.orchestrator.LevelUp(ctx, &charactersvc.LevelUpInput{
			CharacterID:   id,
			Class:         class,
			RollHitPoints: levelUpRoll,
		})
		return err
	})
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Printf("%s is now level %d\n", output.Job.Class.DisplayName(), output.Job.Level)
		if len(output.HitPointRolls) > 0 {
			fmt.Printf("Rolled %v on d%d\n", output.HitPointRolls, output.Job.HitDie())
		}
		fmt.Println()
	}
	return printCharacter(output.Character)
}

// levelUpTarget resolves --class, falling back to the primary class
func levelUpTarget(ctx context.Context, id string) (dnd5e.Class, error) {
	if levelUpClass != "" {
		return dnd5e.ParseClass(levelUpClass)
	}
	current, err := sheet.orchestrator.GetCharacter(ctx, &charactersvc.GetCharacterInput{CharacterID: id})
	if err != nil {
		return "", err
	}
	return current.Character.Job.Class, nil
}

func runIdentity(cmd *cobra.Command, args []string) error {
	input := &charactersvc.UpdateIdentityInput{CharacterID: args[0]}
	flags := cmd.Flags()

	if flags.Changed("name") {
		input.Name = &identityName
	}
	if flags.Changed("about") {
		input.About = &identityAbout
	}
	if flags.Changed("race") {
		race, err := dnd5e.ParseRace(identityRace)
		if err != nil {
			return err
		}
		input.Race = &race
	}
	if flags.Changed("subrace") {
		subrace, err := dnd5e.ParseSubrace(identitySubrace)
		if err != nil {
			return err
		}
		input.Subrace = &subrace
	}
	if flags.Changed("class") {
		class, err := dnd5e.ParseClass(identityClass)
		if err != nil {
			return err
		}
		input.Class = &class
	}
	if flags.Changed("background") {
		bg, err := dnd5e.ParseBackground(identityBackground)
		if err != nil {
			return err
		}
		input.Background = &bg
	}
	if flags.Changed("alignment") {
		al, err := dnd5e.ParseAlignment(identityAlignment)
		if err != nil {
			return err
		}
		input.Alignment = &al
	}

	return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
		out, err := sheet.orchestrator.UpdateIdentity(ctx, input)
		if err != nil {
			return nil, err
		}
		return out.Character, nil
	})
}

// runStatus keeps the displayed value of every flag not given
func runStatus(cmd *cobra.Command, args []string) error {
	id := args[0]
	flags := cmd.Flags()

	return edit(cmd, id, func(ctx context.Context) (*dnd5e.Character, error) {
		current, err := sheet.orchestrator.GetCharacter(ctx, &charactersvc.GetCharacterInput{CharacterID: id})
		if err != nil {
			return nil, err
		}
		c := current.Character

		input := &charactersvc.UpdateStatusInput{
			CharacterID: id,
			HP:          c.HP,
			ArmorClass:  c.ArmorClass(),
			Initiative:  c.Initiative(),
			Speed:       c.Speed(),
			HitDice:     c.Job.Dice,
		}
		if flags.Changed("hp") {
			input.HP = statusHP
		}
		if flags.Changed("ac") {
			input.ArmorClass = statusAC
		}
		if flags.Changed("initiative") {
			input.Initiative = statusInitiative
		}
		if flags.Changed("speed") {
			input.Speed = statusSpeed
		}
		if flags.Changed("hit-dice") {
			input.HitDice = statusHitDice
		}

		out, err := sheet.orchestrator.UpdateStatus(ctx, input)
		if err != nil {
			return nil, err
		}
		return out.Character, nil
	})
}

func intArg(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be a whole number, got %q", name, value)
	}
	return n, nil
}

func splitPair(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return "", "", errors.InvalidArgumentf("expected ABILITY=VALUE, got %q", pair)
	}
	return strings.ToLower(strings.TrimSpace(key)), value, nil
}
