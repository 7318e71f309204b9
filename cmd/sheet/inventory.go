package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	charactersvc "github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

var (
	insertIndex int

	equipAmmunition string

	weaponName        string
	weaponDescription string
	weaponBonus       int
	weaponProficient  bool
	weaponDamage      string
	weaponDamageType  string
	weaponSimple      bool
	weaponRanged      bool
	weaponProperties  []string

	spellSRD          string
	spellLevel        int
	spellRequirements string
	spellRange        string
	spellSchool       string
	spellPrepared     bool
	spellCasts        int
)

// index returns the --index flag when it was given
func index(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("index") {
		return nil
	}
	i := insertIndex
	return &i
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add, edit, archive or remove notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add CHARACTER_ID TEXT",
	Short: "Add a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := index(cmd)
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.CreateNote(ctx, &charactersvc.CreateNoteInput{
				CharacterID: args[0],
				Text:        args[1],
				Index:       at,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit CHARACTER_ID NOTE_ID TEXT",
	Short: "Replace the text of a note",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateNote(cmd, args[0], args[1], dnd5e.NoteUpdateText, args[2])
	},
}

var noteArchiveCmd = &cobra.Command{
	Use:   "archive CHARACTER_ID NOTE_ID",
	Short: "Archive a note, or restore an archived one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateNote(cmd, args[0], args[1], dnd5e.NoteUpdateToggleArchived, "")
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:   "rm CHARACTER_ID NOTE_ID",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.DeleteNote(ctx, &charactersvc.DeleteNoteInput{
				CharacterID: args[0],
				NoteID:      args[1],
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

func updateNote(cmd *cobra.Command, id, noteID string, kind dnd5e.NoteUpdateKind, text string) error {
	return edit(cmd, id, func(ctx context.Context) (*dnd5e.Character, error) {
		out, err := sheet.orchestrator.UpdateNote(ctx, &charactersvc.UpdateNoteInput{
			CharacterID: id,
			NoteID:      noteID,
			Kind:        kind,
			Text:        text,
		})
		if err != nil {
			return nil, err
		}
		return out.Character, nil
	})
}

var equipCmd = &cobra.Command{
	Use:   "equip",
	Short: "Manage carried equipment",
}

var equipAddCmd = &cobra.Command{
	Use:   "add CHARACTER_ID NAME [QUANTITY]",
	Short: "Add equipment, stacking onto an item with the same name",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity := 1
		if len(args) == 3 {
			var err error
			if quantity, err = intArg("quantity", args[2]); err != nil {
				return err
			}
		}
		at := index(cmd)
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.CreateEquipment(ctx, &charactersvc.CreateEquipmentInput{
				CharacterID:    args[0],
				Name:           args[1],
				Quantity:       quantity,
				AmmunitionType: equipAmmunition,
				Index:          at,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var equipSetCmd = &cobra.Command{
	Use:   "set CHARACTER_ID NAME QUANTITY",
	Short: "Set the quantity of an item; zero removes it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := intArg("quantity", args[2])
		if err != nil {
			return err
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateEquipment(ctx, &charactersvc.UpdateEquipmentInput{
				CharacterID: args[0],
				Name:        args[1],
				Quantity:    quantity,
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var equipRemoveCmd = &cobra.Command{
	Use:   "rm CHARACTER_ID NAME",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.DeleteEquipment(ctx, &charactersvc.DeleteEquipmentInput{
				CharacterID: args[0],
				Name:        args[1],
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var weaponCmd = &cobra.Command{
	Use:   "weapon",
	Short: "Manage held weapons",
}

var weaponAddCmd = &cobra.Command{
	Use:     "add CHARACTER_ID TYPE",
	Short:   "Add a catalog weapon",
	Example: "  sheet weapon add char_1 \"crossbow (light)\"",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &charactersvc.CreateWeaponInput{
			CharacterID: args[0],
			Type:        args[1],
			Name:        weaponName,
			Description: weaponDescription,
			Bonus:       weaponBonus,
			Index:       index(cmd),
		}
		if cmd.Flags().Changed("proficient") {
			input.Proficient = &weaponProficient
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.CreateWeapon(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var weaponCustomCmd = &cobra.Command{
	Use:   "custom CHARACTER_ID NAME",
	Short: "Add a hand entered weapon",
	Long: `Add a weapon that is not in the catalog. With --type the catalog
weapon's stats are copied first, so a magic longsword only needs a name
and a bonus.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type") // nolint:errcheck // flag is registered in init
		input := &charactersvc.CreateCustomWeaponInput{
			CharacterID: args[0],
			Name:        args[1],
			Type:        typeName,
			Simple:      weaponSimple,
			Ranged:      weaponRanged,
			Damage:      weaponDamage,
			DamageType:  weaponDamageType,
			Properties:  weaponProperties,
			Description: weaponDescription,
			Bonus:       weaponBonus,
			Proficient:  weaponProficient,
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.CreateCustomWeapon(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var weaponSetCmd = &cobra.Command{
	Use:   "set CHARACTER_ID WEAPON_ID",
	Short: "Change a weapon's name, description, bonus or proficiency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &charactersvc.UpdateWeaponInput{CharacterID: args[0], WeaponID: args[1]}
		flags := cmd.Flags()
		if flags.Changed("name") {
			input.Name = &weaponName
		}
		if flags.Changed("description") {
			input.Description = &weaponDescription
		}
		if flags.Changed("bonus") {
			input.Bonus = &weaponBonus
		}
		if flags.Changed("proficient") {
			input.Proficient = &weaponProficient
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateWeapon(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var weaponRemoveCmd = &cobra.Command{
	Use:   "rm CHARACTER_ID WEAPON_ID",
	Short: "Remove a weapon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.DeleteWeapon(ctx, &charactersvc.DeleteWeaponInput{
				CharacterID: args[0],
				WeaponID:    args[1],
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var spellCmd = &cobra.Command{
	Use:   "spell",
	Short: "Manage known spells",
}

var spellAddCmd = &cobra.Command{
	Use:   "add CHARACTER_ID [NAME]",
	Short: "Learn a spell, optionally filled in from the SRD",
	Example: `  sheet spell add char_1 --srd "magic missile" --prepared
  sheet spell add char_1 "Homebrew Bolt" --level 2 --school Evocation`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &charactersvc.CreateSpellInput{
			CharacterID:  args[0],
			SRDKey:       spellSRD,
			Level:        spellLevel,
			Requirements: spellRequirements,
			Range:        spellRange,
			School:       spellSchool,
			Prepared:     spellPrepared,
			Index:        index(cmd),
		}
		if len(args) == 2 {
			input.Name = args[1]
		}

		var spell dnd5e.KnownSpell
		err := edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.CreateSpell(ctx, input)
			if err != nil {
				return nil, err
			}
			spell = out.Spell
			return out.Character, nil
		})
		if err == nil && !jsonOutput && spell.Requirements != "" {
			fmt.Printf("\n%s: %s\n", spell.Name, spell.Requirements)
		}
		return err
	},
}

var spellSetCmd = &cobra.Command{
	Use:   "set CHARACTER_ID NAME",
	Short: "Change whether a spell is prepared or how often it was cast",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &charactersvc.UpdateSpellInput{CharacterID: args[0], Name: args[1]}
		if cmd.Flags().Changed("prepared") {
			input.Prepared = &spellPrepared
		}
		if cmd.Flags().Changed("casts") {
			input.CastsSinceLongRest = &spellCasts
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateSpell(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var spellRemoveCmd = &cobra.Command{
	Use:   "rm CHARACTER_ID NAME",
	Short: "Forget a spell",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.DeleteSpell(ctx, &charactersvc.DeleteSpellInput{
				CharacterID: args[0],
				Name:        args[1],
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

var slotCmd = &cobra.Command{
	Use:   "slot CHARACTER_ID LEVEL TOTAL USED",
	Short: "Set spell slots for one spell level",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var nums [3]int
		for i, name := range []string{"level", "total", "used"} {
			n, err := intArg(name, args[i+1])
			if err != nil {
				return err
			}
			nums[i] = n
		}
		return edit(cmd, args[0], func(ctx context.Context) (*dnd5e.Character, error) {
			out, err := sheet.orchestrator.UpdateSpellSlot(ctx, &charactersvc.UpdateSpellSlotInput{
				CharacterID: args[0],
				Level:       nums[0],
				Total:       nums[1],
				Used:        nums[2],
			})
			if err != nil {
				return nil, err
			}
			return out.Character, nil
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{noteAddCmd, equipAddCmd, weaponAddCmd, spellAddCmd} {
		cmd.Flags().IntVar(&insertIndex, "index", 0, "Insert at this position instead of appending")
	}

	noteCmd.AddCommand(noteAddCmd, noteEditCmd, noteArchiveCmd, noteRemoveCmd)

	equipAddCmd.Flags().StringVar(&equipAmmunition, "ammunition", "", "Ammunition type, e.g. arrows")
	equipCmd.AddCommand(equipAddCmd, equipSetCmd, equipRemoveCmd)

	for _, cmd := range []*cobra.Command{weaponAddCmd, weaponCustomCmd, weaponSetCmd} {
		cmd.Flags().StringVar(&weaponDescription, "description", "", "Description")
		cmd.Flags().IntVar(&weaponBonus, "bonus", 0, "Magic bonus to attack rolls")
		cmd.Flags().BoolVar(&weaponProficient, "proficient", false, "Proficient with this weapon")
	}
	weaponAddCmd.Flags().StringVar(&weaponName, "name", "", "Display name (default the catalog name)")
	weaponSetCmd.Flags().StringVar(&weaponName, "name", "", "Display name")
	weaponCustomCmd.Flags().String("type", "", "Catalog weapon to copy stats from")
	weaponCustomCmd.Flags().StringVar(&weaponDamage, "damage", "", "Damage dice, e.g. 1d8")
	weaponCustomCmd.Flags().StringVar(&weaponDamageType, "damage-type", "", "Damage type, e.g. slashing")
	weaponCustomCmd.Flags().BoolVar(&weaponSimple, "simple", false, "Simple weapon")
	weaponCustomCmd.Flags().BoolVar(&weaponRanged, "ranged", false, "Ranged weapon")
	weaponCustomCmd.Flags().StringSliceVar(&weaponProperties, "property", nil, "Weapon property, repeatable")
	weaponCmd.AddCommand(weaponAddCmd, weaponCustomCmd, weaponSetCmd, weaponRemoveCmd)

	spellAddCmd.Flags().StringVar(&spellSRD, "srd", "", "SRD spell to copy from, e.g. \"magic missile\"")
	spellAddCmd.Flags().IntVar(&spellLevel, "level", 0, "Spell level, 0 for cantrips")
	spellAddCmd.Flags().StringVar(&spellRequirements, "requirements", "", "Casting time, duration and components")
	spellAddCmd.Flags().StringVar(&spellRange, "range", "", "Range")
	spellAddCmd.Flags().StringVar(&spellSchool, "school", "", "School of magic")
	spellSetCmd.Flags().IntVar(&spellCasts, "casts", 0, "Casts since the last long rest")
	for _, cmd := range []*cobra.Command{spellAddCmd, spellSetCmd} {
		cmd.Flags().BoolVar(&spellPrepared, "prepared", false, "Spell is prepared")
	}
	spellCmd.AddCommand(spellAddCmd, spellSetCmd, spellRemoveCmd)
}
