package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	charactersvc "github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

var (
	createName       string
	createRace       string
	createSubrace    string
	createClass      string
	createBackground string
	createAlignment  string
	createLevel      int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a character",
	Long: `Create a character for the current player. Race, background and
alignment default to Human, Acolyte and True Neutral; every skill starts
unproficient and proficiencies are derived from race and class.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var showCmd = &cobra.Command{
	Use:   "show CHARACTER_ID",
	Short: "Show a character sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var statsCmd = &cobra.Command{
	Use:   "stats CHARACTER_ID",
	Short: "Print every derived statistic as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current player's characters",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete CHARACTER_ID",
	Short: "Delete a character and everything on it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Character name (required)")
	createCmd.Flags().StringVar(&createRace, "race", "", "Race, e.g. dwarf or half-elf")
	createCmd.Flags().StringVar(&createSubrace, "subrace", "", "Subrace, e.g. hill dwarf")
	createCmd.Flags().StringVar(&createClass, "class", "", "Class (default fighter)")
	createCmd.Flags().StringVar(&createBackground, "background", "", "Background, e.g. sage")
	createCmd.Flags().StringVar(&createAlignment, "alignment", "", "Alignment, e.g. chaotic good")
	createCmd.Flags().IntVar(&createLevel, "level", 1, "Starting level")
	_ = createCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init
}

func runCreate(cmd *cobra.Command, _ []string) error {
	input := &charactersvc.CreateCharacterInput{
		PlayerID: sheet.cfg.PlayerID,
		Name:     createName,
		Level:    createLevel,
	}

	var err error
	if createRace != "" {
		if input.Race, err = dnd5e.ParseRace(createRace); err != nil {
			return err
		}
	}
	if input.Subrace, err = dnd5e.ParseSubrace(createSubrace); err != nil {
		return err
	}
	if createClass != "" {
		if input.Class, err = dnd5e.ParseClass(createClass); err != nil {
			return err
		}
	}
	if createBackground != "" {
		if input.Background, err = dnd5e.ParseBackground(createBackground); err != nil {
			return err
		}
	}
	if createAlignment != "" {
		if input.Alignment, err = dnd5e.ParseAlignment(createAlignment); err != nil {
			return err
		}
	}

	ctx, cancel := sheet.query(cmd.Context())
	defer cancel()

	output, err := sheet.orchestrator.CreateCharacter(ctx, input)
	if err != nil {
		return err
	}
	return printCharacter(output.Character)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := sheet.query(cmd.Context())
	defer cancel()

	output, err := sheet.orchestrator.GetCharacter(ctx, &charactersvc.GetCharacterInput{CharacterID: args[0]})
	if err != nil {
		return err
	}
	return printCharacter(output.Character)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := sheet.query(cmd.Context())
	defer cancel()

	output, err := sheet.orchestrator.GetDerivedStats(ctx, &charactersvc.GetDerivedStatsInput{CharacterID: args[0]})
	if err != nil {
		return err
	}
	return emit(output.Stats)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := sheet.query(cmd.Context())
	defer cancel()

	output, err := sheet.orchestrator.ListCharacters(ctx, &charactersvc.ListCharactersInput{
		PlayerID: sheet.cfg.PlayerID,
	})
	if err != nil {
		return err
	}
	return printList(output.Characters)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	var output *charactersvc.DeleteCharacterOutput
	err := sheet.submit(cmd.Context(), id, func(ctx context.Context) error {
		var err error
		output, err = sheet.orchestrator.DeleteCharacter(ctx, &charactersvc.DeleteCharacterInput{CharacterID: id})
		return err
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", output.Message, id)
	return nil
}
