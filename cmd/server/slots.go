package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/career-path/internal/character"
)

var (
	newGameName     string
	newGameGender   string
	newGameHometown string
)

var newGameCmd = &cobra.Command{
	Use:   "new-game <slot>",
	Short: "Create a fresh game in a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runNewGame,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [slot]",
	Short: "Show a save slot, or list every slot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	newGameCmd.Flags().StringVar(&newGameName, "name", "", "Character name")
	newGameCmd.Flags().StringVar(&newGameGender, "gender", string(character.GenderMale), "Character gender (male or female)")
	newGameCmd.Flags().StringVar(&newGameHometown, "hometown", "Baku", "Character hometown")
	rootCmd.AddCommand(newGameCmd, inspectCmd)
}

func runNewGame(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	gm := env.newGame()
	if newGameName != "" {
		if !gm.SetIdentity(newGameName, character.Gender(newGameGender), character.BackgroundMiddle, newGameHometown) {
			return fmt.Errorf("invalid identity: gender must be male or female")
		}
	}
	if err := gm.Save(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created game %s in slot %s\n", gm.ID(), args[0])
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		slots, err := env.storage.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			fmt.Fprintln(out, "No saved games")
			return nil
		}
		for _, s := range slots {
			fmt.Fprintf(out, "%-20s %-20s saved %s\n", s.Slot, s.Stage, humanize.Time(s.SavedAt))
		}
		return nil
	}

	gm := env.newGame()
	if err := gm.Load(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, gm.Status().Summary())
	return nil
}
