package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the report held by the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		if !clearYes {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Clear the report on %s", cfg.Client.URL),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
					fmt.Println("Aborted.")
					return nil
				}
				return err
			}
		}

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}
		if err := client.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clearing report: %w", err)
		}
		fmt.Println("Report cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
