package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator commands (require --admin-key)",
	}

	cmd.AddCommand(newAdminPlayersCmd())
	cmd.AddCommand(newAdminBalanceCmd())
	cmd.AddCommand(newAdminOverridesCmd())
	cmd.AddCommand(newAdminRaceOverrideCmd())
	cmd.AddCommand(newAdminRangeOverrideCmd())

	return cmd
}

func newAdminPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List all registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/admin/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminBalanceCmd() *cobra.Command {
	var playerID, balance int

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Set a player's credit balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"balance": balance}
			var result Player

			path := fmt.Sprintf("/api/v1/admin/players/%d/balance", playerID)
			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&playerID, "player", 0, "Player id (required)")
	cmd.Flags().IntVar(&balance, "balance", 0, "New balance (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("balance")

	return cmd
}

func newAdminOverridesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overrides",
		Short: "Show the current outcome overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Overrides

			if err := client.Get("/api/v1/admin/overrides", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminRaceOverrideCmd() *cobra.Command {
	var winner int

	cmd := &cobra.Command{
		Use:   "race-override",
		Short: "Force the race winner for subsequent round 1 resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"winner": winner}
			var result Overrides

			if err := client.Put("/api/v1/admin/overrides/race", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&winner, "winner", 0, "Winning rocket (required)")
	_ = cmd.MarkFlagRequired("winner")

	return cmd
}

func newAdminRangeOverrideCmd() *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "range-override",
		Short: "Force the drawn value for subsequent round 2 resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"target": target}
			var result Overrides

			if err := client.Put("/api/v1/admin/overrides/range", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "Drawn value (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
