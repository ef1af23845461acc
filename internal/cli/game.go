package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameRaceCmd())
	cmd.AddCommand(newGameRangeCmd())
	cmd.AddCommand(newGameBattlesCmd())
	cmd.AddCommand(newGameAdvanceCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameQuitCmd())
	cmd.AddCommand(newGameLeaderboardCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Leave the landing page and start round 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/game/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRaceCmd() *cobra.Command {
	var stake, rocket int

	cmd := &cobra.Command{
		Use:   "race",
		Short: "Bet on the rocket race (round 1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"stake": stake, "rocket": rocket}
			var result Session

			if err := client.Post("/api/v1/game/race", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&stake, "stake", 0, "Credits to stake (required)")
	cmd.Flags().IntVar(&rocket, "rocket", 0, "Rocket to back (required)")
	_ = cmd.MarkFlagRequired("stake")
	_ = cmd.MarkFlagRequired("rocket")

	return cmd
}

func newGameRangeCmd() *cobra.Command {
	var stake, prediction int

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Bet on the range prediction (round 2)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"stake": stake, "prediction": prediction}
			var result Session

			if err := client.Post("/api/v1/game/range", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&stake, "stake", 0, "Credits to stake (required)")
	cmd.Flags().IntVar(&prediction, "prediction", 0, "Predicted value (required)")
	_ = cmd.MarkFlagRequired("stake")
	_ = cmd.MarkFlagRequired("prediction")

	return cmd
}

func newGameBattlesCmd() *cobra.Command {
	var stakes, fighters string

	cmd := &cobra.Command{
		Use:   "battles",
		Short: "Bet on the battle series (round 3)",
		Long: `Submit bets for every battle in the series. Both flags take
comma-separated lists of equal length, one entry per battle, e.g.

  nexus game battles --stakes 100,100,0,... --fighters 1,2,1,...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stakeList, err := parseIntList(stakes)
			if err != nil {
				return fmt.Errorf("invalid --stakes: %w", err)
			}
			fighterList, err := parseIntList(fighters)
			if err != nil {
				return fmt.Errorf("invalid --fighters: %w", err)
			}
			if len(stakeList) != len(fighterList) {
				return fmt.Errorf("--stakes and --fighters must have the same length")
			}

			type battleBet struct {
				Stake   int `json:"stake"`
				Fighter int `json:"fighter"`
			}
			bets := make([]battleBet, len(stakeList))
			for i := range stakeList {
				bets[i] = battleBet{Stake: stakeList[i], Fighter: fighterList[i]}
			}

			req := map[string]any{"battles": bets}
			var result Session

			if err := client.Post("/api/v1/game/battles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&stakes, "stakes", "", "Comma-separated stakes, one per battle (required)")
	cmd.Flags().StringVar(&fighters, "fighters", "", "Comma-separated fighter picks, one per battle (required)")
	_ = cmd.MarkFlagRequired("stakes")
	_ = cmd.MarkFlagRequired("fighters")

	return cmd
}

func newGameAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance from an interstitial into the next round",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/game/advance", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the session back to the landing page",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/game/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "End the session and discard the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/game"); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("session ended but token file not removed: %w", err)
			}

			fmt.Println("Session ended")
			return nil
		},
	}
}

func newGameLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the credit leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			if err := client.Get("/api/v1/game/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out[i] = n
	}
	return out, nil
}
