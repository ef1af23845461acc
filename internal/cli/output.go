package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case Overrides:
		o.printOverrides(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     int    `json:"balance"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// RoundResult response type
type RoundResult struct {
	Round      int             `json:"round"`
	Stake      int             `json:"stake"`
	Choice     int             `json:"choice,omitempty"`
	Outcome    int             `json:"outcome,omitempty"`
	Wins       int             `json:"wins,omitempty"`
	Battles    []BattleOutcome `json:"battles,omitempty"`
	Multiplier float64         `json:"multiplier"`
	Delta      int             `json:"delta"`
}

// BattleOutcome response type
type BattleOutcome struct {
	Index   int  `json:"index"`
	Stake   int  `json:"stake"`
	Fighter int  `json:"fighter"`
	Winner  int  `json:"winner"`
	Won     bool `json:"won"`
}

// Session response type
type Session struct {
	ID         string        `json:"id"`
	PlayerID   int           `json:"player_id"`
	Phase      string        `json:"phase"`
	Round      int           `json:"round"`
	Balance    int           `json:"balance"`
	RoundPhase string        `json:"round_phase,omitempty"`
	History    []RoundResult `json:"history"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	PlayerID        int    `json:"player_id"`
	DisplayName     string `json:"display_name"`
	Credits         int    `json:"credits"`
	IsCurrentPlayer bool   `json:"is_current_player,omitempty"`
}

// Overrides response type
type Overrides struct {
	RaceWinner  *int `json:"race_winner"`
	RangeTarget *int `json:"range_target"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (#%d)\n", p.DisplayName, p.ID)
	fmt.Printf("Credits: %d\n", p.Balance)
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  #%-4d %-20s %d credits\n", p.ID, p.DisplayName, p.Balance)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Credits: %d\n", s.Balance)
	if s.RoundPhase != "" {
		fmt.Printf("Round %d: %s\n", s.Round, s.RoundPhase)
	}

	if len(s.History) > 0 {
		fmt.Println("\nRounds:")
		for _, r := range s.History {
			fmt.Printf("  Round %d: staked %d at x%g, net %+d\n", r.Round, r.Stake, r.Multiplier, r.Delta)
			switch r.Round {
			case 1:
				fmt.Printf("    Picked rocket %d, winner was %d\n", r.Choice, r.Outcome)
			case 2:
				fmt.Printf("    Predicted %d, drawn value was %d\n", r.Choice, r.Outcome)
			case 3:
				fmt.Printf("    Won %d of %d battles\n", r.Wins, len(r.Battles))
			}
		}
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	fmt.Println("Leaderboard:")
	for _, e := range entries {
		marker := ""
		if e.IsCurrentPlayer {
			marker = " <- you"
		}
		fmt.Printf("  %2d. %-20s %d credits%s\n", e.Rank, e.DisplayName, e.Credits, marker)
	}
}

func (o *Output) printOverrides(ov Overrides) {
	if ov.RaceWinner != nil {
		fmt.Printf("Race winner override: %d\n", *ov.RaceWinner)
	} else {
		fmt.Println("Race winner override: none")
	}
	if ov.RangeTarget != nil {
		fmt.Printf("Range target override: %d\n", *ov.RangeTarget)
	} else {
		fmt.Println("Range target override: none")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
