package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	labelColor = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
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
		_, _ = errColor.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		_, _ = okColor.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerResult:
		o.printPlayerResult(v)
	case SessionResult:
		field("Session", v.SessionID)
	case Score:
		o.printScore(v)
	case []Score:
		o.printScores(v)
	case Game:
		o.printGame(v)
	case Reward:
		o.printReward(v)
	case []Reward:
		for i, r := range v {
			if i > 0 {
				fmt.Println()
			}
			o.printReward(r)
		}
	case []PlayerReward:
		o.printPlayerRewards(v)
	case Grant:
		field("Grant", v.ID)
		field("Player", v.PlayerID)
		field("Reward", v.RewardID)
	case DeliveryResult:
		field("Transaction", v.TxHash)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerInfo response type (matches API)
type PlayerInfo struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// PlayerResult wraps a player lookup or creation
type PlayerResult struct {
	Player  *PlayerInfo `json:"player"`
	Message string      `json:"message,omitempty"`
}

// SessionResult response type
type SessionResult struct {
	SessionID string `json:"sessionId"`
}

// Score response type
type Score struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	PlayerID  *string   `json:"playerId"`
	Score     float64   `json:"score"`
	Timer     float64   `json:"timer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Game response type
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Origin      string    `json:"origin,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Difficulty  int       `json:"difficulty"`
	AverageTime int       `json:"averageTime"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Reward response type
type Reward struct {
	ID              string `json:"id"`
	TokenID         string `json:"tokenId"`
	Blockchain      string `json:"blockchain"`
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	ImageURL        string `json:"imageUrl"`
	IsActive        bool   `json:"isActive"`
}

// PlayerReward response type
type PlayerReward struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	RewardID  string    `json:"rewardId"`
	Reward    *Reward   `json:"reward"`
	CreatedAt time.Time `json:"createdAt"`
}

// Grant response type
type Grant struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	RewardID string `json:"rewardId"`
}

// DeliveryResult response type
type DeliveryResult struct {
	TxHash string `json:"txHash"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func field(label string, value any) {
	_, _ = labelColor.Printf("%s: ", label)
	fmt.Println(value)
}

func (o *Output) printPlayerResult(r PlayerResult) {
	if r.Player == nil {
		_, _ = warnColor.Println(r.Message)
		return
	}
	field("Player", fmt.Sprintf("%s (%s)", r.Player.PlayerName, r.Player.PlayerID))
}

func (o *Output) printScore(s Score) {
	player := "anonymous"
	if s.PlayerID != nil {
		player = *s.PlayerID
	}
	fmt.Printf("%-10g %-8gs %s  %s\n", s.Score, s.Timer, player, s.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printScores(scores []Score) {
	if len(scores) == 0 {
		_, _ = warnColor.Println("No scores recorded")
		return
	}
	_, _ = labelColor.Printf("%-10s %-9s %s\n", "SCORE", "TIMER", "PLAYER")
	for _, s := range scores {
		o.printScore(s)
	}
}

func (o *Output) printGame(g Game) {
	field("Game", fmt.Sprintf("%s (%s)", g.Name, g.ID))
	if g.Origin != "" {
		field("Origin", g.Origin)
	}
	if g.Mode != "" {
		field("Mode", g.Mode)
	}
	field("Difficulty", g.Difficulty)
	field("Average Time", g.AverageTime)
	field("Active", g.IsActive)
}

func (o *Output) printReward(r Reward) {
	field("Reward", fmt.Sprintf("%s (%s)", r.Name, r.ID))
	field("Token", fmt.Sprintf("%s on %s at %s", r.TokenID, r.Blockchain, r.ContractAddress))
	if r.Type != "" {
		field("Type", r.Type)
	}
	field("Active", r.IsActive)
}

func (o *Output) printPlayerRewards(rewards []PlayerReward) {
	if len(rewards) == 0 {
		_, _ = warnColor.Println("No rewards granted")
		return
	}
	for _, pr := range rewards {
		name := pr.RewardID
		if pr.Reward != nil {
			name = pr.Reward.Name
		}
		fmt.Printf("%s  %s\n", pr.CreatedAt.Format(time.RFC3339), name)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	c := okColor
	if h.Status != "ok" {
		c = errColor
	}
	_, _ = labelColor.Print("Status: ")
	_, _ = c.Println(h.Status)
}
