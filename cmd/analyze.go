package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
)

const analyzeSystemPrompt = `You are an esports draft analyst. You are given structured champion
statistics aggregated from professional match data and a question from a coach or analyst.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently (few games), say so explicitly.
- Be concise and actionable: focus on draft decisions (picks, bans, pick order).
- Avoid generic game advice unless it directly explains a pattern in the data.

Metrics glossary:
- picks / games: number of games the champion was played.
- win_rate: wins / games played, in percent.
- pick_rate: picks / eligible games, in percent. Eligible games have both team rows and ten players.
- kda: (kills + assists) / deaths; "Perfect" means zero deaths with at least one kill or assist.
- dmg_share / gold_share: average share of the team's damage or gold, in percent.
- main_position: the lane the champion was played in most often.
- blind_pick_rate: % of lane matchups where the champion was picked before its lane opponent.
- counter_pick_rate: % of lane matchups where it was picked after its lane opponent.
- matchups: head-to-head lane records (games, wins) against specific opponents.
- duos: bot lane / support pairs on the same team.`

var (
	analyzeModel    string
	analyzeAPIKey   string
	analyzeChampion string
	analyzeTop      int
	analyzeRender   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <id-prefix> <question>",
	Short: "AI-powered grounded analysis of a snapshot (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", cfg.Model, "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().StringVar(&analyzeChampion, "champion", "", "focus the context on one champion and its matchups")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 40, "number of most picked champions to include")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "wait for the full answer and render it as markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, args[0])
	if err != nil {
		return err
	}
	question := args[1]

	var focus *model.ChampionStat
	if analyzeChampion != "" {
		focus = findChampion(&snap.Result, analyzeChampion)
		if focus == nil {
			return fmt.Errorf("champion %q not found in snapshot", analyzeChampion)
		}
	}

	contextJSON, err := buildSnapshotContext(snap, focus, analyzeTop)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = cfg.AnthropicAPIKey
	}
	return callAnthropic(cmd.Context(), apiKey, analyzeModel, contextJSON, question, analyzeRender)
}

type championEntry struct {
	Name            string   `json:"name"`
	Games           int      `json:"games"`
	Wins            int      `json:"wins"`
	WinRate         float64  `json:"win_rate"`
	PickRate        float64  `json:"pick_rate"`
	KDA             string   `json:"kda"`
	DmgShare        float64  `json:"dmg_share"`
	GoldShare       float64  `json:"gold_share"`
	MainPosition    string   `json:"main_position"`
	LaneMatchups    int      `json:"lane_matchups"`
	BlindPickRate   float64  `json:"blind_pick_rate"`
	CounterPickRate float64  `json:"counter_pick_rate"`
	TopAllies       []string `json:"top_allies,omitempty"`
}

func newChampionEntry(c model.ChampionStat, allies int) championEntry {
	e := championEntry{
		Name:            c.Name,
		Games:           c.TotalGamesPlayed,
		Wins:            c.Wins,
		WinRate:         round2(c.WinRate),
		PickRate:        round2(c.PickRate),
		KDA:             c.KDAFormatted,
		DmgShare:        round2(c.AvgDamageShare),
		GoldShare:       round2(c.AvgGoldShare),
		MainPosition:    c.MainPosition,
		LaneMatchups:    c.TotalLaneMatchups,
		BlindPickRate:   round2(c.BlindPickRate),
		CounterPickRate: round2(c.CounterPickRate),
	}
	for i, p := range c.Pairings {
		if i >= allies {
			break
		}
		e.TopAllies = append(e.TopAllies, fmt.Sprintf("%s (%d)", p.Name, p.Count))
	}
	return e
}

// buildSnapshotContext serialises a snapshot into compact JSON for the model.
func buildSnapshotContext(snap *model.Snapshot, focus *model.ChampionStat, top int) (string, error) {
	res := snap.Result

	picked := aggregator.FilterChampions(res.Champions, "", 1)
	if err := aggregator.SortChampions(picked, "picks"); err != nil {
		return "", err
	}
	if top > 0 && len(picked) > top {
		picked = picked[:top]
	}
	champions := make([]championEntry, 0, len(picked))
	for _, c := range picked {
		champions = append(champions, newChampionEntry(c, 3))
	}

	doc := map[string]interface{}{
		"subject":        "snapshot",
		"source":         snap.Source,
		"games":          res.GamesGrouped,
		"eligible_games": res.EligibleGames,
		"leagues":        res.UniqueValues.Leagues,
		"patches":        res.UniqueValues.Patches,
		"champions":      champions,
	}

	if focus != nil {
		doc["subject"] = "champion"
		doc["focus"] = newChampionEntry(*focus, 10)
		type matchupEntry struct {
			Opponent string  `json:"opponent"`
			Position string  `json:"position"`
			Games    int     `json:"games"`
			Wins     int     `json:"wins"`
			WinRate  float64 `json:"win_rate"`
		}
		var ms []matchupEntry
		for _, m := range aggregator.FilterMatchups(res.Matchups, focus.Name, "", 1) {
			ms = append(ms, matchupEntry{m.Opponent, m.Position, m.Games, m.Wins, round2(m.WinRate())})
		}
		doc["matchups"] = ms
	} else {
		duos := res.Duos
		if len(duos) > 15 {
			duos = duos[:15]
		}
		doc["duos"] = duos
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	// Use integer arithmetic to avoid floating-point drift.
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
// With render set, the answer is buffered and printed once as rendered markdown.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string, render bool) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n--- AI Analysis -------------------------------------")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	var answer strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				text := delta.Delta.AsTextDelta().Text
				if render {
					answer.WriteString(text)
				} else {
					fmt.Fprint(os.Stdout, text)
				}
			}
		}
	}
	if render && answer.Len() > 0 {
		out, err := glamour.Render(answer.String(), "dark")
		if err != nil {
			out = answer.String()
		}
		fmt.Fprint(os.Stdout, out)
	}
	fmt.Fprintln(os.Stdout, "\n-----------------------------------------------------")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
