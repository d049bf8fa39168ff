package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
	"github.com/pable/go-lol-draftstats/internal/report"
	"github.com/pable/go-lol-draftstats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("draftstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	// The last snapshot shown; "." stands for it in place of an id prefix.
	current := ""

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("draftstats")
		if current != "" {
			cMuted.Printf("[%s]", report.ShortID(current))
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]
		if len(args) > 0 && args[0] == "." {
			if current == "" {
				cError.Fprintln(os.Stderr, "no current snapshot, use an id prefix")
				continue
			}
			args[0] = current
		}

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <id-prefix> [--sort <key>] [--top <n>] [--position <pos>]")
				continue
			}
			if id := shellShow(db, args[0], parseShellFlags(args[1:])); id != "" {
				current = id
			}
		case "champion":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: champion <id-prefix> <name>")
				continue
			}
			if id := shellChampion(db, args[0], strings.Join(args[1:], " ")); id != "" {
				current = id
			}
		case "matchups":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: matchups <id-prefix> [--champion <name>] [--position <pos>] [--min-games <n>]")
				continue
			}
			if id := shellMatchups(db, args[0], parseShellFlags(args[1:])); id != "" {
				current = id
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return scanner.Err()
}

// parseShellFlags reads "--name value" pairs. Values may span several words
// up to the next flag, so "--champion Lee Sin" works.
func parseShellFlags(args []string) map[string]string {
	out := make(map[string]string)
	key := ""
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			key = strings.TrimPrefix(a, "--")
			out[key] = ""
			continue
		}
		if key == "" {
			continue
		}
		if out[key] != "" {
			out[key] += " "
		}
		out[key] += a
	}
	return out
}

func flagInt(flags map[string]string, name string, def int) int {
	v, ok := flags[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		cWarn.Fprintf(os.Stderr, "ignoring --%s %q: not a number\n", name, v)
		return def
	}
	return n
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored snapshots"},
		{"show <id-prefix>", "champion table of a snapshot"},
		{"show <id-prefix> --sort <key> --top <n>", "same, sorted and truncated"},
		{"champion <id-prefix> <name>", "detail for one champion"},
		{"matchups <id-prefix> [--champion <name>]", "lane matchups and duos"},
		{".", "in place of an id prefix: the last snapshot shown"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-44s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	snaps, err := db.ListSnapshots()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(snaps) == 0 {
		cMuted.Println("No snapshots stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-10s  %-20s  %6s  %8s  %s\n",
		"ID", "CREATED", "GAMES", "ELIGIBLE", "SOURCE")
	cMuted.Fprintf(os.Stdout, "%-10s  %-20s  %6s  %8s  %s\n",
		"----------", "--------------------", "------", "--------", "------")
	for _, s := range snaps {
		fmt.Fprintf(os.Stdout, "%-10s  %-20s  %6d  %8d  %s\n",
			report.ShortID(s.ID), s.CreatedAt, s.Result.GamesGrouped, s.Result.EligibleGames, s.Source)
	}
}

// shellSnapshot loads a snapshot, printing any problem. Returns nil on failure.
func shellSnapshot(db *storage.DB, prefix string) *model.Snapshot {
	snap, err := snapshotByPrefix(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return nil
	}
	return snap
}

func shellShow(db *storage.DB, prefix string, flags map[string]string) string {
	snap := shellSnapshot(db, prefix)
	if snap == nil {
		return ""
	}
	sortKey := flags["sort"]
	if sortKey == "" {
		sortKey = "picks"
	}
	if err := renderResult(snap.Source, snap.ID, &snap.Result, sortKey, flagInt(flags, "top", 20), flags["position"]); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return snap.ID
}

func shellChampion(db *storage.DB, prefix, name string) string {
	snap := shellSnapshot(db, prefix)
	if snap == nil {
		return ""
	}
	c := findChampion(&snap.Result, name)
	if c == nil {
		cError.Fprintf(os.Stderr, "champion %q not found\n", name)
		return snap.ID
	}
	printChampion(&snap.Result, *c, 10)
	return snap.ID
}

func shellMatchups(db *storage.DB, prefix string, flags map[string]string) string {
	snap := shellSnapshot(db, prefix)
	if snap == nil {
		return ""
	}
	champion := ""
	if name := flags["champion"]; name != "" {
		c := findChampion(&snap.Result, name)
		if c == nil {
			cError.Fprintf(os.Stderr, "champion %q not found\n", name)
			return snap.ID
		}
		champion = c.Name
	}
	ms := aggregator.FilterMatchups(snap.Result.Matchups, champion,
		model.NormalizePositionFilter(flags["position"]), flagInt(flags, "min-games", 1))
	if len(ms) > 25 {
		ms = ms[:25]
	}
	if len(ms) == 0 {
		cMuted.Println("No lane matchups match.")
		return snap.ID
	}
	cHeader.Fprintln(os.Stdout, "\n--- Lane matchups ---")
	report.PrintMatchupTable(os.Stdout, ms)
	return snap.ID
}
