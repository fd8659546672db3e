package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Mklevns/aletheia-phenom/pkg/aletheia"
)

// feedLimit caps the discoveries echoed to the terminal during a run.
// Everything past the cap is still journaled.
const feedLimit = 50

func main() {
	loadDotEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "interrupt received, stopping")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv makes .env values available whether the binary runs from the
// repo root or from within cmd/aletheiactl.
func loadDotEnv() {
	for _, path := range []string{".env", "../../.env", "../../../.env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aletheiactl",
		Short: "Drive observer sessions and inspect the run journal",
		Long: "aletheiactl runs a chosen experimenter against a simulated world,\n" +
			"journals what it discovers, and answers questions about past runs.",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newWorldsCmd(), newAgentsCmd(), newRunsCmd(), newJournalCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		runID      string
		worldKind  string
		agentKind  string
		ticks      int
		seed       int64
		tps        float64
		params     []string
		storeKind  string
		dbPath     string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a world/agent session and journal the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadOrDefaultRunRequest(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("run-id") {
				req.RunID = runID
			}
			if flags.Changed("world") {
				req.World = worldKind
			}
			if flags.Changed("agent") {
				req.Agent = agentKind
			}
			if flags.Changed("ticks") {
				req.Ticks = ticks
			}
			if flags.Changed("seed") {
				req.Seed = seed
			}
			if flags.Changed("tps") {
				req.TPS = tps
			}
			if len(params) > 0 {
				overrides, err := parseParams(params)
				if err != nil {
					return err
				}
				if req.Params == nil {
					req.Params = overrides
				} else {
					for k, v := range overrides {
						req.Params[k] = v
					}
				}
			}

			client, err := aletheia.New(aletheia.Options{StoreKind: storeKind, DBPath: dbPath})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tty := isatty.IsTerminal(os.Stdout.Fd())
			if !quiet {
				shown := 0
				req.OnDiscovery = func(d aletheia.DiscoveryItem) {
					shown++
					if shown > feedLimit {
						if shown == feedLimit+1 {
							fmt.Println("feed capped, the remaining discoveries are journaled")
						}
						return
					}
					if tty {
						fmt.Print("\r")
					}
					fmt.Println(formatDiscoveryLine(d))
				}
			}
			progressShown := false
			if tty {
				total := req.Ticks
				req.OnTick = func(step uint64) {
					if step%100 != 0 {
						return
					}
					progressShown = true
					if total > 0 {
						fmt.Printf("\rtick %s / %s", humanize.Comma(int64(step)), humanize.Comma(int64(total)))
					} else {
						fmt.Printf("\rtick %s", humanize.Comma(int64(step)))
					}
				}
			}

			summary, err := client.Run(cmd.Context(), req)
			if progressShown {
				fmt.Println()
			}
			if err != nil {
				return err
			}
			fmt.Println(formatRunSummary(summary))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "JSON run config, merged under explicit flags")
	flags.StringVar(&runID, "run-id", "", "journal the run under this id instead of a generated one")
	flags.StringVar(&worldKind, "world", "", "world kind to simulate")
	flags.StringVar(&agentKind, "agent", "", "experimenter kind to run")
	flags.IntVar(&ticks, "ticks", 0, "ticks to run")
	flags.Int64Var(&seed, "seed", 0, "seed for the experimenter's randomness")
	flags.Float64Var(&tps, "tps", 0, "throttle to this many ticks per second")
	flags.StringArrayVar(&params, "param", nil, "world parameter override as key=value, repeatable")
	flags.StringVar(&storeKind, "store", envOr("ALETHEIA_STORE", ""), "journal backend: memory or sqlite")
	flags.StringVar(&dbPath, "db", envOr("ALETHEIA_DB", ""), "sqlite journal path")
	flags.BoolVar(&quiet, "quiet", false, "suppress the live discovery feed")
	return cmd
}

func newWorldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worlds",
		Short: "List the world kinds a run may simulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := aletheia.New(aletheia.Options{})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			for _, item := range client.Worlds() {
				fmt.Printf("%-12s %s\n", item.Kind, item.Summary)
			}
			return nil
		},
	}
}

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the experimenter kinds a run may deploy",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := aletheia.New(aletheia.Options{})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			for _, item := range client.Agents() {
				fmt.Printf("%-12s %s\n", item.Kind, item.Summary)
			}
			return nil
		},
	}
}

type runLine struct {
	RunID         string  `json:"run_id"`
	CreatedAtUTC  string  `json:"created_at_utc"`
	World         string  `json:"world"`
	Agent         string  `json:"agent"`
	Seed          int64   `json:"seed"`
	Ticks         uint64  `json:"ticks"`
	Discoveries   int     `json:"discoveries"`
	StatesCharted int     `json:"states_charted"`
	Exploration   float64 `json:"exploration"`
}

func newRunsCmd() *cobra.Command {
	var (
		limit     int
		asJSON    bool
		storeKind string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List journaled runs, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := aletheia.New(aletheia.Options{StoreKind: storeKind, DBPath: dbPath})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			items, err := client.Runs(cmd.Context(), aletheia.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("no runs found")
				return nil
			}
			if asJSON {
				lines := make([]runLine, 0, len(items))
				for _, r := range items {
					lines = append(lines, runLine{
						RunID:         r.RunID,
						CreatedAtUTC:  r.CreatedAtUTC,
						World:         r.World,
						Agent:         r.Agent,
						Seed:          r.Seed,
						Ticks:         r.Ticks,
						Discoveries:   r.Discoveries,
						StatesCharted: r.StatesCharted,
						Exploration:   r.Exploration,
					})
				}
				return printJSON(lines)
			}
			for _, r := range items {
				fmt.Println(formatRunLine(r))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&limit, "limit", 20, "maximum runs to list")
	flags.BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	flags.StringVar(&storeKind, "store", envOr("ALETHEIA_STORE", ""), "journal backend: memory or sqlite")
	flags.StringVar(&dbPath, "db", envOr("ALETHEIA_DB", ""), "sqlite journal path")
	return cmd
}

type journalLine struct {
	Step    uint64 `json:"step"`
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Content string `json:"content,omitempty"`
}

func newJournalCmd() *cobra.Command {
	var (
		runID     string
		latest    bool
		limit     int
		asJSON    bool
		storeKind string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the discoveries a run journaled",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID != "" && latest {
				return errors.New("use either --run or --latest, not both")
			}
			if runID == "" && !latest {
				return errors.New("journal requires --run or --latest")
			}

			client, err := aletheia.New(aletheia.Options{StoreKind: storeKind, DBPath: dbPath})
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			items, err := client.Journal(cmd.Context(), aletheia.JournalRequest{
				RunID:  runID,
				Latest: latest,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("no discoveries journaled")
				return nil
			}
			if asJSON {
				lines := make([]journalLine, 0, len(items))
				for _, d := range items {
					lines = append(lines, journalLine{
						Step:    d.Step,
						Kind:    d.Kind,
						Text:    d.Text,
						Topic:   d.Topic,
						Content: d.Content,
					})
				}
				return printJSON(lines)
			}
			for _, d := range items {
				fmt.Println(formatDiscoveryLine(d))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&runID, "run", "", "run id to read")
	flags.BoolVar(&latest, "latest", false, "read the most recent run")
	flags.IntVar(&limit, "limit", 0, "keep only the most recent N discoveries, 0 keeps all")
	flags.BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	flags.StringVar(&storeKind, "store", envOr("ALETHEIA_STORE", ""), "journal backend: memory or sqlite")
	flags.StringVar(&dbPath, "db", envOr("ALETHEIA_DB", ""), "sqlite journal path")
	return cmd
}

func formatRunSummary(s aletheia.RunSummary) string {
	return fmt.Sprintf("run completed run_id=%s world=%s agent=%s ticks=%s discoveries=%d states_charted=%s exploration=%.3f",
		s.RunID, s.World, s.Agent,
		humanize.Comma(int64(s.Ticks)), s.Discoveries,
		humanize.Comma(int64(s.StatesCharted)), s.Exploration)
}

func formatRunLine(r aletheia.RunItem) string {
	return fmt.Sprintf("run_id=%s created_at=%s world=%s agent=%s seed=%d ticks=%s discoveries=%d states_charted=%s exploration=%.3f",
		r.RunID, r.CreatedAtUTC, r.World, r.Agent, r.Seed,
		humanize.Comma(int64(r.Ticks)), r.Discoveries,
		humanize.Comma(int64(r.StatesCharted)), r.Exploration)
}

func formatDiscoveryLine(d aletheia.DiscoveryItem) string {
	if d.Kind == "insight" {
		return fmt.Sprintf("step=%d kind=%s %s (%s)", d.Step, d.Kind, d.Topic, d.Content)
	}
	return fmt.Sprintf("step=%d kind=%s %s", d.Step, d.Kind, d.Text)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
