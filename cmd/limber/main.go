package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/limber/internal/app"
	"github.com/chriscorrea/limber/internal/config"
	"github.com/chriscorrea/limber/internal/counter"
	"github.com/chriscorrea/limber/internal/rank"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from the config file, command flags,
// and positional arguments. Flags override file settings.
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, err
	}

	// get flag values
	catalogPath, _ := cmd.Flags().GetString("catalog")
	transcriptBase, _ := cmd.Flags().GetString("transcripts")
	selector, _ := cmd.Flags().GetString("transcript-selector")
	filter, _ := cmd.Flags().GetString("filter")
	sortFlag, _ := cmd.Flags().GetString("sort")
	topN, _ := cmd.Flags().GetInt("top")
	explain, _ := cmd.Flags().GetBool("explain")
	quiet, _ := cmd.Flags().GetBool("quiet")

	// flags override file config
	if catalogPath == "" {
		catalogPath = fileCfg.Catalog
	}
	if transcriptBase == "" {
		transcriptBase = fileCfg.TranscriptBase
	}
	if selector == "" {
		selector = fileCfg.TranscriptSelector
	}
	if !cmd.Flags().Changed("sort") {
		sortFlag = fileCfg.Sort
	}
	if !cmd.Flags().Changed("top") {
		topN = fileCfg.TopN
	}

	return app.Config{
		Catalog:            catalogPath,
		TranscriptBase:     transcriptBase,
		TranscriptSelector: selector,
		Query:              strings.Join(args, " "),
		Filter:             filter,
		Sort:               rank.ParseSortMode(sortFlag),
		TopN:               topN,
		Explain:            explain,
		ChunkSize:          fileCfg.ChunkSize,
		OutputFormat:       outputFormat(cmd),
		Quiet:              quiet || fileCfg.Quiet,
	}, nil
}

// outputFormat reads the mutually exclusive format flags.
func outputFormat(cmd *cobra.Command) app.OutputFormat {
	textFlag, _ := cmd.Flags().GetBool("text")
	jsonFlag, _ := cmd.Flags().GetBool("json")

	switch {
	case textFlag:
		return app.Text
	case jsonFlag:
		return app.JSON
	default:
		return app.Markdown
	}
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var rootCmd = &cobra.Command{
	Use:   "limber [description...]",
	Short: "Rank stretching sessions against how you feel",
	Long: `Limber ranks a catalog of stretching and mobility sessions against a
free-text description of your current state, with an explainable score for
every session.

Examples:
  limber "stiff lower back after a long flight"
  limber --catalog sessions.json --top 3 "desk neck, 15 min"
  limber --sort length --filter beginner "low energy morning"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("limber failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search transcripts for relevant passages",
	Long: `Search splits session transcripts into passages and ranks them against
the given terms, pointing at the exact part of a session that covers a topic.

Examples:
  limber search hip flexor release
  limber search --limit 10 "breathing cue"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		config.SearchLimit, _ = cmd.Flags().GetInt("limit")

		debug, _ := cmd.Flags().GetBool("debug")
		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		result, err := app.Search(ctx, config)
		if err != nil {
			return fmt.Errorf("limber failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single session with its transcript",
	Long: `Show renders one session in full: metadata, description, and the
transcript, optionally limited to a token, word, or character budget.

Examples:
  limber show morning-back-reset
  limber show -t 500 morning-back-reset`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, nil)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		config.ShowID = args[0]

		// determine counting method and budget
		tokenLimit, _ := cmd.Flags().GetInt("token-limit")
		wordLimit, _ := cmd.Flags().GetInt("word-limit")
		charLimit, _ := cmd.Flags().GetInt("character-limit")
		switch {
		case tokenLimit > 0:
			config.CountingMethod = counter.Tokens
			config.MaxUnits = tokenLimit
		case wordLimit > 0:
			config.CountingMethod = counter.Words
			config.MaxUnits = wordLimit
		case charLimit > 0:
			config.CountingMethod = counter.Characters
			config.MaxUnits = charLimit
		}

		debug, _ := cmd.Flags().GetBool("debug")
		setupLogger(debug)

		ctx, stop := signalContext()
		defer stop()

		result, err := app.Show(ctx, config)
		if err != nil {
			return fmt.Errorf("limber failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	// shared flags on the root, inherited by subcommands
	rootCmd.PersistentFlags().String("catalog", "", "Catalog source: file path, URL, or - for stdin")
	rootCmd.PersistentFlags().String("transcripts", "", "Base directory or URL prefix for transcript refs")
	rootCmd.PersistentFlags().String("transcript-selector", "", "CSS selector for HTML transcript pages")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	// output format flags
	rootCmd.PersistentFlags().Bool("md", false, "Output in Markdown format (default)")
	rootCmd.PersistentFlags().Bool("text", false, "Output in plain text format")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.MarkFlagsMutuallyExclusive("md", "text", "json")

	// ranking flags
	rootCmd.Flags().StringP("filter", "f", "", "Keep only sessions whose tags, level, or title contain this text")
	rootCmd.Flags().String("sort", "score", "Sort order: score, length, or level")
	rootCmd.Flags().IntP("top", "n", 2, "Number of sessions to recommend")
	rootCmd.Flags().BoolP("explain", "e", false, "Show per-rule score breakdowns")

	// search flags
	searchCmd.Flags().IntP("limit", "l", 5, "Maximum number of passages to print")

	// show budget flags
	showCmd.Flags().IntP("token-limit", "t", 0, "Limit transcript output to number of tokens")
	showCmd.Flags().IntP("word-limit", "w", 0, "Limit transcript output to number of words")
	showCmd.Flags().IntP("character-limit", "c", 0, "Limit transcript output to number of characters")
	showCmd.MarkFlagsMutuallyExclusive("token-limit", "word-limit", "character-limit")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
