package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Vocabulary trainer for primary school English",
	Long: `Wordiz is a terminal vocabulary trainer: flashcards, dictation and
sentence reconstruction over textbook word lists, with a wrong book,
favorites, streaks and an optional AI helper for questions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (yaml, toml or json)")
	pf.String("db", "", "Path to SQLite database file (overrides WORDIZ_DB env var)")
	pf.String("content", "", "Directory holding words.json, readings.json and listen.json")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Append logs to this file instead of stderr")
	pf.Bool("no-audio", false, "Disable pronunciation playback")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
