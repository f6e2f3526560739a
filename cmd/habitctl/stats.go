package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show a user's stats and profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		engine, _, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}

		stats, err := engine.GetUserStats(cmd.Context(), userID, statsDays)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		profile, err := engine.GetProfile(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		color.New(color.Bold).Printf("User %d\n", userID)
		printKV("level", profile.Level)
		printKV("xp", fmt.Sprintf("%d (%d lifetime, %d to next level)", profile.XP, profile.TotalXP, profile.XPToNextLevel))
		printKV("habits", fmt.Sprintf("%d (%d active)", stats.TotalHabits, stats.ActiveHabits))
		printKV(fmt.Sprintf("completions/%dd", stats.Days), stats.CompletionsInWindow)
		printKV("current streak", stats.CurrentStreak)
		printKV("longest streak", profile.LongestStreak)
		printKV("perfect days", profile.PerfectDays)
		printKV("total completions", profile.TotalCompletions)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", 0, "window in days (default: STATS_DEFAULT_DAYS)")
	rootCmd.AddCommand(statsCmd)
}

func parseUserID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return uint(id), nil
}
