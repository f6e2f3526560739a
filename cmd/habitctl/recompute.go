package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/habithub/habithub-api/internal/store"
	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute <user-id>",
	Short: "Rebuild a user's streaks and counters from their completion history",
	Long: `Recompute replays the user's full completion history and overwrites the
derived counters: current and longest streak, perfect days and total
completions. Perfect days are judged against the habits that are active now.
XP and level are not changed. Achievements are re-checked afterwards, so
rewards that became due are granted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		engine, s, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		if _, err := s.GetUser(cmd.Context(), userID); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("user %d does not exist", userID)
		} else if err != nil {
			return err
		}

		profile, unlocked, err := engine.RecomputeProfile(cmd.Context(), userID)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Printf("✓ Recomputed user %d\n", userID)
		printKV("current streak", profile.CurrentStreak)
		printKV("longest streak", profile.LongestStreak)
		printKV("perfect days", profile.PerfectDays)
		printKV("total completions", profile.TotalCompletions)
		for _, ua := range unlocked {
			a, _ := engine.Catalog().Achievement(ua.AchievementKey)
			color.New(color.FgYellow).Printf("  unlocked %s (+%d XP)\n", a.Name, a.XPReward)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
}
