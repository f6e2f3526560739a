package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/habithub/habithub-api/internal/catalog"
	"github.com/habithub/habithub-api/internal/models"
	"github.com/spf13/cobra"
)

var (
	catalogTemplates bool
	catalogCategory  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in achievement catalog or habit templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		if catalogTemplates {
			printTemplates(cat.Templates(catalogCategory))
			return nil
		}
		printAchievements(cat.Achievements())
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVarP(&catalogTemplates, "templates", "t", false, "print habit templates instead of achievements")
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "filter templates by category")
	rootCmd.AddCommand(catalogCmd)
}

var rarityColors = map[models.Rarity]*color.Color{
	models.RarityCommon:    color.New(color.FgWhite),
	models.RarityRare:      color.New(color.FgBlue),
	models.RarityEpic:      color.New(color.FgMagenta),
	models.RarityLegendary: color.New(color.FgYellow, color.Bold),
}

func printAchievements(list []models.Achievement) {
	faint := color.New(color.Faint)
	for _, a := range list {
		rarity, ok := rarityColors[a.Rarity]
		if !ok {
			rarity = color.New(color.Reset)
		}
		fmt.Printf("%s %s %s %s\n",
			padRight(a.Key, 20),
			rarity.Sprint(padRight(string(a.Rarity), 10)),
			padRight(fmt.Sprintf("+%d XP", a.XPReward), 9),
			faint.Sprintf("%s >= %d", a.Requirement.Type, a.Requirement.Value))
	}
}

func printTemplates(list []models.HabitTemplate) {
	if len(list) == 0 {
		fmt.Println("No templates found.")
		return
	}
	faint := color.New(color.Faint)
	star := color.New(color.FgYellow)
	for _, t := range list {
		mark := " "
		if t.Featured {
			mark = star.Sprint("★")
		}
		fmt.Printf("%s %s %s %s\n", mark, padRight(t.ID, 20), padRight(t.Name, 32), faint.Sprint(t.Category))
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
