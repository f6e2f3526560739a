package models

type HabitTemplate struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	Description      string    `yaml:"description" json:"description"`
	Category         string    `yaml:"category" json:"category"`
	Icon             string    `yaml:"icon" json:"icon"`
	Color            string    `yaml:"color" json:"color"`
	Frequency        Frequency `yaml:"frequency" json:"frequency"`
	TargetCount      int       `yaml:"target_count" json:"target_count"`
	Difficulty       string    `yaml:"difficulty" json:"difficulty"`
	Tags             []string  `yaml:"tags" json:"tags"`
	TimeSuggestion   string    `yaml:"time_suggestion" json:"time_suggestion"`
	EstimatedMinutes int       `yaml:"estimated_minutes" json:"estimated_minutes"`
	Featured         bool      `yaml:"featured" json:"featured"`
}
