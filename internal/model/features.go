package model

import "fmt"

// FeatureNames lists the 12 composite features in radar axis order.
var FeatureNames = []string{
	"Goal Scoring",
	"Goal Efficacy",
	"Shooting",
	"Passing Influence",
	"Passing Accuracy",
	"Goal Creation",
	"Possession Influence",
	"Progression",
	"Dribbling",
	"Aerial Influence",
	"Defensive Influence",
	"Discipline and Consistency",
}

// FeatureMap maps each composite feature to the raw metric columns it is
// built from.
var FeatureMap = map[string][]string{
	"Goal Scoring":               {"Goals_90m", "Goals not Penalty_90m"},
	"Goal Efficacy":              {"Goals Minus Expected_90m", "Goals/Shoot", "Penalty Efficacy"},
	"Shooting":                   {"Shoots_90m", "Shoots on Target_90m", "Goals/Shoot", "FreeKick Tacker"},
	"Passing Influence":          {"Short Cmp_90m", "Medium Cmp_90m", "Long Cmp_90m", "Prog Passes_90m", "Pass Prog Distance_90m"},
	"Passing Accuracy":           {"Cmp Passes%", "Short Cmp%", "Medium Cmp%", "Long Cmp%"},
	"Goal Creation":              {"Assists_90m", "Key Passes_90m", "Goal Creating Actions_90m"},
	"Possession Influence":       {"Touches_90m", "Fouls Suffered_90m", "Carries_90m"},
	"Progression":                {"Prog Carries_90m", "Carries PrgDist_90m"},
	"Dribbling":                  {"Take-Ons Succ_90m", "Take-Ons Succ%"},
	"Aerial Influence":           {"Aerial Duels_90m", "Aerial Duels Won%"},
	"Defensive Influence":        {"Tackles Won_90m", "Blocks_90m", "Interceptions_90m", "Clearances_90m", "Ball Recoveries_90m"},
	"Discipline and Consistency": {"Own Goals_90m", "Errors_90m", "Yellow Cards_90m", "Red Cards_90m", "Fouls Commited_90m", "Penalty Commited_90m"},
}

// NegativeMetrics are raw metrics where a higher value hurts the player.
// Scaling inverts these so that 1.0 is always "better".
var NegativeMetrics = map[string]bool{
	"Own Goals_90m":        true,
	"Errors_90m":           true,
	"Yellow Cards_90m":     true,
	"Red Cards_90m":        true,
	"Fouls Commited_90m":   true,
	"Penalty Commited_90m": true,
}

// ValidFeature reports whether name is one of the 12 composite features.
func ValidFeature(name string) bool {
	_, ok := FeatureMap[name]
	return ok
}

func formatMV(v float64) string {
	return fmt.Sprintf("%.1f M€", v)
}
