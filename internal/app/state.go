package app

import "github.com/hydroapp/hydro/internal/model"

// State is the single derived snapshot the whole API and websocket
// stream render from. It owns nothing persistent; every field is a
// projection of the settings store, the day store, or an in-memory flag,
// recomputed whenever any of them changes.
type State struct {
	DailyGoal            model.Milliliters `json:"daily_goal"`
	TodayHydration       model.Milliliters `json:"today_hydration"`
	HydrationProgress    model.Percent     `json:"hydration_progress"`
	DailyGoalReached     bool              `json:"daily_goal_reached"`
	Reminder             *model.Reminder   `json:"reminder"`
	Theme                model.Theme       `json:"theme"`
	LiquidUnit           model.LiquidUnit  `json:"liquid_unit"`
	DefaultCups          []model.Cup       `json:"default_cups"`
	SelectedCups         []model.Cup       `json:"selected_cups"`
	AllCups              []model.Cup       `json:"all_cups"`
	OnboardingShown      bool              `json:"onboarding_shown"`
	AppInForeground      bool              `json:"app_in_foreground"`
	NotificationsEnabled bool              `json:"notifications_enabled"`
}

func (s *State) derive() {
	if s.DailyGoal > 0 {
		s.HydrationProgress = model.Percent(float32(s.TodayHydration) / float32(s.DailyGoal))
	} else {
		s.HydrationProgress = 0
	}
	s.DailyGoalReached = s.HydrationProgress >= 1
	s.AllCups = model.MergeCups(s.DefaultCups, s.SelectedCups)
}
