package notify

import "github.com/hydroapp/hydro/internal/model"

var reminderMessages = []string{
	"Time to Hydrate! Take a Sip of Water and Stay Refreshed.",
	"Stay Hydrated! Your Body Needs Water. Take a Break and Drink Up!",
	"Hydration Alert! Grab a Glass of Water and Rehydrate.",
	"Don't Forget to Drink Water! Your Body Thanks You.",
	"Quench Your Thirst! It's Hydration O'Clock.",
	"Stay Healthy and Hydrated! Time for a Water Break.",
	"Water Time! Hydrate Yourself for Optimal Wellness.",
	"Hydration Check: Have You Had Your Glass of Water Yet?",
	"A Little H2O Never Hurt! Stay Hydrated for a Productive Day.",
	"Refill Your Cup! Hydration Is the Key to Feeling Great.",
	"Stay Hydrated! Another Glass of Water Brings You Closer to Wellness.",
	"Hydration Alert! Keep Sipping Water for a Healthy You.",
	"Don't Forget to Stay Hydrated! Your Body Loves Water.",
	"Quench Your Thirst! It's Time for More Hydration.",
	"Stay Healthy and Hydrated! Keep Up the Water Intake.",
	"Water Time! Hydrate to Energize Your Body.",
	"Hydration Check: Keep the Water Coming for a Productive Day.",
	"Stay Hydrated! Your Body Will Thank You.",
	"A Little H2O Never Hurt! Keep Hydrating for Optimal Wellness.",
}

const reminderMessageFallback = "Keep Hydrating! Your Body Will Thank You."

// reminderMessage picks the reminder copy for the current total, one
// message per 100 ml tier (the first tier spans 0-199).
func reminderMessage(total model.Milliliters) string {
	if total < 200 {
		return reminderMessages[0]
	}
	idx := int(total)/100 - 1
	if idx >= len(reminderMessages) {
		return reminderMessageFallback
	}
	return reminderMessages[idx]
}
