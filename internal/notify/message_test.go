package notify

import (
	"testing"

	"github.com/hydroapp/hydro/internal/model"
)

func TestReminderMessageTiers(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, reminderMessages[0]},
		{199, reminderMessages[0]},
		{200, reminderMessages[1]},
		{299, reminderMessages[1]},
		{1050, reminderMessages[9]},
		{1999, reminderMessages[18]},
		{2000, reminderMessageFallback},
		{5000, reminderMessageFallback},
	}
	for _, tt := range tests {
		if got := reminderMessage(model.Milliliters(tt.total)); got != tt.want {
			t.Errorf("message(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}
