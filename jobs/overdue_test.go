package jobs

import (
	"testing"
	"time"

	"contractorhub-backend/models"
)

func TestDueStages(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("before due date", func(t *testing.T) {
		if got := DueStages(due.Add(-time.Hour), due); len(got) != 0 {
			t.Fatalf("expected no stages, got %v", got)
		}
	})

	t.Run("on due date", func(t *testing.T) {
		got := DueStages(due, due)
		if len(got) != 1 || got[0] != models.ReminderDueDate {
			t.Fatalf("expected [due_date], got %v", got)
		}
	})

	t.Run("one day late", func(t *testing.T) {
		got := DueStages(due.Add(25*time.Hour), due)
		if len(got) != 2 || got[1] != models.ReminderOverdue1Day {
			t.Fatalf("expected due_date+overdue_1day, got %v", got)
		}
	})

	t.Run("a week late", func(t *testing.T) {
		got := DueStages(due.Add(8*24*time.Hour), due)
		if len(got) != 3 || got[2] != models.ReminderOverdue7Day {
			t.Fatalf("expected full ladder, got %v", got)
		}
	})
}

func TestNextStageAt(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	next := NextStageAt(models.ReminderDueDate, due)
	if next == nil || !next.Equal(due.Add(24*time.Hour)) {
		t.Fatalf("due_date next = %v, want due+1d", next)
	}

	next = NextStageAt(models.ReminderOverdue1Day, due)
	if next == nil || !next.Equal(due.Add(7*24*time.Hour)) {
		t.Fatalf("overdue_1day next = %v, want due+7d", next)
	}

	if NextStageAt(models.ReminderOverdue7Day, due) != nil {
		t.Fatal("overdue_7days is the last stage")
	}
}
