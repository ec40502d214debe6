package services

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestStreakFirstActivity(t *testing.T) {
	svc := NewStreakService(testDB(t))

	res, err := svc.RecordActivity(1, day(2024, time.January, 10))
	if err != nil {
		t.Fatalf("record activity: %v", err)
	}
	if !res.Increased || res.Reset {
		t.Fatalf("want increased=true reset=false, got increased=%v reset=%v", res.Increased, res.Reset)
	}
	if res.Record.CurrentStreak != 1 || res.Record.LongestStreak != 1 || res.Record.TotalDaysActive != 1 {
		t.Fatalf("unexpected record after first activity: %+v", res.Record)
	}
}

func TestStreakSameDayIsNoop(t *testing.T) {
	svc := NewStreakService(testDB(t))

	if _, err := svc.RecordActivity(1, day(2024, time.January, 10)); err != nil {
		t.Fatalf("first activity: %v", err)
	}
	// Later the same UTC day, different hour.
	res, err := svc.RecordActivity(1, time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("same-day activity: %v", err)
	}
	if res.Increased || res.Reset {
		t.Fatalf("same-day re-entry must not change the streak: %+v", res)
	}
	if res.Record.CurrentStreak != 1 || res.Record.TotalDaysActive != 1 {
		t.Fatalf("same-day re-entry mutated the record: %+v", res.Record)
	}
}

func TestStreakConsecutiveDayIncrements(t *testing.T) {
	svc := NewStreakService(testDB(t))

	if _, err := svc.RecordActivity(1, day(2024, time.January, 10)); err != nil {
		t.Fatalf("day one: %v", err)
	}
	res, err := svc.RecordActivity(1, day(2024, time.January, 11))
	if err != nil {
		t.Fatalf("day two: %v", err)
	}
	if !res.Increased {
		t.Fatal("consecutive day must increment")
	}
	if res.Record.CurrentStreak != 2 || res.Record.LongestStreak != 2 || res.Record.TotalDaysActive != 2 {
		t.Fatalf("unexpected record after consecutive day: %+v", res.Record)
	}
}

func TestStreakGapResets(t *testing.T) {
	svc := NewStreakService(testDB(t))

	if _, err := svc.RecordActivity(1, day(2024, time.January, 10)); err != nil {
		t.Fatalf("day one: %v", err)
	}
	if _, err := svc.RecordActivity(1, day(2024, time.January, 11)); err != nil {
		t.Fatalf("day two: %v", err)
	}
	// Jan 12 is skipped.
	res, err := svc.RecordActivity(1, day(2024, time.January, 13))
	if err != nil {
		t.Fatalf("after gap: %v", err)
	}
	if !res.Reset || res.Increased {
		t.Fatalf("gap must reset, got increased=%v reset=%v", res.Increased, res.Reset)
	}
	if res.Record.CurrentStreak != 1 {
		t.Fatalf("current streak after reset = %d, want 1", res.Record.CurrentStreak)
	}
	if res.Record.LongestStreak != 2 {
		t.Fatalf("longest streak must survive the reset, got %d", res.Record.LongestStreak)
	}
	if res.Record.TotalDaysActive != 3 {
		t.Fatalf("total days active = %d, want 3", res.Record.TotalDaysActive)
	}
}

func TestStreakFutureLastActiveResets(t *testing.T) {
	svc := NewStreakService(testDB(t))

	if _, err := svc.RecordActivity(1, day(2024, time.January, 20)); err != nil {
		t.Fatalf("future-dated activity: %v", err)
	}
	// Clock skew: the stored date is now ahead of "today".
	res, err := svc.RecordActivity(1, day(2024, time.January, 15))
	if err != nil {
		t.Fatalf("activity behind stored date: %v", err)
	}
	if !res.Reset {
		t.Fatal("a future last-active date must reset like a gap")
	}
	if res.Record.CurrentStreak != 1 || res.Record.TotalDaysActive != 2 {
		t.Fatalf("unexpected record after skew reset: %+v", res.Record)
	}
}

func TestStreakRejectsZeroUser(t *testing.T) {
	svc := NewStreakService(testDB(t))
	if _, err := svc.RecordActivity(0, day(2024, time.January, 10)); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestStreakGetBeforeFirstActivity(t *testing.T) {
	svc := NewStreakService(testDB(t))
	rec, err := svc.Get(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.CurrentStreak != 0 || rec.LongestStreak != 0 || rec.LastActiveDate != nil {
		t.Fatalf("want zero-valued record, got %+v", rec)
	}
}
