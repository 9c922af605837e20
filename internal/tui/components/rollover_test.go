package components

import (
	"testing"
	"time"
)

func TestRolloverCheck(t *testing.T) {
	now := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.Local)
	r := NewRollover(time.Minute, func() time.Time { return now })

	if !r.Last().Equal(day(2024, time.March, 15)) {
		t.Fatalf("Last() = %v", r.Last())
	}
	if _, changed := r.Check(); changed {
		t.Fatal("Check() changed without a new date")
	}

	now = time.Date(2024, time.March, 16, 0, 0, 30, 0, time.Local)
	got, changed := r.Check()
	if !changed {
		t.Fatal("Check() missed the rollover")
	}
	if !got.Equal(day(2024, time.March, 16)) || !r.Last().Equal(got) {
		t.Errorf("Check() = %v, Last() = %v", got, r.Last())
	}

	if _, changed := r.Check(); changed {
		t.Error("second Check() on the same day reported a change")
	}
}

func TestRolloverSetLast(t *testing.T) {
	now := time.Date(2024, time.March, 16, 8, 0, 0, 0, time.Local)
	r := NewRollover(time.Minute, func() time.Time { return now })

	r.SetLast(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local))
	if !r.Last().Equal(day(2024, time.March, 15)) {
		t.Errorf("SetLast kept the time of day: %v", r.Last())
	}
	if _, changed := r.Check(); !changed {
		t.Error("Check() after SetLast to yesterday did not report a change")
	}
	if r.Interval() != time.Minute {
		t.Errorf("Interval() = %v", r.Interval())
	}
}
