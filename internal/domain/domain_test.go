package domain

import (
	"testing"
	"time"
)

func TestStatus_String(t *testing.T) {
	cases := []struct {
		in   Status
		want string
	}{
		{StatusUnknown, "unknown"},
		{StatusUp, "UP"},
		{StatusDown, "DOWN"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Fatalf("Status(%d).String()=%q want %q", c.in, got, c.want)
		}
	}
	if StatusUnknown.Known() {
		t.Fatalf("zero status must be unknown")
	}
	if StatusFromBool(true) != StatusUp || StatusFromBool(false) != StatusDown {
		t.Fatalf("StatusFromBool mismatch")
	}
}

func TestTargetState_Age(t *testing.T) {
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)

	var never TargetState
	if _, ok := never.Age(now); ok {
		t.Fatalf("never-checked state must report no age")
	}

	st := TargetState{Status: StatusDown, LastCheckedAt: now.Add(-42 * time.Second)}
	age, ok := st.Age(now)
	if !ok || age != 42*time.Second {
		t.Fatalf("want 42s, got %v ok=%v", age, ok)
	}

	// clock skew never yields a negative age
	future := TargetState{Status: StatusUp, LastCheckedAt: now.Add(time.Second)}
	if age, _ := future.Age(now); age != 0 {
		t.Fatalf("want 0 for future timestamp, got %v", age)
	}
}
