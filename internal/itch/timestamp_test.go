package itch

import "testing"

func TestTimestamp_String(t *testing.T) {
	cases := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{"Midnight", 0, "00:00:00.000000000"},
		{"Morning", Timestamp(9*HourNanos + 30*MinuteNanos + 1*SecondNanos + 42), "09:30:01.000000042"},
		{"Afternoon", Timestamp(16 * HourNanos), "16:00:00.000000000"},
		{"Sub-second", Timestamp(999_999_999), "00:00:00.999999999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ts.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTimestamp_Hour(t *testing.T) {
	if got := Timestamp(9*HourNanos + 59*MinuteNanos).Hour(); got != 9 {
		t.Errorf("Hour() = %d, want 9", got)
	}
	if got := Timestamp(10 * HourNanos).Hour(); got != 10 {
		t.Errorf("Hour() = %d, want 10", got)
	}
}
