package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeUnixMillis(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, ok := ParseTime(strconv.FormatInt(want.UnixMilli(), 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	for _, s := range []string{"2024-03-01", "20240301"} {
		got, ok := ParseTime(s)
		if !ok {
			t.Fatalf("expected ok for %q", s)
		}
		if DateString(got) != "2024-03-01" {
			t.Fatalf("unexpected date %v for %q", got, s)
		}
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault(" 25 ", 10); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := ParseIntDefault("abc", 10); got != 10 {
		t.Fatalf("expected default, got %d", got)
	}
}

func TestParseFloatPtr(t *testing.T) {
	if ParseFloatPtr("") != nil {
		t.Fatalf("expected nil for empty")
	}
	if ParseFloatPtr("x1") != nil {
		t.Fatalf("expected nil for invalid")
	}
	for _, in := range []string{"NaN", "Inf", "-Infinity", "1e400"} {
		if v := ParseFloatPtr(in); v != nil {
			t.Fatalf("expected nil for %q, got %v", in, *v)
		}
	}
	v := ParseFloatPtr("12.5")
	if v == nil || *v != 12.5 {
		t.Fatalf("unexpected %v", v)
	}
}
