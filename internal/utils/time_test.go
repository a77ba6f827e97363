package util_test

import (
	"encoding/json"
	"testing"
	"time"

	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

func TestNewEpochTruncates(t *testing.T) {
	e := util.NewEpoch(time.Date(2026, 1, 2, 3, 4, 5, 999, time.UTC))
	if e.Nanosecond() != 0 {
		t.Errorf("expected second resolution, got %d ns", e.Nanosecond())
	}
	if e.String() != "1767323045" {
		t.Errorf("unexpected unix rendering %q", e.String())
	}
}

func TestEpochJSON(t *testing.T) {
	e := util.EpochFromUnix(1767323045)

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != "1767323045" {
		t.Errorf("expected bare number, got %s", b)
	}

	var back util.Epoch
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(e) {
		t.Errorf("round trip mismatch: %v != %v", back, e)
	}

	zero, _ := json.Marshal(util.Epoch{})
	if string(zero) != "null" {
		t.Errorf("zero epoch should be null, got %s", zero)
	}
}

func TestEpochScan(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  int64
	}{
		{"Int64", int64(1700000000), 1700000000},
		{"Bytes", []byte("1700000000"), 1700000000},
		{"String", "1700000000", 1700000000},
		{"Time", time.Unix(1700000000, 0), 1700000000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e util.Epoch
			if err := e.Scan(tc.value); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if e.Unix() != tc.want {
				t.Errorf("expected %d, got %d", tc.want, e.Unix())
			}
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		var e util.Epoch
		if err := e.Scan(3.14); err == nil {
			t.Error("expected error for float input")
		}
	})

	t.Run("Nil", func(t *testing.T) {
		e := util.EpochFromUnix(1)
		if err := e.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) failed: %v", err)
		}
		if !e.IsZero() {
			t.Error("Scan(nil) should reset to zero")
		}
	})
}

func TestEpochValue(t *testing.T) {
	v, err := util.EpochFromUnix(42).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != int64(42) {
		t.Errorf("expected int64(42), got %#v", v)
	}

	v, _ = util.Epoch{}.Value()
	if v != nil {
		t.Errorf("zero epoch should be NULL, got %#v", v)
	}
}

func TestEpochText(t *testing.T) {
	b, err := util.EpochFromUnix(1767323045).MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(b) != "1767323045" {
		t.Errorf("expected unix seconds, got %s", b)
	}

	var e util.Epoch
	if err := e.UnmarshalText([]byte("not-a-number")); err == nil {
		t.Error("expected error for non-numeric text")
	}
}
