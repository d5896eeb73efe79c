package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfUnwrapsWrappedError(t *testing.T) {
	cause := errors.New("device vanished")
	wrapped := fmt.Errorf("playback: %w", New(DeviceIO, "playback", cause))

	kind, ok := KindOf(wrapped)
	if !ok {
		t.Fatal("expected KindOf to find the wrapped *Error")
	}
	if kind != DeviceIO {
		t.Fatalf("expected DeviceIO, got %v", kind)
	}
}

func TestKindOfReportsFalseForPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	if ok {
		t.Fatal("expected KindOf to report false for a non-apperr error")
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := map[Kind]int{
		DeviceOpen: 1,
		DeviceIO:   2,
		Config:     3,
		Internal:   1,
		Timeout:    1,
	}
	for kind, want := range cases {
		if got := ExitCode(kind); got != want {
			t.Fatalf("ExitCode(%v) = %d, want %d", kind, got, want)
		}
	}
}
