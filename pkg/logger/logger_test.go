package logger

import (
	"context"
	"errors"
	"testing"
)

func TestGetBeforeInit(t *testing.T) {
	// A fresh process may call Get before Init; it must not panic.
	l := Get()
	if l == nil {
		t.Fatal("logger is nil before initialization")
	}
	l.Info(context.Background(), "dropped", String("k", "v"))
}

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	l := Get()
	l.Info(ctx, "test message", String("k", "v"), Int("n", 3), Float64("f", 1.5))
	l.Warn(ctx, "warn message", Any("list", []string{"a", "b"}))
	l.Error(ctx, "error message", Error(errors.New("boom")))
	l.Debug(ctx, "debug message")
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Named("child").Info(context.Background(), "test message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	cases := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"warning": "warn",
		" error ": "error",
		"":        "info",
	}
	for in, want := range cases {
		if err := SetLevelString(in); err != nil {
			t.Fatalf("SetLevelString(%q) returned error: %v", in, err)
		}
		if got := Level(); got != want {
			t.Errorf("SetLevelString(%q): level = %q, want %q", in, got, want)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
