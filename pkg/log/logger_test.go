package log

import (
	"context"
	"strings"
	"testing"
)

func newRecordingLogger(level Level) (*Logger, *recordingTransporter) {
	rec := &recordingTransporter{}
	return New(level, rec), rec
}

func TestLogger_Info_WritesEntryWithCaller(t *testing.T) {
	logger, rec := newRecordingLogger(Info)

	logger.Info("trends loaded", "count", 5)
	logger.Close()

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != Info || e.Message != "trends loaded" {
		t.Errorf("entry = %s %q", e.Level, e.Message)
	}
	if e.Fields["count"] != 5 {
		t.Errorf("Fields[count] = %v, want 5", e.Fields["count"])
	}
	if !strings.HasPrefix(e.Caller, "logger_test.go:") {
		t.Errorf("Caller = %q, want logger_test.go:<line>", e.Caller)
	}
}

func TestLogger_BelowMinimumLevel_Skipped(t *testing.T) {
	logger, rec := newRecordingLogger(Warn)

	logger.Debug("noise")
	logger.Info("noise")
	logger.Warn("signal")
	logger.Close()

	if got := len(rec.Entries()); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
}

func TestLogger_SetLevel_AppliesToChildren(t *testing.T) {
	logger, rec := newRecordingLogger(Info)
	child := logger.With("component", "composer")

	logger.SetLevel(Error)
	child.Warn("suppressed")
	child.Error("kept")
	logger.Close()

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Message != "kept" {
		t.Errorf("entries = %+v, want only 'kept'", entries)
	}
}

func TestLogger_With_AddsBaseFieldsWithoutTouchingParent(t *testing.T) {
	logger, rec := newRecordingLogger(Info)
	child := logger.With("component", "backend")

	child.Info("from child")
	logger.Info("from parent")
	logger.Close()

	entries := rec.Entries()
	if entries[0].Fields["component"] != "backend" {
		t.Errorf("child entry fields = %v", entries[0].Fields)
	}
	if _, ok := entries[1].Fields["component"]; ok {
		t.Errorf("parent entry should not carry child fields: %v", entries[1].Fields)
	}
}

func TestLogger_Ctx_PullsRequestIDAndFields(t *testing.T) {
	logger, rec := newRecordingLogger(Info)
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithFields(ctx, "period", "today", "platform", "ctx")

	logger.With("platform", "base").WarnCtx(ctx, "fallback used", "platform", "call")
	logger.Close()

	e := rec.Entries()[0]
	if e.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want req-42", e.RequestID)
	}
	if e.Fields["period"] != "today" {
		t.Errorf("Fields[period] = %v, want today", e.Fields["period"])
	}
	if e.Fields["platform"] != "call" {
		t.Errorf("call-site field should win, got %v", e.Fields["platform"])
	}
}

func TestDefault_WithoutSetDefault_Discards(t *testing.T) {
	SetDefault(nil)

	// Must not panic or block.
	GlobalInfo("nobody listens")
	GlobalErrorCtx(context.Background(), "still nobody")

	if Default().Level().Enables(Fatal) {
		t.Error("discard logger should not enable any level")
	}
}

func TestGlobalHelpers_UseInstalledLogger(t *testing.T) {
	logger, rec := newRecordingLogger(Debug)
	SetDefault(logger)
	defer SetDefault(nil)

	GlobalDebug("d")
	GlobalWarnCtx(WithRequestID(context.Background(), "r1"), "w")
	logger.Close()

	entries := rec.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[1].RequestID != "r1" {
		t.Errorf("RequestID = %q, want r1", entries[1].RequestID)
	}
}
