package log

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithRequestID(ctx, "req-2")

	if got := RequestIDFromContext(ctx); got != "req-2" {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, "req-2")
	}
}

func TestRequestIDFromContext_Missing_ReturnsEmpty(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Errorf("RequestIDFromContext(nil) = %q, want empty", got)
	}
}

func TestWithFields_MergesWithoutMutatingParent(t *testing.T) {
	parent := WithFields(context.Background(), "platform", "x")
	child := WithFields(parent, "period", "today")

	if got := FieldsFromContext(child); got["platform"] != "x" || got["period"] != "today" {
		t.Errorf("child fields = %v", got)
	}
	if _, ok := FieldsFromContext(parent)["period"]; ok {
		t.Error("parent fields were mutated by child")
	}
}

func TestFieldsFromContext_NoFields_ReturnsNil(t *testing.T) {
	if got := FieldsFromContext(context.Background()); got != nil {
		t.Errorf("FieldsFromContext() = %v, want nil", got)
	}
}
