package mongo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Second)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > time.Second {
		t.Fatalf("expected deadline within 1s, got %v", deadline)
	}

	parent, parentCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer parentCancel()
	child, childCancel := WithTimeout(parent, time.Hour)
	defer childCancel()
	parentDeadline, _ := parent.Deadline()
	childDeadline, _ := child.Deadline()
	if !childDeadline.Equal(parentDeadline) {
		t.Errorf("expected shorter parent deadline to win, got %v vs %v", childDeadline, parentDeadline)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if IsDuplicateKey(errors.New("boom")) {
		t.Error("plain error must not be a duplicate key error")
	}
}
