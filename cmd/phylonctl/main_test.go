package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunCommandDispatch(t *testing.T) {
	if err := run(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("expected missing command error, got %v", err)
	}
	if err := run(context.Background(), []string{"bogus"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestInitCommandMemoryStore(t *testing.T) {
	if err := run(context.Background(), []string{"init", "-store", "memory"}); err != nil {
		t.Fatalf("init: %v", err)
	}
}

func TestRunCommandCompletesFindNumber(t *testing.T) {
	err := run(context.Background(), []string{
		"run",
		"-store", "memory",
		"-problem", "find-number",
		"-target", "163",
		"-pop", "30",
		"-ending", "best-score",
		"-seed", "42",
		"-quiet",
		"-json",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunCommandRejectsUnknownStrategy(t *testing.T) {
	err := run(context.Background(), []string{
		"run",
		"-store", "memory",
		"-selection", "unknown",
		"-quiet",
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported selection strategy") {
		t.Fatalf("expected selection error, got %v", err)
	}
}

func TestFitnessCommandFlagValidation(t *testing.T) {
	err := run(context.Background(), []string{"fitness", "-store", "memory", "-run-id", "x", "-latest"})
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("expected flag conflict error, got %v", err)
	}
	err = run(context.Background(), []string{"fitness", "-store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "requires") {
		t.Fatalf("expected missing selector error, got %v", err)
	}
}
