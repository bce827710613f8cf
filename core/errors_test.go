package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same sentinel", ErrInvalidRating, ErrInvalidRating, true},
		{"wrapped sentinel", fmt.Errorf("user 1: %w", ErrInvalidSimilarity), ErrInvalidSimilarity, true},
		{"same module and code, different sentinel", fmt.Errorf("user 1: %w", ErrInvalidSimilarity), ErrInvalidRating, false},
		{"reverse direction", fmt.Errorf("user 1 item 2: %w", ErrInvalidRating), ErrInvalidSimilarity, false},
		{"same code, different module", ErrInvalidCount, ErrInvalidRating, false},
		{"not found across modules", ErrUserNotFound, ErrStoreNotFound, false},
		{"snapshot unavailable", fmt.Errorf("recommend user 7: %w", ErrSnapshotUnavailable), ErrSnapshotUnavailable, true},
		{"plain error", errors.New("matrix: rating must be a finite number"), ErrInvalidRating, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestDomainError_CodeHelpers(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("load: %w", err) }

	tests := []struct {
		name             string
		err              error
		wantInvalidInput bool
		wantNotFound     bool
		wantUnavailable  bool
		wantStore        bool
	}{
		{name: "invalid rating", err: wrapped(ErrInvalidRating), wantInvalidInput: true},
		{name: "invalid similarity", err: wrapped(ErrInvalidSimilarity), wantInvalidInput: true},
		{name: "invalid count", err: ErrInvalidCount, wantInvalidInput: true},
		{name: "user not found", err: wrapped(ErrUserNotFound), wantNotFound: true},
		{name: "store not found", err: wrapped(ErrStoreNotFound), wantNotFound: true, wantStore: true},
		{name: "snapshot unavailable", err: wrapped(ErrSnapshotUnavailable), wantUnavailable: true},
		{name: "nil", err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidInput(tt.err); got != tt.wantInvalidInput {
				t.Errorf("IsInvalidInput() = %v, want %v", got, tt.wantInvalidInput)
			}
			if got := IsNotFound(tt.err); got != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.wantNotFound)
			}
			if got := IsUnavailable(tt.err); got != tt.wantUnavailable {
				t.Errorf("IsUnavailable() = %v, want %v", got, tt.wantUnavailable)
			}
			if got := IsStoreNotFound(tt.err); got != tt.wantStore {
				t.Errorf("IsStoreNotFound() = %v, want %v", got, tt.wantStore)
			}
		})
	}
}

func TestGetDomainError(t *testing.T) {
	err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrInvalidSimilarity))
	de := GetDomainError(err)
	if de != ErrInvalidSimilarity {
		t.Fatalf("GetDomainError() = %v, want ErrInvalidSimilarity", de)
	}
	if de.Module != ModuleMatrix || de.Code != ErrorCodeInvalidInput {
		t.Errorf("Module/Code = %s/%s", de.Module, de.Code)
	}
	if IsDomainError(errors.New("plain")) {
		t.Errorf("IsDomainError(plain) should be false")
	}
}
