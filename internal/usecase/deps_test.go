package usecase

import (
	"errors"
	"testing"
)

func TestGuardRejectsReentry(t *testing.T) {
	var g Guard
	inner := errors.New("unset")

	err := g.Run(func() error {
		if !g.Busy() {
			t.Error("guard not busy inside Run")
		}
		inner = g.Run(func() error { return nil })
		return nil
	})

	if err != nil {
		t.Fatalf("outer = %v", err)
	}
	if !errors.Is(inner, ErrBusy) {
		t.Fatalf("inner = %v, want ErrBusy", inner)
	}
	if g.Busy() {
		t.Fatal("guard still busy")
	}
}
