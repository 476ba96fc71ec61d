package geometry

import "testing"

func TestDefaultCanvas(t *testing.T) {
	c := DefaultCanvas()
	if c.Width != 1920 || c.Height != 1080 {
		t.Errorf("DefaultCanvas() = %vx%v, want 1920x1080", c.Width, c.Height)
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{Pos: Position{X: 10, Y: 20}, Dim: Size{Width: 100, Height: 60}}

	got := r.Center()
	if got.X != 60 || got.Y != 50 {
		t.Errorf("Center() = (%v, %v), want (60, 50)", got.X, got.Y)
	}
	if r.Right() != 110 {
		t.Errorf("Right() = %v, want 110", r.Right())
	}
	if r.Bottom() != 80 {
		t.Errorf("Bottom() = %v, want 80", r.Bottom())
	}
}

func TestPositionAdd(t *testing.T) {
	p := Position{X: 1, Y: 2}.Add(3, -4)
	if p.X != 4 || p.Y != -2 {
		t.Errorf("Add() = (%v, %v), want (4, -2)", p.X, p.Y)
	}
}
