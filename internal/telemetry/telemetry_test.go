package telemetry

import (
	"strings"
	"testing"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

func lit(c *Canvas, x, y int) bool {
	return c.cells[(y/4)*c.cols+x/2]&dotBits[y%4][x%2] != 0
}

func TestCanvasDot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Dot(0, 0)
	c.Dot(1, 3)
	c.Dot(7, 7)

	for _, pt := range []struct{ x, y int }{{0, 0}, {1, 3}, {7, 7}} {
		if !lit(c, pt.x, pt.y) {
			t.Errorf("dot (%d,%d) not lit", pt.x, pt.y)
		}
	}
	if lit(c, 1, 0) {
		t.Error("unset dot is lit")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Dot(-1, 0)
	c.Dot(0, -1)
	c.Dot(c.DotWidth(), 0)
	c.Dot(0, c.DotHeight())

	for _, cell := range c.cells {
		if cell != 0x2800 {
			t.Fatal("out-of-range dot modified the canvas")
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Dot(3, 3)
	c.Clear()
	for _, cell := range c.cells {
		if cell != 0x2800 {
			t.Fatal("clear left a dot behind")
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(8, 4)
	c.Line(0, 0, 5, 0)
	for x := 0; x <= 5; x++ {
		if !lit(c, x, 0) {
			t.Errorf("horizontal line missing dot at x=%d", x)
		}
	}

	c.Clear()
	c.Line(2, 2, 2, 9)
	for y := 2; y <= 9; y++ {
		if !lit(c, 2, y) {
			t.Errorf("vertical line missing dot at y=%d", y)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("row %q is not 3 cells wide", line)
		}
	}
}

func testModelConfig() harness.Config {
	return harness.Config{
		Scenario:     gnc.ScenarioRendezvous,
		Dt:           0.1,
		Duration:     1.0,
		Seed:         42,
		EvalInterval: 10,
	}
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	cfg := testModelConfig()
	cfg.Dt = -1
	if _, err := NewModel(cfg, 0); err == nil {
		t.Error("expected error for negative dt")
	}
}

func TestModelProjectWindow(t *testing.T) {
	m, err := NewModel(testModelConfig(), 0)
	if err != nil {
		t.Fatal(err)
	}

	ox, oy := m.project(gnc.Vec3{})
	ix, iy := m.project(gnc.Vec3{X: 2500.0, Y: 200.0})
	w, h := m.canvas.DotWidth(), m.canvas.DotHeight()

	for _, pt := range []struct{ x, y int }{{ox, oy}, {ix, iy}} {
		if pt.x < 0 || pt.x >= w || pt.y < 0 || pt.y >= h {
			t.Errorf("projected point (%d,%d) outside %dx%d canvas", pt.x, pt.y, w, h)
		}
	}
	if ox >= ix {
		t.Errorf("origin x=%d should be left of the initial offset x=%d", ox, ix)
	}
	if iy >= oy {
		t.Errorf("positive crosstrack y=%d should be above the target y=%d", iy, oy)
	}
}

func TestModelAdvanceToCompletion(t *testing.T) {
	m, err := NewModel(testModelConfig(), 0)
	if err != nil {
		t.Fatal(err)
	}

	m.speed = 16
	m.advance()

	if !m.h.Done() {
		t.Fatal("advance with excess speed should finish the run")
	}
	if m.result == nil || m.result.Ticks != 10 {
		t.Fatalf("result = %+v", m.result)
	}
	if m.running {
		t.Error("model should stop once the run completes")
	}
	if len(m.trail) != 10 || len(m.errHistory) != 10 {
		t.Errorf("trail %d, history %d, want 10 each", len(m.trail), len(m.errHistory))
	}

	m.reset()
	if m.result != nil || !m.running || m.h.Tick() != 0 || len(m.trail) != 0 {
		t.Error("reset should restore a fresh harness")
	}
}
