package scene

import "testing"

func TestPixelCameraCorners(t *testing.T) {
	c := NewPixelCamera(800, 600)
	tests := []struct {
		x, y   float32
		nx, ny float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
		{800, 0, 1, 1},
	}
	for _, tt := range tests {
		nx, ny := c.Project(tt.x, tt.y)
		if !near(nx, tt.nx) || !near(ny, tt.ny) {
			t.Errorf("Project(%v, %v): got (%v, %v), want (%v, %v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
	}

	c.SetViewport(400, 0)
	if c.Height != 1 {
		t.Errorf("zero height not clamped: %v", c.Height)
	}
	if nx, _ := c.Project(400, 0); !near(nx, 1) {
		t.Errorf("resize ignored: %v", nx)
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
