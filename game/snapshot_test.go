package game

import "testing"

func TestSnapshotNearest(t *testing.T) {
	snap := &Snapshot{Agents: []AgentView{
		{X: 10, Y: 10},
		{X: 20, Y: 10},
		{X: 12, Y: 10},
	}}

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		want   int
		ok     bool
	}{
		{"exact hit", 20, 10, 5, 1, true},
		{"closest wins", 11.5, 10, 5, 2, true},
		{"tie keeps first", 11, 10, 5, 0, true},
		{"outside radius", 50, 50, 5, -1, false},
		{"on the radius misses", 25, 10, 5, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := snap.Nearest(tt.x, tt.y, tt.radius)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Nearest(%v, %v, %v) = %d, %v, want %d, %v", tt.x, tt.y, tt.radius, got, ok, tt.want, tt.ok)
			}
		})
	}
}
