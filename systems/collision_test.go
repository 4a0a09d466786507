package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/components"
)

const testSlack = 0.15

func TestResolveCollision(t *testing.T) {
	o := components.Obstacle{Pos: mgl32.Vec2{0, 0}, Radius: 1}

	tests := []struct {
		name      string
		pos       mgl32.Vec2
		want      mgl32.Vec2
		wantMoved bool
	}{
		{"overlapping is pushed out", mgl32.Vec2{0.5, 0}, mgl32.Vec2{1.3, 0}, true},
		{"pushed along ray", mgl32.Vec2{0, -0.2}, mgl32.Vec2{0, -1.3}, true},
		{"within slack is left alone", mgl32.Vec2{1.2, 0}, mgl32.Vec2{1.2, 0}, false},
		{"far away is left alone", mgl32.Vec2{4, 4}, mgl32.Vec2{4, 4}, false},
		{"coincident uses +x", mgl32.Vec2{0, 0}, mgl32.Vec2{1.3, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := ResolveCollision(tt.pos, 0.3, o, o.Radius, testSlack)
			if moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v", moved, tt.wantMoved)
			}
			if !vec2Near(got, tt.want, 1e-5) {
				t.Errorf("pos = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCollisionDistanceBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	o := components.Obstacle{Pos: mgl32.Vec2{5, 5}, Radius: 1}
	const radius = 0.3

	for i := 0; i < 2000; i++ {
		pos := o.Pos.Add(RandomPointInDisk(rng, 2))
		got, _ := ResolveCollision(pos, radius, o, o.Radius, testSlack)
		if d := got.Sub(o.Pos).Len(); d < radius+o.Radius-testSlack-1e-5 {
			t.Fatalf("pos %v resolved to %v at distance %v, want >= %v", pos, got, d, radius+o.Radius-testSlack)
		}
	}
}

func TestResolveCollisionsModes(t *testing.T) {
	obstacles := []components.Obstacle{
		{Pos: mgl32.Vec2{0, 0}, Radius: 1, Seq: 0},
		{Pos: mgl32.Vec2{10, 0}, Radius: 2, Seq: 1},
	}
	pos := mgl32.Vec2{9, 0}

	tests := []struct {
		mode CollisionMode
		want mgl32.Vec2
	}{
		// pushed by the first obstacle's radius even though it hit the second
		{CollisionFirstObstacle, mgl32.Vec2{8.7, 0}},
		{CollisionOwnObstacle, mgl32.Vec2{7.7, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := ResolveCollisions(pos, 0.3, obstacles, tt.mode, testSlack)
			if !vec2Near(got, tt.want, 1e-5) {
				t.Errorf("ResolveCollisions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCollisionsNoObstacles(t *testing.T) {
	pos := mgl32.Vec2{3, 4}
	if got := ResolveCollisions(pos, 0.3, nil, CollisionFirstObstacle, testSlack); got != pos {
		t.Errorf("ResolveCollisions with no obstacles = %v, want %v", got, pos)
	}
}

func TestParseCollisionMode(t *testing.T) {
	tests := []struct {
		name    string
		want    CollisionMode
		wantErr bool
	}{
		{"", CollisionFirstObstacle, false},
		{"first_obstacle", CollisionFirstObstacle, false},
		{"own_obstacle", CollisionOwnObstacle, false},
		{"nearest", CollisionFirstObstacle, true},
	}

	for _, tt := range tests {
		got, err := ParseCollisionMode(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCollisionMode(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCollisionMode(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
