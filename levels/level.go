package levels

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoGoals     = errors.New("levels: level has no goals")
	ErrEmptyGround = errors.New("levels: ground has no area")
)

// DefaultBounds is the area a player may leave before dying.
var DefaultBounds = cp.BB{L: -100, B: -100, R: 800, T: 800}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Ground is a static box. Pos is its center and Dim its full size.
type Ground struct {
	Pos Vec `yaml:"pos"`
	Dim Vec `yaml:"dim"`
}

type Bounds struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// Level is one playable screen.
type Level struct {
	Name    string   `yaml:"name"`
	Spawn   Vec      `yaml:"spawn"`
	Gravity string   `yaml:"gravity,omitempty"`
	Bounds  *Bounds  `yaml:"bounds,omitempty"`
	Grounds []Ground `yaml:"grounds"`
	Goals   []Vec    `yaml:"goals"`
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if len(lvl.Goals) == 0 {
		return nil, ErrNoGoals
	}
	for i, g := range lvl.Grounds {
		if g.Dim.X <= 0 || g.Dim.Y <= 0 {
			return nil, fmt.Errorf("levels: ground %d: %w", i, ErrEmptyGround)
		}
	}
	if lvl.Gravity != "" {
		if _, ok := common.ParseDirection(lvl.Gravity); !ok {
			return nil, fmt.Errorf("levels: unknown gravity %q", lvl.Gravity)
		}
	}
	return &lvl, nil
}

// LoadLevel reads and parses a level by name.
func LoadLevel(name string) (*Level, error) {
	data, err := Read(name)
	if err != nil {
		return nil, err
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = NameOf(FileName(name))
	}
	return lvl, nil
}

// GravityDirection returns the starting gravity, Down when unset.
func (l *Level) GravityDirection() common.Direction {
	if l == nil || l.Gravity == "" {
		return common.Down
	}
	d, _ := common.ParseDirection(l.Gravity)
	return d
}

// WorldBounds returns the death bounds of the level.
func (l *Level) WorldBounds() cp.BB {
	if l == nil || l.Bounds == nil {
		return DefaultBounds
	}
	return cp.BB{L: l.Bounds.Min.X, B: l.Bounds.Min.Y, R: l.Bounds.Max.X, T: l.Bounds.Max.Y}
}
