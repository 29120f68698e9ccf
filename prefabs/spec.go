package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PhysicsSettings tunes movement and gravity for every controlled body.
type PhysicsSettings struct {
	InitialJumpSpeed float64 `yaml:"initial_jump_speed"`
	GravityPressed   float64 `yaml:"gravity_pressed"`
	GravityUnpressed float64 `yaml:"gravity_unpressed"`
	HorizontalSpeed  float64 `yaml:"horizontal_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	// SkinWidth is the gap left between a resolved body and the surface
	// it landed on.
	SkinWidth float64 `yaml:"skin_width"`
}

// DefaultPhysicsSettings is used when physics.yaml is missing.
func DefaultPhysicsSettings() PhysicsSettings {
	return PhysicsSettings{
		InitialJumpSpeed: 400,
		GravityPressed:   40,
		GravityUnpressed: 200,
		HorizontalSpeed:  200,
		MaxSpeed:         700,
		SkinWidth:        0.01,
	}
}

func LoadPhysicsSettings() (PhysicsSettings, error) {
	settings, err := LoadSpec[PhysicsSettings]("physics.yaml")
	if err != nil {
		return DefaultPhysicsSettings(), err
	}
	if settings.MaxSpeed <= 0 {
		return DefaultPhysicsSettings(), fmt.Errorf("prefabs: physics.yaml: max_speed must be positive, got %v", settings.MaxSpeed)
	}
	if settings.SkinWidth < 0 {
		return DefaultPhysicsSettings(), fmt.Errorf("prefabs: physics.yaml: skin_width must not be negative, got %v", settings.SkinWidth)
	}
	return settings, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RaySpec struct {
	Offset    VectorSpec `yaml:"offset"`
	Direction VectorSpec `yaml:"direction"`
}

// PlayerSpec describes the player's colliders and starting orientation.
type PlayerSpec struct {
	Name    string    `yaml:"name"`
	Box     BoxSpec   `yaml:"box"`
	Gravity string    `yaml:"gravity"`
	Rays    []RaySpec `yaml:"rays"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec[PlayerSpec]("player.yaml")
}

// ColliderSpec sizes the box of a static level entity.
type ColliderSpec struct {
	Name string  `yaml:"name"`
	Box  BoxSpec `yaml:"box"`
}

func LoadGoalSpec() (ColliderSpec, error) {
	return LoadSpec[ColliderSpec]("goal.yaml")
}
