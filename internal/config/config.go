// Package config provides YAML-based tuning for the slingshot game and the
// difficulty presets layered on top of it.
package config

import "time"

// SlingshotConfig contains all tuning for Super Mad Flying Creatures.
type SlingshotConfig struct {
	World       WorldConfig      `yaml:"world"`
	Projectile  ProjectileConfig `yaml:"projectile"`
	Target      TargetConfig     `yaml:"target"`
	Box         BoxConfig        `yaml:"box"`
	Editor      EditorConfig     `yaml:"editor"`
	Transitions TransitionConfig `yaml:"transitions"`
}

// WorldConfig defines the physics world and its boundaries.
type WorldConfig struct {
	Scale              float64 `yaml:"scale"` // editor pixels per meter
	GravityX           float64 `yaml:"gravity_x"`
	GravityY           float64 `yaml:"gravity_y"`
	TimeStep           float64 `yaml:"time_step"` // seconds per tick
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	GroundHalfWidth    float64 `yaml:"ground_half_width"`
	GroundFriction     float64 `yaml:"ground_friction"`
	OutRightX          float64 `yaml:"out_right_x"` // projectile respawns past this x
	OutLowY            float64 `yaml:"out_low_y"`   // projectile respawns below this y
}

// Material holds fixture and body parameters shared by a kind of body.
type Material struct {
	Density        float64 `yaml:"density"`
	Friction       float64 `yaml:"friction"`
	Restitution    float64 `yaml:"restitution"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
}

// ProjectileConfig defines the bird and the launch gesture.
type ProjectileConfig struct {
	Radius           float64  `yaml:"radius"`
	Material         Material `yaml:"material"`
	PerLevel         int      `yaml:"per_level"`
	LaunchMultiplier float64  `yaml:"launch_multiplier"`
	GrabRadius       float64  `yaml:"grab_radius"`
	StopSpeed        float64  `yaml:"stop_speed"`
	StopAngularSpeed float64  `yaml:"stop_angular_speed"`
	IdleSeconds      float64  `yaml:"idle_seconds"`
	MaxFlightSeconds float64  `yaml:"max_flight_seconds"`
	DefaultLaunchX   float64  `yaml:"default_launch_x"`
	DefaultLaunchY   float64  `yaml:"default_launch_y"`
}

// TargetConfig defines the destructible pigs.
type TargetConfig struct {
	Radius         float64  `yaml:"radius"`
	Material       Material `yaml:"material"`
	DestroyImpulse float64  `yaml:"destroy_impulse"` // normal impulse above which a target breaks
	Points         int      `yaml:"points"`
}

// BoxConfig defines the level blocks.
type BoxConfig struct {
	Material Material `yaml:"material"`
	Static   bool     `yaml:"static"`
}

// EditorConfig mirrors the level editor's canvas conventions.
type EditorConfig struct {
	BaseHeight float64 `yaml:"base_height"` // minimum canvas height levels are flipped around
}

// TransitionConfig defines delayed level transitions and notices.
type TransitionConfig struct {
	CompleteDelay  time.Duration `yaml:"complete_delay"`
	DefeatDelay    time.Duration `yaml:"defeat_delay"`
	NoticeDuration time.Duration `yaml:"notice_duration"`
}
