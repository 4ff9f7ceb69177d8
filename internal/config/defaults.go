package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/slingshot.yaml
var defaultSlingshotYAML []byte

// DefaultSlingshotConfig returns the default slingshot configuration.
func DefaultSlingshotConfig() SlingshotConfig {
	return SlingshotConfig{
		World: WorldConfig{
			Scale:              30,
			GravityX:           0,
			GravityY:           -10,
			TimeStep:           1.0 / 60.0,
			VelocityIterations: 8,
			PositionIterations: 3,
			GroundHalfWidth:    50,
			GroundFriction:     0.8,
			OutRightX:          50,
			OutLowY:            -10,
		},
		Projectile: ProjectileConfig{
			Radius: 0.5,
			Material: Material{
				Density:        0.5,
				Friction:       0.6,
				Restitution:    0.4,
				LinearDamping:  0.35,
				AngularDamping: 0.35,
			},
			PerLevel:         3,
			LaunchMultiplier: 5,
			GrabRadius:       1.0,
			StopSpeed:        0.15,
			StopAngularSpeed: 0.25,
			IdleSeconds:      1.0,
			MaxFlightSeconds: 10.0,
			DefaultLaunchX:   5,
			DefaultLaunchY:   5,
		},
		Target: TargetConfig{
			Radius: 0.3,
			Material: Material{
				Density:     0.5,
				Friction:    0.5,
				Restitution: 0.1,
			},
			DestroyImpulse: 1.0,
			Points:         100,
		},
		Box: BoxConfig{
			Material: Material{
				Density:     1.0,
				Friction:    0.5,
				Restitution: 0.1,
			},
		},
		Editor: EditorConfig{
			BaseHeight: 600,
		},
		Transitions: TransitionConfig{
			CompleteDelay:  500 * time.Millisecond,
			DefeatDelay:    500 * time.Millisecond,
			NoticeDuration: 1500 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
// Used by `slingshot config` to print a starting point for overrides.
func DefaultYAML() []byte {
	return defaultSlingshotYAML
}
