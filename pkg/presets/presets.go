// Package presets ships the built-in expression catalog. Hosts with
// custom faces load their own catalog files instead; the engine treats
// both the same way.
package presets

import (
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/dsl"
	"github.com/mengchil/visage/pkg/registry"
)

// face seeds the canonical channel layout shared by every preset, so the
// interpolator always works on matching shapes.
func face(id string) *dsl.PresetBuilder {
	return dsl.New(id).
		Channel(domain.PathEyeLeftOpenness, 1).
		Channel(domain.PathEyeRightOpenness, 1).
		Channel(domain.PathGazeX, 0).
		Channel(domain.PathGazeY, 0).
		Channel(domain.PathMouthX, 0).
		Channel(domain.PathMouthY, 0).
		Channel(domain.PathMouthCurve, 0).
		Channel("mouth.width", 0.5)
}

// Default returns the built-in catalog.
func Default() []domain.Preset {
	return []domain.Preset{
		face("neutral").
			Label("Neutral").
			Color("#FFFFFF").
			MustBuild(),

		face("happy").
			Label("Happy").
			Color("#FFFF00").
			Channel(domain.PathEyeLeftOpenness, 0.8).
			Channel(domain.PathEyeRightOpenness, 0.8).
			Channel(domain.PathMouthCurve, 8).
			Channel("mouth.width", 0.7).
			Sine(domain.PathMouthCurve, 1, 5).
			SharedJitter(1.2).
			MustBuild(),

		face("sad").
			Label("Sad").
			Color("#5B8DEF").
			Channel(domain.PathEyeLeftOpenness, 0.55).
			Channel(domain.PathEyeRightOpenness, 0.55).
			Channel(domain.PathGazeY, -0.4).
			Channel(domain.PathMouthCurve, -6).
			Channel("mouth.width", 0.4).
			Sine(domain.PathGazeY, 0.2, 0.15).
			MustBuild(),

		face("angry").
			Label("Angry").
			Color("#FF4D4D").
			Channel(domain.PathEyeLeftOpenness, 0.7).
			Channel(domain.PathEyeRightOpenness, 0.7).
			Channel(domain.PathMouthCurve, -4).
			Channel("mouth.width", 0.6).
			Sine(domain.PathEyeLeftOpenness, 3, 0.03).
			Sine(domain.PathEyeRightOpenness, 3, 0.03).
			SharedJitter(1.8).
			MustBuild(),

		face("surprised").
			Label("Surprised").
			Color("#FFD166").
			Channel(domain.PathMouthCurve, 2).
			Channel("mouth.width", 0.9).
			Sine(domain.PathMouthCurve, 2, 1).
			MustBuild(),

		face("focused").
			Label("Focused").
			Color("#9B5DE5").
			Channel(domain.PathEyeLeftOpenness, 0.75).
			Channel(domain.PathEyeRightOpenness, 0.75).
			Channel(domain.PathMouthCurve, 1).
			Sine(domain.PathGazeX, 0.5, 0.1).
			MustBuild(),

		face("sleepy").
			Label("Sleepy").
			Color("#8899AA").
			Channel(domain.PathEyeLeftOpenness, 0.3).
			Channel(domain.PathEyeRightOpenness, 0.3).
			Channel("mouth.width", 0.45).
			Sine(domain.PathEyeLeftOpenness, 0.3, 0.05).
			Sine(domain.PathEyeRightOpenness, 0.3, 0.05).
			MustBuild(),
	}
}

// Registry builds a registry over the built-in catalog.
func Registry() (*registry.Registry, error) {
	return registry.New(Default()...)
}
