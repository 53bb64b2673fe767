package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/pkg/domain"
)

func TestBuilderBuildsValidPreset(t *testing.T) {
	p, err := New("happy").
		Label("Happy").
		Color("#FFFF00").
		Channel("eyes.left.openness", 0.8).
		Channel("eyes.right.openness", 0.8).
		Channel("gaze.x", 0).
		Channel("gaze.y", 0).
		Channel("mouth.x", 0).
		Channel("mouth.y", 0).
		Channel("mouth.curve", 8).
		Sine("mouth.curve", 1, 5).
		SharedJitter(2).
		Build()
	require.NoError(t, err)

	open, ok := p.Base.NumberAt(domain.PathEyeLeftOpenness)
	require.True(t, ok)
	assert.Equal(t, 0.8, open)

	rule := p.Motion["mouth"].Children["curve"].Rule
	require.NotNil(t, rule)
	assert.Equal(t, 1.0, rule.Freq)
	assert.Equal(t, 5.0, rule.Amp)

	amp, ok := p.Motion.SharedJitter()
	require.True(t, ok)
	assert.Equal(t, 2.0, amp)
}

func TestBuilderCollectsErrors(t *testing.T) {
	_, err := New("broken").
		Color("#FFFFFF").
		Channel("gaze", 1).
		Channel("gaze.x", 0).
		Build()
	assert.ErrorIs(t, err, domain.ErrInvalidPreset)
}

func TestBuilderRejectsRuleWithoutChannel(t *testing.T) {
	_, err := New("broken").
		Color("#FFFFFF").
		Channel("gaze.x", 0).
		Sine("mouth.curve", 1, 5).
		Build()
	assert.ErrorIs(t, err, domain.ErrInvalidPreset)
}

func TestBuildRegistry(t *testing.T) {
	reg, err := BuildRegistry(
		New("neutral").Color("#FFFFFF").Channel("gaze.x", 0),
		New("happy").Color("#FFFF00").Channel("gaze.x", 0),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy", "neutral"}, reg.IDs())
}
