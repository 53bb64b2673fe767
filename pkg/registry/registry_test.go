package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/dsl"
	"github.com/mengchil/visage/pkg/ports/tests"
	"github.com/mengchil/visage/pkg/registry"
)

func preset(id string) domain.Preset {
	return dsl.New(id).
		Channel(domain.PathEyeLeftOpenness, 1).
		Channel(domain.PathMouthCurve, 0).
		Color("#FFFFFF").
		MustBuild()
}

func TestRegistryContract(t *testing.T) {
	reg, err := registry.New(preset("calm"), preset("alert"))
	require.NoError(t, err)

	tests.RunPresetSourceContract(t, reg, []string{"alert", "calm"})
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := registry.New(preset("calm"), preset("calm"))
	require.ErrorIs(t, err, domain.ErrInvalidPreset)
}

func TestRegistryRejectsInvalidPreset(t *testing.T) {
	bad := preset("calm")
	bad.Color = "not-a-color"
	_, err := registry.New(bad)
	require.Error(t, err)
}

func TestRegistryIDsAreSortedCopies(t *testing.T) {
	reg, err := registry.New(preset("zen"), preset("alert"))
	require.NoError(t, err)

	ids := reg.IDs()
	assert.Equal(t, []string{"alert", "zen"}, ids)

	ids[0] = "mutated"
	assert.Equal(t, []string{"alert", "zen"}, reg.IDs())
}
