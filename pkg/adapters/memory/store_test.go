package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports/tests"
)

func TestStoreContract(t *testing.T) {
	tests.RunStateStoreContract(t, NewStore())
}

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Save(ctx, "face", &domain.ExpressionRecord{
		ExpressionID: "happy",
		AppliedAt:    time.Now(),
	}))

	first, err := s.Load(ctx, "face")
	require.NoError(t, err)
	first.ExpressionID = "mangled"

	second, err := s.Load(ctx, "face")
	require.NoError(t, err)
	assert.Equal(t, "happy", second.ExpressionID)
}
