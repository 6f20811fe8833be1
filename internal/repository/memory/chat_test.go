package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepo(t *testing.T) {
	repo := NewChatRepo()
	ctx := context.Background()

	ids, err := repo.ListChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []int64{42, 7, 42, 100} {
		require.NoError(t, repo.Register(ctx, id))
	}

	ids, err = repo.ListChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 42, 100}, ids)
}
