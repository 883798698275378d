package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvartis/swapsync/internal/models"
)

func TestMergeSwappedUsers_Idempotent(t *testing.T) {
	users := []models.SwapUserEntry{
		{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 1000, Executed: true, SwapCompletedAt: 1500},
		{UserToSwap: "bob", CreatedAt: 2000, UpdatedAt: 2000},
	}

	merged := MergeSwappedUsers(users, users)
	assert.ElementsMatch(t, users, merged)
}

func TestMergeSwappedUsers_Commutative(t *testing.T) {
	a := []models.SwapUserEntry{
		{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 1000},
	}
	b := []models.SwapUserEntry{
		{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 3000, Executed: true},
		{UserToSwap: "bob", CreatedAt: 2000, UpdatedAt: 2000},
	}

	ab := MergeSwappedUsers(a, b)
	ba := MergeSwappedUsers(b, a)
	assert.ElementsMatch(t, ab, ba)
}

func TestMergeSwappedUsers_CompositeKeyDistinction(t *testing.T) {
	// Same user, different createdAt: a re-swap after reset is a distinct
	// event, never folded into the earlier record.
	a := []models.SwapUserEntry{{UserToSwap: "u", CreatedAt: 1000, UpdatedAt: 1000}}
	b := []models.SwapUserEntry{{UserToSwap: "u", CreatedAt: 2000, UpdatedAt: 2000}}

	merged := MergeSwappedUsers(a, b)
	require.Len(t, merged, 2)
	assert.Equal(t, int64(1000), merged[0].CreatedAt)
	assert.Equal(t, int64(2000), merged[1].CreatedAt)
}

func TestMergeSwappedUsers_NewerUpdateWins(t *testing.T) {
	a := []models.SwapUserEntry{{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 5000, Executed: true}}
	b := []models.SwapUserEntry{{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 2000}}

	merged := MergeSwappedUsers(a, b)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Executed)
	assert.Equal(t, int64(5000), merged[0].UpdatedAt)
}

func TestMergeSwappedUsers_TiePrefersSecond(t *testing.T) {
	a := []models.SwapUserEntry{{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 2000}}
	b := []models.SwapUserEntry{{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 2000, Executed: true}}

	merged := MergeSwappedUsers(a, b)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Executed)
}

func TestMergeSwappedUsers_EmptySideDropsNothing(t *testing.T) {
	users := []models.SwapUserEntry{
		{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 1000},
		{UserToSwap: "bob", CreatedAt: 2000, UpdatedAt: 2000},
	}

	assert.ElementsMatch(t, users, MergeSwappedUsers(users, nil))
	assert.ElementsMatch(t, users, MergeSwappedUsers(nil, users))
	assert.Empty(t, MergeSwappedUsers(nil, nil))
}

func TestMergeSwappedUsers_DeterministicOrder(t *testing.T) {
	a := []models.SwapUserEntry{
		{UserToSwap: "carol", CreatedAt: 3000, UpdatedAt: 3000},
		{UserToSwap: "alice", CreatedAt: 2000, UpdatedAt: 2000},
	}
	b := []models.SwapUserEntry{
		{UserToSwap: "alice", CreatedAt: 1000, UpdatedAt: 1000},
	}

	merged := MergeSwappedUsers(a, b)
	require.Len(t, merged, 3)
	assert.Equal(t, "alice", merged[0].UserToSwap)
	assert.Equal(t, int64(1000), merged[0].CreatedAt)
	assert.Equal(t, "alice", merged[1].UserToSwap)
	assert.Equal(t, int64(2000), merged[1].CreatedAt)
	assert.Equal(t, "carol", merged[2].UserToSwap)
}
