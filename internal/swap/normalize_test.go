package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvartis/swapsync/internal/models"
)

func TestNormalize_AbsentInput(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("null"), []byte("  \n ")} {
		info := Normalize(raw)
		require.NotNil(t, info)
		assert.NotNil(t, info.SwapEntries)
		assert.Empty(t, info.SwapEntries)
	}
}

func TestNormalize_CorruptInput(t *testing.T) {
	for _, raw := range [][]byte{
		[]byte("{not json"),
		[]byte(`"just a string"`),
		[]byte(`{"swapEntries": "oops"}`),
		[]byte(`[{"swapUUID": 12}]`),
	} {
		info := Normalize(raw)
		require.NotNil(t, info)
		assert.Empty(t, info.SwapEntries, "input %q", raw)
	}
}

func TestNormalize_WellFormed(t *testing.T) {
	raw := []byte(`{"swapEntries": [{"swapUUID": "abc", "swapStatus": "active", "isOldProject": true}]}`)

	info := Normalize(raw)
	require.Len(t, info.SwapEntries, 1)
	assert.Equal(t, "abc", info.SwapEntries[0].SwapUUID)
	assert.Equal(t, models.SwapActive, info.SwapEntries[0].SwapStatus)
	assert.True(t, info.SwapEntries[0].IsOldProject)
	assert.NotNil(t, info.SwapEntries[0].SwappedUsers)
}

func TestNormalize_LegacyBareArray(t *testing.T) {
	raw := []byte(`[{"swapUUID": "abc", "swapStatus": "cancelled", "cancelledBy": "admin", "cancelledAt": 100}]`)

	info := Normalize(raw)
	require.Len(t, info.SwapEntries, 1)
	assert.Equal(t, models.SwapCancelled, info.SwapEntries[0].SwapStatus)
}

func TestNormalizeInfo_DropsEntriesWithoutIdentity(t *testing.T) {
	info := NormalizeInfo(&models.SwapInfo{SwapEntries: []models.SwapEntry{
		{SwapUUID: "", SwapStatus: models.SwapActive},
		{SwapUUID: "keep", SwapStatus: models.SwapActive},
	}})

	require.Len(t, info.SwapEntries, 1)
	assert.Equal(t, "keep", info.SwapEntries[0].SwapUUID)
}

func TestNormalizeInfo_UnknownStatus(t *testing.T) {
	info := NormalizeInfo(&models.SwapInfo{SwapEntries: []models.SwapEntry{
		{SwapUUID: "a", SwapStatus: "bogus"},
		{SwapUUID: "b", SwapStatus: "bogus", CancelledBy: "admin", CancelledAt: 100},
	}})

	require.Len(t, info.SwapEntries, 2)
	// No cancellation trace: default active.
	assert.Equal(t, models.SwapActive, info.SwapEntries[0].SwapStatus)
	// A cancellation trace outranks the garbled status.
	assert.Equal(t, models.SwapCancelled, info.SwapEntries[1].SwapStatus)
}

func TestNormalizeInfo_Nil(t *testing.T) {
	info := NormalizeInfo(nil)
	require.NotNil(t, info)
	assert.Empty(t, info.SwapEntries)
}
