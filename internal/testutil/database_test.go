package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
)

func TestSetupTestDB_Seeded(t *testing.T) {
	db := SetupTestDB(t, BasicSnapshot())

	got, err := db.Storage.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Items, 6)
	assert.Len(t, got.Classifications, 2)
	assert.Equal(t, "مكيف", got.Items[0].Name)
}

func TestSetupTestDB_Empty(t *testing.T) {
	db := SetupTestDB(t, nil)

	_, err := db.Storage.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
}

func TestCatalogBuilder_Rules(t *testing.T) {
	snap := NewCatalogBuilder().
		WithItem("كتب", 50, "", "").
		WithRule("كتب", 0).
		WithRule("ورق", -1).
		Build()

	require.Len(t, snap.Rules, 2)
	require.NotNil(t, snap.Rules[0].Rate)
	assert.Equal(t, 0.0, *snap.Rules[0].Rate)
	assert.Nil(t, snap.Rules[1].Rate)
	assert.NoError(t, snap.Validate())
}
