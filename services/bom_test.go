package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMaterials(t *testing.T) {
	db := setupTestDB(t)
	deterjen := createTestMaterial(t, db, "Deterjen", "5000", "1000")
	pewangi := createTestMaterial(t, db, "Pewangi", "300", "100")

	cuciKering := createTestService(t, db, "Cuci Kering", "8000", true)
	addRecipeRow(t, db, cuciKering.ID, deterjen.ID, "50")

	cuciSetrika := createTestService(t, db, "Cuci Setrika", "10000", true)
	addRecipeRow(t, db, cuciSetrika.ID, deterjen.ID, "50")
	addRecipeRow(t, db, cuciSetrika.ID, pewangi.ID, "30")

	setrikaOnly := createTestService(t, db, "Setrika", "5000", false)

	t.Run("single service", func(t *testing.T) {
		required, err := ResolveMaterials(db, []ServiceQuantity{
			{ServiceID: cuciKering.ID, Qty: dec(t, "10")},
		})
		require.NoError(t, err)
		require.Len(t, required, 1)
		assert.True(t, dec(t, "500").Equal(required[deterjen.ID]))
	})

	t.Run("shared material sums across lines", func(t *testing.T) {
		required, err := ResolveMaterials(db, []ServiceQuantity{
			{ServiceID: cuciKering.ID, Qty: dec(t, "4")},
			{ServiceID: cuciSetrika.ID, Qty: dec(t, "6")},
		})
		require.NoError(t, err)
		require.Len(t, required, 2)
		assert.True(t, dec(t, "500").Equal(required[deterjen.ID]), "50*4 + 50*6")
		assert.True(t, dec(t, "180").Equal(required[pewangi.ID]), "30*6")
	})

	t.Run("fractional quantity", func(t *testing.T) {
		required, err := ResolveMaterials(db, []ServiceQuantity{
			{ServiceID: cuciKering.ID, Qty: dec(t, "2.5")},
		})
		require.NoError(t, err)
		assert.True(t, dec(t, "125").Equal(required[deterjen.ID]))
	})

	t.Run("service without recipe contributes nothing", func(t *testing.T) {
		required, err := ResolveMaterials(db, []ServiceQuantity{
			{ServiceID: setrikaOnly.ID, Qty: dec(t, "12")},
		})
		require.NoError(t, err)
		assert.Empty(t, required)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := ResolveMaterials(db, []ServiceQuantity{
			{ServiceID: 9999, Qty: dec(t, "1")},
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("no lines", func(t *testing.T) {
		required, err := ResolveMaterials(db, nil)
		require.NoError(t, err)
		assert.Empty(t, required)
	})
}
