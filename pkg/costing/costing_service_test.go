package costing

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type grilledChicken struct {
	item    *entities.MenuItem
	chicken *entities.Ingredient
	oil     *entities.Ingredient
}

func seedGrilledChicken(t *testing.T, db *gorm.DB) grilledChicken {
	item := dbtest.MenuItem(t, db, "Grilled Chicken", "15.99", "0", nil)
	chicken := dbtest.Ingredient(t, db, "Chicken", "10", "2", "5.50")
	oil := dbtest.Ingredient(t, db, "Oil", "5", "1", "8.00")
	dbtest.Recipe(t, db, item, chicken, "0.3")
	dbtest.Recipe(t, db, item, oil, "0.05")
	return grilledChicken{item: item, chicken: chicken, oil: oil}
}

func newService(db *gorm.DB, policy domain.ReferencePolicy) CostingService {
	return NewCostingService(NewCostingRepository(db), policy, logger.Discard())
}

func TestCalculateMenuItemCost(t *testing.T) {
	db := dbtest.New(t)
	fx := seedGrilledChicken(t, db)
	svc := newService(db, domain.PolicyLenient)
	ctx := context.Background()

	cost, err := svc.CalculateMenuItemCost(ctx, fx.item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2.05", cost.StringFixed(2))

	analysis, err := svc.GetMenuItemCostAnalysis(ctx, fx.item.ID.String())
	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Equal(t, "13.94", analysis.Margin.StringFixed(2))
	assert.Equal(t, "87.18", analysis.MarginPercent.StringFixed(2))
	assert.Len(t, analysis.Ingredients, 2)
}

func TestCalculateMenuItemCostWithoutRecipes(t *testing.T) {
	db := dbtest.New(t)
	item := dbtest.MenuItem(t, db, "Water", "1.50", "0", nil)
	svc := newService(db, domain.PolicyLenient)

	cost, err := svc.CalculateMenuItemCost(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestCalculateMenuItemCostUnknownItem(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db, domain.PolicyLenient)
	ctx := context.Background()

	_, err := svc.CalculateMenuItemCost(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	analysis, err := svc.GetMenuItemCostAnalysis(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestUpdateMenuItemCostTracksIngredientPrice(t *testing.T) {
	db := dbtest.New(t)
	fx := seedGrilledChicken(t, db)
	svc := newService(db, domain.PolicyLenient)
	ctx := context.Background()

	cost, err := svc.UpdateMenuItemCost(ctx, fx.item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2.0500", cost.StringFixed(4))

	// chicken goes from 5.50 to 6.50: plate cost rises by 1.00 x 0.3
	require.NoError(t, db.Model(fx.chicken).Update("cost_per_unit", dbtest.Dec(t, "6.50")).Error)

	updated, err := svc.UpdateMenuItemCost(ctx, fx.item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "0.30", updated.Sub(cost).StringFixed(2))

	var stored entities.MenuItem
	require.NoError(t, db.First(&stored, "id = ?", fx.item.ID).Error)
	assert.Equal(t, "2.3500", stored.Cost.StringFixed(4))
}

func TestUpdateAllMenuItemCosts(t *testing.T) {
	db := dbtest.New(t)
	fx := seedGrilledChicken(t, db)
	dbtest.MenuItem(t, db, "Water", "1.50", "9.99", nil)
	svc := newService(db, domain.PolicyLenient)

	n, err := svc.UpdateAllMenuItemCosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var items []entities.MenuItem
	require.NoError(t, db.Order("name").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, fx.item.ID, items[0].ID)
	assert.Equal(t, "2.05", items[0].Cost.StringFixed(2))
	assert.True(t, items[1].Cost.IsZero())
}

func TestMissingIngredientPolicy(t *testing.T) {
	db := dbtest.New(t)
	fx := seedGrilledChicken(t, db)
	require.NoError(t, db.Delete(fx.oil).Error)
	ctx := context.Background()

	t.Run("lenient skips", func(t *testing.T) {
		cost, err := newService(db, domain.PolicyLenient).CalculateMenuItemCost(ctx, fx.item.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "1.65", cost.StringFixed(2))
	})

	t.Run("strict fails", func(t *testing.T) {
		_, err := newService(db, domain.PolicyStrict).UpdateMenuItemCost(ctx, fx.item.ID.String())
		assert.ErrorIs(t, err, domain.ErrMissingReference)
		assert.Equal(t, domain.KindPartialFailure, domain.KindOf(err))

		var stored entities.MenuItem
		require.NoError(t, db.First(&stored, "id = ?", fx.item.ID).Error)
		assert.True(t, stored.Cost.IsZero())
	})
}
