package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totok22/quicksales-backend/models"
)

func testCategory(id, name string, sortOrder int) models.Category {
	now := time.Now()
	return models.Category{
		ID:        id,
		Name:      name,
		Path:      name,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveCategoryInsertsThenUpdates(t *testing.T) {
	s := newTestStore(t)

	c := testCategory("cat1", "保养", 0)
	require.NoError(t, s.SaveCategory(&c))

	c.Name = "保养服务"
	require.NoError(t, s.SaveCategory(&c))

	saved, err := s.GetCategoryByID("cat1")
	require.NoError(t, err)
	assert.Equal(t, "保养服务", saved.Name)

	all, err := s.GetAllCategories()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetAllCategoriesOrdersBySortThenName(t *testing.T) {
	s := newTestStore(t)

	for _, c := range []models.Category{
		testCategory("c3", "配件", 1),
		testCategory("c1", "保养", 0),
		testCategory("c2", "服务", 1),
	} {
		cat := c
		require.NoError(t, s.SaveCategory(&cat))
	}

	all, err := s.GetAllCategories()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].ID)
	assert.Equal(t, "c2", all[1].ID)
	assert.Equal(t, "c3", all[2].ID)
}

func TestSaveCategoriesBatchUpserts(t *testing.T) {
	s := newTestStore(t)

	existing := testCategory("cat1", "保养", 0)
	require.NoError(t, s.SaveCategory(&existing))

	batch := []models.Category{
		testCategory("cat1", "保养改", 5),
		testCategory("cat2", "配件", 1),
	}
	require.NoError(t, s.SaveCategoriesBatch(batch))

	all, err := s.GetAllCategories()
	require.NoError(t, err)
	require.Len(t, all, 2)

	updated, err := s.GetCategoryByID("cat1")
	require.NoError(t, err)
	assert.Equal(t, "保养改", updated.Name)
	assert.Equal(t, 5, updated.SortOrder)
}

func TestDeleteCategoryKeepsProducts(t *testing.T) {
	s := newTestStore(t)

	c := testCategory("cat1", "保养", 0)
	require.NoError(t, s.SaveCategory(&c))

	product := models.Product{ID: "p1", Name: "机油", Unit: "瓶", Price: 100, CategoryID: "cat1"}
	require.NoError(t, s.InsertProduct(&product))

	require.NoError(t, s.DeleteCategory("cat1"))

	_, err := s.GetCategoryByID("cat1")
	assert.True(t, IsNotFound(err))

	kept, err := s.GetProductByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "cat1", kept.CategoryID)
}
