package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wellness-admin/internal/domain/entity"
)

func id(v int64) *int64 { return &v }

func TestBuildCategoryTree_UnNivel(t *testing.T) {
	flat := []entity.Category{
		{ID: 1, Name: "Frutas"},
		{ID: 2, Name: "Cítricos", ParentID: id(1)},
		{ID: 3, Name: "Verduras"},
		{ID: 4, Name: "Bayas", ParentID: id(1)},
	}
	roots, err := entity.BuildCategoryTree(flat)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Len(t, roots[0].Children, 2)
	assert.Empty(t, roots[1].Children)
	assert.NoError(t, entity.ValidateCategoryTree(roots))
}

func TestBuildCategoryTree_NietoRechazado(t *testing.T) {
	flat := []entity.Category{
		{ID: 1, Name: "Frutas"},
		{ID: 2, Name: "Cítricos", ParentID: id(1)},
		{ID: 5, Name: "Limas", ParentID: id(2)},
	}
	_, err := entity.BuildCategoryTree(flat)
	assert.Error(t, err, "un hijo no puede ser padre")
}

func TestValidateCategoryTree_Violaciones(t *testing.T) {
	deep := []entity.Category{{
		ID: 1,
		Children: []entity.Category{{
			ID: 2, ParentID: id(1),
			Children: []entity.Category{{ID: 3, ParentID: id(2)}},
		}},
	}}
	assert.Error(t, entity.ValidateCategoryTree(deep))

	wrongParent := []entity.Category{{ID: 1, Children: []entity.Category{{ID: 2, ParentID: id(9)}}}}
	assert.Error(t, entity.ValidateCategoryTree(wrongParent))

	rootWithParent := []entity.Category{{ID: 1, ParentID: id(7)}}
	assert.Error(t, entity.ValidateCategoryTree(rootWithParent))
}

func TestFoodCategory_JSONPromueveCampos(t *testing.T) {
	raw := `{"id":7,"name":"Lácteos","slug":"lacteos","parent_id":null,"description":"x","actions":{"editable":true,"deletable":false}}`
	var fc entity.FoodCategory
	require.NoError(t, json.Unmarshal([]byte(raw), &fc))
	assert.Equal(t, int64(7), fc.ID)
	assert.True(t, fc.IsRoot())
	assert.True(t, fc.Actions.Editable)
	assert.Equal(t, "x", fc.Description)
}
