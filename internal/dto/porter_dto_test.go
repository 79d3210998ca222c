package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRefUnmarshalBareShape(t *testing.T) {
	var ref CategoryRef
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Action","slug":"action"}`), &ref))

	assert.Equal(t, "Action", ref.Name)
	assert.Equal(t, "action", ref.Slug)
}

func TestCategoryRefUnmarshalJoinRowWrapper(t *testing.T) {
	var ref CategoryRef
	require.NoError(t, json.Unmarshal([]byte(`{"category":{"name":"Drama","slug":"drama"}}`), &ref))

	assert.Equal(t, "Drama", ref.Name)
	assert.Equal(t, "drama", ref.Slug)
}

func TestCategoryRefUnmarshalInsideMangaImport(t *testing.T) {
	payload := `{
		"title": "Berserk",
		"slug": "berserk",
		"categories": [
			{"category": {"name": "Seinen", "slug": "seinen"}},
			{"name": "Dark Fantasy", "slug": "dark-fantasy"}
		]
	}`

	var item MangaImport
	require.NoError(t, json.Unmarshal([]byte(payload), &item))

	require.Len(t, item.Categories, 2)
	assert.Equal(t, "seinen", item.Categories[0].Slug)
	assert.Equal(t, "dark-fantasy", item.Categories[1].Slug)
}

func TestImportSummaryTally(t *testing.T) {
	var s ImportSummary
	s.RecordCreated("a")
	s.RecordCreated("b")
	s.RecordUpdated("c")
	s.RecordError("d", errors.New("boom"))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Created)
	assert.Equal(t, 1, s.Updated)
	assert.Equal(t, 1, s.Errors)

	require.Len(t, s.Results, 4)
	assert.Equal(t, "created", s.Results[0].Action)
	assert.Equal(t, "error", s.Results[3].Action)
	assert.Equal(t, "boom", s.Results[3].Error)
}
