package service

import (
	"testing"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanDelete(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("admin deletes anything", func(t *testing.T) {
		id := Identity{UserID: stranger, Role: model.RoleAdmin}
		assert.True(t, CanDelete(id, &owner))
		assert.True(t, CanDelete(id, nil))
	})

	t.Run("editor deletes own rows only", func(t *testing.T) {
		id := Identity{UserID: owner, Role: model.RoleEditor}
		assert.True(t, CanDelete(id, &owner))
		assert.False(t, CanDelete(id, &stranger))
		assert.False(t, CanDelete(id, nil))
	})

	t.Run("user deletes nothing", func(t *testing.T) {
		id := Identity{UserID: owner, Role: model.RoleUser}
		assert.False(t, CanDelete(id, &owner))
	})
}
