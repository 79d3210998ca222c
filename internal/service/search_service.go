package service

import (
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const mangaIndex = "mangas"

// SearchIndex mirrors the manga table into Meilisearch for the reader app.
// Indexing is best-effort: failures are logged and never propagate to the
// owning write.
type SearchIndex interface {
	IndexManga(manga *model.Manga)
	RemoveManga(id string)
}

type meiliSearchIndex struct {
	client meilisearch.ServiceManager
}

// NewSearchIndex returns a nil-safe index. A nil client yields a no-op
// implementation so the service runs without Meilisearch configured.
func NewSearchIndex(client meilisearch.ServiceManager) SearchIndex {
	s := &meiliSearchIndex{client: client}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *meiliSearchIndex) initIndex() {
	filterable := []any{"categories", "status", "is_adult", "is_hidden"}
	if _, err := s.client.Index(mangaIndex).UpdateFilterableAttributes(&filterable); err != nil {
		zap.L().Warn("failed to update manga filterable attributes", zap.Error(err))
	}

	sortable := []string{"updated_at", "title"}
	if _, err := s.client.Index(mangaIndex).UpdateSortableAttributes(&sortable); err != nil {
		zap.L().Warn("failed to update manga sortable attributes", zap.Error(err))
	}
}

type meiliMangaDoc struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Author     string   `json:"author"`
	Status     string   `json:"status"`
	Categories []string `json:"categories"`
	IsAdult    bool     `json:"is_adult"`
	IsHidden   bool     `json:"is_hidden"`
	UpdatedAt  int64    `json:"updated_at"`
}

func (s *meiliSearchIndex) IndexManga(manga *model.Manga) {
	if s.client == nil {
		return
	}

	doc := meiliMangaDoc{
		ID:        manga.ID.String(),
		Title:     manga.Title,
		Slug:      manga.Slug,
		Status:    string(manga.Status),
		IsAdult:   manga.IsAdult,
		IsHidden:  manga.IsHidden,
		UpdatedAt: manga.UpdatedAt.Unix(),
	}
	if manga.Author != nil {
		doc.Author = *manga.Author
	}
	for _, c := range manga.Categories {
		doc.Categories = append(doc.Categories, c.Slug)
	}

	primaryKey := "id"
	if _, err := s.client.Index(mangaIndex).AddDocuments([]meiliMangaDoc{doc}, &primaryKey); err != nil {
		zap.L().Warn("failed to index manga", zap.String("slug", manga.Slug), zap.Error(err))
	}
}

func (s *meiliSearchIndex) RemoveManga(id string) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(mangaIndex).DeleteDocument(id); err != nil {
		zap.L().Warn("failed to deindex manga", zap.String("id", id), zap.Error(err))
	}
}
