package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/apperror"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Export is a downloadable attachment: whole-table reads, no pagination.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	ExportCategories(ctx context.Context, format string) (*Export, error)
	ExportSources(ctx context.Context, format string) (*Export, error)
	// ExportMangas nests source, categories, stats and chapters-with-pages
	// in JSON; CSV carries flat summary columns only.
	ExportMangas(ctx context.Context, format string) (*Export, error)
}

type exportService struct {
	categories repository.CategoryRepository
	sources    repository.SourceRepository
	mangas     repository.MangaRepository
}

func NewExportService(
	categories repository.CategoryRepository,
	sources repository.SourceRepository,
	mangas repository.MangaRepository,
) ExportService {
	return &exportService{categories: categories, sources: sources, mangas: mangas}
}

func (s *exportService) ExportCategories(ctx context.Context, format string) (*Export, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON, "":
		return jsonExport("categories.json", categories)
	case FormatCSV:
		rows := [][]string{{"name", "slug", "createdAt"}}
		for _, c := range categories {
			rows = append(rows, []string{c.Name, c.Slug, c.CreatedAt.Format("2006-01-02")})
		}
		return csvExport("categories.csv", rows)
	default:
		return nil, apperror.Invalid(fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *exportService) ExportSources(ctx context.Context, format string) (*Export, error) {
	sources, err := s.sources.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON, "":
		return jsonExport("sources.json", sources)
	case FormatCSV:
		rows := [][]string{{"name", "baseUrl", "isActive", "createdAt"}}
		for _, src := range sources {
			rows = append(rows, []string{
				src.Name,
				src.BaseURL,
				strconv.FormatBool(src.IsActive),
				src.CreatedAt.Format("2006-01-02"),
			})
		}
		return csvExport("sources.csv", rows)
	default:
		return nil, apperror.Invalid(fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *exportService) ExportMangas(ctx context.Context, format string) (*Export, error) {
	mangas, err := s.mangas.FindAllFull(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON, "":
		return jsonExport("mangas_metadata.json", mangas)
	case FormatCSV:
		rows := [][]string{{"title", "slug", "author", "status", "ageRating", "isAdult", "chapters", "views"}}
		for _, m := range mangas {
			author := ""
			if m.Author != nil {
				author = *m.Author
			}
			views := int64(0)
			if m.Stat != nil {
				views = m.Stat.ViewsCount
			}
			rows = append(rows, []string{
				m.Title,
				m.Slug,
				author,
				string(m.Status),
				string(m.AgeRating),
				strconv.FormatBool(m.IsAdult),
				strconv.Itoa(len(m.Chapters)),
				strconv.FormatInt(views, 10),
			})
		}
		return csvExport("mangas_metadata.csv", rows)
	default:
		return nil, apperror.Invalid(fmt.Sprintf("unsupported export format %q", format))
	}
}

func jsonExport(fileName string, payload any) (*Export, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return &Export{FileName: fileName, ContentType: "application/json", Data: data}, nil
}

func csvExport(fileName string, rows [][]string) (*Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return &Export{FileName: fileName, ContentType: "text/csv", Data: buf.Bytes()}, nil
}
