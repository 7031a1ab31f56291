package job

import (
	"context"
	"errors"
	"time"
)

// Job описывает вакансию из внешнего API вакансий.
// Поле Title в исходном payload называется "name"; алиас разрешается
// только на границе сериализации, внутри домена имя одно.
type Job struct {
	Reference       string    `json:"reference"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"companyName"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Remote          string    `json:"remote,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	EducationLevel  string    `json:"educationLevel,omitempty"`
	PublicationDate time.Time `json:"publicationDate,omitempty"`
	URL             string    `json:"url,omitempty"`
	LogoURL         string    `json:"logoUrl,omitempty"`
	Provider        string    `json:"provider,omitempty"`
	Description     string    `json:"description,omitempty"`
	Profile         string    `json:"profile,omitempty"`
	Skills          string    `json:"skills,omitempty"`
}

// ErrNotFound — вакансия с таким reference не найдена в каталоге.
var ErrNotFound = errors.New("job not found")

// Repository — порт каталога вакансий. Каталог — необязательный
// коллаборатор матчинга: он полнее метаданных индекса, но может отставать.
type Repository interface {
	UpsertBatch(ctx context.Context, jobs []Job) error
	GetByReference(ctx context.Context, reference string) (Job, error)
	ListAll(ctx context.Context, limit, offset int) ([]Job, error)
}

// Metadata собирает денормализованные поля для векторного индекса.
// Ключи повторяют payload внешнего API ("name" — заголовок).
func (j Job) Metadata() map[string]string {
	m := map[string]string{
		"reference":    j.Reference,
		"name":         j.Title,
		"company_name": j.CompanyName,
		"city":         j.City,
		"country":      j.Country,
	}
	if j.Remote != "" {
		m["remote"] = j.Remote
	}
	if j.Salary != "" {
		m["salary"] = j.Salary
	}
	if !j.PublicationDate.IsZero() {
		m["publication_date"] = j.PublicationDate.UTC().Format(time.RFC3339)
	}
	if j.URL != "" {
		m["url"] = j.URL
	}
	if j.Provider != "" {
		m["provider"] = j.Provider
	}
	return m
}
