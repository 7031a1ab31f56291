package job

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/artem13815/jobfinder/pkg/embedding"
	"github.com/artem13815/jobfinder/pkg/nlp"
	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

// EmbeddingText склеивает значимые поля вакансии и прогоняет их через
// очистку текста вакансий. Пустой результат означает, что вакансию
// нечем эмбеддить.
func EmbeddingText(j Job) string {
	parts := make([]string, 0, 8)
	for _, p := range []string{
		j.Title, j.CompanyName, j.City, j.Country,
		j.Skills, j.Profile, j.Description,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return nlp.NormalizeJob(strings.Join(parts, " "))
}

// IngestReport — итог пакетной загрузки.
type IngestReport struct {
	Ingested int `json:"ingested"`
	Failed   int `json:"failed"`
}

// IngestUseCase — пакетная загрузка вакансий: эмбеддинг + upsert в индекс
// и каталог. Загрузка не транзакционна: успешные записи сохраняются,
// количество неудачных попадает в отчёт.
type IngestUseCase interface {
	Ingest(ctx context.Context, jobs []Job) (IngestReport, error)
}

type ingestService struct {
	enc   embedding.Encoder
	store vectorstore.Store
	repo  Repository
}

func NewIngestService(enc embedding.Encoder, store vectorstore.Store, repo Repository) IngestUseCase {
	return &ingestService{enc: enc, store: store, repo: repo}
}

func (s *ingestService) Ingest(ctx context.Context, jobs []Job) (IngestReport, error) {
	var report IngestReport
	records := make([]vectorstore.Record, 0, len(jobs))
	accepted := make([]Job, 0, len(jobs))

	for _, j := range jobs {
		if strings.TrimSpace(j.Reference) == "" {
			report.Failed++
			continue
		}
		text := EmbeddingText(j)
		if text == "" {
			log.Printf("ingest: job %s has no embeddable text, skipping", j.Reference)
			report.Failed++
			continue
		}
		vec, err := s.enc.Encode(ctx, text)
		if err != nil {
			// недоступная модель фатальна для всей пачки
			if errors.Is(err, embedding.ErrModelUnavailable) {
				return report, err
			}
			log.Printf("ingest: embed job %s: %v", j.Reference, err)
			report.Failed++
			continue
		}
		records = append(records, vectorstore.Record{
			Reference: j.Reference,
			Embedding: vec,
			Document:  text,
			Metadata:  j.Metadata(),
		})
		accepted = append(accepted, j)
	}

	if len(records) > 0 {
		// ошибки записи в индекс не глотаются
		if err := s.store.Upsert(ctx, records); err != nil {
			return report, err
		}
		if s.repo != nil {
			if err := s.repo.UpsertBatch(ctx, accepted); err != nil {
				return report, err
			}
		}
	}
	report.Ingested = len(records)
	return report, nil
}
