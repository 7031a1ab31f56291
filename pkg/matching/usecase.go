package matching

import (
	"context"
	"log"
	"math"

	"github.com/artem13815/jobfinder/pkg/cv"
	"github.com/artem13815/jobfinder/pkg/embedding"
	"github.com/artem13815/jobfinder/pkg/job"
	"github.com/artem13815/jobfinder/pkg/nlp"
	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

// UseCase — сценарии семантического матчинга CV с вакансиями.
type UseCase interface {
	MatchText(ctx context.Context, cvText string, topK int, minScore float64) ([]Match, error)
	MatchFile(ctx context.Context, filename string, data []byte, topK int, minScore float64) (string, []Match, error)
	Explain(ctx context.Context, cvText, jobReference string, topN int) (Explanation, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	enc      embedding.Encoder
	store    vectorstore.Store
	catalog  job.Repository // необязательный, nil допустим
	name     string
	defaultK int
}

// NewService собирает матчер. catalog может быть nil: тогда отображаемые
// поля берутся только из метаданных индекса.
func NewService(enc embedding.Encoder, store vectorstore.Store, catalog job.Repository, collection string, defaultK int) UseCase {
	if defaultK <= 0 {
		defaultK = 20
	}
	return &service{enc: enc, store: store, catalog: catalog, name: collection, defaultK: defaultK}
}

// minRankScore — нижняя граница ранговой оценки: последний результат
// выдачи никогда не опускается ниже неё.
const minRankScore = 0.1

// rankScore — каноническая формула релевантности. Оценка выводится из
// позиции в выдаче, а не из абсолютного расстояния: первый результат
// всегда 1.0, последний — minRankScore, между ними линейно.
func rankScore(rank, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return minRankScore + (1-minRankScore)*float64(total-rank)/float64(total-1)
}

func (s *service) MatchText(ctx context.Context, cvText string, topK int, minScore float64) ([]Match, error) {
	if topK <= 0 {
		topK = s.defaultK
	}
	cleaned := nlp.NormalizeCV(cvText)
	if cleaned == "" {
		return nil, cv.ErrNoTextExtracted
	}
	vec, err := s.enc.Encode(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	results, err := s.store.Query(ctx, vec, topK)
	if err != nil {
		return nil, err
	}
	// пустой индекс — валидный ответ, не ошибка
	matches := make([]Match, 0, len(results))
	total := len(results)
	for i, r := range results {
		score := rankScore(i+1, total)
		// фильтр по порогу применяется к оценке, не к сырому расстоянию
		if score < minScore {
			continue
		}
		matches = append(matches, s.assemble(ctx, r, i+1, score))
	}
	return matches, nil
}

func (s *service) MatchFile(ctx context.Context, filename string, data []byte, topK int, minScore float64) (string, []Match, error) {
	text, err := cv.Process(filename, data)
	if err != nil {
		return "", nil, err
	}
	matches, err := s.MatchText(ctx, text, topK, minScore)
	if err != nil {
		return "", nil, err
	}
	return text, matches, nil
}

// assemble собирает Match, предпочитая поля каталога метаданным индекса:
// каталог полнее, но они легитимно могут рассинхронизироваться, поэтому
// промах по каталогу не ошибка — берём метаданные, затем заглушки.
func (s *service) assemble(ctx context.Context, r vectorstore.QueryResult, rank int, score float64) Match {
	m := Match{
		JobReference:    r.Reference,
		JobTitle:        r.Metadata["name"],
		CompanyName:     r.Metadata["company_name"],
		City:            r.Metadata["city"],
		URL:             r.Metadata["url"],
		SimilarityScore: score,
		MatchPercentage: math.Round(score*1000) / 10,
		JobDescription:  truncate(r.Document, 200),
		Rank:            rank,
		Distance:        math.Round(r.Distance*10000) / 10000,
	}
	if s.catalog != nil {
		if j, err := s.catalog.GetByReference(ctx, r.Reference); err == nil {
			if j.Title != "" {
				m.JobTitle = j.Title
			}
			if j.CompanyName != "" {
				m.CompanyName = j.CompanyName
			}
			if j.City != "" {
				m.City = j.City
			}
			if j.URL != "" {
				m.URL = j.URL
			}
		} else if err != job.ErrNotFound {
			log.Printf("matching: catalog lookup %s: %v", r.Reference, err)
		}
	}
	if m.JobTitle == "" {
		m.JobTitle = "Unknown Title"
	}
	if m.CompanyName == "" {
		m.CompanyName = "Unknown Company"
	}
	if m.City == "" {
		m.City = "Unknown City"
	}
	return m
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalJobs: count, Collection: s.name}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
