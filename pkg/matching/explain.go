package matching

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/artem13815/jobfinder/pkg/nlp"
)

// neutralThreshold — вклад меньше этой величины по модулю считается шумом.
const neutralThreshold = 0.001

// harmfulLimit — сколько самых вредных слов попадает в отчёт.
const harmfulLimit = 5

// Explain измеряет вклад каждого слова CV в матч с вакансией методом
// leave-one-word-out: слово убирается, текст заново эмбеддится, сдвиг
// расстояния до вектора вакансии и есть важность слова.
//
// Пертурбированный текст собирается из уже отфильтрованных токенов без
// повторного прохода очистки: второе срезание стоп-слов исказило бы
// атрибуцию удаляемого слова.
func (s *service) Explain(ctx context.Context, cvText, jobReference string, topN int) (Explanation, error) {
	if topN <= 0 {
		topN = 10
	}
	// вакансия ищется до любых эмбеддингов
	recs, err := s.store.Get(ctx, []string{jobReference})
	if err != nil {
		return Explanation{}, err
	}
	if len(recs) == 0 || len(recs[0].Embedding) == 0 {
		return Explanation{}, ErrJobNotFound
	}
	jobRec := recs[0]

	cleaned := nlp.NormalizeCV(cvText)
	baseVec, err := s.enc.Encode(ctx, cleaned)
	if err != nil {
		return Explanation{}, err
	}
	baseline := euclidean(baseVec, jobRec.Embedding)

	tokens := nlp.Tokens(cvText)
	words := make([]WordImportance, 0, len(tokens))
	for i, tok := range tokens {
		perturbed := joinWithout(tokens, i)
		vec, err := s.enc.Encode(ctx, perturbed)
		if err != nil {
			return Explanation{}, err
		}
		modified := euclidean(vec, jobRec.Embedding)
		words = append(words, WordImportance{
			Word:             tok,
			Importance:       modified - baseline,
			BaselineDistance: baseline,
			ModifiedDistance: modified,
		})
	}

	sort.SliceStable(words, func(i, j int) bool { return words[i].Importance > words[j].Importance })

	exp := Explanation{
		JobReference:       jobReference,
		JobTitle:           jobRec.Metadata["name"],
		BaselineDistance:   baseline,
		BaselineSimilarity: math.Max(0, 1-baseline/2),
		TotalWords:         len(words),
	}
	for _, w := range words {
		switch {
		case w.Importance > 0:
			exp.HelpfulWords++
			if len(exp.TopPositiveWords) < topN {
				exp.TopPositiveWords = append(exp.TopPositiveWords, w)
			}
		case w.Importance < -neutralThreshold:
			exp.HarmfulWords++
		}
		if math.Abs(w.Importance) < neutralThreshold {
			exp.NeutralWords++
		}
	}
	// самые вредные — с конца отсортированного списка
	for i := len(words) - 1; i >= 0 && len(exp.TopNegativeWords) < harmfulLimit; i-- {
		if words[i].Importance < 0 {
			exp.TopNegativeWords = append(exp.TopNegativeWords, words[i])
		}
	}
	return exp, nil
}

func joinWithout(tokens []string, skip int) string {
	parts := make([]string, 0, len(tokens)-1)
	for i, t := range tokens {
		if i != skip {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func euclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
