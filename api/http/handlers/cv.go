package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobfinder/api/http/presenter"
	"github.com/artem13815/jobfinder/pkg/cv"
	"github.com/artem13815/jobfinder/pkg/embedding"
	"github.com/artem13815/jobfinder/pkg/matching"
	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

type CVHandler struct {
	matcher matching.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes    int64
	defTopK     int
	defMinScore float64
}

func NewCVHandler(matcher matching.UseCase, defTopK int, defMinScore float64) *CVHandler {
	return &CVHandler{matcher: matcher, maxBytes: 15 << 20, defTopK: defTopK, defMinScore: defMinScore} // 15MB
}

// Upload принимает файл резюме, извлекает текст и возвращает подходящие
// вакансии с оценками релевантности.
// @Summary Загрузка CV и подбор вакансий
// @Description Принимает файл CV (PDF, DOCX или TXT), извлекает текст и ищет семантически близкие вакансии.
// @Tags    CV
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл CV (PDF, DOCX или TXT)"
// @Param   top_k formData int false "Сколько вакансий вернуть"
// @Param   min_score formData number false "Минимальная оценка релевантности [0,1]"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/upload [post]
func (h *CVHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".doc" && ext != ".txt" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf, docx and txt are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	topK := h.intForm(c, "top_k", h.defTopK)
	minScore := h.floatForm(c, "min_score", h.defMinScore)

	text, matches, err := h.matcher.MatchFile(c.Context(), fh.Filename, data, topK, minScore)
	if err != nil {
		return matchError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"filename":      fh.Filename,
		"cvTextLength":  len(text),
		"cvTextPreview": preview(text, 200),
		"cvText":        text,
		"totalMatches":  len(matches),
		"matches":       matches,
		"searchParams":  fiber.Map{"topK": topK, "minScore": minScore},
	})
}

type matchTextRequest struct {
	CVText   string  `json:"cvText"`
	TopK     int     `json:"topK"`
	MinScore float64 `json:"minScore"`
}

// MatchText подбирает вакансии по тексту CV без загрузки файла.
// @Summary Подбор вакансий по тексту CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   input body matchTextRequest true "Текст CV и параметры поиска"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/match-text [post]
func (h *CVHandler) MatchText(c *fiber.Ctx) error {
	var req matchTextRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if strings.TrimSpace(req.CVText) == "" {
		return presenter.Error(c, http.StatusBadRequest, "cvText is required")
	}
	topK := req.TopK
	if topK <= 0 {
		topK = h.defTopK
	}
	minScore := req.MinScore
	if minScore <= 0 {
		minScore = h.defMinScore
	}
	matches, err := h.matcher.MatchText(c.Context(), req.CVText, topK, minScore)
	if err != nil {
		return matchError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"cvTextLength": len(req.CVText),
		"totalMatches": len(matches),
		"matches":      matches,
		"searchParams": fiber.Map{"topK": topK, "minScore": minScore},
	})
}

type explainRequest struct {
	CVText       string `json:"cvText"`
	JobReference string `json:"jobReference"`
	TopNWords    int    `json:"topNWords"`
}

// Explain объясняет матч конкретной вакансии пертурбационным анализом:
// каждое слово CV по очереди убирается и измеряется сдвиг расстояния.
// @Summary Объяснение матча CV и вакансии
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   input body explainRequest true "Текст CV, reference вакансии, число слов"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/explain-match [post]
func (h *CVHandler) Explain(c *fiber.Ctx) error {
	var req explainRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if strings.TrimSpace(req.CVText) == "" {
		return presenter.Error(c, http.StatusBadRequest, "cvText is required")
	}
	if strings.TrimSpace(req.JobReference) == "" {
		return presenter.Error(c, http.StatusBadRequest, "jobReference is required")
	}
	explanation, err := h.matcher.Explain(c.Context(), req.CVText, req.JobReference, req.TopNWords)
	if err != nil {
		if errors.Is(err, matching.ErrJobNotFound) {
			return presenter.Error(c, http.StatusNotFound, "вакансия не найдена в индексе")
		}
		return matchError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"explanation":  explanation,
		"analysisType": "perturbation_analysis",
	})
}

// Stats возвращает состояние коллекции вакансий.
// @Summary Статистика сервиса матчинга
// @Tags    CV
// @Produce json
// @Success 200 {object} matching.Stats
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/stats [get]
func (h *CVHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.matcher.Stats(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusServiceUnavailable, "векторный индекс недоступен")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"stats":            stats,
		"supportedFormats": []string{".pdf", ".docx", ".doc", ".txt"},
	})
}

// matchError маппит доменные ошибки матчинга на HTTP-статусы.
func matchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cv.ErrNoTextExtracted):
		return presenter.Error(c, http.StatusBadRequest, "не удалось извлечь текст из файла")
	case errors.Is(err, embedding.ErrModelUnavailable):
		return presenter.Error(c, http.StatusServiceUnavailable, "модель эмбеддингов недоступна")
	case errors.Is(err, vectorstore.ErrUnavailable):
		return presenter.Error(c, http.StatusServiceUnavailable, "векторный индекс недоступен")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "внутренняя ошибка матчинга")
	}
}

func (h *CVHandler) intForm(c *fiber.Ctx, key string, def int) int {
	if v := strings.TrimSpace(c.FormValue(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func (h *CVHandler) floatForm(c *fiber.Ctx, key string, def float64) float64 {
	if v := strings.TrimSpace(c.FormValue(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return def
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file is too large (max %d bytes)", max)
	}
	return data, nil
}
