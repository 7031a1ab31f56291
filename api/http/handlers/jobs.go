package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobfinder/api/http/presenter"
	"github.com/artem13815/jobfinder/pkg/embedding"
	"github.com/artem13815/jobfinder/pkg/feedback"
	"github.com/artem13815/jobfinder/pkg/job"
	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

type JobsHandler struct {
	ingest  job.IngestUseCase
	catalog job.Repository
	likes   feedback.UseCase
}

func NewJobsHandler(ingest job.IngestUseCase, catalog job.Repository, likes feedback.UseCase) *JobsHandler {
	return &JobsHandler{ingest: ingest, catalog: catalog, likes: likes}
}

// Offers возвращает сохранённые вакансии из каталога.
// @Summary Список вакансий каталога
// @Tags    Jobs
// @Produce json
// @Param   limit query int false "Сколько вернуть (по умолчанию 50)"
// @Param   offset query int false "Смещение"
// @Success 200 {object} map[string]any
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/offers [get]
func (h *JobsHandler) Offers(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50, 500)
	jobs, err := h.catalog.ListAll(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "не удалось прочитать каталог вакансий")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"count":  len(jobs),
		"limit":  limit,
		"offset": offset,
		"offers": jobs,
	})
}

type ingestRequest struct {
	Jobs []job.Job `json:"jobs"`
}

// Ingest индексирует пачку вакансий: эмбеддинг + запись в векторный
// индекс и каталог. Частичные сбои допускаются и считаются в отчёте.
// @Summary Индексация вакансий
// @Tags    Jobs
// @Accept  json
// @Produce json
// @Param   input body ingestRequest true "Вакансии для индексации"
// @Security BearerAuth
// @Success 200 {object} job.IngestReport
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Ingest(c *fiber.Ctx) error {
	var req ingestRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if len(req.Jobs) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "jobs is required")
	}
	for i := range req.Jobs {
		if strings.TrimSpace(req.Jobs[i].Reference) == "" {
			return presenter.Error(c, http.StatusBadRequest, "each job needs a reference")
		}
	}
	report, err := h.ingest.Ingest(c.Context(), req.Jobs)
	if err != nil {
		switch {
		case errors.Is(err, embedding.ErrModelUnavailable):
			return presenter.Error(c, http.StatusServiceUnavailable, "модель эмбеддингов недоступна")
		case errors.Is(err, vectorstore.ErrUnavailable):
			return presenter.Error(c, http.StatusServiceUnavailable, "векторный индекс недоступен")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "не удалось проиндексировать вакансии")
		}
	}
	return presenter.JSON(c, http.StatusOK, report)
}

// Likes возвращает все оценки вакансий.
// @Summary Оценки вакансий
// @Tags    Jobs
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/likes [get]
func (h *JobsHandler) Likes(c *fiber.Ctx) error {
	all, err := h.likes.All(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "не удалось прочитать оценки")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"likes": all})
}

// Rate ставит вакансии оценку like или dislike (последняя запись побеждает).
// @Summary Оценка вакансии
// @Tags    Jobs
// @Produce json
// @Param   reference path string true "Reference вакансии"
// @Param   feedback query string true "like или dislike"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/likes/{reference} [post]
func (h *JobsHandler) Rate(c *fiber.Ctx) error {
	reference := strings.TrimSpace(c.Params("reference"))
	if reference == "" {
		return presenter.Error(c, http.StatusBadRequest, "reference is required")
	}
	value := c.Query("feedback")
	if err := h.likes.Rate(c.Context(), reference, value); err != nil {
		if errors.Is(err, feedback.ErrInvalidValue) {
			return presenter.Error(c, http.StatusBadRequest, "feedback должен быть like или dislike")
		}
		return presenter.Error(c, http.StatusInternalServerError, "не удалось сохранить оценку")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"reference": reference, "feedback": strings.ToLower(strings.TrimSpace(value))})
}
