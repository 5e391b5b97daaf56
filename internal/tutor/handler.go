package tutor

import (
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/guyhitalk/educapp-backend/internal/middleware"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Ask handles POST /api/v1/ask
func (h *Handler) Ask(req *restful.Request, resp *restful.Response) {
	var askRequest AskRequest

	if err := req.ReadEntity(&askRequest); err != nil {
		log.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	askRequest.SetDefaults()
	if err := askRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, middleware.StatusFor(err))
		return
	}

	log.Info().
		Str("subject", askRequest.Subject).
		Str("grade", askRequest.StudentGrade).
		Msg("Process student question")

	askResponse := h.service.Ask(req.Request.Context(), askRequest)

	resp.WriteHeaderAndEntity(http.StatusOK, askResponse)
}

// Classify handles POST /api/v1/classify
func (h *Handler) Classify(req *restful.Request, resp *restful.Response) {
	var classifyRequest ClassifyRequest

	if err := req.ReadEntity(&classifyRequest); err != nil {
		log.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if classifyRequest.Question == "" {
		middleware.HandleError(resp, middleware.ErrEmptyQuestion, http.StatusBadRequest)
		return
	}

	check := h.service.Classify(classifyRequest.Question)

	resp.WriteHeaderAndEntity(http.StatusOK, ClassifyResponse{
		TopicArea:             check.TopicArea,
		NeedsParentDiscussion: check.NeedsParentDiscussion,
		DetectedTopics:        check.DetectedTopics,
	})
}

// Health handles GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
