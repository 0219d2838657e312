package tags

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"tutorlink/internal/domain"
)

type Controller struct {
	vocabulary *Vocabulary
	logger     *zap.Logger
}

func NewController(vocabulary *Vocabulary, logger *zap.Logger) *Controller {
	return &Controller{
		vocabulary: vocabulary,
		logger:     logger,
	}
}

type tagsResponse struct {
	Tags []Option `json:"tags"`
}

type gradesResponse struct {
	Grades []domain.GradeOption `json:"grades"`
}

func (c *Controller) HandleListTags(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, tagsResponse{Tags: c.vocabulary.Options()})
}

func (c *Controller) HandleListGrades(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, gradesResponse{Grades: domain.Grades})
}
