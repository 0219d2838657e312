package controller

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorlink/internal/dto"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/order/session"
	"tutorlink/internal/platform/telegram"
)

type DraftStore interface {
	Open(initData string) *session.Session
	Get(id string) (*session.Session, error)
	Close(id string) error
}

type DraftController struct {
	store     DraftStore
	validator InitDataValidator
	logger    *zap.Logger
}

func NewDraftController(store DraftStore, validator InitDataValidator, logger *zap.Logger) *DraftController {
	return &DraftController{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Open starts a create-order page and returns its first view.
func (c *DraftController) Open(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	initData, err := c.initData(r)
	if err != nil {
		logger.Warn("rejected init data", zap.Error(err))
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	sess := c.store.Open(initData)
	logger.Info("draft session opened",
		zap.String("draftId", sess.ID),
		zap.Int64("userId", telegram.UserID(initData)),
	)

	writeJSON(w, r, http.StatusCreated, draftView(traceID, sess, nil))
}

func (c *DraftController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, err := c.session(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	writeJSON(w, r, http.StatusOK, draftView(traceID, sess, nil))
}

// Update applies field edits. Rejected edits leave the field unchanged and
// come back in the view next to the accepted ones.
func (c *DraftController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, err := c.session(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	var req dto.UpdateDraftRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, r, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	rejected := applyEdits(sess, req)
	if len(rejected) > 0 {
		logger.Debug("draft edits rejected",
			zap.String("draftId", sess.ID),
			zap.Int("count", len(rejected)),
		)
	}

	writeJSON(w, r, http.StatusOK, draftView(traceID, sess, rejected))
}

// Submit presses the primary button of the draft.
func (c *DraftController) Submit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, err := c.session(r)
	if err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}
	logger = logger.With(zap.String("draftId", sess.ID))

	err = sess.Button.Click(r.Context())
	notices := sess.TakeNotices()
	if err != nil {
		writeError(w, r, traceID, err, notices, logger)
		return
	}

	outcome := sess.Flow.Outcome()
	if outcome == nil {
		logger.Error("submit finished without an outcome")
		writeError(w, r, traceID, fmt.Errorf("draft %s: no outcome after submit", sess.ID), notices, logger)
		return
	}

	// The page navigates away on success.
	if err := c.store.Close(sess.ID); err != nil {
		logger.Warn("closing submitted draft", zap.Error(err))
	}

	writeJSON(w, r, http.StatusCreated, dto.SubmitResponse{
		TraceID:    traceID,
		OrderID:    outcome.OrderID,
		NavigateTo: outcome.NavigateTo,
		Notices:    notices,
	})
}

// Close is the page being left: the button is released and an in-flight
// submission is abandoned.
func (c *DraftController) Close(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := c.store.Close(chi.URLParam(r, "draftId")); err != nil {
		writeError(w, r, traceID, err, nil, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// session loads the draft named in the path and refreshes its init data from
// the request.
func (c *DraftController) session(r *http.Request) (*session.Session, error) {
	sess, err := c.store.Get(chi.URLParam(r, "draftId"))
	if err != nil {
		return nil, err
	}

	initData, err := c.initData(r)
	if err != nil {
		return nil, err
	}
	if initData != "" {
		sess.SetInitData(initData)
	}
	return sess, nil
}

// initData returns the validated init data of the request, or "" when the
// request carries none.
func (c *DraftController) initData(r *http.Request) (string, error) {
	raw := telegram.InitDataFromHeader(r.Header.Get("Authorization"))
	if raw == "" {
		return "", nil
	}
	if err := c.validator.Validate(raw); err != nil {
		return "", fmt.Errorf("%w: %v", errUnauthorized, err)
	}
	return raw, nil
}

func applyEdits(sess *session.Session, req dto.UpdateDraftRequest) []apperrors.ValidationDetail {
	var rejected []apperrors.ValidationDetail
	collect := func(err error) {
		if err == nil {
			return
		}
		if ve, ok := apperrors.IsValidationError(err); ok {
			rejected = append(rejected, ve.Details...)
		}
	}

	if req.Name != nil {
		sess.Draft.SetName(*req.Name)
	}
	if req.Title != nil {
		sess.Draft.SetTitle(*req.Title)
	}
	if req.Description != nil {
		sess.Draft.SetDescription(*req.Description)
	}
	if req.Grade != nil {
		collect(sess.Draft.SetGrade(*req.Grade))
	}
	if req.Tags != nil {
		collect(sess.Draft.SelectTags(*req.Tags))
	}
	if req.MinPrice != nil {
		collect(sess.Draft.SetMinPrice(string(*req.MinPrice)))
	}
	if req.MaxPrice != nil {
		collect(sess.Draft.SetMaxPrice(string(*req.MaxPrice)))
	}
	return rejected
}

func draftView(traceID string, sess *session.Session, rejected []apperrors.ValidationDetail) dto.DraftResponse {
	values := sess.Draft.Snapshot()
	return dto.DraftResponse{
		TraceID: traceID,
		ID:      sess.ID,
		State:   string(sess.Flow.State()),
		Fields: dto.DraftFields{
			Name:        values.Name,
			Title:       values.Title,
			Description: values.Description,
			Grade:       values.Grade,
			Tags:        values.Tags,
			MinPrice:    values.MinPrice,
			MaxPrice:    values.MaxPrice,
		},
		Errors:     sess.Draft.Errors(),
		Rejected:   rejected,
		Notices:    sess.TakeNotices(),
		MainButton: sess.Button.State(),
		NavigateTo: sess.NavigatedTo(),
	}
}
