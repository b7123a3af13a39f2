package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/ports"
)

type SubmissionHandler struct {
	submissions ports.SubmissionService
}

func NewSubmissionHandler(submissions ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

type submitRequest struct {
	ContestID string         `json:"contest_id" validate:"required"`
	Entry     map[string]any `json:"entry" validate:"required"`
}

type submitResponse struct {
	InsertedID string `json:"inserted_id"`
}

// Submit records one entry for a paid participant.
//
// @Summary      Submit a contest entry
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRequest  true  "Entry payload"
// @Success      201   {object}  submitResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /submissions [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.submissions.Submit(c.Request().Context(), ports.SubmitInput{
		ContestID: req.ContestID,
		Email:     email,
		Entry:     req.Entry,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitResponse{InsertedID: id})
}

// ListForContest returns a contest's entries to its creator.
//
// @Summary      List submissions for a contest (creator)
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        contestId  path      string  true  "Contest id"
// @Success      200        {array}   domain.Submission
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /submissions/contest/{contestId} [get]
func (h *SubmissionHandler) ListForContest(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "contestId")
	if err != nil {
		return err
	}

	submissions, err := h.submissions.ListForContest(c.Request().Context(), id, email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submissions)
}
