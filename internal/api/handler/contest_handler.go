package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/ports"
)

type ContestHandler struct {
	contests ports.ContestService
}

func NewContestHandler(contests ports.ContestService) *ContestHandler {
	return &ContestHandler{contests: contests}
}

type createContestRequest struct {
	Name         string         `json:"name" validate:"required"`
	Type         string         `json:"type" validate:"required"`
	Image        string         `json:"image"`
	Description  string         `json:"description" validate:"required"`
	Instructions string         `json:"instructions"`
	Fee          float64        `json:"fee" validate:"gte=0"`
	PrizeMoney   float64        `json:"prize_money" validate:"gte=0"`
	Deadline     int64          `json:"deadline" validate:"required"` // unix seconds
	Extra        map[string]any `json:"extra"`
}

type createContestResponse struct {
	InsertedID string `json:"inserted_id"`
}

type editContestRequest struct {
	Name         *string        `json:"name"`
	Type         *string        `json:"type"`
	Image        *string        `json:"image"`
	Description  *string        `json:"description"`
	Instructions *string        `json:"instructions"`
	Fee          *float64       `json:"fee"`
	PrizeMoney   *float64       `json:"prize_money"`
	Deadline     *int64         `json:"deadline"`
	Extra        map[string]any `json:"extra"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type declareWinnerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

// Create registers a new contest for review (creator only).
//
// @Summary      Create a contest
// @Tags         contests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContestRequest  true  "Contest fields"
// @Success      201   {object}  createContestResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /contests [post]
func (h *ContestHandler) Create(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req createContestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.contests.Create(c.Request().Context(), ports.CreateContestInput{
		CreatorEmail: email,
		Name:         req.Name,
		Type:         req.Type,
		Image:        req.Image,
		Description:  req.Description,
		Instructions: req.Instructions,
		Fee:          req.Fee,
		PrizeMoney:   req.PrizeMoney,
		Deadline:     time.Unix(req.Deadline, 0).UTC(),
		Extra:        req.Extra,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createContestResponse{InsertedID: id})
}

// ListPublic returns accepted contests, paginated, with optional filters.
//
// @Summary      List accepted contests
// @Tags         contests
// @Produce      json
// @Param        type    query     string  false  "exact contest type"
// @Param        search  query     string  false  "name substring, case-insensitive"
// @Param        page    query     int     false  "1-based page index"
// @Param        limit   query     int     false  "page size"
// @Success      200     {object}  listContestsResponse
// @Router       /contests [get]
func (h *ContestHandler) ListPublic(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.contests.ListPublic(c.Request().Context(), ports.ListContestsInput{
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listContestsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get returns a single contest by id.
//
// @Summary      Get a contest by id
// @Tags         contests
// @Produce      json
// @Param        id  path      string  true  "Contest id"
// @Success      200  {object}  domain.Contest
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /contests/{id} [get]
func (h *ContestHandler) Get(c echo.Context) error {
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	contest, err := h.contests.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contest)
}

// ListOwn returns the caller's contests across all statuses (creator only).
//
// @Summary      List own contests (creator)
// @Tags         contests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Contest
// @Failure      403  {object}  map[string]string
// @Router       /contests/creator [get]
func (h *ContestHandler) ListOwn(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	contests, err := h.contests.ListByCreator(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contests)
}

// ListAll is the admin view across every status.
//
// @Summary      List all contests (admin)
// @Tags         contests
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "1-based page index"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  listContestsResponse
// @Failure      403    {object}  map[string]string
// @Router       /contests/admin [get]
func (h *ContestHandler) ListAll(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.contests.ListAll(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listContestsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// SetStatus applies an admin review decision.
//
// @Summary      Accept or reject a contest (admin)
// @Tags         contests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Contest id"
// @Param        body  body      setStatusRequest  true  "accepted or rejected"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /contests/status/{id} [patch]
func (h *ContestHandler) SetStatus(c echo.Context) error {
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.contests.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

// Edit patches a pending contest owned by the caller.
//
// @Summary      Edit own pending contest (creator)
// @Tags         contests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Contest id"
// @Param        body  body      editContestRequest  true  "Fields to patch"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /contests/creator/edit/{id} [patch]
func (h *ContestHandler) Edit(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	var req editContestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.contests.Edit(c.Request().Context(), id, email, ports.ContestPatch{
		Name:         req.Name,
		Type:         req.Type,
		Image:        req.Image,
		Description:  req.Description,
		Instructions: req.Instructions,
		Fee:          req.Fee,
		PrizeMoney:   req.PrizeMoney,
		Deadline:     req.Deadline,
		Extra:        req.Extra,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "contest updated"})
}

// DeleteOwn removes a pending contest owned by the caller.
//
// @Summary      Delete own pending contest (creator)
// @Tags         contests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Contest id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /contests/creator/{id} [delete]
func (h *ContestHandler) DeleteOwn(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contests.DeleteOwn(c.Request().Context(), id, email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "contest deleted"})
}

// DeleteAny removes a contest at any status (admin only).
//
// @Summary      Delete a contest (admin)
// @Tags         contests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Contest id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /contests/{id} [delete]
func (h *ContestHandler) DeleteAny(c echo.Context) error {
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contests.DeleteAny(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "contest deleted"})
}

// Winners lists completed contests carrying a winner record.
//
// @Summary      List contest winners
// @Tags         contests
// @Produce      json
// @Success      200  {array}  domain.Contest
// @Router       /contests/winners [get]
func (h *ContestHandler) Winners(c echo.Context) error {
	contests, err := h.contests.Winners(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contests)
}

// DeclareWinner records the winner and completes the contest.
//
// @Summary      Declare a contest winner (creator)
// @Tags         contests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        contestId  path      string                true  "Contest id"
// @Param        body       body      declareWinnerRequest  true  "Winner identity"
// @Success      200        {object}  map[string]string
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /contests/winner/{contestId} [patch]
func (h *ContestHandler) DeclareWinner(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "contestId")
	if err != nil {
		return err
	}

	var req declareWinnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.contests.DeclareWinner(c.Request().Context(), ports.DeclareWinnerInput{
		ContestID:    id,
		CreatorEmail: email,
		WinnerEmail:  req.Email,
		WinnerName:   req.Name,
		WinnerImage:  req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "winner declared"})
}
