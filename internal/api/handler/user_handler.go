package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type registerUserResponse struct {
	InsertedID string `json:"inserted_id,omitempty"`
	Message    string `json:"message,omitempty"`
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type roleProbeResponse struct {
	Admin   bool `json:"admin,omitempty"`
	Creator bool `json:"creator,omitempty"`
}

// Register creates an account on first contact; replays are a no-op.
//
// @Summary      Register a user (idempotent)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Identity attributes"
// @Success      200   {object}  registerUserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.users.Register(c.Request().Context(), ports.RegisterUserInput{
		Email: req.Email,
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}

	resp := registerUserResponse{InsertedID: result.InsertedID}
	if result.AlreadyExisted {
		resp.Message = "user already exists"
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single user by email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  map[string]string
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List is the paginated admin listing.
//
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "1-based page index"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  listUsersResponse
// @Failure      403    {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.users.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// UpdateProfile patches the caller's own display name and image.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string                true  "User email (must equal token identity)"
// @Param        body   body      updateProfileRequest  true  "Profile fields"
// @Success      200    {object}  domain.User
// @Failure      403    {object}  map[string]string
// @Router       /users/profile/{email} [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), email, c.Param("email"), req.Name, req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangeRole sets the role of the user with the given id (admin only).
//
// @Summary      Change a user's role (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/role/{id} [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangeRole(c.Request().Context(), id, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role updated"})
}

// ProbeAdmin reports whether the caller holds the admin role. Callers may
// only probe their own email.
//
// @Summary      Probe admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email (must equal token identity)"
// @Success      200    {object}  roleProbeResponse
// @Failure      403    {object}  map[string]string
// @Router       /users/admin/{email} [get]
func (h *UserHandler) ProbeAdmin(c echo.Context) error {
	return h.probeRole(c, domain.RoleAdmin)
}

// ProbeCreator reports whether the caller holds the creator role.
//
// @Summary      Probe creator role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email (must equal token identity)"
// @Success      200    {object}  roleProbeResponse
// @Failure      403    {object}  map[string]string
// @Router       /users/creator/{email} [get]
func (h *UserHandler) ProbeCreator(c echo.Context) error {
	return h.probeRole(c, domain.RoleCreator)
}

func (h *UserHandler) probeRole(c echo.Context, role domain.Role) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	if email != c.Param("email") {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	has, err := h.users.HasRole(c.Request().Context(), email, role)
	if err != nil {
		return err
	}

	resp := roleProbeResponse{}
	switch role {
	case domain.RoleAdmin:
		resp.Admin = has
	case domain.RoleCreator:
		resp.Creator = has
	}
	return c.JSON(http.StatusOK, resp)
}

// pageParams reads the page/limit query parameters. Absent or unparsable
// values pass through as zero; the service layer owns normalization.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
