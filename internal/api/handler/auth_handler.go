package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/ports"
)

type AuthHandler struct {
	issuer ports.TokenIssuer
}

func NewAuthHandler(issuer ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type issueTokenResponse struct {
	Token string `json:"token"`
}

// IssueToken mints a bearer token for an externally-authenticated identity.
//
// @Summary      Issue a JWT for the given identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      issueTokenRequest  true  "Identity claims"
// @Success      200   {object}  issueTokenResponse
// @Failure      400   {object}  map[string]string
// @Router       /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.issuer.IssueToken(req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, issueTokenResponse{Token: token})
}
