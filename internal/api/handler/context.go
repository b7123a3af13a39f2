package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/backend/internal/api/middleware"
)

// callerEmail extracts the email injected by the Auth middleware. An empty
// value means the middleware never ran on this route; fail fast with 401
// before any service call.
func callerEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.ContextEmailKey).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// pathObjectID validates that the named path parameter is a well-formed
// ObjectID hex before any store lookup. Malformed ids are 400; absent but
// well-formed ids become 404 downstream.
func pathObjectID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed id")
	}
	return id, nil
}
