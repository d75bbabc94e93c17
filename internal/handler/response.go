package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"studentportal/internal/errors"
	"studentportal/internal/projection"
)

// respondError converts a service error into an echo HTTP error carrying an
// errors.ErrorResponse body.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}

func respondDocument(c echo.Context, status int, doc any) error {
	out, err := projection.Document(doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, out)
}

func respondDocuments[T any](c echo.Context, docs []T) error {
	out, err := projection.Documents(docs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// NotUpdatedResponse is returned by PATCH endpoints when the body carries no fields.
type NotUpdatedResponse struct {
	Updated bool `json:"updated"`
}
