package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"trackline/internal/errors"
	"trackline/internal/model"
)

// PrincipalKey is the echo context key under which the authenticated
// principal is stored by the auth middleware.
const PrincipalKey = "principal"

// Principal returns the authenticated user attached to the request.
func Principal(c echo.Context) (*model.User, error) {
	user, ok := c.Get(PrincipalKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}
	return user, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// pageParam reads the optional page query parameter, leaving absence to
// the pagination engine's normalization.
func pageParam(c echo.Context) (*int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return nil, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	return &page, nil
}

// patternParam reads the optional pattern query parameter.
func patternParam(c echo.Context) *string {
	if !c.QueryParams().Has("pattern") {
		return nil
	}
	pattern := c.QueryParam("pattern")
	return &pattern
}

// fail converts a domain error into the transport error response.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
