package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/sortlist/internal/domain"
	apperrors "github.com/pscheid92/sortlist/internal/platform/errors"
	"github.com/pscheid92/sortlist/internal/store"
)

// idsRequest is the body of /select, /deselect and /sort.
type idsRequest struct {
	IDs *[]int `json:"ids"`
}

type prioritizeRequest struct {
	Search *string `json:"search"`
}

func (s *Server) handleListItems(c echo.Context) error {
	var q domain.ListQuery
	err := echo.QueryParamsBinder(c).
		Int("offset", &q.Offset).
		Int("limit", &q.Limit).
		String("search", &q.Search).
		BindError()
	if err != nil {
		verr := apperrors.InvalidInput("offset and limit must be integers", err)
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) {
			verr = verr.WithField("param", bindErr.Field).WithField("value", strings.Join(bindErr.Values, ","))
		}
		return verr
	}

	page, err := s.list.List(c.Request().Context(), q)
	if err != nil {
		return apperrors.InternalError("failed to list items", err)
	}

	if err := c.JSON(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handlePrioritize(c echo.Context) error {
	var req prioritizeRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if req.Search == nil {
		return apperrors.ValidationError("search is required").WithField("field", "search")
	}

	found, err := s.list.Prioritize(c.Request().Context(), *req.Search)
	if err != nil {
		return apperrors.InternalError("failed to prioritize item", err)
	}
	if !found {
		return c.NoContent(http.StatusNoContent)
	}
	return sendOK(c)
}

func (s *Server) handleSort(c echo.Context) error {
	ids, err := decodeIDs(c)
	if err != nil {
		return err
	}

	err = s.list.Reorder(c.Request().Context(), ids)
	var orderErr *store.OrderError
	switch {
	case errors.As(err, &orderErr):
		return apperrors.InvalidInput("ids must be a permutation of the current order", err).
			WithField("expected_len", orderErr.ExpectedLen).
			WithField("got_len", orderErr.GotLen).
			WithField("duplicates", orderErr.DuplicateCount).
			WithField("unknown", orderErr.UnknownCount).
			WithField("missing", orderErr.MissingCount)
	case errors.Is(err, domain.ErrInvalidOrder):
		return apperrors.InvalidInput("ids must be a permutation of the current order", err)
	case err != nil:
		return apperrors.InternalError("failed to reorder items", err)
	}
	return sendOK(c)
}

// decodeBody reads exactly one JSON value regardless of the declared content type.
// Anything but whitespace after that value rejects the body.
func decodeBody(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(v); err != nil {
		return apperrors.InvalidInput("request body must be a JSON object", fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err))
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return apperrors.InvalidInput("request body must contain a single JSON object",
			fmt.Errorf("%w: trailing data after JSON value", domain.ErrInvalidRequest))
	}
	return nil
}

func decodeIDs(c echo.Context) ([]int, error) {
	var req idsRequest
	if err := decodeBody(c, &req); err != nil {
		return nil, err
	}
	if req.IDs == nil {
		return nil, apperrors.ValidationError("ids is required").WithField("field", "ids")
	}
	return *req.IDs, nil
}

func sendOK(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
