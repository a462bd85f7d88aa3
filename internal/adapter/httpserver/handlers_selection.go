package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/sortlist/internal/platform/errors"
)

func (s *Server) handleSelect(c echo.Context) error {
	ids, err := decodeIDs(c)
	if err != nil {
		return err
	}

	if err := s.list.Select(c.Request().Context(), ids); err != nil {
		return apperrors.InternalError("failed to select items", err)
	}
	return sendOK(c)
}

func (s *Server) handleDeselect(c echo.Context) error {
	ids, err := decodeIDs(c)
	if err != nil {
		return err
	}

	if err := s.list.Deselect(c.Request().Context(), ids); err != nil {
		return apperrors.InternalError("failed to deselect items", err)
	}
	return sendOK(c)
}

func (s *Server) handleSelected(c echo.Context) error {
	ids, err := s.list.Selected(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load selection", err)
	}
	if ids == nil {
		ids = []int{}
	}

	if err := c.JSON(http.StatusOK, ids); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
