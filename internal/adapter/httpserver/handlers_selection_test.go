package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSelect(t *testing.T) {
	var got []int
	list := &mockListService{selectFn: func(_ context.Context, ids []int) error {
		got = ids
		return nil
	}}
	srv := newTestServer(t, list)

	c, rec := newJSONContext(srv, http.MethodPost, "/select", `{"ids":[1,5,99999]}`)
	require.NoError(t, callHandler(srv.handleSelect, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, []int{1, 5, 99999}, got)
}

func TestHandleSelect_EmptyListIsAccepted(t *testing.T) {
	var got []int
	list := &mockListService{selectFn: func(_ context.Context, ids []int) error {
		got = ids
		return nil
	}}
	srv := newTestServer(t, list)

	c, rec := newJSONContext(srv, http.MethodPost, "/select", `{"ids":[]}`)
	require.NoError(t, callHandler(srv.handleSelect, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHandleSelect_MissingIDs(t *testing.T) {
	srv := newTestServer(t, &mockListService{})

	c, rec := newJSONContext(srv, http.MethodPost, "/select", `{}`)
	require.NoError(t, callHandler(srv.handleSelect, c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ids is required")
}

func TestHandleDeselect(t *testing.T) {
	var got []int
	list := &mockListService{deselectFn: func(_ context.Context, ids []int) error {
		got = ids
		return nil
	}}
	srv := newTestServer(t, list)

	c, rec := newJSONContext(srv, http.MethodPost, "/deselect", `{"ids":[2]}`)
	require.NoError(t, callHandler(srv.handleDeselect, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2}, got)
}

func TestHandleDeselect_InvalidBody(t *testing.T) {
	srv := newTestServer(t, &mockListService{})

	c, rec := newJSONContext(srv, http.MethodPost, "/deselect", `{"ids":[true]}`)
	require.NoError(t, callHandler(srv.handleDeselect, c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDeselect_ServiceError(t *testing.T) {
	list := &mockListService{deselectFn: func(context.Context, []int) error {
		return errors.New("boom")
	}}
	srv := newTestServer(t, list)

	c, rec := newJSONContext(srv, http.MethodPost, "/deselect", `{"ids":[2]}`)
	require.NoError(t, callHandler(srv.handleDeselect, c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleSelected(t *testing.T) {
	list := &mockListService{selectedFn: func(context.Context) ([]int, error) {
		return []int{1, 5, 7}, nil
	}}
	srv := newTestServer(t, list)

	c, rec := newGetContext(srv, "/selected")
	require.NoError(t, callHandler(srv.handleSelected, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[1,5,7]`, rec.Body.String())
}

func TestHandleSelected_EmptyIsArray(t *testing.T) {
	srv := newTestServer(t, &mockListService{})

	c, rec := newGetContext(srv, "/selected")
	require.NoError(t, callHandler(srv.handleSelected, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
