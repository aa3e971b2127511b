package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toyswap/toyswap/internal/domain/item"
)

type itemResponse struct {
	Item *item.Item `json:"toy"`
}

type patchItemRequest struct {
	Status item.Status `json:"status"`
}

type listItemsRequest struct {
	Query item.Query `json:"query"`
	page
}

type listItemsResponse struct {
	Items  []*item.Item `json:"toys"`
	Cursor *string      `json:"cursor,omitempty"`
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	draft, err := parseDraft(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	it, err := s.store.CreateItem(userIDFromContext(r.Context()), r.Header.Get(headerIdempotencyToken), draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, itemResponse{Item: it})
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.Header.Get(headerItemID)
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "missing "+headerItemID+" header")
		return
	}
	draft, err := parseDraft(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	it, err := s.store.UpdateItem(userIDFromContext(r.Context()), itemID, draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemResponse{Item: it})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.store.GetItem(chi.URLParam(r, "itemId"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemResponse{Item: it})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteItem(userIDFromContext(r.Context()), chi.URLParam(r, "itemId")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patchItem(w http.ResponseWriter, r *http.Request) {
	var req patchItemRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	it, err := s.store.PatchItemStatus(userIDFromContext(r.Context()), chi.URLParam(r, "itemId"), req.Status)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemResponse{Item: it})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	var req listItemsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	limit, cursor := req.values()
	items, next, err := s.store.ListItems(req.Query, limit, cursor)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listItemsResponse{Items: items, Cursor: cursorPtr(next)})
}

func (s *Server) getPhoto(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Photo(r.URL.Path)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func parseDraft(r *http.Request) (item.Draft, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return item.Draft{}, err
	}
	draft := item.Draft{Name: r.FormValue("name")}
	if vals, ok := r.MultipartForm.Value["description"]; ok && len(vals) > 0 {
		desc := vals[0]
		draft.Description = &desc
	}

	f, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return draft, nil
	}
	if err != nil {
		return item.Draft{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return item.Draft{}, err
	}
	draft.Photo = &item.Photo{FileName: hdr.Filename, Data: data}
	return draft, nil
}
