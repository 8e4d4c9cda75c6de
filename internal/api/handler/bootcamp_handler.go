package handler

import (
	"encoding/json"
	"net/http"

	appmiddleware "campdir/internal/api/middleware"
	"campdir/internal/app/service"
	"campdir/internal/common"
	"campdir/internal/domain/model"
	"campdir/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type BootcampHandler struct {
	bootcampService *service.BootcampService
}

func NewBootcampHandler(bootcampService *service.BootcampService) *BootcampHandler {
	return &BootcampHandler{bootcampService: bootcampService}
}

func (h *BootcampHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/radius/{zipcode}/{distance}", h.listWithinRadius)
	r.Get("/{id}", h.get)

	r.Group(func(protected chi.Router) {
		protected.Use(appmiddleware.Authenticator)
		protected.Use(appmiddleware.RequireRoles(model.RolePublisher, model.RoleAdmin))
		protected.Post("/", h.create)
		protected.Put("/{id}", h.update)
		protected.Delete("/{id}", h.delete)
		protected.Put("/{id}/photo", h.uploadPhoto)
	})
}

func (h *BootcampHandler) list(w http.ResponseWriter, r *http.Request) {
	q, err := repository.ParseListQuery(r.URL.Query())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	bootcamps, pagination, err := h.bootcampService.List(r.Context(), q)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	var data interface{} = bootcamps
	if keys := q.SelectedKeys(); keys != nil {
		if data, err = common.ProjectDocuments(bootcamps, keys); err != nil {
			common.RespondWithDomainError(w, err)
			return
		}
	}
	common.RespondWithJSON(w, http.StatusOK, common.ListResponse{
		Success:    true,
		Count:      len(bootcamps),
		Pagination: pagination,
		Data:       data,
	})
}

func (h *BootcampHandler) get(w http.ResponseWriter, r *http.Request) {
	bootcamp, err := h.bootcampService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, bootcamp)
}

func (h *BootcampHandler) listWithinRadius(w http.ResponseWriter, r *http.Request) {
	bootcamps, err := h.bootcampService.GetWithinRadius(r.Context(),
		chi.URLParam(r, "zipcode"), chi.URLParam(r, "distance"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.ListResponse{
		Success: true,
		Count:   len(bootcamps),
		Data:    bootcamps,
	})
}

func (h *BootcampHandler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.CreateBootcampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	bootcamp, err := h.bootcampService.Create(r.Context(), identity, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, bootcamp)
}

func (h *BootcampHandler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.UpdateBootcampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	bootcamp, err := h.bootcampService.Update(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, bootcamp)
}

func (h *BootcampHandler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	if err := h.bootcampService.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, struct{}{})
}

func (h *BootcampHandler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	bootcamp, err := h.bootcampService.UploadPhoto(r.Context(), identity, chi.URLParam(r, "id"), file, header)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, bootcamp.Photo)
}
