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

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// RegisterRoutes covers /courses; the bootcamp-nested course routes are
// mounted separately via RegisterNestedRoutes.
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(protected chi.Router) {
		protected.Use(appmiddleware.Authenticator)
		protected.Use(appmiddleware.RequireRoles(model.RolePublisher, model.RoleAdmin))
		protected.Put("/{id}", h.update)
		protected.Delete("/{id}", h.delete)
	})
}

// RegisterNestedRoutes mounts the course routes living under
// /bootcamps/{id}/courses, where {id} is the bootcamp id.
func (h *CourseHandler) RegisterNestedRoutes(r chi.Router) {
	r.Get("/", h.listForBootcamp)

	r.Group(func(protected chi.Router) {
		protected.Use(appmiddleware.Authenticator)
		protected.Use(appmiddleware.RequireRoles(model.RolePublisher, model.RoleAdmin))
		protected.Post("/", h.createForBootcamp)
	})
}

func (h *CourseHandler) list(w http.ResponseWriter, r *http.Request) {
	q, err := repository.ParseListQuery(r.URL.Query())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	courses, pagination, err := h.courseService.List(r.Context(), q)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	var data interface{} = courses
	if keys := q.SelectedKeys(); keys != nil {
		if data, err = common.ProjectDocuments(courses, keys); err != nil {
			common.RespondWithDomainError(w, err)
			return
		}
	}
	common.RespondWithJSON(w, http.StatusOK, common.ListResponse{
		Success:    true,
		Count:      len(courses),
		Pagination: pagination,
		Data:       data,
	})
}

func (h *CourseHandler) listForBootcamp(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListForBootcamp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.ListResponse{
		Success: true,
		Count:   len(courses),
		Data:    courses,
	})
}

func (h *CourseHandler) get(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, course)
}

func (h *CourseHandler) createForBootcamp(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	course, err := h.courseService.Create(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, course)
}

func (h *CourseHandler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	course, err := h.courseService.Update(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, course)
}

func (h *CourseHandler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	if err := h.courseService.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, struct{}{})
}
