package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/response"
)

type ShowService interface {
	CreateOrder(ctx context.Context, req dto.CreateShowOrderRequest) (*models.ShowOrder, error)
	ListOrders(ctx context.Context, showName string) ([]models.ShowOrder, error)
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateShowOrderRequest) (*models.ShowOrder, error)
	DeleteOrder(ctx context.Context, orderID string) error
	CreateTask(ctx context.Context, req dto.CreateShowTaskRequest) (*models.ShowTask, error)
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateShowTaskRequest) (*models.ShowTask, error)
	DeleteTask(ctx context.Context, taskID string) error
	TaskBoard(ctx context.Context, showName string) (dto.TaskBoard, error)
}

type showHandlers struct {
	ResponseHandler response.ResponseHandler
	ShowSvc         ShowService
}

func NewShowHandlers(deps *Deps) *showHandlers {
	return &showHandlers{
		ResponseHandler: deps.ResponseHandler,
		ShowSvc:         deps.ShowSvc,
	}
}

func (h *showHandlers) ShowRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.CreateOrder)
	r.Put("/orders/{orderID}", h.UpdateOrder)
	r.Delete("/orders/{orderID}", h.DeleteOrder)
	r.Post("/tasks", h.CreateTask)
	r.Put("/tasks/{taskID}", h.UpdateTask)
	r.Delete("/tasks/{taskID}", h.DeleteTask)
	r.Get("/tasks/board", h.TaskBoard)
	return r
}

func (h *showHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ShowSvc.ListOrders(r.Context(), r.URL.Query().Get("show"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, orders)
}

func (h *showHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShowOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	order, err := h.ShowSvc.CreateOrder(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, order)
}

func (h *showHandlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateShowOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	order, err := h.ShowSvc.UpdateOrder(r.Context(), chi.URLParam(r, "orderID"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, order)
}

func (h *showHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.ShowSvc.DeleteOrder(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *showHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShowTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	task, err := h.ShowSvc.CreateTask(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, task)
}

func (h *showHandlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateShowTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	task, err := h.ShowSvc.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, task)
}

func (h *showHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.ShowSvc.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *showHandlers) TaskBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.ShowSvc.TaskBoard(r.Context(), r.URL.Query().Get("show"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, board)
}
