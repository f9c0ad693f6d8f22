package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

var showOrderStatuses = []string{"pending", "confirmed", "cancelled"}
var showTaskStatuses = []string{"todo", "doing", "done"}

type showRecordStore interface {
	GetOrder(ctx context.Context, orderID string) (*models.ShowOrder, error)
	ListOrders(ctx context.Context) ([]models.ShowOrder, error)
	PutOrder(ctx context.Context, o models.ShowOrder) error
	DeleteOrder(ctx context.Context, orderID string) error
	GetTask(ctx context.Context, taskID string) (*models.ShowTask, error)
	ListTasks(ctx context.Context) ([]models.ShowTask, error)
	PutTask(ctx context.Context, task models.ShowTask) error
	DeleteTask(ctx context.Context, taskID string) error
}

type showService struct {
	store    showRecordStore
	clockNow func() time.Time
}

func NewShowService(store showRecordStore) *showService {
	return &showService{store: store, clockNow: time.Now}
}

func (s *showService) CreateOrder(ctx context.Context, req dto.CreateShowOrderRequest) (*models.ShowOrder, error) {
	if strings.TrimSpace(req.Customer) == "" || strings.TrimSpace(req.Model) == "" {
		return nil, errs.NewValidationError("customer and model are required")
	}
	now := s.clockNow()
	order := models.ShowOrder{
		OrderID:   uuid.NewString(),
		ShowName:  strings.TrimSpace(req.ShowName),
		Customer:  strings.TrimSpace(req.Customer),
		Dealer:    strings.TrimSpace(req.Dealer),
		Model:     strings.TrimSpace(req.Model),
		Deposit:   req.Deposit,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutOrder(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *showService) ListOrders(ctx context.Context, showName string) ([]models.ShowOrder, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if showName == "" {
		return orders, nil
	}
	var out []models.ShowOrder
	for _, o := range orders {
		if strings.EqualFold(o.ShowName, showName) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *showService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateShowOrderRequest) (*models.ShowOrder, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !slices.Contains(showOrderStatuses, status) {
			return nil, errs.NewValidationError("unknown order status: " + *req.Status)
		}
		order.Status = status
	}
	if req.Deposit != nil {
		if *req.Deposit < 0 {
			return nil, errs.NewValidationError("deposit cannot be negative")
		}
		order.Deposit = *req.Deposit
	}
	order.UpdatedAt = s.clockNow()
	if err := s.store.PutOrder(ctx, *order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *showService) DeleteOrder(ctx context.Context, orderID string) error {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return err
	}
	return s.store.DeleteOrder(ctx, orderID)
}

func (s *showService) CreateTask(ctx context.Context, req dto.CreateShowTaskRequest) (*models.ShowTask, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.NewValidationError("task title is required")
	}
	now := s.clockNow()
	task := models.ShowTask{
		TaskID:    uuid.NewString(),
		ShowName:  strings.TrimSpace(req.ShowName),
		Title:     strings.TrimSpace(req.Title),
		Assignee:  strings.TrimSpace(req.Assignee),
		Status:    "todo",
		DueDate:   strings.TrimSpace(req.DueDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutTask(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *showService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateShowTaskRequest) (*models.ShowTask, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !slices.Contains(showTaskStatuses, status) {
			return nil, errs.NewValidationError("unknown task status: " + *req.Status)
		}
		task.Status = status
	}
	if req.Assignee != nil {
		task.Assignee = strings.TrimSpace(*req.Assignee)
	}
	if req.DueDate != nil {
		task.DueDate = strings.TrimSpace(*req.DueDate)
	}
	task.UpdatedAt = s.clockNow()
	if err := s.store.PutTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *showService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.store.GetTask(ctx, taskID); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, taskID)
}

// TaskBoard groups a show's tasks into the three board columns, oldest
// first within each column.
func (s *showService) TaskBoard(ctx context.Context, showName string) (dto.TaskBoard, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return dto.TaskBoard{}, err
	}
	slices.SortFunc(tasks, func(a, b models.ShowTask) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	board := dto.TaskBoard{
		Todo:  []models.ShowTask{},
		Doing: []models.ShowTask{},
		Done:  []models.ShowTask{},
	}
	for _, t := range tasks {
		if showName != "" && !strings.EqualFold(t.ShowName, showName) {
			continue
		}
		switch t.Status {
		case "doing":
			board.Doing = append(board.Doing, t)
		case "done":
			board.Done = append(board.Done, t)
		default:
			board.Todo = append(board.Todo, t)
		}
	}
	return board, nil
}
