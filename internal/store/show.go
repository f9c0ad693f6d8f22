package store

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

type showStore struct {
	db *db.Client
}

func NewShowStore(database *db.Client) *showStore {
	return &showStore{db: database}
}

func (s *showStore) GetOrder(ctx context.Context, orderID string) (*models.ShowOrder, error) {
	var o models.ShowOrder
	if err := s.db.NewRef(PathShowOrders).Child(orderID).Get(ctx, &o); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read show order "+orderID, err)
	}
	if o.OrderID == "" {
		return nil, errs.NewNotFoundError("show order not found: " + orderID)
	}
	return &o, nil
}

func (s *showStore) ListOrders(ctx context.Context) ([]models.ShowOrder, error) {
	var keyed map[string]models.ShowOrder
	if err := s.db.NewRef(PathShowOrders).Get(ctx, &keyed); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list show orders", err)
	}
	out := make([]models.ShowOrder, 0, len(keyed))
	for id, o := range keyed {
		if o.OrderID == "" {
			o.OrderID = id
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *showStore) PutOrder(ctx context.Context, o models.ShowOrder) error {
	if err := s.db.NewRef(PathShowOrders).Child(o.OrderID).Set(ctx, o); err != nil {
		return errs.NewDatabaseError("write", "failed to write show order "+o.OrderID, err)
	}
	return nil
}

func (s *showStore) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.db.NewRef(PathShowOrders).Child(orderID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete show order "+orderID, err)
	}
	return nil
}

func (s *showStore) GetTask(ctx context.Context, taskID string) (*models.ShowTask, error) {
	var task models.ShowTask
	if err := s.db.NewRef(PathShowTasks).Child(taskID).Get(ctx, &task); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read show task "+taskID, err)
	}
	if task.TaskID == "" {
		return nil, errs.NewNotFoundError("show task not found: " + taskID)
	}
	return &task, nil
}

func (s *showStore) ListTasks(ctx context.Context) ([]models.ShowTask, error) {
	var keyed map[string]models.ShowTask
	if err := s.db.NewRef(PathShowTasks).Get(ctx, &keyed); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list show tasks", err)
	}
	out := make([]models.ShowTask, 0, len(keyed))
	for id, task := range keyed {
		if task.TaskID == "" {
			task.TaskID = id
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *showStore) PutTask(ctx context.Context, task models.ShowTask) error {
	if err := s.db.NewRef(PathShowTasks).Child(task.TaskID).Set(ctx, task); err != nil {
		return errs.NewDatabaseError("write", "failed to write show task "+task.TaskID, err)
	}
	return nil
}

func (s *showStore) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.db.NewRef(PathShowTasks).Child(taskID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete show task "+taskID, err)
	}
	return nil
}
