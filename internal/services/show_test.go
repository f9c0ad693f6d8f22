package services

import (
	"context"
	"testing"
	"time"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/pkg/helpers"
)

type fakeShowStore struct {
	orders map[string]models.ShowOrder
	tasks  map[string]models.ShowTask
}

func newFakeShowStore() *fakeShowStore {
	return &fakeShowStore{orders: map[string]models.ShowOrder{}, tasks: map[string]models.ShowTask{}}
}

func (f *fakeShowStore) GetOrder(_ context.Context, id string) (*models.ShowOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errs.NewNotFoundError("show order not found: " + id)
	}
	return &o, nil
}

func (f *fakeShowStore) ListOrders(context.Context) ([]models.ShowOrder, error) {
	out := make([]models.ShowOrder, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeShowStore) PutOrder(_ context.Context, o models.ShowOrder) error {
	f.orders[o.OrderID] = o
	return nil
}

func (f *fakeShowStore) DeleteOrder(_ context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeShowStore) GetTask(_ context.Context, id string) (*models.ShowTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, errs.NewNotFoundError("show task not found: " + id)
	}
	return &task, nil
}

func (f *fakeShowStore) ListTasks(context.Context) ([]models.ShowTask, error) {
	out := make([]models.ShowTask, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeShowStore) PutTask(_ context.Context, task models.ShowTask) error {
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeShowStore) DeleteTask(_ context.Context, id string) error {
	delete(f.tasks, id)
	return nil
}

func newShowService(store *fakeShowStore) *showService {
	svc := NewShowService(store)
	svc.clockNow = func() time.Time { return testNow }
	return svc
}

func TestShowOrderLifecycle(t *testing.T) {
	svc := newShowService(newFakeShowStore())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, dto.CreateShowOrderRequest{
		ShowName: "Melbourne Show", Customer: "Jones", Dealer: "Acme RV", Model: "Summit 22", Deposit: 500,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.OrderID == "" || order.Status != "pending" {
		t.Fatalf("order = %+v", order)
	}

	updated, err := svc.UpdateOrder(ctx, order.OrderID, dto.UpdateShowOrderRequest{Status: helpers.Ptr("Confirmed")})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Status != "confirmed" {
		t.Fatalf("status = %q", updated.Status)
	}

	if _, err := svc.UpdateOrder(ctx, order.OrderID, dto.UpdateShowOrderRequest{Status: helpers.Ptr("shipped")}); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
	if _, err := svc.CreateOrder(ctx, dto.CreateShowOrderRequest{ShowName: "X"}); err == nil {
		t.Fatal("expected validation error without customer and model")
	}

	if err := svc.DeleteOrder(ctx, order.OrderID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if err := svc.DeleteOrder(ctx, order.OrderID); err == nil {
		t.Fatal("expected not found on second delete")
	}
}

func TestTaskBoardGrouping(t *testing.T) {
	store := newFakeShowStore()
	svc := newShowService(store)
	ctx := context.Background()

	first, _ := svc.CreateTask(ctx, dto.CreateShowTaskRequest{ShowName: "Melbourne Show", Title: "Book transport"})
	second, _ := svc.CreateTask(ctx, dto.CreateShowTaskRequest{ShowName: "Melbourne Show", Title: "Print banners"})
	other, _ := svc.CreateTask(ctx, dto.CreateShowTaskRequest{ShowName: "Sydney Show", Title: "Hire stand"})

	if _, err := svc.UpdateTask(ctx, second.TaskID, dto.UpdateShowTaskRequest{Status: helpers.Ptr("doing")}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	board, err := svc.TaskBoard(ctx, "Melbourne Show")
	if err != nil {
		t.Fatalf("TaskBoard: %v", err)
	}
	if len(board.Todo) != 1 || board.Todo[0].TaskID != first.TaskID {
		t.Fatalf("todo column = %+v", board.Todo)
	}
	if len(board.Doing) != 1 {
		t.Fatalf("doing column = %+v", board.Doing)
	}
	if len(board.Done) != 0 {
		t.Fatalf("done column = %+v", board.Done)
	}
	for _, task := range board.Todo {
		if task.TaskID == other.TaskID {
			t.Fatal("other show's task leaked onto the board")
		}
	}
}
