package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/export"
)

// Export formats and entities accepted on the export endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	EntityOrders     = "orders"
	EntityUnsigned   = "unsigned"
	EntityEmptySlots = "emptyslots"
	EntityYard       = "yard"
	EntityOnRoad     = "ontheroad"
)

type orderLister interface {
	Orders(ctx context.Context, dealerSlug string, filters dto.OrderFilters) (dto.OrdersResult, error)
	Unsigned(ctx context.Context, dealerSlug string) (dto.UnsignedResult, error)
	EmptySlots(ctx context.Context, dealerSlug string) (dto.EmptySlotsResult, error)
}

type yardLister interface {
	List(ctx context.Context, dealerSlug string, filters dto.YardFilters) (dto.YardResult, error)
}

type onRoadLister interface {
	OnRoad(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.OnRoadResult, error)
}

type exportService struct {
	schedule orderLister
	yard     yardLister
	kpi      onRoadLister
	clockNow func() time.Time
}

func NewExportService(schedule orderLister, yard yardLister, kpi onRoadLister) *exportService {
	return &exportService{schedule: schedule, yard: yard, kpi: kpi, clockNow: time.Now}
}

// Export writes the requested entity for the dealer to w in the requested
// format and returns the suggested filename plus content type.
func (s *exportService) Export(ctx context.Context, w io.Writer, dealerSlug, dealerName, entity, format string) (filename, contentType string, err error) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	table, err := s.buildTable(ctx, dealerSlug, entity)
	if err != nil {
		return "", "", err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV, "":
		if err := export.WriteCSV(w, table); err != nil {
			return "", "", err
		}
		return export.Filename(entity, dealerName, s.clockNow(), FormatCSV), "text/csv", nil
	case FormatXLSX:
		if err := export.WriteXLSX(w, sheetName(entity), table); err != nil {
			return "", "", err
		}
		return export.Filename(entity, dealerName, s.clockNow(), FormatXLSX),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", "", errs.NewValidationError("unknown export format: " + format)
	}
}

func (s *exportService) buildTable(ctx context.Context, dealerSlug, entity string) (export.Table, error) {
	switch entity {
	case EntityOrders:
		res, err := s.schedule.Orders(ctx, dealerSlug, dto.OrderFilters{})
		if err != nil {
			return export.Table{}, err
		}
		return orderTable(res.Rows), nil
	case EntityUnsigned:
		res, err := s.schedule.Unsigned(ctx, dealerSlug)
		if err != nil {
			return export.Table{}, err
		}
		return orderTable(res.Rows), nil
	case EntityEmptySlots:
		res, err := s.schedule.EmptySlots(ctx, dealerSlug)
		if err != nil {
			return export.Table{}, err
		}
		return orderTable(res.Rows), nil
	case EntityYard:
		res, err := s.yard.List(ctx, dealerSlug, dto.YardFilters{})
		if err != nil {
			return export.Table{}, err
		}
		return yardTable(res.Rows), nil
	case EntityOnRoad:
		res, err := s.kpi.OnRoad(ctx, dealerSlug, dto.WindowArgs{Preset: dto.WindowLast90})
		if err != nil {
			return export.Table{}, err
		}
		return onRoadTable(res.Rows), nil
	default:
		return export.Table{}, errs.NewValidationError("unknown export entity: " + entity)
	}
}

func sheetName(entity string) string {
	if entity == "" {
		return "Export"
	}
	return strings.ToUpper(entity[:1]) + entity[1:]
}

func orderTable(rows []dto.OrderRow) export.Table {
	t := export.Table{Columns: []string{
		"Chassis", "Customer", "Dealer", "Model", "Model Year",
		"Forecast Production", "Production Status", "Requested Delivery",
		"Signed Plans", "Order Received", "Colour", "Decals", "Exterior Colour",
		"Unsigned", "Red Slot",
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Chassis, r.Customer, r.Dealer, r.Model, r.ModelYear,
			r.ForecastProductionDate, r.ProductionStatus, r.RequestedDeliveryDate,
			r.SignedPlansReceived, r.OrderReceivedDate, r.Colour, r.Decals, r.ExteriorColour,
			r.Flags.Unsigned, r.Flags.RedSlotUnsigned || r.Flags.RedSlotEmpty,
		})
	}
	return t
}

func yardTable(rows []dto.YardRow) export.Table {
	t := export.Table{Columns: []string{
		"Chassis", "Model", "Customer", "Type", "Received",
		"Days In Yard", "Age Bucket", "Model Range", "Function", "Layout", "Wholesale Price",
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Chassis, r.Model, r.Customer, string(r.Type), r.ReceivedAt,
			r.DaysInYard, r.DaysBucket, r.ModelRange, r.Function, r.Layout, r.WholesalePrice,
		})
	}
	return t
}

func onRoadTable(rows []dto.OnRoadRow) export.Table {
	t := export.Table{Columns: []string{
		"Chassis", "PGI Date", "Dealer", "Model", "Customer", "Days Since PGI",
	}}
	for _, r := range rows {
		var days any
		if r.DaysSincePGI != nil {
			days = *r.DaysSincePGI
		}
		t.Rows = append(t.Rows, []any{r.Chassis, r.PGIDate, r.Dealer, r.Model, r.Customer, days})
	}
	return t
}
