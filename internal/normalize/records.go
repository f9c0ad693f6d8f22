package normalize

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roamerv/dealer-backend/internal/models"
)

// Alias tables, oldest feed spelling last. First present-and-non-empty wins.
var (
	chassisAliases  = []string{"chassis", "Chassis", "chassisNo", "ChassisNumber"}
	customerAliases = []string{"customer", "Customer", "customerName", "CustomerName"}
	dealerAliases   = []string{"dealer", "Dealer", "dealerName", "DealerName"}
	modelAliases    = []string{"model", "Model", "modelName"}
	statusAliases   = []string{"productionStatus", "ProductionStatus", "status", "Status"}
	forecastAliases = []string{"forecastProductionDate", "ForecastProductionDate", "forecastDate", "ProductionDate"}
	signedAliases   = []string{"signedPlansReceived", "SignedPlansReceived", "signedPlans"}
	priceAliases    = []string{"wholesalePrice", "poFinalInvoiceValue", "POFinalInvoiceValue", "_source.poFinalInvoiceValue"}
)

// ScheduleOptions relax the default schedule-feed row filter. By default a
// row needs a non-empty chassis, a non-empty customer, and a status other
// than finished; each requirement has its own override.
type ScheduleOptions struct {
	IncludeNoChassis  bool
	IncludeNoCustomer bool
	IncludeFinished   bool
}

func finished(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "finished" || s == "finish"
}

// Orders normalizes a schedule snapshot into canonical orders.
func Orders(raw json.RawMessage, opts ScheduleOptions) []models.Order {
	rows := Rows(raw)
	out := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		o := models.Order{
			Chassis:                r.String(chassisAliases...),
			HasChassis:             r.Has(chassisAliases...),
			Customer:               r.String(customerAliases...),
			Dealer:                 r.String(dealerAliases...),
			Model:                  r.String(modelAliases...),
			ModelYear:              r.String("modelYear", "ModelYear", "year"),
			ForecastProductionDate: r.String(forecastAliases...),
			ProductionStatus:       r.String(statusAliases...),
			RequestedDeliveryDate:  r.String("requestedDeliveryDate", "RequestedDeliveryDate"),
			SignedPlansReceived:    r.String(signedAliases...),
			OrderReceivedDate:      r.String("orderReceivedDate", "OrderReceivedDate"),
			Colour:                 r.String("colour", "Colour", "color"),
			Decals:                 r.String("decals", "Decals"),
			ExteriorColour:         r.String("exteriorColour", "ExteriorColour", "exteriorColor"),
			SortIndex1:             r.String("sortIndex1", "SortIndex1"),
			SortRank1:              r.String("sortRank1", "SortRank1"),
			SortRank2:              r.String("sortRank2", "SortRank2"),
		}
		if o.Chassis == "" && !opts.IncludeNoChassis {
			continue
		}
		if o.Customer == "" && !opts.IncludeNoCustomer {
			continue
		}
		if finished(o.ProductionStatus) && !opts.IncludeFinished {
			continue
		}
		out = append(out, o)
	}
	sortOrders(out)
	return out
}

func sortOrders(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.SortRank1 != b.SortRank1 {
			return a.SortRank1 < b.SortRank1
		}
		if a.SortRank2 != b.SortRank2 {
			return a.SortRank2 < b.SortRank2
		}
		return a.Chassis < b.Chassis
	})
}

// YardEntries normalizes a yardstock/{dealerSlug} snapshot.
func YardEntries(raw json.RawMessage, dealerSlug string) []models.YardStockEntry {
	rows := Rows(raw)
	out := make([]models.YardStockEntry, 0, len(rows))
	for _, r := range rows {
		e := models.YardStockEntry{
			Chassis:    r.String(chassisAliases...),
			DealerSlug: dealerSlug,
			ReceivedAt: r.String("receivedAt", "ReceivedAt", "received"),
			Model:      r.String(modelAliases...),
			Customer:   r.String(customerAliases...),
		}
		if e.Chassis == "" {
			e.Chassis = r.ID
		}
		if e.Chassis == "" {
			continue
		}
		if t := r.String("type", "Type"); t == string(models.EntryTypeStock) || t == string(models.EntryTypeCustomer) {
			e.Type = models.EntryType(t)
		} else {
			e.Type = models.ClassifyEntryType(e.Customer)
		}
		if price := r.Number(priceAliases...); price != 0 {
			d := decimal.NewFromFloat(price)
			e.WholesalePrice = &d
		}
		out = append(out, e)
	}
	return out
}

// PGIRecords normalizes the pgirecord snapshot. History rows stay hidden
// unless includeHistory is set.
func PGIRecords(raw json.RawMessage, includeHistory bool) []models.PGIRecord {
	rows := Rows(raw)
	out := make([]models.PGIRecord, 0, len(rows))
	for _, r := range rows {
		rec := models.PGIRecord{
			Chassis:  r.String(chassisAliases...),
			PGIDate:  r.String("pgiDate", "PGIDate", "pgi"),
			Dealer:   r.String(dealerAliases...),
			Model:    r.String(modelAliases...),
			Customer: r.String(customerAliases...),
			History:  r.Bool("history", "History"),
		}
		if rec.Chassis == "" {
			rec.Chassis = r.ID
		}
		if rec.Chassis == "" {
			continue
		}
		if rec.History && !includeHistory {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Handovers normalizes a handover/{dealerSlug} snapshot.
func Handovers(raw json.RawMessage, dealerSlug string) []models.HandoverRecord {
	rows := Rows(raw)
	out := make([]models.HandoverRecord, 0, len(rows))
	for _, r := range rows {
		h := models.HandoverRecord{
			Chassis:    r.String(chassisAliases...),
			HandoverAt: r.String("handoverAt", "HandoverAt", "handedOverAt"),
			DealerSlug: dealerSlug,
			DealerName: r.String("dealerName", "DealerName"),
			Model:      r.String(modelAliases...),
			Customer:   r.String(customerAliases...),
		}
		if h.Chassis == "" {
			h.Chassis = r.ID
		}
		if h.Chassis == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}

// ModelSpecs normalizes the modelanalysis reference table into a lookup
// keyed by lower-cased model name.
func ModelSpecs(raw json.RawMessage) map[string]models.ModelSpec {
	rows := Rows(raw)
	out := make(map[string]models.ModelSpec, len(rows))
	for _, r := range rows {
		spec := models.ModelSpec{
			Model:      r.String(modelAliases...),
			ModelRange: r.String("modelRange", "ModelRange", "range"),
			Function:   r.String("function", "Function"),
			Layout:     r.String("layout", "Layout"),
			Axle:       r.String("axle", "Axle"),
			Length:     r.String("length", "Length"),
			Height:     r.String("height", "Height"),
		}
		if spec.Model == "" {
			spec.Model = r.ID
		}
		if spec.Model == "" {
			continue
		}
		out[strings.ToLower(spec.Model)] = spec
	}
	return out
}

// TierSlots normalizes a tier layout snapshot, sorted by SortOrder.
func TierSlots(raw json.RawMessage) []models.TierSlot {
	rows := Rows(raw)
	out := make([]models.TierSlot, 0, len(rows))
	for _, r := range rows {
		slot := models.TierSlot{
			TierCode:       r.String("tierCode", "TierCode", "code"),
			Name:           r.String("name", "Name"),
			Description:    r.String("description", "Description"),
			AssignedModels: r.Strings("assignedModels", "AssignedModels", "models"),
			SortOrder:      int(r.Number("sortOrder", "SortOrder")),
		}
		if slot.TierCode == "" {
			slot.TierCode = r.ID
		}
		if slot.TierCode == "" {
			continue
		}
		out = append(out, slot)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
