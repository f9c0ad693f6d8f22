package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/normalize"
	"github.com/roamerv/dealer-backend/internal/store"
	"github.com/roamerv/dealer-backend/pkg/dates"
)

// yardWriter is the storage interface for yard entries.
type yardWriter interface {
	Put(ctx context.Context, e models.YardStockEntry) error
	PutBatch(ctx context.Context, entries []models.YardStockEntry) (int, []error)
	Delete(ctx context.Context, dealerSlug, chassis string) error
	Get(ctx context.Context, dealerSlug, chassis string) (*models.YardStockEntry, error)
}

type pgiWriter interface {
	Delete(ctx context.Context, chassis string) error
	MarkHistory(ctx context.Context, chassis string) error
}

type handoverWriter interface {
	Put(ctx context.Context, h models.HandoverRecord) error
}

type yardService struct {
	feeds     snapshotSource
	yards     yardWriter
	pgis      pgiWriter
	handovers handoverWriter
	clockNow  func() time.Time
}

func NewYardService(feeds snapshotSource, yards yardWriter, pgis pgiWriter, handovers handoverWriter) *yardService {
	return &yardService{
		feeds:     feeds,
		yards:     yards,
		pgis:      pgis,
		handovers: handovers,
		clockNow:  time.Now,
	}
}

// DaysBucket places a days-in-yard age into its fixed bucket.
func DaysBucket(days int) string {
	switch {
	case days <= 30:
		return dto.BucketUnder30
	case days <= 90:
		return dto.Bucket31To90
	case days <= 180:
		return dto.Bucket91To180
	default:
		return dto.BucketOver180
	}
}

// List returns the dealer's yard with derived ages, joined classifications
// and facet filtering applied. Split and bucket counts cover the whole
// yard, not the filtered rows.
func (s *yardService) List(ctx context.Context, dealerSlug string, filters dto.YardFilters) (dto.YardResult, error) {
	now := s.clockNow()
	entries := normalize.YardEntries(snapshotOrEmpty(ctx, s.feeds, store.PathYard(dealerSlug)), dealerSlug)
	specs := normalize.ModelSpecs(snapshotOrEmpty(ctx, s.feeds, store.PathModelAnalysis))

	out := dto.YardResult{Dealer: dealerSlug, BucketCounts: map[string]int{}}
	for _, e := range entries {
		row := buildYardRow(e, specs, now)

		out.Split.Total++
		if e.Type == models.EntryTypeCustomer {
			out.Split.Customer++
		} else {
			out.Split.Stock++
		}
		out.BucketCounts[row.DaysBucket]++

		if yardRowPasses(row, filters) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func buildYardRow(e models.YardStockEntry, specs map[string]models.ModelSpec, now time.Time) dto.YardRow {
	row := dto.YardRow{
		YardStockEntry: e,
		DaysInYard:     dates.DaysSince(e.ReceivedAt, now),
		ModelRange:     models.UnknownClassification,
		Function:       models.UnknownClassification,
		Layout:         models.UnknownClassification,
		Axle:           models.UnknownClassification,
		Length:         models.UnknownClassification,
		Height:         models.UnknownClassification,
	}
	row.DaysBucket = DaysBucket(row.DaysInYard)

	if spec, ok := specs[strings.ToLower(e.Model)]; ok {
		if spec.ModelRange != "" {
			row.ModelRange = spec.ModelRange
		}
		if spec.Function != "" {
			row.Function = spec.Function
		}
		if spec.Layout != "" {
			row.Layout = spec.Layout
		}
		if spec.Axle != "" {
			row.Axle = spec.Axle
		}
		if spec.Length != "" {
			row.Length = spec.Length
		}
		if spec.Height != "" {
			row.Height = spec.Height
		}
	}
	return row
}

func yardRowPasses(row dto.YardRow, f dto.YardFilters) bool {
	if !facetSkipped(f.ModelRange) && !facetMatches(row.ModelRange, f.ModelRange) {
		return false
	}
	if !facetSkipped(f.Function) && !facetMatches(row.Function, f.Function) {
		return false
	}
	if !facetSkipped(f.Type) && !facetMatches(string(row.Type), f.Type) {
		return false
	}
	if !facetSkipped(f.DaysBucket) && row.DaysBucket != f.DaysBucket {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		haystack := strings.ToLower(strings.Join([]string{row.Chassis, row.Model, row.Customer}, " "))
		if !strings.Contains(haystack, search) {
			return false
		}
	}
	return true
}

// Receive moves an in-transit vehicle into the dealer's yard: the yard
// entry is created and the PGI record consumed.
func (s *yardService) Receive(ctx context.Context, dealerSlug, chassis string) (*models.YardStockEntry, error) {
	pgis := normalize.PGIRecords(snapshotOrEmpty(ctx, s.feeds, store.PathPGIRecords), false)
	var rec *models.PGIRecord
	for i := range pgis {
		if strings.EqualFold(pgis[i].Chassis, chassis) {
			rec = &pgis[i]
			break
		}
	}
	if rec == nil {
		return nil, errs.NewNotFoundError("no vehicle on the road with chassis " + chassis)
	}

	entry := models.YardStockEntry{
		Chassis:    rec.Chassis,
		DealerSlug: dealerSlug,
		ReceivedAt: s.clockNow().Format(time.RFC3339),
		Model:      rec.Model,
		Customer:   rec.Customer,
		Type:       models.ClassifyEntryType(rec.Customer),
	}
	if err := s.yards.Put(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.pgis.Delete(ctx, rec.Chassis); err != nil {
		return nil, err
	}
	return &entry, nil
}

// HidePGI flags an in-transit record as history so the on-the-road views
// stop showing it while the record itself survives.
func (s *yardService) HidePGI(ctx context.Context, chassis string) error {
	pgis := normalize.PGIRecords(snapshotOrEmpty(ctx, s.feeds, store.PathPGIRecords), true)
	for i := range pgis {
		if strings.EqualFold(pgis[i].Chassis, chassis) {
			return s.pgis.MarkHistory(ctx, pgis[i].Chassis)
		}
	}
	return errs.NewNotFoundError("no pgi record with chassis " + chassis)
}

// Dispatch removes a yard entry without a handover (e.g. transferred back
// to the factory or to another dealer).
func (s *yardService) Dispatch(ctx context.Context, dealerSlug, chassis string) error {
	if _, err := s.yards.Get(ctx, dealerSlug, chassis); err != nil {
		return err
	}
	return s.yards.Delete(ctx, dealerSlug, chassis)
}

// Handover records a customer handover and removes the yard entry.
func (s *yardService) Handover(ctx context.Context, dealerSlug, dealerName, chassis string) (*models.HandoverRecord, error) {
	entry, err := s.yards.Get(ctx, dealerSlug, chassis)
	if err != nil {
		return nil, err
	}
	record := models.HandoverRecord{
		Chassis:    entry.Chassis,
		HandoverAt: s.clockNow().Format(time.RFC3339),
		DealerSlug: dealerSlug,
		DealerName: dealerName,
		Model:      entry.Model,
		Customer:   entry.Customer,
	}
	if err := s.handovers.Put(ctx, record); err != nil {
		return nil, err
	}
	if err := s.yards.Delete(ctx, dealerSlug, chassis); err != nil {
		return nil, err
	}
	return &record, nil
}

// BulkImport loads yard entries from an admin CSV upload. Header names
// follow the same aliasing rules as the feeds; rows that cannot produce a
// chassis are skipped and reported, never fatal.
func (s *yardService) BulkImport(ctx context.Context, dealerSlug string, r io.Reader) (dto.BulkImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return dto.BulkImportResult{}, errs.NewValidationError("cannot read CSV header: " + err.Error())
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := cols[name]; ok && i < len(record) {
				if v := strings.TrimSpace(record[i]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	result := dto.BulkImportResult{}
	var entries []models.YardStockEntry
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		chassis := field(record, "chassis", "chassisno", "chassis number")
		if chassis == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing chassis", line))
			continue
		}
		receivedAt := s.clockNow().Format(time.RFC3339)
		if d := dates.ParseFlexible(field(record, "receivedat", "received")); d != nil {
			receivedAt = d.Format(time.RFC3339)
		}
		customer := field(record, "customer", "customername")
		entry := models.YardStockEntry{
			Chassis:    chassis,
			DealerSlug: dealerSlug,
			ReceivedAt: receivedAt,
			Model:      field(record, "model"),
			Customer:   customer,
			Type:       models.ClassifyEntryType(customer),
		}
		if price := field(record, "wholesaleprice", "wholesale"); price != "" {
			if d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(price, "$"), ",", "")); err == nil {
				entry.WholesalePrice = &d
			}
		}
		entries = append(entries, entry)
	}

	written, failures := s.yards.PutBatch(ctx, entries)
	result.Imported = written
	for _, f := range failures {
		result.Skipped++
		result.Errors = append(result.Errors, f.Error())
	}
	return result, nil
}
