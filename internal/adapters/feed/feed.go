// Package feed fetches externally hosted tabular feeds and maps their
// rows onto domain models.
package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/preserve/internal/domain/model"
	"github.com/okian/preserve/pkg/logger"
	"github.com/okian/preserve/pkg/metrics"
)

// defaultFetchTimeout bounds a single feed download.
const defaultFetchTimeout = 30 * time.Second

// Column names as they appear in the sheets. Lookups tolerate case and
// padding drift per Table semantics.
const (
	colProperty = "Property"
	colDetails  = "Details"
	colCrew     = "Crew"
	colDueDate  = "Due Date"
	colStatus   = "Status"
	colReason   = "Reason"

	colWONumber         = "W/O Number"
	colAddress          = "Address"
	colLatitude         = "Latitude"
	colLongitude        = "Longitude"
	colVendor           = "Vendor"
	colWOType           = "W/O Type"
	colCompleteDate     = "Complete Date"
	colNotes            = "Notes"
	colDetailedServices = "Detailed Services"
	colAttachPhotos     = "Attach Photos"
)

// UpdateColumns is the expected column set of the status/updates feed.
func UpdateColumns() []string {
	return []string{colProperty, colDetails, colCrew, colDueDate, colStatus, colReason}
}

// PropertyColumns is the expected column set of the geocoded property feed.
func PropertyColumns() []string {
	return []string{
		colWONumber, colAddress, colLatitude, colLongitude, colStatus,
		colVendor, colWOType, colDueDate, colCompleteDate, colNotes,
		colDetailedServices, colAttachPhotos,
	}
}

// Client downloads CSV exports over HTTP.
type Client struct {
	http   *http.Client
	logger logger.Logger
}

// NewClient creates a feed client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: defaultFetchTimeout},
		logger: nil, // resolved lazily so tests can construct before Init
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("feed")
	}

	return c
}

// FetchTable downloads the CSV export at url and builds its Table. The
// name labels the feed in logs and metrics.
func (c *Client) FetchTable(ctx context.Context, name, url string) (*Table, error) {
	metrics.RecordFeedFetch(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordFeedFetchError(name)
		return nil, fmt.Errorf("build %s request: %w", name, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFeedFetchError(name)
		return nil, fmt.Errorf("fetch %s feed: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFeedFetchError(name)
		return nil, fmt.Errorf("fetch %s feed: %w (%d)", name, ErrBadStatus, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // sheets export ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		metrics.RecordFeedFetchError(name)
		return nil, fmt.Errorf("parse %s feed: %w: %v", name, ErrMalformed, err)
	}
	if len(rows) == 0 {
		return Empty(), nil
	}

	table := NewTable(rows[0], rows[1:])
	metrics.UpdateFeedRows(name, table.Len())
	c.logger.Debug(ctx, "fetched feed",
		logger.String("feed", name),
		logger.Int("rows", table.Len()),
	)
	return table, nil
}

// Updates maps the status/updates table onto work-order rows. Missing
// columns surface as empty fields, never as errors.
func Updates(t *Table) []model.WorkOrderUpdate {
	out := make([]model.WorkOrderUpdate, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, model.WorkOrderUpdate{
			PropertyID: t.Value(i, colProperty),
			Details:    t.Value(i, colDetails),
			CrewName:   t.Value(i, colCrew),
			DueDateRaw: t.Value(i, colDueDate),
			StatusText: t.Value(i, colStatus),
			Reason:     t.Value(i, colReason),
		})
	}
	return out
}

// Properties maps the geocoded table onto property rows. Rows without a
// usable coordinate pair are dropped; the second return is the drop count.
func Properties(t *Table) ([]model.Property, int) {
	out := make([]model.Property, 0, t.Len())
	dropped := 0
	for i := 0; i < t.Len(); i++ {
		lat, latErr := strconv.ParseFloat(t.Value(i, colLatitude), 64)
		lon, lonErr := strconv.ParseFloat(t.Value(i, colLongitude), 64)
		if latErr != nil || lonErr != nil || !finite(lat) || !finite(lon) {
			dropped++
			continue
		}
		out = append(out, model.Property{
			WONumber:         t.Value(i, colWONumber),
			Address:          t.Value(i, colAddress),
			Latitude:         lat,
			Longitude:        lon,
			Status:           t.Value(i, colStatus),
			Vendor:           t.Value(i, colVendor),
			WOType:           t.Value(i, colWOType),
			DueDate:          t.Value(i, colDueDate),
			CompleteDate:     t.Value(i, colCompleteDate),
			Notes:            t.Value(i, colNotes),
			DetailedServices: t.Value(i, colDetailedServices),
			AttachPhotos:     t.Value(i, colAttachPhotos),
		})
	}
	return out, dropped
}

// finite rejects NaN and infinities, which ParseFloat accepts as literals
// but which have no place on a map and break JSON encoding downstream.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
