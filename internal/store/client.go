// Package store wraps the Firebase Realtime Database paths the portal
// reads and writes. Reads that feed the aggregation pipeline come back as
// raw snapshots for internal/normalize; shapes the service itself writes
// (dealer configs, shows) decode directly.
package store

import (
	"context"
	"encoding/json"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
)

// Database path layout. Everything the portal touches lives under these.
const (
	PathSchedule      = "schedule"
	PathPGIRecords    = "pgirecord"
	PathDealerConfigs = "dealerConfigs"
	PathTierSettings  = "tierConfig/settings"
	PathDefaultLayout = "tierConfig/defaultLayout"
	PathYardSize      = "yardsize"
	PathModelAnalysis = "modelanalysis"
	PathShowOrders    = "showOrders"
	PathShowTasks     = "showTasks"
)

func PathYard(dealerSlug string) string         { return "yardstock/" + dealerSlug }
func PathHandover(dealerSlug string) string     { return "handover/" + dealerSlug }
func PathDealerLayout(dealerSlug string) string { return "tierConfig/dealerLayouts/" + dealerSlug }

// Client is the raw-snapshot reader shared by the feed watcher and the
// stores. It satisfies feed.Getter.
type Client struct {
	db *db.Client
}

func NewClient(database *db.Client) *Client {
	return &Client{db: database}
}

func (c *Client) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.db.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read "+path, err)
	}
	return raw, nil
}
