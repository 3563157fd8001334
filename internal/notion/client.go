package notion

import (
	"context"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/clintrovert/dday-labeler/pkg/types"
)

// Client wraps the Notion API for prefix discovery and task-page lookup.
type Client struct {
	api          *notionapi.Client
	logger       *zap.Logger
	dateProperty string
}

// NewClient creates a new Notion client. dateProperty names the date-range
// property holding the due date on task pages.
func NewClient(token, dateProperty string, logger *zap.Logger) *Client {
	return &Client{
		api:          notionapi.NewClient(notionapi.Token(token)),
		logger:       logger,
		dateProperty: dateProperty,
	}
}

// DiscoverPrefixes enumerates every database the integration can see and
// emits one PrefixEntry per unique_id property. A database may contribute
// zero, one, or several entries. Results carry no ordering guarantee.
func (c *Client) DiscoverPrefixes(ctx context.Context) ([]types.PrefixEntry, error) {
	var entries []types.PrefixEntry

	req := &notionapi.SearchRequest{
		Filter: notionapi.SearchFilter{
			Value:    "database",
			Property: "object",
		},
	}

	for {
		resp, err := c.api.Search.Do(ctx, req)
		if err != nil {
			return nil, &RegistryError{Err: err}
		}

		for _, obj := range resp.Results {
			db, ok := obj.(*notionapi.Database)
			if !ok {
				continue
			}
			for name, prop := range db.Properties {
				cfg, ok := prop.(*notionapi.UniqueIDPropertyConfig)
				if !ok || cfg.UniqueID.Prefix == "" {
					continue
				}
				entries = append(entries, types.PrefixEntry{
					Prefix:       cfg.UniqueID.Prefix,
					DatabaseID:   string(db.ID),
					PropertyName: name,
				})
			}
		}

		if !resp.HasMore {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	c.logger.Info("discovered unique id prefixes", zap.Int("count", len(entries)))

	return entries, nil
}

// FindTaskPage looks up the page whose unique_id property equals number.
// Returns nil, nil when no page matches; the store does not guarantee
// uniqueness to the caller, so the first result in store order wins.
func (c *Client) FindTaskPage(ctx context.Context, databaseID, propertyName string, number int) (*types.TaskPage, error) {
	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: propertyName,
			UniqueId: &notionapi.UniqueIdFilterCondition{
				Equals: &number,
			},
		},
	})
	if err != nil {
		return nil, &ResolverError{DatabaseID: databaseID, Err: err}
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	page := resp.Results[0]
	return &types.TaskPage{
		PageID:  string(page.ID),
		DueDate: c.extractDueDate(&page),
	}, nil
}

// extractDueDate reads the configured date-range property, preferring the
// range's end over its start. Empty string means no usable date.
func (c *Client) extractDueDate(page *notionapi.Page) string {
	prop, ok := page.Properties[c.dateProperty]
	if !ok {
		return ""
	}

	dateProp, ok := prop.(*notionapi.DateProperty)
	if !ok || dateProp.Date == nil {
		return ""
	}

	value := dateProp.Date.End
	if value == nil {
		value = dateProp.Date.Start
	}
	if value == nil {
		return ""
	}

	return time.Time(*value).Format(time.RFC3339)
}
