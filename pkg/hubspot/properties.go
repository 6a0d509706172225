package hubspot

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// GetProperties retrieves every contact property of the portal
func (h *HubSpot) GetProperties(ctx context.Context) ([]Property, error) {
	var props []Property
	if err := h.call(ctx, http.MethodGet, nil, nil, &props,
		"properties", "v1", "contacts", "properties"); err != nil {
		h.logger.Error("Get properties failed", zap.Error(err))
		return nil, err
	}

	h.logger.Info("Successfully retrieved properties", zap.Int("items_count", len(props)))
	return props, nil
}

// CreateProperty defines a new contact property
func (h *HubSpot) CreateProperty(ctx context.Context, prop Property) (*Property, error) {
	var created Property
	if err := h.call(ctx, http.MethodPost, nil, prop, &created,
		"properties", "v1", "contacts", "properties"); err != nil {
		h.logger.Error("Create property failed", zap.String("name", prop.Name), zap.Error(err))
		return nil, err
	}
	return &created, nil
}

// GetGroups retrieves the contact property groups, optionally with the
// properties each one holds
func (h *HubSpot) GetGroups(ctx context.Context, includeProperties bool) ([]Group, error) {
	var query url.Values
	if includeProperties {
		query = url.Values{"includeProperties": {"true"}}
	}

	var groups []Group
	if err := h.call(ctx, http.MethodGet, query, nil, &groups,
		"properties", "v1", "contacts", "groups"); err != nil {
		h.logger.Error("Get groups failed", zap.Error(err))
		return nil, err
	}

	h.logger.Info("Successfully retrieved groups", zap.Int("items_count", len(groups)))
	return groups, nil
}

// CreateGroup defines a new contact property group
func (h *HubSpot) CreateGroup(ctx context.Context, group Group) (*Group, error) {
	var created Group
	if err := h.call(ctx, http.MethodPost, nil, group, &created,
		"properties", "v1", "contacts", "groups"); err != nil {
		h.logger.Error("Create group failed", zap.String("name", group.Name), zap.Error(err))
		return nil, err
	}
	return &created, nil
}
