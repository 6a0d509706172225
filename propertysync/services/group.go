package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/natserract/hubspot/propertysync/schema/postgres"
	"go.uber.org/zap"
)

const upsertGroupSQL = `
INSERT INTO property_groups (portal_id, name, display_name, display_order, synced_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (portal_id, name) DO UPDATE
SET display_name = EXCLUDED.display_name,
    display_order = EXCLUDED.display_order,
    synced_at = EXCLUDED.synced_at`

const upsertPropertySQL = `
INSERT INTO properties (portal_id, name, group_name, label, description, type, field_type, form_field, display_order, options, synced_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, now())
ON CONFLICT (portal_id, name) DO UPDATE
SET group_name = EXCLUDED.group_name,
    label = EXCLUDED.label,
    description = EXCLUDED.description,
    type = EXCLUDED.type,
    field_type = EXCLUDED.field_type,
    form_field = EXCLUDED.form_field,
    display_order = EXCLUDED.display_order,
    options = EXCLUDED.options,
    synced_at = EXCLUDED.synced_at`

// GroupService handles property group persistence
type GroupService struct {
	db     postgres.Querier
	logger *zap.Logger
}

// NewGroupService creates a new group service
func NewGroupService(db postgres.Querier, logger *zap.Logger) *GroupService {
	return &GroupService{
		db:     db,
		logger: logger,
	}
}

// SaveGroup saves or updates a property group
func (g *GroupService) SaveGroup(ctx context.Context, group hubspot.Group) error {
	_, err := g.db.Exec(ctx, upsertGroupSQL,
		int64(group.PortalID), group.Name, group.DisplayName, group.DisplayOrder)
	if err != nil {
		g.logger.Error("Failed to save group",
			zap.String("group_name", group.Name),
			zap.Error(err))
		return fmt.Errorf("failed to save group %s: %w", group.Name, err)
	}

	g.logger.Debug("Saved group", zap.String("group_name", group.Name))
	return nil
}

// SaveProperties saves the group's properties in one transaction. Either all
// of them are written or none are.
func (g *GroupService) SaveProperties(ctx context.Context, group hubspot.Group) error {
	if len(group.Properties) == 0 {
		return nil
	}

	tx, err := g.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, prop := range group.Properties {
		args, err := propertyArgs(group.PortalID, prop)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertPropertySQL, args...); err != nil {
			g.logger.Error("Failed to save property",
				zap.String("group_name", group.Name),
				zap.String("property_name", prop.Name),
				zap.Error(err))
			return fmt.Errorf("failed to save property %s: %w", prop.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	g.logger.Debug("Saved properties batch",
		zap.String("group_name", group.Name),
		zap.Int("count", len(group.Properties)))
	return nil
}

// propertyArgs flattens prop into upsertPropertySQL's arguments. Options are
// stored in their wire form.
func propertyArgs(portalID hubspot.PortalID, prop hubspot.Property) ([]any, error) {
	options := prop.Options
	if options == nil {
		options = []hubspot.PropertyOption{}
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options of %s: %w", prop.Name, err)
	}

	return []any{
		int64(portalID),
		prop.Name,
		prop.GroupName,
		prop.Label,
		prop.Description,
		prop.Type.String(),
		prop.FieldType.String(),
		prop.FormField,
		prop.DisplayOrder,
		string(optionsJSON),
	}, nil
}
