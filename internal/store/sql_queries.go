// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-tracker/models"
)

const (
	itemsTable    = "items"
	auditLogTable = "audit_log"
)

var itemColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"owner_id",
	"created_at",
	"updated_at",
}

var auditColumns = []string{
	"correlation_id",
	"ts",
	"user_id",
	"action",
	"resource_id",
	"status",
	"details",
}

func buildInsertItemQuery(b sq.StatementBuilderType, item models.Item) (string, []any, error) {
	query, args, err := b.Insert(itemsTable).
		Columns("name", "description", "price", "owner_id", "created_at", "updated_at").
		Values(item.Name, nullable(item.Description), nullable(item.Price), nullable(item.OwnerID), item.CreatedAt, item.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectItemQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListItemsQuery(b sq.StatementBuilderType, opts models.ItemListOptions) (string, []any, error) {
	qb := b.Select(itemColumns...).
		From(itemsTable).
		OrderBy("id")
	if opts.Limit > 0 {
		qb = qb.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		qb = qb.Offset(uint64(opts.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateItemQuery(b sq.StatementBuilderType, item models.Item) (string, []any, error) {
	query, args, err := b.Update(itemsTable).
		Set("name", item.Name).
		Set("description", nullable(item.Description)).
		Set("price", nullable(item.Price)).
		Set("updated_at", item.UpdatedAt).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING owner_id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteItemQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Delete(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertAuditEntriesQuery builds one multi-row INSERT for the batch.
// Details are stored as a JSON object.
func buildInsertAuditEntriesQuery(b sq.StatementBuilderType, entries []models.AuditLogEntry) (string, []any, error) {
	if len(entries) == 0 {
		return "", nil, fmt.Errorf("%w: empty audit batch", ErrBuildingSQLQuery)
	}

	qb := b.Insert(auditLogTable).Columns(auditColumns...)
	for _, e := range entries {
		details, err := marshalDetails(e.Details)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		qb = qb.Values(e.CorrelationID, e.Timestamp, nullable(e.UserID), e.Action, e.ResourceID, string(e.Status), details)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectAuditEntriesQuery(b sq.StatementBuilderType, correlationID string) (string, []any, error) {
	query, args, err := b.Select(auditColumns...).
		From(auditLogTable).
		Where(sq.Eq{"correlation_id": correlationID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func marshalDetails(details map[string]string) (string, error) {
	if len(details) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("error marshaling audit details: %w", err)
	}
	return string(b), nil
}

func unmarshalDetails(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var details map[string]string
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil, fmt.Errorf("error unmarshaling audit details: %w", err)
	}
	return details, nil
}

// nullable converts an optional value into a driver argument: nil for an
// absent value, the dereferenced value otherwise.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
