package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

// itemRepository is the SQL-backed implementation of [ItemRepository]. It
// executes item CRUD operations against the "items" table using the
// embedded [*DB] connection, which supplies the driver's placeholder
// format.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database failures are logged with the
// request's correlation id.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Str("driver", db.driver).Msg("creating item repository")
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateItem inserts item and returns it with the server-assigned ID.
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.builder, item)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.CreateItem").Msg("failed to create query")
		return models.Item{}, err
	}

	var id int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "itemRepository.CreateItem").Msg("failed to insert item")
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotSaved
		}
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	item.ID = id
	return item, nil
}

// GetItem returns the item with the given id or [ErrItemNotFound].
func (r *itemRepository) GetItem(ctx context.Context, id int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemQuery(r.builder, id)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.GetItem").Msg("failed to create query")
		return models.Item{}, err
	}

	item, err := scanItem(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Int64("item_id", id).
			Msg("failed to scan item row")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// ListItems returns items ordered by id, bounded by opts.
func (r *itemRepository) ListItems(ctx context.Context, opts models.ItemListOptions) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListItemsQuery(r.builder, opts)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.ListItems").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.ListItems").Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, 50)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "itemRepository.ListItems").Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "itemRepository.ListItems").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// UpdateItem overwrites the mutable fields of an existing item and returns
// the stored result. It returns [ErrItemNotFound] when no row matches.
func (r *itemRepository) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(r.builder, item)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.UpdateItem").Msg("failed to create query")
		return models.Item{}, err
	}

	var ownerID sql.NullInt64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&ownerID, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Int64("item_id", item.ID).
			Msg("failed to update item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	item.OwnerID = nil
	if ownerID.Valid {
		item.OwnerID = &ownerID.Int64
	}
	return item, nil
}

// DeleteItem removes the item with the given id or returns [ErrItemNotFound].
func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemQuery(r.builder, id)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.DeleteItem").Msg("failed to create query")
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Int64("item_id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		item        models.Item
		description sql.NullString
		price       sql.NullFloat64
		ownerID     sql.NullInt64
	)

	if err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&price,
		&ownerID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return models.Item{}, err
	}

	if description.Valid {
		item.Description = &description.String
	}
	if price.Valid {
		item.Price = &price.Float64
	}
	if ownerID.Valid {
		item.OwnerID = &ownerID.Int64
	}

	return item, nil
}
