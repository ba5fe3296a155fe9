package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// stateRepository is the SQL-backed implementation of [StateRepository].
// State blobs are opaque to the store and kept base64-encoded so the schema
// stays portable between PostgreSQL and SQLite.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type stateRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStateRepository constructs a [StateRepository] backed by the provided
// database connection and logger.
func NewStateRepository(db *DB, logger *logger.Logger) StateRepository {
	logger.Debug().Msg("creating state repository")
	return &stateRepository{
		db:     db,
		logger: logger,
	}
}

// GetSyncState loads the state blob stored under (device, folder, uuid, counter).
// [ErrStateNotFound] is returned when the key was never issued or has been purged.
func (r *stateRepository) GetSyncState(ctx context.Context, deviceID, folderID string, key synckey.Key) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("state").
		From("sync_states").
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID, "uuid": key.UUID.String(), "counter": key.Counter}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.GetSyncState").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var encoded string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&encoded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		log.Err(err).Str("func", "*stateRepository.GetSyncState").Msg("error scanning state row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.GetSyncState").Msg("stored state is not valid base64")
		return nil, fmt.Errorf("corrupt sync state: %w", err)
	}

	return state, nil
}

// SetSyncState stores the state blob under (device, folder, uuid, counter),
// overwriting any previous blob for the same key.
func (r *stateRepository) SetSyncState(ctx context.Context, deviceID, folderID string, key synckey.Key, state []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("sync_states").
		Columns("device_id", "folder_id", "uuid", "counter", "state", "created_at").
		Values(deviceID, folderID, key.UUID.String(), key.Counter, base64.StdEncoding.EncodeToString(state), time.Now().UTC()).
		Suffix("ON CONFLICT (device_id, folder_id, uuid, counter) DO UPDATE SET state = excluded.state").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.SetSyncState").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*stateRepository.SetSyncState").Msg("error saving sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearSyncStates drops every stored state and fail state for the folder.
func (r *stateRepository) ClearSyncStates(ctx context.Context, deviceID, folderID string) error {
	log := logger.FromContext(ctx)

	for _, table := range []string{"sync_states", "fail_states"} {
		query, args, err := r.db.builder.
			Delete(table).
			Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
			ToSql()
		if err != nil {
			log.Err(err).Str("func", "*stateRepository.ClearSyncStates").Msg("error building query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*stateRepository.ClearSyncStates").Str("table", table).Msg("error clearing states")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// GetFailState reads and deletes the fail state stored under the given key in
// a single transaction, so a replayed request consumes it exactly once.
// (nil, nil) is returned when no fail state exists for the key.
func (r *stateRepository) GetFailState(ctx context.Context, deviceID, folderID string, key synckey.Key) (*models.FailState, error) {
	log := logger.FromContext(ctx)

	where := sq.Eq{"device_id": deviceID, "folder_id": folderID, "uuid": key.UUID.String(), "counter": key.Counter}

	selectQuery, selectArgs, err := r.db.builder.
		Select("payload").
		From("fail_states").
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleteQuery, deleteArgs, err := r.db.builder.
		Delete("fail_states").
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error beginning transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var payload []byte
	if err := tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error scanning fail state row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error consuming fail state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("error committing transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	var state models.FailState
	if err := json.Unmarshal(payload, &state); err != nil {
		log.Err(err).Str("func", "*stateRepository.GetFailState").Msg("stored fail state is not valid JSON")
		return nil, fmt.Errorf("corrupt fail state: %w", err)
	}

	return &state, nil
}

// SetFailState stores the fail state for the folder. Only one fail state per
// (device, folder) pair is kept: a new one replaces whatever was there.
func (r *stateRepository) SetFailState(ctx context.Context, deviceID, folderID string, state *models.FailState) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(state)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.SetFailState").Msg("error marshalling fail state")
		return fmt.Errorf("error marshalling fail state: %w", err)
	}

	if err := r.ClearFailState(ctx, deviceID, folderID); err != nil {
		return err
	}

	query, args, err := r.db.builder.
		Insert("fail_states").
		Columns("device_id", "folder_id", "uuid", "counter", "payload", "created_at").
		Values(deviceID, folderID, state.UUID, state.Counter, payload, time.Now().UTC()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.SetFailState").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*stateRepository.SetFailState").Msg("error saving fail state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearFailState removes any stored fail state for the folder.
func (r *stateRepository) ClearFailState(ctx context.Context, deviceID, folderID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("fail_states").
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.ClearFailState").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*stateRepository.ClearFailState").Msg("error clearing fail state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PurgeSyncStates deletes sync states created before cutoff, except the
// highest counter of each (device, folder, uuid) series so an idle device can
// still resume from its last confirmed key.
func (r *stateRepository) PurgeSyncStates(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("sync_states").
		Where(sq.Lt{"created_at": cutoff.UTC()}).
		Where(`(device_id, folder_id, uuid, counter) NOT IN (
			SELECT device_id, folder_id, uuid, MAX(counter)
			FROM sync_states
			GROUP BY device_id, folder_id, uuid)`).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.PurgeSyncStates").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.PurgeSyncStates").Msg("error purging sync states")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// PurgeFailStates deletes fail states created before cutoff. A fail state
// that old belongs to an exchange the client will never replay.
func (r *stateRepository) PurgeFailStates(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("fail_states").
		Where(sq.Lt{"created_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.PurgeFailStates").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.PurgeFailStates").Msg("error purging fail states")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return removed, nil
}
