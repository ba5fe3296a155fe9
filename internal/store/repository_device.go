package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/models"
)

// deviceRepository is the SQL-backed implementation of [DeviceRepository].
// The folder hierarchy cache, supported-field declarations and saved content
// parameters are stored as JSON text columns so the schema stays portable
// between PostgreSQL and SQLite.
type deviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeviceRepository constructs a [DeviceRepository] backed by the provided
// database connection and logger.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating device repository")
	return &deviceRepository{
		db:     db,
		logger: logger,
	}
}

// RegisterDevice records the device if it has not been seen before. A fresh
// device starts with an empty hierarchy cache, so hierarchy sync is required.
func (r *deviceRepository) RegisterDevice(ctx context.Context, deviceID, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("devices").
		Columns("device_id", "user_id", "hierarchy_sync_required", "created_at").
		Values(deviceID, userID, true, time.Now().UTC()).
		Suffix("ON CONFLICT (device_id) DO NOTHING").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.RegisterDevice").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*deviceRepository.RegisterDevice").Msg("error registering device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// SetHierarchySyncRequired flips the per-device flag telling the next sync
// exchange that the folder hierarchy must be refreshed first.
func (r *deviceRepository) SetHierarchySyncRequired(ctx context.Context, deviceID string, required bool) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("devices").
		Set("hierarchy_sync_required", required).
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetHierarchySyncRequired").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetHierarchySyncRequired").Msg("error updating device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// HierarchySyncRequired reports whether the device must refresh its folder
// hierarchy before content sync can proceed. An unknown device counts as
// requiring hierarchy sync.
func (r *deviceRepository) HierarchySyncRequired(ctx context.Context, deviceID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("hierarchy_sync_required").
		From("devices").
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.HierarchySyncRequired").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var required bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&required); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		log.Err(err).Str("func", "*deviceRepository.HierarchySyncRequired").Msg("error scanning device row")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return required, nil
}

// SetFolders replaces the device's folder hierarchy cache with the given set.
// Positions are assigned from slice order when not set explicitly.
func (r *deviceRepository) SetFolders(ctx context.Context, deviceID string, folders []Folder) error {
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := r.db.builder.
		Delete("device_folders").
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetFolders").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetFolders").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetFolders").Msg("error clearing hierarchy cache")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for i, folder := range folders {
		position := folder.Position
		if position == 0 {
			position = i
		}

		insertQuery, insertArgs, err := r.db.builder.
			Insert("device_folders").
			Columns("device_id", "folder_id", "content_class", "position", "created_at").
			Values(deviceID, folder.FolderID, string(folder.Class), position, time.Now().UTC()).
			ToSql()
		if err != nil {
			log.Err(err).Str("func", "*deviceRepository.SetFolders").Msg("error building query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*deviceRepository.SetFolders").Str("folder", folder.FolderID).Msg("error inserting folder")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetFolders").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Folders returns the device's folder hierarchy cache in announcement order.
// [ErrNoHierarchyCache] is returned when the device has no cached folders.
func (r *deviceRepository) Folders(ctx context.Context, deviceID string) ([]Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("folder_id", "content_class", "position").
		From("device_folders").
		Where(sq.Eq{"device_id": deviceID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Folders").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Folders").Msg("error querying hierarchy cache")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var folder Folder
		var class string
		if err := rows.Scan(&folder.FolderID, &class, &folder.Position); err != nil {
			log.Err(err).Str("func", "*deviceRepository.Folders").Msg("error scanning folder row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		folder.Class = models.ContentClass(class)
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(folders) == 0 {
		return nil, ErrNoHierarchyCache
	}

	return folders, nil
}

// FolderByClass resolves the first folder of the given content class in the
// device's hierarchy cache, matching the order folders were announced in.
func (r *deviceRepository) FolderByClass(ctx context.Context, deviceID string, class models.ContentClass) (Folder, error) {
	folders, err := r.Folders(ctx, deviceID)
	if err != nil {
		return Folder{}, err
	}

	for _, folder := range folders {
		if folder.Class == class {
			return folder, nil
		}
	}

	return Folder{}, ErrFolderNotFound
}

// FolderByID resolves a folder id against the device's hierarchy cache.
func (r *deviceRepository) FolderByID(ctx context.Context, deviceID, folderID string) (Folder, error) {
	folders, err := r.Folders(ctx, deviceID)
	if err != nil {
		return Folder{}, err
	}

	for _, folder := range folders {
		if folder.FolderID == folderID {
			return folder, nil
		}
	}

	return Folder{}, ErrFolderNotFound
}

// SetSupportedFields records which item fields the client declares it keeps
// for the folder. An empty declaration is stored too: it means the client
// supports nothing beyond the mandatory fields.
func (r *deviceRepository) SetSupportedFields(ctx context.Context, deviceID, folderID string, fields []string) error {
	log := logger.FromContext(ctx)

	if fields == nil {
		fields = []string{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("error marshalling supported fields: %w", err)
	}

	query, args, err := r.db.builder.
		Update("device_folders").
		Set("supported_fields", string(encoded)).
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetSupportedFields").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SetSupportedFields").Msg("error updating folder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFolderNotFound
	}

	return nil
}

// SupportedFields returns the client's supported-field declaration for the
// folder. (nil, nil) means the client never sent one, so all fields count
// as supported.
func (r *deviceRepository) SupportedFields(ctx context.Context, deviceID, folderID string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("supported_fields").
		From("device_folders").
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SupportedFields").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var encoded sql.NullString
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&encoded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		log.Err(err).Str("func", "*deviceRepository.SupportedFields").Msg("error scanning folder row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if !encoded.Valid {
		return nil, nil
	}

	var fields []string
	if err := json.Unmarshal([]byte(encoded.String), &fields); err != nil {
		log.Err(err).Str("func", "*deviceRepository.SupportedFields").Msg("stored supported fields are not valid JSON")
		return nil, fmt.Errorf("corrupt supported fields: %w", err)
	}
	if fields == nil {
		fields = []string{}
	}

	return fields, nil
}

// SaveFolderState stores the folder's post-exchange snapshot, replacing any
// previous one.
func (r *deviceRepository) SaveFolderState(ctx context.Context, deviceID string, state FolderState) error {
	log := logger.FromContext(ctx)

	params, err := json.Marshal(state.Params)
	if err != nil {
		return fmt.Errorf("error marshalling folder parameters: %w", err)
	}

	query, args, err := r.db.builder.
		Insert("folder_states").
		Columns("device_id", "folder_id", "content_class", "params", "sync_key", "last_sync", "updated_at").
		Values(deviceID, state.FolderID, string(state.Class), string(params), state.SyncKey, state.LastSync.UTC(), time.Now().UTC()).
		Suffix(`ON CONFLICT (device_id, folder_id) DO UPDATE SET
			content_class = excluded.content_class,
			params = excluded.params,
			sync_key = excluded.sync_key,
			last_sync = excluded.last_sync,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.SaveFolderState").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*deviceRepository.SaveFolderState").Msg("error saving folder state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FolderState loads the folder's saved snapshot.
// [ErrFolderParamsNotFound] is returned when the folder has never completed
// an exchange on this device.
func (r *deviceRepository) FolderState(ctx context.Context, deviceID, folderID string) (FolderState, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("folder_id", "content_class", "params", "sync_key", "last_sync").
		From("folder_states").
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.FolderState").Msg("error building query")
		return FolderState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	state, err := r.scanFolderState(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FolderState{}, ErrFolderParamsNotFound
		}
		log.Err(err).Str("func", "*deviceRepository.FolderState").Msg("error scanning folder state row")
		return FolderState{}, err
	}

	return state, nil
}

// FolderStates returns every saved folder snapshot for the device in
// directory order, matching the position of each folder in the hierarchy
// cache. Used to resume collections a short-form request left out.
func (r *deviceRepository) FolderStates(ctx context.Context, deviceID string) ([]FolderState, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("fs.folder_id", "fs.content_class", "fs.params", "fs.sync_key", "fs.last_sync").
		From("folder_states fs").
		LeftJoin("device_folders df ON df.device_id = fs.device_id AND df.folder_id = fs.folder_id").
		Where(sq.Eq{"fs.device_id": deviceID}).
		OrderBy("df.position ASC", "fs.folder_id ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.FolderStates").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.FolderStates").Msg("error querying folder states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []FolderState
	for rows.Next() {
		state, err := r.scanFolderState(rows)
		if err != nil {
			log.Err(err).Str("func", "*deviceRepository.FolderStates").Msg("error scanning folder state row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return states, nil
}

// DeleteFolderState drops the folder's saved snapshot. Used when a client
// restarts the folder with an initial sync key.
func (r *deviceRepository) DeleteFolderState(ctx context.Context, deviceID, folderID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("folder_states").
		Where(sq.Eq{"device_id": deviceID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.DeleteFolderState").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*deviceRepository.DeleteFolderState").Msg("error deleting folder state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *deviceRepository) scanFolderState(row rowScanner) (FolderState, error) {
	var state FolderState
	var class, params string

	if err := row.Scan(&state.FolderID, &class, &params, &state.SyncKey, &state.LastSync); err != nil {
		return FolderState{}, err
	}

	state.Class = models.ContentClass(class)
	if err := json.Unmarshal([]byte(params), &state.Params); err != nil {
		return FolderState{}, fmt.Errorf("corrupt folder parameters: %w", err)
	}

	return state, nil
}
