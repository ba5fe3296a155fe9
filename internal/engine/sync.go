package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/airsyncd/go-airsync/internal/backend"
	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// Orchestrator drives one Sync exchange end to end. Each collection runs a
// fixed phase sequence: initialize (resolve ids, keys and parameters), import
// client changes, optionally block for the heartbeat lifetime, export server
// changes up to the window, then persist the advanced key and state.
type Orchestrator struct {
	states    store.StateRepository
	devices   *device.Manager
	connector backend.Connector
	loops     *loopdetect.Cache
	cfg       config.Sync
	logger    *logger.Logger
}

// NewOrchestrator wires the engine against its repositories and the backend
// connector. The loop cache may be shared across orchestrators.
func NewOrchestrator(states store.StateRepository, devices *device.Manager, connector backend.Connector, loops *loopdetect.Cache, cfg config.Sync, logger *logger.Logger) *Orchestrator {
	return &Orchestrator{
		states:    states,
		devices:   devices,
		connector: connector,
		loops:     loops,
		cfg:       cfg,
		logger:    logger,
	}
}

// folderWork is the mutable per-collection processing record of one exchange.
type folderWork struct {
	c *Collection

	// token is the sync key exactly as the client presented it.
	token   string
	initial bool

	// replay is set when at least one operation was answered from a
	// consumed fail-state snapshot instead of being re-executed.
	replay bool

	// imported is set when the importer actually applied something.
	imported bool

	status   models.SyncStatus
	replies  *models.SyncReplies
	records  []models.ChangeRecord
	streamed int
	count    int
	more     bool
}

func (w *folderWork) failed() bool {
	return w.status != models.SyncStatusSuccess
}

func (w *folderWork) fail(status models.SyncStatus) {
	w.status = status
}

// HandleSync processes one decoded Sync request for the device. Protocol
// failures are reported through response statuses; a returned error means the
// exchange could not produce a response at all (e.g. the wait was cancelled).
func (o *Orchestrator) HandleSync(ctx context.Context, deviceID, userID string, req *models.SyncRequest) (*models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	lifetime, ok := o.resolveHeartbeat(req)
	if !ok {
		log.Warn().
			Str("func", "HandleSync").
			Str("device", deviceID).
			Int("heartbeat", req.HeartbeatInterval).
			Int("wait", req.Wait).
			Msg("heartbeat outside the accepted interval")
		return &models.SyncResponse{Status: models.SyncStatusInvalidHeartbeat}, nil
	}

	if required, err := o.devices.IsHierarchySyncRequired(ctx, deviceID); err != nil {
		return nil, fmt.Errorf("checking hierarchy state for device %q: %w", deviceID, err)
	} else if required {
		return &models.SyncResponse{Status: models.SyncStatusHierarchyChanged}, nil
	}

	detector := loopdetect.NewDetector(o.loops, o.logger)
	set := NewCollectionSet(deviceID, userID, o.states, o.devices, o.connector, o.logger)
	if req.WindowSize > 0 {
		set.SetWindowSize(req.WindowSize)
	}
	set.SetLifetime(lifetime)

	works := make([]*folderWork, 0, len(req.Folders))
	for i := range req.Folders {
		w := o.initCollection(ctx, set, deviceID, &req.Folders[i])
		works = append(works, w)
		if !w.failed() {
			set.Add(w.c)
		}
	}

	// An empty or partial request resumes the folders persisted from
	// earlier exchanges.
	if len(req.Folders) == 0 || req.Partial {
		if err := set.LoadPersisted(ctx, false, true, true); err != nil {
			switch {
			case errors.Is(err, ErrStateNotFound):
				return &models.SyncResponse{Status: models.SyncStatusInvalidSyncKey}, nil
			case errors.Is(err, ErrFolderSetChanged):
				return &models.SyncResponse{Status: models.SyncStatusHierarchyChanged}, nil
			default:
				return nil, err
			}
		}
		for _, c := range set.Collections() {
			if !hasWork(works, c.FolderID) {
				works = append(works, &folderWork{
					c:       c,
					token:   c.Keys.CurrentToken(),
					initial: !c.Keys.HasCurrent(),
					status:  models.SyncStatusSuccess,
				})
			}
		}
	}

	anyImports := false
	for _, w := range works {
		if w.failed() {
			continue
		}
		o.importPhase(ctx, deviceID, w)
		if w.imported || w.replay || w.replies != nil {
			anyImports = true
		}
	}

	// A heartbeat without client changes blocks until a backend change
	// shows up or the lifetime elapses.
	if lifetime > 0 && !anyImports {
		total, err := set.CountChanges(ctx)
		if err != nil {
			log.Err(err).Str("func", "HandleSync").Msg("counting pending changes before the wait")
		} else if total == 0 {
			found, err := set.CheckForChanges(ctx, lifetime, o.cfg.PingInterval)
			if err != nil {
				return nil, err
			}
			if !found && len(req.Folders) == 0 {
				// Nothing happened during the whole lifetime: the
				// shortest possible reply tells the client to just
				// reissue the request.
				return &models.SyncResponse{Status: models.SyncStatusSuccess}, nil
			}
		}
	}

	for _, w := range works {
		if w.failed() {
			continue
		}
		o.exportPhase(ctx, deviceID, userID, w, set, detector)
	}

	resp := &models.SyncResponse{Status: models.SyncStatusSuccess}
	for _, w := range works {
		if w.failed() {
			resp.Folders = append(resp.Folders, models.SyncFolderResponse{
				ContentClass: w.c.Class,
				FolderID:     w.c.FolderID,
				SyncKey:      w.token,
				Status:       w.status,
			})
			continue
		}

		fr, include := o.persistPhase(ctx, deviceID, w)
		if include {
			resp.Folders = append(resp.Folders, fr)
		}
	}

	return resp, nil
}

func hasWork(works []*folderWork, folderID string) bool {
	for _, w := range works {
		if w.c != nil && w.c.FolderID == folderID {
			return true
		}
	}
	return false
}

// resolveHeartbeat turns the request's Wait (minutes, takes precedence) or
// HeartbeatInterval (seconds) into a lifetime. Zero means no blocking. The
// second return is false when the requested lifetime is out of bounds.
func (o *Orchestrator) resolveHeartbeat(req *models.SyncRequest) (time.Duration, bool) {
	var lifetime time.Duration
	switch {
	case req.Wait > 0:
		lifetime = time.Duration(req.Wait) * time.Minute
	case req.HeartbeatInterval > 0:
		lifetime = time.Duration(req.HeartbeatInterval) * time.Second
	default:
		return 0, true
	}

	if lifetime < o.cfg.HeartbeatMin || lifetime > o.cfg.HeartbeatMax {
		return 0, false
	}
	return lifetime, true
}

// initCollection resolves one requested folder block into a working
// collection: folder/class resolution against the hierarchy cache, the sync
// key lifecycle, parameter merging with persisted defaults and the fail-state
// lookup. A failure is recorded as the folder's response status.
func (o *Orchestrator) initCollection(ctx context.Context, set *CollectionSet, deviceID string, f *models.SyncFolder) *folderWork {
	log := logger.FromContext(ctx)

	w := &folderWork{
		c:      &Collection{FolderID: f.FolderID, Class: f.ContentClass},
		status: models.SyncStatusSuccess,
	}
	c := w.c

	switch {
	case c.FolderID == "" && c.Class == "":
		w.fail(models.SyncStatusProtocolError)
		return w
	case c.FolderID == "":
		folderID, err := o.devices.FolderOfClass(ctx, deviceID, c.Class)
		if err != nil {
			log.Err(err).Str("class", string(c.Class)).Msg("class does not resolve against the hierarchy cache")
			w.fail(models.SyncStatusHierarchyChanged)
			return w
		}
		c.FolderID = folderID
	case c.Class == "":
		class, err := o.devices.ClassOfFolder(ctx, deviceID, c.FolderID)
		if err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("folder does not resolve against the hierarchy cache")
			w.fail(models.SyncStatusHierarchyChanged)
			return w
		}
		c.Class = class
	}

	if f.SyncKey == nil {
		w.fail(models.SyncStatusProtocolError)
		return w
	}
	w.token = *f.SyncKey

	c.Commands = f.Commands
	c.Supported = f.Supported
	c.GetChanges = f.GetChanges != nil && *f.GetChanges

	if err := o.resolveParams(ctx, deviceID, c, f); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("resolving content parameters")
		w.fail(models.SyncStatusServerError)
		return w
	}

	if len(c.Supported) > 0 {
		if err := o.devices.SetSupportedFields(ctx, deviceID, c.FolderID, c.Supported); err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("persisting supported fields")
		}
	}
	if f.WindowSize > 0 {
		o.devices.SetWindowSize(deviceID, c.FolderID, f.WindowSize)
	}

	if synckey.IsInitial(w.token) {
		// A fresh start invalidates everything the folder accumulated.
		w.initial = true
		c.Keys.Reset()
		if err := o.states.ClearSyncStates(ctx, deviceID, c.FolderID); err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("clearing states for a fresh sync")
			w.fail(models.SyncStatusServerError)
			return w
		}
		if err := o.devices.DeleteFolderState(ctx, deviceID, c.FolderID); err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("dropping the saved folder snapshot")
		}
		return w
	}

	key, err := synckey.Parse(w.token)
	if err != nil {
		w.fail(models.SyncStatusInvalidSyncKey)
		return w
	}
	if err := c.Keys.AdoptCurrent(w.token); err != nil {
		w.fail(models.SyncStatusInvalidSyncKey)
		return w
	}

	state, err := o.states.GetSyncState(ctx, deviceID, c.FolderID, key)
	if err != nil {
		if errors.Is(err, store.ErrStateNotFound) {
			w.fail(models.SyncStatusInvalidSyncKey)
			return w
		}
		log.Err(err).Str("folder", c.FolderID).Msg("loading the sync state")
		w.fail(models.SyncStatusServerError)
		return w
	}
	c.State = state

	fs, err := o.states.GetFailState(ctx, deviceID, c.FolderID, key)
	if err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("consuming the fail state")
	} else if fs != nil {
		c.FailState = fs
		if len(fs.SyncState) > 0 {
			// Resume from the post-import state of the interrupted
			// exchange, not from the pre-import one.
			c.State = fs.SyncState
		}
		log.Info().
			Str("func", "initCollection").
			Str("folder", c.FolderID).
			Str("key", w.token).
			Msg("retransmitted exchange, replaying recorded results")
	}

	return w
}

// resolveParams merges, in ascending precedence, the protocol defaults, the
// folder's persisted parameters and the options of this request.
func (o *Orchestrator) resolveParams(ctx context.Context, deviceID string, c *Collection, f *models.SyncFolder) error {
	params := models.NewContentParams(c.FolderID)

	saved, err := o.devices.FolderState(ctx, deviceID, c.FolderID)
	switch {
	case err == nil:
		p := saved.Params
		p.FolderID = c.FolderID
		params = &p
	case errors.Is(err, store.ErrFolderParamsNotFound):
		// First contact with this folder.
	default:
		return fmt.Errorf("loading saved parameters: %w", err)
	}

	params.ContentClass = c.Class

	if opts := f.Options; opts != nil {
		if opts.FilterType != nil {
			params.FilterType = *opts.FilterType
		}
		if opts.Truncation != nil {
			params.Truncation = *opts.Truncation
		}
		if opts.RTFTruncation != nil {
			params.RTFTruncation = *opts.RTFTruncation
		}
		if opts.MIMESupport != nil {
			params.MIMESupport = *opts.MIMESupport
		}
		if opts.MIMETruncation != nil {
			params.MIMETruncation = *opts.MIMETruncation
		}
		if opts.Conflict != nil {
			policy := *opts.Conflict
			params.Conflict = &policy
		}
		for _, pref := range opts.BodyPreferences {
			params.SetBodyPreference(pref)
		}
	}

	if f.DeletesAsMoves != nil {
		params.DeletesAsMoves = *f.DeletesAsMoves
	}
	if f.ConversationMode != nil {
		params.ConversationMode = *f.ConversationMode
	}
	if f.WindowSize > 0 {
		params.WindowSize = f.WindowSize
	}

	// The configured filter ceiling overrides laxer client filters. The
	// incomplete-task filter is not a time horizon and stays untouched.
	if max := o.cfg.MaxFilterType; max > models.FilterAll && params.FilterType != models.FilterIncompleteTask {
		if params.FilterType == models.FilterAll || params.FilterType > max {
			params.FilterType = max
		}
	}

	c.Params = params
	return nil
}

// importPhase applies the collection's inbound commands. Per-item failures
// become per-item reply statuses; infrastructure failures abort the folder.
// Operations found in a consumed fail-state snapshot are answered from the
// recording instead of being re-executed.
func (o *Orchestrator) importPhase(ctx context.Context, deviceID string, w *folderWork) {
	c := w.c
	if len(c.Commands) == 0 {
		return
	}
	log := logger.FromContext(ctx)

	if w.initial {
		// Commands before the first real key have no state to apply
		// against.
		w.fail(models.SyncStatusProtocolError)
		return
	}

	var (
		importer backend.Importer
		fetchIDs []string
	)
	ensure := func() (backend.Importer, bool) {
		if importer != nil {
			return importer, true
		}
		imp, err := o.connector.Importer(c.FolderID)
		if err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("creating the importer")
			w.fail(models.SyncStatusHierarchyChanged)
			return nil, false
		}
		if err := imp.Configure(c.State, c.Params.ConflictOrDefault(o.cfg.DefaultConflict)); err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("configuring the importer")
			w.fail(backend.StatusOf(err, models.SyncStatusServerError))
			return nil, false
		}
		if err := imp.LoadConflicts(ctx, c.Params, c.State); err != nil {
			// Conflict detection is advisory; imports fall back to
			// the configured policy resolution inside the backend.
			log.Warn().Err(err).Str("folder", c.FolderID).Msg("conflict detection unavailable")
		}
		importer = imp
		return importer, true
	}

	key, _ := c.Keys.Current()
	record := &models.FailState{
		UUID:      key.UUID.String(),
		Counter:   key.Counter,
		ClientIDs: make(map[string]string),
		RemoveIDs: make(map[string]bool),
		StatusIDs: make(map[string]models.SyncStatus),
	}
	replies := &models.SyncReplies{}

	for _, cmd := range c.Commands {
		if w.failed() {
			break
		}

		switch cmd.Type {
		case models.CommandAdd:
			if serverID, ok := c.FailState.KnownAdd(cmd.ClientID); ok {
				status := recordedStatus(c.FailState, cmd.ClientID)
				replies.Add = append(replies.Add, models.AddReply{ClientID: cmd.ClientID, ServerID: serverID, Status: status})
				record.ClientIDs[cmd.ClientID] = serverID
				record.StatusIDs[cmd.ClientID] = status
				w.replay = true
				continue
			}
			if !cmd.Data.Check() {
				replies.Add = append(replies.Add, models.AddReply{ClientID: cmd.ClientID, Status: models.SyncStatusConversionError})
				continue
			}
			imp, ok := ensure()
			if !ok {
				break
			}
			serverID, err := imp.ImportMessageChange(ctx, "", cmd.Data)
			status := models.SyncStatusSuccess
			if err != nil {
				status = backend.StatusOf(err, models.SyncStatusServerError)
				log.Err(err).Str("folder", c.FolderID).Str("clientID", cmd.ClientID).Msg("importing an add")
				serverID = ""
			}
			w.imported = true
			record.ClientIDs[cmd.ClientID] = serverID
			record.StatusIDs[cmd.ClientID] = status
			replies.Add = append(replies.Add, models.AddReply{ClientID: cmd.ClientID, ServerID: serverID, Status: status})

		case models.CommandModify:
			imp, ok := ensure()
			if !ok {
				break
			}
			var err error
			if cmd.Data.ReadFlagOnly() {
				err = imp.ImportMessageReadFlag(ctx, cmd.ServerID, *cmd.Data.Read)
			} else if !cmd.Data.Check() {
				err = backend.NewStatusError(models.SyncStatusConversionError, "empty modification for %q", cmd.ServerID)
			} else {
				_, err = imp.ImportMessageChange(ctx, cmd.ServerID, cmd.Data)
			}
			if err != nil {
				log.Err(err).Str("folder", c.FolderID).Str("serverID", cmd.ServerID).Msg("importing a modification")
				replies.Modify = append(replies.Modify, models.OpReply{ServerID: cmd.ServerID, Status: backend.StatusOf(err, models.SyncStatusServerError)})
				continue
			}
			w.imported = true

		case models.CommandRemove:
			if c.FailState.KnownRemove(cmd.ServerID) {
				record.RemoveIDs[cmd.ServerID] = true
				record.StatusIDs[cmd.ServerID] = recordedStatus(c.FailState, cmd.ServerID)
				w.replay = true
				continue
			}
			imp, ok := ensure()
			if !ok {
				break
			}
			var err error
			if c.Params.DeletesAsMoves {
				wasteBasket, wbErr := o.connector.WasteBasket(ctx)
				switch {
				case wbErr != nil:
					err = wbErr
				case wasteBasket != "":
					err = imp.ImportMessageMove(ctx, cmd.ServerID, wasteBasket)
				default:
					err = imp.ImportMessageDeletion(ctx, cmd.ServerID)
				}
			} else {
				err = imp.ImportMessageDeletion(ctx, cmd.ServerID)
			}
			status := models.SyncStatusSuccess
			if err != nil {
				status = backend.StatusOf(err, models.SyncStatusObjectNotFound)
				log.Err(err).Str("folder", c.FolderID).Str("serverID", cmd.ServerID).Msg("importing a removal")
				replies.Remove = append(replies.Remove, models.OpReply{ServerID: cmd.ServerID, Status: status})
			}
			w.imported = true
			record.RemoveIDs[cmd.ServerID] = true
			record.StatusIDs[cmd.ServerID] = status

		case models.CommandFetch:
			fetchIDs = append(fetchIDs, cmd.ServerID)

		default:
			w.fail(models.SyncStatusProtocolError)
		}
	}

	// Fetches read after the mutations so they observe this exchange's
	// own changes.
	for _, serverID := range fetchIDs {
		msg, err := o.connector.Fetch(ctx, c.FolderID, serverID, c.Params)
		if err != nil {
			replies.Fetch = append(replies.Fetch, models.FetchReply{ServerID: serverID, Status: backend.StatusOf(err, models.SyncStatusObjectNotFound)})
			continue
		}
		replies.Fetch = append(replies.Fetch, models.FetchReply{ServerID: serverID, Status: models.SyncStatusSuccess, Data: msg})
	}

	if importer != nil {
		state, err := importer.State()
		if err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("reading the post-import state")
			w.fail(models.SyncStatusServerError)
		} else {
			c.State = state
		}
	}

	// The snapshot survives until the client proves it received the reply
	// by advancing the counter. Recording replayed results again keeps
	// repeated retransmissions idempotent.
	if len(record.ClientIDs) > 0 || len(record.RemoveIDs) > 0 {
		record.SyncState = c.State
		if err := o.states.SetFailState(ctx, deviceID, c.FolderID, record); err != nil {
			log.Err(err).Str("folder", c.FolderID).Msg("persisting the fail state")
		}
	}

	if !emptyReplies(replies) {
		w.replies = replies
	}
}

func recordedStatus(fs *models.FailState, id string) models.SyncStatus {
	if fs == nil {
		return models.SyncStatusSuccess
	}
	if status, ok := fs.StatusIDs[id]; ok {
		return status
	}
	return models.SyncStatusSuccess
}

func emptyReplies(r *models.SyncReplies) bool {
	return len(r.Add) == 0 && len(r.Modify) == 0 && len(r.Remove) == 0 && len(r.Fetch) == 0
}

// exportPhase streams outstanding server changes into the reply, bounded by
// the effective window. The loop detector inspects every non-initial export
// and may shrink the window to one item or arm a one-item skip.
func (o *Orchestrator) exportPhase(ctx context.Context, deviceID, userID string, w *folderWork, set *CollectionSet, detector *loopdetect.Detector) {
	c := w.c
	if !c.GetChanges && !w.initial {
		return
	}
	log := logger.FromContext(ctx)

	exporter, err := o.connector.Exporter(c.FolderID)
	if err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("creating the exporter")
		w.fail(models.SyncStatusHierarchyChanged)
		return
	}
	if err := exporter.Configure(c.State); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("configuring the exporter")
		w.fail(backend.StatusOf(err, models.SyncStatusServerError))
		return
	}
	if err := exporter.ConfigureContentParameters(c.Params); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("applying content parameters")
		w.fail(backend.StatusOf(err, models.SyncStatusServerError))
		return
	}

	w.count = exporter.ChangeCount()

	window := o.devices.WindowSize(deviceID, c.FolderID, false, w.replay)
	if g := set.WindowSize(); g > 0 && window > 0 {
		// A request-level window replaces the folder's stored value for
		// this exchange only, still capped by the configured maximum.
		// Replay keeps its zero window and loop mode narrows below.
		if max := o.cfg.MaxWindowSize; max > 0 && g > max {
			g = max
		}
		window = g
	}

	if !w.initial {
		key, _ := c.Keys.Current()
		if detector.Detect(deviceID, userID, c.FolderID, c.Class, key.UUID.String(), key.Counter, window, w.count) {
			log.Warn().
				Str("func", "exportPhase").
				Str("device", deviceID).
				Str("folder", c.FolderID).
				Msg("synchronization loop suspected, window reduced to one item")
			window = o.devices.WindowSize(deviceID, c.FolderID, true, w.replay)
		}
	}

	sink := &replySink{
		detector: detector,
		devices:  o.devices,
		deviceID: deviceID,
		folderID: c.FolderID,
	}
	if err := exporter.InitializeExporter(sink); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("attaching the change sink")
		w.fail(models.SyncStatusServerError)
		return
	}

	brokenSkipped := 0
	exhausted := false
	for len(sink.records) < window {
		more, err := exporter.Synchronize(ctx)
		if err != nil {
			var broken *backend.BrokenObjectError
			if errors.As(err, &broken) {
				log.Warn().Err(err).Str("folder", c.FolderID).Str("serverID", broken.ServerID).Msg("skipping an unexportable item")
				o.devices.AnnounceIgnored(deviceID, c.FolderID, broken.ServerID, "unexportable item")
				brokenSkipped++
				if !more {
					exhausted = true
					break
				}
				continue
			}
			log.Err(err).Str("folder", c.FolderID).Msg("streaming server changes")
			w.fail(models.SyncStatusServerError)
			return
		}
		if !more {
			exhausted = true
			break
		}
	}

	state, err := exporter.State()
	if err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("reading the post-export state")
		w.fail(models.SyncStatusServerError)
		return
	}
	c.State = state

	w.records = sink.records
	w.streamed = len(sink.records)
	w.more = !exhausted && w.streamed+sink.skipped+brokenSkipped < w.count
}

// replySink gathers streamed change records for the reply. With an armed
// skip flag the next record is quarantined instead of delivered, which steps
// the export state past a poisoned item.
type replySink struct {
	detector *loopdetect.Detector
	devices  *device.Manager
	deviceID string
	folderID string

	records []models.ChangeRecord
	skipped int
}

func (s *replySink) Change(rec models.ChangeRecord) error {
	if s.detector != nil && s.detector.SkipNext(true) {
		s.skipped++
		s.devices.AnnounceIgnored(s.deviceID, s.folderID, rec.ServerID, "quarantined by the loop detector")
		return nil
	}
	s.records = append(s.records, rec)
	return nil
}

// persistPhase advances the key, stores the new opaque state and saves the
// folder snapshot. A non-initial collection that neither received nor
// produced anything is dropped from the reply entirely.
func (o *Orchestrator) persistPhase(ctx context.Context, deviceID string, w *folderWork) (models.SyncFolderResponse, bool) {
	c := w.c
	log := logger.FromContext(ctx)

	fr := models.SyncFolderResponse{
		ContentClass:  c.Class,
		FolderID:      c.FolderID,
		Status:        models.SyncStatusSuccess,
		Replies:       w.replies,
		Commands:      w.records,
		MoreAvailable: w.more,
	}

	activity := len(c.Commands) > 0 || w.streamed > 0 || w.initial
	if !activity {
		if w.replies == nil && !w.more {
			return fr, false
		}
		fr.SyncKey = w.token
		return fr, true
	}

	next := c.Keys.NextToken()
	if err := c.Keys.ProposeNext(next); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("advancing the sync key")
		fr.Status = models.SyncStatusServerError
		fr.SyncKey = w.token
		return fr, true
	}
	pending, _ := c.Keys.Pending()

	if err := o.states.SetSyncState(ctx, deviceID, c.FolderID, pending, c.State); err != nil {
		// The key is not promoted; the client retries against its old
		// key and the fail state keeps the imports idempotent.
		log.Err(err).Str("folder", c.FolderID).Msg("persisting the sync state")
		fr.Status = models.SyncStatusServerError
		fr.SyncKey = w.token
		return fr, true
	}
	c.Keys.Promote()

	if err := o.devices.SaveFolderState(ctx, deviceID, store.FolderState{
		FolderID: c.FolderID,
		Class:    c.Class,
		Params:   *c.Params,
		SyncKey:  c.Keys.CurrentToken(),
		LastSync: time.Now(),
	}); err != nil {
		log.Err(err).Str("folder", c.FolderID).Msg("saving the folder snapshot")
	}

	fr.SyncKey = c.Keys.CurrentToken()
	return fr, true
}
