package engine

import (
	"context"
	"errors"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/synckey"
	"github.com/airsyncd/go-airsync/models"
)

// HandleEstimate answers a GetItemEstimate request: for every listed folder
// it reports how many items the next Sync would deliver. No state is
// advanced; a folder that was never synchronized (or presents the initial
// key) is reported as needing a Sync first.
func (o *Orchestrator) HandleEstimate(ctx context.Context, deviceID, userID string, req *models.EstimateRequest) (*models.EstimateResponse, error) {
	resp := &models.EstimateResponse{}
	for i := range req.Folders {
		resp.Responses = append(resp.Responses, o.estimateFolder(ctx, deviceID, &req.Folders[i]))
	}
	return resp, nil
}

func (o *Orchestrator) estimateFolder(ctx context.Context, deviceID string, f *models.EstimateFolder) models.EstimateFolderResponse {
	log := logger.FromContext(ctx)

	fr := models.EstimateFolderResponse{
		ContentClass: f.ContentClass,
		FolderID:     f.FolderID,
		Status:       models.EstimateStatusSuccess,
	}

	switch {
	case fr.FolderID == "" && fr.ContentClass == "":
		fr.Status = models.EstimateStatusCollectionInvalid
		return fr
	case fr.FolderID == "":
		folderID, err := o.devices.FolderOfClass(ctx, deviceID, fr.ContentClass)
		if err != nil {
			fr.Status = models.EstimateStatusCollectionInvalid
			return fr
		}
		fr.FolderID = folderID
	case fr.ContentClass == "":
		class, err := o.devices.ClassOfFolder(ctx, deviceID, fr.FolderID)
		if err != nil {
			fr.Status = models.EstimateStatusCollectionInvalid
			return fr
		}
		fr.ContentClass = class
	}

	if f.SyncKey == nil {
		fr.Status = models.EstimateStatusInvalidSyncKey
		return fr
	}
	if synckey.IsInitial(*f.SyncKey) {
		fr.Status = models.EstimateStatusStateNotPrimed
		return fr
	}

	key, err := synckey.Parse(*f.SyncKey)
	if err != nil {
		fr.Status = models.EstimateStatusInvalidSyncKey
		return fr
	}

	state, err := o.states.GetSyncState(ctx, deviceID, fr.FolderID, key)
	if err != nil {
		if errors.Is(err, store.ErrStateNotFound) {
			fr.Status = models.EstimateStatusInvalidSyncKey
		} else {
			log.Err(err).Str("folder", fr.FolderID).Msg("loading the sync state for an estimate")
			fr.Status = models.EstimateStatusCollectionInvalid
		}
		return fr
	}

	params := models.NewContentParams(fr.FolderID)
	if saved, err := o.devices.FolderState(ctx, deviceID, fr.FolderID); err == nil {
		p := saved.Params
		p.FolderID = fr.FolderID
		params = &p
	}
	params.ContentClass = fr.ContentClass
	if f.FilterType != nil {
		params.FilterType = *f.FilterType
	}
	if f.ConversationMode != nil {
		params.ConversationMode = *f.ConversationMode
	}
	if max := o.cfg.MaxFilterType; max > models.FilterAll && params.FilterType != models.FilterIncompleteTask {
		if params.FilterType == models.FilterAll || params.FilterType > max {
			params.FilterType = max
		}
	}

	exporter, err := o.connector.Exporter(fr.FolderID)
	if err != nil {
		fr.Status = models.EstimateStatusCollectionInvalid
		return fr
	}
	if err := exporter.Configure(state); err != nil {
		log.Err(err).Str("folder", fr.FolderID).Msg("configuring the estimate exporter")
		fr.Status = models.EstimateStatusCollectionInvalid
		return fr
	}
	if err := exporter.ConfigureContentParameters(params); err != nil {
		fr.Status = models.EstimateStatusCollectionInvalid
		return fr
	}

	estimate := exporter.ChangeCount()
	fr.Estimate = &estimate
	return fr
}
