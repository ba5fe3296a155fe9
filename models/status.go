package models

// SyncStatus is the per-collection (and per-item) status code carried in
// a Sync reply. The numeric values are the protocol's wire values, so a
// client sees exactly the codes it expects.
type SyncStatus int

const (
	SyncStatusSuccess            SyncStatus = 1
	SyncStatusInvalidSyncKey     SyncStatus = 3
	SyncStatusProtocolError      SyncStatus = 4
	SyncStatusServerError        SyncStatus = 5
	SyncStatusConversionError    SyncStatus = 6
	SyncStatusConflict           SyncStatus = 7
	SyncStatusObjectNotFound     SyncStatus = 8
	SyncStatusHierarchyChanged   SyncStatus = 12
	SyncStatusRequestIncomplete  SyncStatus = 13
	SyncStatusInvalidHeartbeat   SyncStatus = 14
	SyncStatusTooManyCollections SyncStatus = 15
)

// EstimateStatus is the status code of a GetItemEstimate reply.
type EstimateStatus int

const (
	EstimateStatusSuccess           EstimateStatus = 1
	EstimateStatusCollectionInvalid EstimateStatus = 2
	EstimateStatusStateNotPrimed    EstimateStatus = 3
	EstimateStatusInvalidSyncKey    EstimateStatus = 4
)
