package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/airsyncd/go-airsync/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrStateNotFound:        http.StatusNotFound,
	store.ErrNoHierarchyCache:     http.StatusConflict,
	store.ErrFolderNotFound:       http.StatusNotFound,
	store.ErrFolderParamsNotFound: http.StatusNotFound,
	store.ErrStateNotSaved:        http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,

	// the client went away during a blocking wait
	context.Canceled:         http.StatusRequestTimeout,
	context.DeadlineExceeded: http.StatusRequestTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
