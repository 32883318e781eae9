package expandstate

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const (
	azblobBlobNotFound      = "BlobNotFound"
	azblobConditionNotMet   = "ConditionNotMet"
	azblobBlobAlreadyExists = "BlobAlreadyExists"
)

func asStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	var ierr *azStorageBlob.InternalError
	if !errors.As(err, &ierr) || ierr == nil {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// wrapBlobError translates the azure sdk errors this package cares about to
// ErrStateNotFound and ErrStateConflict. Anything else, including nil, is
// returned as is.
func wrapBlobError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStateNotFound) || errors.Is(err, ErrStateConflict) {
		return err
	}
	serr, ok := asStorageError(err)
	if !ok {
		return err
	}
	switch string(serr.ErrorCode) {
	case azblobBlobNotFound:
		return fmt.Errorf("%s: %w", err.Error(), ErrStateNotFound)
	case azblobConditionNotMet, azblobBlobAlreadyExists:
		return fmt.Errorf("%s: %w", err.Error(), ErrStateConflict)
	}
	return err
}
