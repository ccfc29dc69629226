package repository

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a document whose ID is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Collection names.
const (
	repairsCollection        = "repairs"
	invoicesCollection       = "invoices"
	designRequestsCollection = "design_requests"
	systemCollection         = "system"
)

// batchSize stays under Firestore's 500 writes per batch.
const batchSize = 400

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
