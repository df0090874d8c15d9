// Package handler implements the add-to-db Lambda function: it maps an
// inbound user event onto a record and writes it to the user table.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/data-ingestion-approver/lambdas/user"
	"github.com/sirupsen/logrus"
)

// SuccessBody is the response body returned after a successful write: the
// JSON encoding of the string "Hello from Lambda!".
const SuccessBody = `"Hello from Lambda!"`

// Store persists user records. A put replaces any record with the same ID.
type Store interface {
	PutUser(ctx context.Context, record user.Record) error
}

// Response is the function result. It does not echo the written record.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler writes one user record per invocation.
type Handler struct {
	store  Store
	logger logrus.FieldLogger
}

// New creates a Handler writing to store.
func New(store Store, opts ...Option) *Handler {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	return &Handler{
		store:  store,
		logger: options.logger.WithField("component", "handler"),
	}
}

// Handle builds a record from event and writes it. A missing field fails with
// a [user.MissingFieldError] before the store is called; a store failure is
// returned as a [StoreError]. Neither is retried.
func (h *Handler) Handle(ctx context.Context, event user.Event) (Response, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.WithField("aws_request_id", lc.AwsRequestID)
	}

	record, err := user.NewRecord(event)
	if err != nil {
		var missing *user.MissingFieldError
		if errors.As(err, &missing) {
			logger.WithField("field", missing.Field).Warn("Rejected event with missing field")
		}
		return Response{}, err
	}

	if err := h.store.PutUser(ctx, record); err != nil {
		logger.WithError(err).Error("Failed to write user record")
		return Response{}, NewStoreError(err)
	}

	logger.Debug("User record stored")

	return Response{
		StatusCode: http.StatusOK,
		Body:       SuccessBody,
	}, nil
}

// StoreError wraps any failure reported by the [Store].
type StoreError struct {
	Err error
}

func NewStoreError(err error) error {
	return &StoreError{Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to store user record: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
