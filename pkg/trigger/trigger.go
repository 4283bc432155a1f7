// Package trigger wires the invalidation pipeline: decode the notification,
// classify the key, resolve the serving distribution, dispatch the
// invalidation.
package trigger

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"go.smartmachine.io/cdn-invalidator/pkg/cdn"
	"go.smartmachine.io/cdn-invalidator/pkg/classify"
	"go.smartmachine.io/cdn-invalidator/pkg/event"
	"go.smartmachine.io/cdn-invalidator/pkg/ssm"
)

// Resolver finds the distribution serving an origin path.
type Resolver interface {
	Resolve(bucket, region, originPath string) (string, bool, error)
}

// Dispatcher issues a single-path invalidation.
type Dispatcher interface {
	Dispatch(distributionID, path string) (*cdn.Receipt, error)
}

// Handler runs the pipeline once per event record.
type Handler struct {
	Classifier classify.Classifier
	Resolver   Resolver
	Dispatcher Dispatcher
	Log        *zap.SugaredLogger
}

// New builds a Handler over the CloudFront control plane.
func New(config *ssm.TriggerConfig, api cdn.API, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Classifier: classify.Classifier{
			StagePrefixes:    config.StagePrefixes,
			VisibilityMarker: config.VisibilityMarker,
		},
		Resolver:   &cdn.Resolver{API: api, Log: log},
		Dispatcher: &cdn.Dispatcher{API: api, Log: log},
		Log:        log,
	}
}

// Handle processes each record in the notification. Malformed records are
// logged and skipped so bad data cannot turn into a retry storm; resolution
// and dispatch failures abort the invocation so the platform redelivers it.
func (h *Handler) Handle(ctx context.Context, s3Event *events.S3Event) error {
	for _, record := range s3Event.Records {
		if err := h.handleRecord(record); err != nil {
			return err
		}
	}
	return nil
}

// handleRecord yields at most one invalidation per record.
func (h *Handler) handleRecord(record events.S3EventRecord) error {
	changeEvent, err := event.Decode(record)
	if err != nil {
		h.Log.Errorw("skipping malformed record", "Error", err, "EventName", record.EventName)
		return nil
	}

	h.Log.Infow("change event",
		"Bucket", changeEvent.Bucket,
		"Key", changeEvent.Key,
		"ChangeType", changeEvent.ChangeType.String())

	classified, eligible := h.Classifier.Classify(changeEvent.Key)
	if !eligible {
		h.Log.Infow("object not eligible for invalidation", "Key", changeEvent.Key)
		return nil
	}

	distributionID, found, err := h.Resolver.Resolve(changeEvent.Bucket, changeEvent.Region, classified.OriginPath)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	receipt, err := h.Dispatcher.Dispatch(distributionID, classified.ResidualKey)
	if err != nil {
		return err
	}

	h.Log.Infow("invalidation dispatched",
		"DistributionId", distributionID,
		"Path", classified.ResidualKey,
		"InvalidationId", receipt.InvalidationID,
		"Status", receipt.Status)

	return nil
}
