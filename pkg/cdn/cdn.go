// Package cdn resolves which CloudFront distribution serves a bucket origin
// path and dispatches single-path invalidations against it.
package cdn

import (
	"github.com/aws/aws-sdk-go/service/cloudfront"
)

// API is the slice of the CloudFront control plane this package uses.
// *cloudfront.CloudFront satisfies it.
type API interface {
	ListDistributions(*cloudfront.ListDistributionsInput) (*cloudfront.ListDistributionsOutput, error)
	CreateInvalidation(*cloudfront.CreateInvalidationInput) (*cloudfront.CreateInvalidationOutput, error)
}

// ResolutionError wraps a failure while listing distributions. It propagates
// out of the invocation so the platform redelivers the event.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return "listing distributions: " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// DispatchError wraps a failure while creating an invalidation. Same
// propagation policy as ResolutionError.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return "creating invalidation: " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error { return e.Err }
