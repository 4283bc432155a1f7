package cdn

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"github.com/fatih/structs"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"

	"go.smartmachine.io/cdn-invalidator/pkg/util"
)

// Receipt is the control plane's acknowledgement of an invalidation request.
// Informational only; nothing downstream consumes it.
type Receipt struct {
	InvalidationID string
	Status         string
}

// Dispatcher issues single-path invalidations.
type Dispatcher struct {
	API API
	Log *zap.SugaredLogger
}

// Dispatch creates an invalidation for exactly one path on the given
// distribution. The caller reference is a time-based UUID, unique per call; a
// collision would make CloudFront treat the call as an idempotent retry, which
// is harmless since the request is for the same object.
func (d *Dispatcher) Dispatch(distributionID, path string) (*Receipt, error) {
	input := &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &cloudfront.InvalidationBatch{
			CallerReference: aws.String(uuid.NewV1().String()),
			Paths: &cloudfront.Paths{
				Quantity: aws.Int64(1),
				Items:    []*string{aws.String(path)},
			},
		},
	}

	d.Log.Infow("CloudFront CreateInvalidation Request", "Request", structs.Map(input))

	output, err := d.API.CreateInvalidation(input)
	if err != nil {
		util.LogAWSError(d.Log, "cloudfront.CreateInvalidation error", err)
		return nil, &DispatchError{Err: err}
	}

	receipt := &Receipt{}
	if output.Invalidation != nil {
		receipt.InvalidationID = aws.StringValue(output.Invalidation.Id)
		receipt.Status = aws.StringValue(output.Invalidation.Status)
	}

	d.Log.Infow("CloudFront CreateInvalidation Response",
		"InvalidationId", receipt.InvalidationID,
		"Status", receipt.Status)

	return receipt, nil
}
