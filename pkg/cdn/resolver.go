package cdn

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"go.uber.org/zap"

	"go.smartmachine.io/cdn-invalidator/pkg/util"
)

// Resolver finds the distribution serving a (bucket, origin path) pair by
// scanning the account's distributions. The listing is fetched fresh on every
// call; there is no cross-invocation cache to go stale.
type Resolver struct {
	API API
	Log *zap.SugaredLogger
}

// Resolve walks every page of the distribution listing and returns the id of
// the first distribution (in listing order) with an origin whose domain is one
// of the bucket's S3 domain forms and whose origin path matches exactly.
// found is false only after the whole listing has been exhausted; a partial
// scan is never a negative result. No match is the common case for a shared
// bucket and is not an error.
func (r *Resolver) Resolve(bucket, region, originPath string) (string, bool, error) {
	regional := fmt.Sprintf("%s.s3.%s.amazonaws.com", bucket, region)
	global := fmt.Sprintf("%s.s3.amazonaws.com", bucket)

	input := &cloudfront.ListDistributionsInput{}
	pages := 0

	for {
		output, err := r.API.ListDistributions(input)
		if err != nil {
			util.LogAWSError(r.Log, "cloudfront.ListDistributions error", err)
			return "", false, &ResolutionError{Err: err}
		}

		list := output.DistributionList
		if list == nil {
			break
		}
		pages++

		for _, dist := range list.Items {
			if dist == nil || dist.Origins == nil {
				continue
			}
			for _, origin := range dist.Origins.Items {
				if origin == nil {
					continue
				}
				domain := aws.StringValue(origin.DomainName)
				if domain != regional && domain != global {
					continue
				}
				if aws.StringValue(origin.OriginPath) != originPath {
					continue
				}
				id := aws.StringValue(dist.Id)
				r.Log.Infow("resolved distribution",
					"DistributionId", id,
					"OriginDomain", domain,
					"OriginPath", originPath,
					"Pages", pages)
				return id, true, nil
			}
		}

		if !aws.BoolValue(list.IsTruncated) || list.NextMarker == nil {
			break
		}
		input.Marker = list.NextMarker
	}

	r.Log.Infow("no distribution serves origin",
		"Bucket", bucket,
		"OriginPath", originPath,
		"Pages", pages)
	return "", false, nil
}
