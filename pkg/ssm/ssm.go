package ssm

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/fatih/structs"
	"go.uber.org/zap"
)

const (
	stagePrefixesParam    = "/invalidation/stage/prefixes"
	visibilityMarkerParam = "/invalidation/visibility/marker"
)

// API is the slice of SSM this package uses. *ssm.SSM satisfies it.
type API interface {
	GetParameters(*ssm.GetParametersInput) (*ssm.GetParametersOutput, error)
}

// TriggerConfig holds the eligibility rule inputs for the path classifier.
type TriggerConfig struct {
	StagePrefixes    []string
	VisibilityMarker string
}

// DefaultTriggerConfig returns the built-in rule: prod/beta/stage stages under
// the public folder.
func DefaultTriggerConfig() *TriggerConfig {
	return &TriggerConfig{
		StagePrefixes:    []string{"prod", "beta", "stage"},
		VisibilityMarker: "public",
	}
}

// GetTriggerConfig reads the stage-prefix list (comma separated) and the
// visibility marker from Parameter Store. Parameters missing from the store
// fall back to the defaults; an API failure is returned to the caller so the
// invocation is retried rather than running with a half-read rule.
func GetTriggerConfig(svc API) (*TriggerConfig, error) {

	// Setup structured logging
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	getParametersRequest := &ssm.GetParametersInput{
		Names: []*string{
			aws.String(stagePrefixesParam),
			aws.String(visibilityMarkerParam),
		},
		WithDecryption: aws.Bool(false),
	}

	log.Infow("SSM GetParameters Request", "Request", structs.Map(getParametersRequest))

	getParametersResponse, err := svc.GetParameters(getParametersRequest)
	if err != nil {
		log.Errorw("SSM GetParameters Error", "Error", err)
		return nil, err
	}

	log.Infow("SSM GetParameters Response", "Response", structs.Map(getParametersResponse))

	config := DefaultTriggerConfig()

	for _, param := range getParametersResponse.Parameters {
		if param.Value == nil {
			continue
		}
		switch aws.StringValue(param.Name) {
		case stagePrefixesParam:
			config.StagePrefixes = splitList(*param.Value)
		case visibilityMarkerParam:
			config.VisibilityMarker = strings.TrimSpace(*param.Value)
		}
	}

	if len(getParametersResponse.InvalidParameters) > 0 {
		log.Infow("using defaults for parameters not in store",
			"Parameters", aws.StringValueSlice(getParametersResponse.InvalidParameters))
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
