package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	awsssm "github.com/aws/aws-sdk-go/service/ssm"
	"go.uber.org/zap"

	"go.smartmachine.io/cdn-invalidator/pkg/ssm"
	"go.smartmachine.io/cdn-invalidator/pkg/trigger"
)

// Invalidate handles one S3 notification: find the distribution serving the
// changed object and invalidate exactly that path. Everything is built inside
// the invocation; the function keeps no state between calls.
func Invalidate(ctx context.Context, s3Event *events.S3Event) error {

	// Setup structured logging
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	log.Infow("Invalidate()", "Records", len(s3Event.Records))

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	config, err := ssm.GetTriggerConfig(awsssm.New(sess))
	if err != nil {
		return err
	}

	handler := trigger.New(config, cloudfront.New(sess), log)

	return handler.Handle(ctx, s3Event)
}

func main() {
	lambda.Start(Invalidate)
}
