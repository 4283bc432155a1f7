package util

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"go.uber.org/zap"
)

// LogAWSError logs err with the AWS error code and message pulled out when err
// is an awserr.Error, so throttling and permission faults are searchable in
// the platform logs.
func LogAWSError(log *zap.SugaredLogger, msg string, err error) {
	if aerr, ok := err.(awserr.Error); ok {
		log.Errorw(msg, "Code", aerr.Code(), "Message", aerr.Message())
		return
	}
	log.Errorw(msg, "Error", err)
}
