// Package event normalizes S3 notification records into ChangeEvents.
package event

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// ChangeType classifies what happened to the object.
type ChangeType int

const (
	Created ChangeType = iota
	Removed
	Expired
)

func (t ChangeType) String() string {
	switch t {
	case Created:
		return "Created"
	case Removed:
		return "Removed"
	case Expired:
		return "Expired"
	}
	return fmt.Sprintf("ChangeType(%d)", int(t))
}

// ChangeEvent is one normalized bucket change. Region is kept because the
// regional S3 origin domain form depends on it.
type ChangeEvent struct {
	Bucket     string
	Region     string
	Key        string
	ChangeType ChangeType
}

// MalformedEventError marks a record that cannot be decoded. The handler logs
// these and moves on rather than failing the invocation, so bad records do not
// become poison pills on the retry path.
type MalformedEventError struct {
	Reason string
}

func (e *MalformedEventError) Error() string {
	return "malformed event record: " + e.Reason
}

// Decode normalizes a single S3 event record. The object key arrives
// URL-encoded (with '+' for spaces); the decoded key is guaranteed to start
// with a path separator.
func Decode(record events.S3EventRecord) (*ChangeEvent, error) {
	bucket := record.S3.Bucket.Name
	if bucket == "" {
		return nil, &MalformedEventError{Reason: "no bucket name"}
	}

	rawKey := record.S3.Object.Key
	if rawKey == "" {
		return nil, &MalformedEventError{Reason: "no object key"}
	}

	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return nil, &MalformedEventError{Reason: fmt.Sprintf("undecodable object key %q: %v", rawKey, err)}
	}
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}

	changeType, ok := changeTypeFor(record.EventName)
	if !ok {
		return nil, &MalformedEventError{Reason: fmt.Sprintf("unrecognized event name %q", record.EventName)}
	}

	return &ChangeEvent{
		Bucket:     bucket,
		Region:     record.AWSRegion,
		Key:        key,
		ChangeType: changeType,
	}, nil
}

// changeTypeFor maps S3 event names to a ChangeType. Records carry names like
// "ObjectCreated:Put"; notification configurations use the "s3:" prefix, so
// both spellings are accepted.
func changeTypeFor(eventName string) (ChangeType, bool) {
	name := strings.TrimPrefix(eventName, "s3:")
	switch {
	case strings.HasPrefix(name, "ObjectCreated"):
		return Created, true
	case strings.HasPrefix(name, "ObjectRemoved"):
		return Removed, true
	case strings.HasPrefix(name, "LifecycleExpiration"):
		return Expired, true
	}
	return 0, false
}
