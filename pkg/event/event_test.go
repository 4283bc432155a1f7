package event

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(bucket, key, eventName string) events.S3EventRecord {
	return events.S3EventRecord{
		EventName: eventName,
		AWSRegion: "us-east-1",
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: key},
		},
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		record     events.S3EventRecord
		want       *ChangeEvent
		wantReason string
	}{
		{
			name:   "object created",
			record: record("shared-content", "prod/public/assets/app.js", "ObjectCreated:Put"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/assets/app.js",
				ChangeType: Created,
			},
		},
		{
			name:   "object removed",
			record: record("shared-content", "prod/public/assets/app.js", "ObjectRemoved:Delete"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/assets/app.js",
				ChangeType: Removed,
			},
		},
		{
			name:   "lifecycle expiration",
			record: record("shared-content", "prod/public/assets/app.js", "LifecycleExpiration:Delete"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/assets/app.js",
				ChangeType: Expired,
			},
		},
		{
			name:   "notification configuration spelling",
			record: record("shared-content", "prod/public/a.js", "s3:ObjectCreated:*"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/a.js",
				ChangeType: Created,
			},
		},
		{
			name:   "url encoded key",
			record: record("shared-content", "prod/public/my+file%20%281%29.js", "ObjectCreated:Put"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/my file (1).js",
				ChangeType: Created,
			},
		},
		{
			name:   "key already has leading separator",
			record: record("shared-content", "/prod/public/a.js", "ObjectCreated:Put"),
			want: &ChangeEvent{
				Bucket:     "shared-content",
				Region:     "us-east-1",
				Key:        "/prod/public/a.js",
				ChangeType: Created,
			},
		},
		{
			name:       "missing bucket",
			record:     record("", "prod/public/a.js", "ObjectCreated:Put"),
			wantReason: "no bucket name",
		},
		{
			name:       "missing key",
			record:     record("shared-content", "", "ObjectCreated:Put"),
			wantReason: "no object key",
		},
		{
			name:       "undecodable key",
			record:     record("shared-content", "prod/public/%zz.js", "ObjectCreated:Put"),
			wantReason: "undecodable",
		},
		{
			name:       "unknown event name",
			record:     record("shared-content", "prod/public/a.js", "ReducedRedundancyLostObject"),
			wantReason: "unrecognized event name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.record)
			if tt.wantReason != "" {
				require.Error(t, err)
				malformed, ok := err.(*MalformedEventError)
				require.True(t, ok, "expected *MalformedEventError, got %T", err)
				assert.Contains(t, malformed.Error(), tt.wantReason)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeTypeString(t *testing.T) {
	assert.Equal(t, "Created", Created.String())
	assert.Equal(t, "Removed", Removed.String())
	assert.Equal(t, "Expired", Expired.String())
}
