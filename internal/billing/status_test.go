package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketOf(t *testing.T) {
	tests := []struct {
		status   string
		bucket   Bucket
		entitled bool
	}{
		{"active", BucketEntitled, true},
		{"trialing", BucketEntitled, true},
		{"past_due", BucketAtRisk, false},
		{"unpaid", BucketAtRisk, false},
		{"canceled", BucketTerminated, false},
		{"incomplete_expired", BucketTerminated, false},
		{"incomplete", BucketUnknown, false},
		{"paused", BucketUnknown, false},
		{"", BucketUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.bucket, BucketOf(tt.status))
			assert.Equal(t, tt.entitled, Entitles(tt.status))
		})
	}
}
