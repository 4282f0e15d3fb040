package upload

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestUploader(t *testing.T) *Uploader {
	t.Helper()
	u, err := New(context.Background(), Config{
		Bucket:          "edenai-test",
		Region:          "eu-west-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        "http://localhost:9000",
		URLExpiry:       30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return u
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("expected error for missing bucket")
	}
}

func TestPresignGet(t *testing.T) {
	u := newTestUploader(t)

	url, err := u.PresignGet(context.Background(), "abc123.wav")
	if err != nil {
		t.Fatalf("PresignGet failed: %v", err)
	}
	if !strings.Contains(url, "edenai-test") || !strings.Contains(url, "abc123.wav") {
		t.Errorf("presigned URL should reference bucket and key, got %q", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=1800") {
		t.Errorf("presigned URL should carry the configured expiry, got %q", url)
	}
	if !strings.Contains(url, "X-Amz-Signature=") {
		t.Errorf("presigned URL should be signed, got %q", url)
	}
}
