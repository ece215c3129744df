package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeObjects struct {
	put    *s3.PutObjectInput
	body   string
	delKey string
	err    error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.delKey = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestJoinPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "exports/a.xlsx", "https://cdn.example.com/exports/a.xlsx"},
		{"https://cdn.example.com/", "/exports/a.xlsx", "https://cdn.example.com/exports/a.xlsx"},
		{"https://cdn.example.com/files", "a.xlsx", "https://cdn.example.com/files/a.xlsx"},
		{"", "a.xlsx", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tc := range tests {
		if got := joinPublicURL(tc.base, tc.key); got != tc.want {
			t.Errorf("joinPublicURL(%q, %q) = %q, want %q", tc.base, tc.key, got, tc.want)
		}
	}
}

func TestUploaderUpload(t *testing.T) {
	objects := &fakeObjects{}
	u := newUploader(objects, "bucket", "https://cdn.example.com")

	res, err := u.Upload(context.Background(), "exports/x.xlsx", "application/octet-stream", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if aws.ToString(objects.put.Bucket) != "bucket" || aws.ToString(objects.put.Key) != "exports/x.xlsx" {
		t.Errorf("put input = %+v", objects.put)
	}
	if objects.body != "data" {
		t.Errorf("uploaded body = %q", objects.body)
	}
	if res.ETag != "abc123" || res.Location != "https://cdn.example.com/exports/x.xlsx" {
		t.Errorf("result = %+v", res)
	}
}

func TestUploaderErrors(t *testing.T) {
	boom := errors.New("denied")
	u := newUploader(&fakeObjects{err: boom}, "bucket", "")

	if _, err := u.Upload(context.Background(), "k", "text/plain", strings.NewReader("")); !errors.Is(err, boom) {
		t.Errorf("Upload error = %v, want %v", err, boom)
	}
	if err := u.Delete(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("Delete error = %v, want %v", err, boom)
	}
}

func TestNewCloudflareR2UploaderRequiresCredentials(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	if err == nil {
		t.Error("expected an error for incomplete configuration")
	}
}
