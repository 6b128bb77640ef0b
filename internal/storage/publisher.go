// Package storage uploads rendered arrival cards to S3-compatible object
// storage and resolves their public URLs.  The publisher never replaces
// an existing object: a key collision means the document identifier was
// reused, which the workflow treats as fatal rather than papering over.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectExists is returned when an upload would overwrite an object
// already stored under the same key.
var ErrObjectExists = errors.New("object already exists")

// contentType of every uploaded card.
const contentType = "application/pdf"

// Publisher wraps a MinIO client bound to one bucket.
type Publisher struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewPublisher connects to the object storage endpoint.  publicBaseURL is
// the externally reachable prefix under which bucket objects are served.
func NewPublisher(endpoint, accessKey, secretKey, bucket, publicBaseURL string, useSSL bool) (*Publisher, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect %s: %w", endpoint, err)
	}
	return &Publisher{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the target bucket if it does not exist yet.
// Called once at startup.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket check %s: %w", p.bucket, err)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("storage: make bucket %s: %w", p.bucket, err)
	}
	return nil
}

// ObjectKey derives the storage key for a document identifier.
func ObjectKey(uniqueID string) string { return "cards/" + uniqueID + ".pdf" }

// Publish uploads the rendered PDF under the key derived from uniqueID
// and returns the key and resolved public URL.  An existing object under
// the same key yields ErrObjectExists; the upload is never retried here.
func (p *Publisher) Publish(ctx context.Context, uniqueID string, pdf []byte) (string, string, error) {
	key := ObjectKey(uniqueID)

	// Stat first: an existing object means the identifier was reused.
	_, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return "", "", fmt.Errorf("storage: %s: %w", key, ErrObjectExists)
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return "", "", fmt.Errorf("storage: stat %s: %w", key, err)
	}

	_, err = p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return key, p.URL(key), nil
}

// URL resolves the public retrieval URL for a storage key.
func (p *Publisher) URL(key string) string {
	return p.publicBaseURL + "/" + p.bucket + "/" + key
}
