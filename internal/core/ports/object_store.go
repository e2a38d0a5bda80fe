package ports

import "context"

// ObjectStore is the S3-compatible artifact store collaborator.
//
//go:generate go run go.uber.org/mock/mockgen -source=object_store.go -destination=mocks/mock_object_store.go -package=mocks
type ObjectStore interface {
	// Put stores body under bucket/key, overwriting any existing object.
	Put(ctx context.Context, bucket, key string, body []byte) error

	// Get retrieves the object at bucket/key.
	// Returns domain.ErrObjectNotFound if the key is absent.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}
