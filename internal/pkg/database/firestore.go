package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// DB wraps the Firestore client so repositories depend on one local type.
type DB struct {
	*firestore.Client
}

func NewFirestoreDB(ctx context.Context, projectID string, credentialsFile string) (*DB, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &DB{Client: client}, nil
}
