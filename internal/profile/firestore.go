package profile

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore reads user profiles from a Firestore collection keyed by user id.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{
		client:     client,
		collection: collection,
	}
}

func (s *FirestoreStore) LookupUser(ctx context.Context, id string) (*dispatcher.UserProfile, error) {
	doc, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user document %s: %w", id, err)
	}
	if !doc.Exists() {
		return nil, nil
	}

	return profileFromData(doc.Ref.ID, doc.Data()), nil
}
