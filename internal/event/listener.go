package event

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Ingestor receives every message picked up by the listener.
type Ingestor interface {
	IngestMessage(ctx context.Context, event *dispatcher.MessageEvent, source string)
}

// MessageListener watches a Firestore collection and forwards newly added documents.
type MessageListener struct {
	client        *firestore.Client
	collection    string
	ingestor      Ingestor
	retryInterval time.Duration

	// lastReadTime is the read time of the last snapshot handled. Zero until
	// the first subscription delivers its initial snapshot.
	lastReadTime time.Time
}

func NewMessageListener(client *firestore.Client, collection string, ingestor Ingestor) *MessageListener {
	return &MessageListener{
		client:        client,
		collection:    collection,
		ingestor:      ingestor,
		retryInterval: 5 * time.Second,
	}
}

// Run blocks until ctx is cancelled, re-opening the subscription after errors.
func (l *MessageListener) Run(ctx context.Context) error {
	log.Info().Str("collection", l.collection).Msg("message listener started ✅")

	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			log.Info().Str("collection", l.collection).Msg("message listener stopped")
			return nil
		}

		log.Error().Err(err).Str("collection", l.collection).Msg("message listener failed, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *MessageListener) listen(ctx context.Context) error {
	it := l.client.Collection(l.collection).Snapshots(ctx)
	defer it.Stop()

	initial := true

	for {
		snapshot, err := it.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			return err
		}

		l.handleChanges(ctx, snapshot.Changes, snapshot.ReadTime, initial)
		initial = false
	}
}

// handleChanges forwards the new documents of one snapshot and returns how many were forwarded.
//
// The initial snapshot of the very first subscription lists documents created
// before the service started and is skipped. After a reconnect the initial
// snapshot is filtered down to documents created since the last snapshot we saw.
func (l *MessageListener) handleChanges(ctx context.Context, changes []firestore.DocumentChange, readTime time.Time, initial bool) int {
	if initial && l.lastReadTime.IsZero() {
		l.lastReadTime = readTime
		log.Info().Int("existing_documents", len(changes)).Msg("skipping initial message snapshot")
		return 0
	}

	var since time.Time
	if initial {
		since = l.lastReadTime
	}

	docs := newDocuments(changes, since)
	for _, doc := range docs {
		event := MessageFromDocument(doc.Ref.ID, doc.Data())
		l.ingestor.IngestMessage(ctx, event, SourceFirestore)
	}

	if initial && len(docs) > 0 {
		log.Info().Int("missed_documents", len(docs)).Time("since", since).Msg("recovered messages created while reconnecting")
	}

	l.lastReadTime = readTime
	return len(docs)
}

// newDocuments returns the added documents created after since. A zero since keeps every added document.
func newDocuments(changes []firestore.DocumentChange, since time.Time) []*firestore.DocumentSnapshot {
	var docs []*firestore.DocumentSnapshot
	for _, change := range changes {
		if change.Kind != firestore.DocumentAdded || change.Doc == nil {
			continue
		}
		if !since.IsZero() && !change.Doc.CreateTime.After(since) {
			continue
		}
		docs = append(docs, change.Doc)
	}
	return docs
}
