package event

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/stretchr/testify/require"
)

type recordingIngestor struct {
	events []*dispatcher.MessageEvent
}

func (r *recordingIngestor) IngestMessage(_ context.Context, event *dispatcher.MessageEvent, source string) {
	r.events = append(r.events, event)
}

func addedDoc(id string, createTime time.Time) firestore.DocumentChange {
	return firestore.DocumentChange{
		Kind: firestore.DocumentAdded,
		Doc: &firestore.DocumentSnapshot{
			Ref:        &firestore.DocumentRef{ID: id},
			CreateTime: createTime,
		},
	}
}

func docIDs(docs []*firestore.DocumentSnapshot) []string {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.Ref.ID)
	}
	return ids
}

func TestNewDocuments(t *testing.T) {
	since := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	changes := []firestore.DocumentChange{
		addedDoc("old", since.Add(-time.Minute)),
		addedDoc("same", since),
		addedDoc("new", since.Add(time.Second)),
		{Kind: firestore.DocumentModified, Doc: &firestore.DocumentSnapshot{Ref: &firestore.DocumentRef{ID: "edited"}, CreateTime: since.Add(time.Minute)}},
		{Kind: firestore.DocumentRemoved, Doc: &firestore.DocumentSnapshot{Ref: &firestore.DocumentRef{ID: "deleted"}, CreateTime: since.Add(time.Minute)}},
	}

	testCases := []struct {
		name  string
		since time.Time
		want  []string
	}{
		{name: "zero since keeps every added document", since: time.Time{}, want: []string{"old", "same", "new"}},
		{name: "only documents created after since", since: since, want: []string{"new"}},
		{name: "nothing newer", since: since.Add(time.Hour), want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, docIDs(newDocuments(changes, tc.since)))
		})
	}
}

func TestMessageListener_HandleChanges(t *testing.T) {
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	t.Run("should skip the initial snapshot on the first subscription", func(t *testing.T) {
		req := require.New(t)
		ingestor := &recordingIngestor{}
		listener := NewMessageListener(nil, "messages", ingestor)

		n := listener.handleChanges(context.Background(), []firestore.DocumentChange{
			addedDoc("m1", start.Add(-time.Hour)),
			addedDoc("m2", start.Add(-time.Minute)),
		}, start, true)

		req.Zero(n)
		req.Empty(ingestor.events)
		req.Equal(start, listener.lastReadTime)
	})

	t.Run("should forward added documents of later snapshots", func(t *testing.T) {
		req := require.New(t)
		ingestor := &recordingIngestor{}
		listener := NewMessageListener(nil, "messages", ingestor)
		listener.handleChanges(context.Background(), nil, start, true)

		n := listener.handleChanges(context.Background(), []firestore.DocumentChange{
			addedDoc("m3", start.Add(time.Second)),
		}, start.Add(2*time.Second), false)

		req.Equal(1, n)
		req.Len(ingestor.events, 1)
		req.Equal(start.Add(2*time.Second), listener.lastReadTime)
	})

	t.Run("should recover documents created while reconnecting", func(t *testing.T) {
		req := require.New(t)
		ingestor := &recordingIngestor{}
		listener := NewMessageListener(nil, "messages", ingestor)
		listener.handleChanges(context.Background(), nil, start, true)

		// The stream broke after start; m5 was written before the new subscription opened.
		reconnectedAt := start.Add(10 * time.Second)
		n := listener.handleChanges(context.Background(), []firestore.DocumentChange{
			addedDoc("m4", start.Add(-time.Minute)),
			addedDoc("m5", start.Add(5*time.Second)),
		}, reconnectedAt, true)

		req.Equal(1, n)
		req.Len(ingestor.events, 1)
		req.Equal(reconnectedAt, listener.lastReadTime)
	})
}
