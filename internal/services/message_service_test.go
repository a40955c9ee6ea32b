package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"arthurchat/internal/factory"
	"arthurchat/internal/testutils"
	"arthurchat/pkg/chattypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageService(t *testing.T) (*MessageService, *ConversationStoreService) {
	t.Helper()
	store, _ := newTestConversationStore(t, testutils.NewFailingStore())
	f := factory.NewMessageFactory(testutils.FixedClock{At: testutils.BaseTime}, testutils.NewSequenceIDs())
	return NewMessageService(store, f), store
}

func TestMessageServiceSeedsFromStore(t *testing.T) {
	store, _ := newTestConversationStore(t, testutils.NewFailingStore())
	store.AddMessage(chattypes.SenderUser, "earlier", "")
	store.AddMessage(chattypes.SenderBot, "reply", chattypes.MessageTypeAudio)

	svc := NewMessageService(store, nil)
	assert.Equal(t, "message", svc.Name())
	require.NoError(t, svc.Initialize())

	messages := svc.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "earlier", messages[0].Content)
	assert.Equal(t, chattypes.MessageTypeAudio, messages[1].Type)
	assert.Equal(t, store.GetMessages()[0].ID, messages[0].ID)
}

func TestSubscribeReceivesFullSnapshots(t *testing.T) {
	svc, _ := newTestMessageService(t)

	var snapshots [][]chattypes.MessageData
	unsubscribe := svc.Subscribe(func(msgs []chattypes.MessageData) {
		snapshots = append(snapshots, msgs)
	})
	defer unsubscribe()

	svc.AddMessage(chattypes.MessageData{Content: "a", Sender: chattypes.SenderUser})
	svc.AddMessage(chattypes.MessageData{Content: "b", Sender: chattypes.SenderBot})

	require.Len(t, snapshots, 3)
	assert.Empty(t, snapshots[0])
	assert.Len(t, snapshots[1], 1)
	assert.Len(t, snapshots[2], 2)
	assert.Equal(t, "b", snapshots[2][1].Content)

	// Snapshot copies are independent of the service state.
	snapshots[2][0].Content = "mutated"
	assert.Equal(t, "a", svc.GetMessages()[0].Content)
}

func TestLateSubscriberGetsLatestSnapshot(t *testing.T) {
	svc, _ := newTestMessageService(t)
	svc.AddMessage(chattypes.MessageData{Content: "already here", Sender: chattypes.SenderUser})

	var first []chattypes.MessageData
	svc.Subscribe(func(msgs []chattypes.MessageData) {
		if first == nil {
			first = msgs
		}
	})
	require.Len(t, first, 1)
	assert.Equal(t, "already here", first[0].Content)
}

func TestAddMessageResolvesIDAndTimestamp(t *testing.T) {
	svc, store := newTestMessageService(t)

	id := svc.AddMessage(chattypes.MessageData{Content: "hi", Sender: chattypes.SenderUser})
	stored, ok := store.GetMessageByID(id)
	require.True(t, ok)

	msg, ok := svc.GetMessageByID(id)
	require.True(t, ok)
	assert.Equal(t, stored.Timestamp, msg.Timestamp)

	id = svc.AddMessage(chattypes.MessageData{Content: "dated", Sender: chattypes.SenderBot, Timestamp: 99, ID: "ignored"})
	msg, ok = svc.GetMessageByID(id)
	require.True(t, ok)
	assert.Equal(t, int64(99), msg.Timestamp)
	assert.NotEqual(t, "ignored", msg.ID)
}

func TestAddMessageRecordsStoredType(t *testing.T) {
	svc, store := newTestMessageService(t)

	id := svc.AddMessage(chattypes.MessageData{Content: "untyped", Sender: chattypes.SenderUser})
	stored, ok := store.GetMessageByID(id)
	require.True(t, ok)

	msg, ok := svc.GetMessageByID(id)
	require.True(t, ok)
	assert.Equal(t, chattypes.MessageTypeText, stored.Type)
	assert.Equal(t, stored.Type, msg.Type)
}

func TestSubscriberMayMutateDuringNotification(t *testing.T) {
	svc, store := newTestMessageService(t)

	var lengths []int
	svc.Subscribe(func(messages []chattypes.MessageData) {
		lengths = append(lengths, len(messages))
		if len(messages) == 1 && messages[0].Sender == chattypes.SenderUser {
			svc.AddMessage(chattypes.MessageData{Content: "auto reply", Sender: chattypes.SenderBot})
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.AddMessage(chattypes.MessageData{Content: "hello", Sender: chattypes.SenderUser})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AddMessage from a subscriber did not return")
	}

	assert.Equal(t, []int{0, 1, 2}, lengths)
	messages := svc.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "auto reply", messages[1].Content)
	assert.Len(t, store.GetMessages(), 2)
}

func TestConcurrentAddsPublishInStoreOrder(t *testing.T) {
	svc, store := newTestMessageService(t)

	var mu sync.Mutex
	var last []chattypes.MessageData
	svc.Subscribe(func(messages []chattypes.MessageData) {
		mu.Lock()
		defer mu.Unlock()
		if len(messages) < len(last) {
			t.Errorf("sequence shrank from %d to %d", len(last), len(messages))
		}
		last = messages
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			svc.AddMessage(chattypes.MessageData{Content: fmt.Sprintf("message %d", n), Sender: chattypes.SenderUser})
		}(i)
	}
	wg.Wait()

	stored := store.GetMessages()
	require.Len(t, stored, 20)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, last, 20)
	for i := range stored {
		assert.Equal(t, stored[i].ID, last[i].ID)
	}
}

func TestUpdateAndDeleteMirrorOnlySuccess(t *testing.T) {
	svc, store := newTestMessageService(t)
	id := svc.AddMessage(chattypes.MessageData{Content: "draft", Sender: chattypes.SenderUser})

	publishes := 0
	svc.Subscribe(func([]chattypes.MessageData) { publishes++ })
	publishes = 0

	assert.False(t, svc.UpdateMessage("msg_missing", "x"))
	assert.False(t, svc.DeleteMessage("msg_missing"))
	assert.Equal(t, 0, publishes)

	require.True(t, svc.UpdateMessage(id, "final"))
	msg, _ := svc.GetMessageByID(id)
	assert.Equal(t, "final", msg.Content)
	stored, _ := store.GetMessageByID(id)
	assert.Equal(t, "final", stored.Content)

	require.True(t, svc.DeleteMessage(id))
	assert.Empty(t, svc.GetMessages())
	assert.Empty(t, store.GetMessages())
	assert.Equal(t, 2, publishes)
}

func TestClearAllMessages(t *testing.T) {
	svc, store := newTestMessageService(t)
	svc.AddMessage(chattypes.MessageData{Content: "x", Sender: chattypes.SenderUser})
	session := store.GetConversationData().SessionID

	svc.ClearAllMessages()
	assert.Empty(t, svc.GetMessages())
	assert.Empty(t, store.GetMessages())
	assert.NotEqual(t, session, store.GetConversationData().SessionID)
}

func TestImportConversationReseedsProjection(t *testing.T) {
	svc, _ := newTestMessageService(t)
	svc.AddMessage(chattypes.MessageData{Content: "old", Sender: chattypes.SenderUser})

	gen := testutils.NewTestDataGenerator()
	require.True(t, svc.ImportConversation(gen.SampleRecordJSON(t)))
	messages := svc.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello Arthur", messages[0].Content)

	assert.False(t, svc.ImportConversation(`{"sessionId":1}`))
	assert.Len(t, svc.GetMessages(), 2)
}

func TestReloadPicksUpDirectStoreWrites(t *testing.T) {
	svc, store := newTestMessageService(t)
	store.AddMessage(chattypes.SenderBot, "written elsewhere", "")
	assert.Empty(t, svc.GetMessages())

	svc.Reload()
	assert.Len(t, svc.GetMessages(), 1)
}

func TestGetMessageStats(t *testing.T) {
	svc, _ := newTestMessageService(t)
	svc.AddMessage(chattypes.MessageData{Content: "a", Sender: chattypes.SenderUser})
	svc.AddMessage(chattypes.MessageData{Content: "b", Sender: chattypes.SenderBot, Type: chattypes.MessageTypeImage})
	svc.AddMessage(chattypes.MessageData{Content: "c", Sender: chattypes.SenderUser, Type: chattypes.MessageTypeText})

	stats := svc.GetMessageStats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.UserMessages)
	assert.Equal(t, 1, stats.BotMessages)
	assert.Equal(t, map[chattypes.MessageType]int{
		chattypes.MessageTypeText:  2,
		chattypes.MessageTypeImage: 1,
	}, stats.ByType)
}

func TestCreateMessageUsingFactory(t *testing.T) {
	svc, _ := newTestMessageService(t)

	component, err := svc.CreateMessageUsingFactory(chattypes.MessageData{Content: "hi", Sender: chattypes.SenderBot})
	require.NoError(t, err)
	assert.Equal(t, factory.BotMessageComponent, component.Kind)

	_, err = svc.CreateMessageUsingFactory(chattypes.MessageData{Content: "coo", Sender: "carrier-pigeon"})
	assert.ErrorIs(t, err, factory.ErrUnknownSender)

	assert.Len(t, svc.GetSupportedMessageTypes(), 4)
	assert.Len(t, svc.GetSupportedSenders(), 2)
}
