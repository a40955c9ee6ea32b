package services

import (
	"encoding/json"
	"strings"
	"testing"

	"arthurchat/internal/factory"
	"arthurchat/internal/surface"
	"arthurchat/internal/testutils"
	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranscript(t *testing.T) (*TranscriptService, *MessageService, *ThemeManagerService) {
	t.Helper()
	storage := testutils.NewFailingStore()
	store, _ := newTestConversationStore(t, storage)
	messages := NewMessageService(store, nil)
	themeManager := NewThemeManagerService(storage, surface.NewDocument())
	transcript := NewTranscriptService(messages, store, themeManager)
	require.NoError(t, transcript.Initialize())
	return transcript, messages, themeManager
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "< 1m"},
		{59_999, "< 1m"},
		{60_000, "1m"},
		{59 * 60_000, "59m"},
		{60 * 60_000, "1h 0m"},
		{(2*60 + 5) * 60_000, "2h 5m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.ms))
		})
	}
}

func TestTranscriptRendersMessagesInOrder(t *testing.T) {
	transcript, messages, _ := newTestTranscript(t)
	transcript.SetPlain(true)

	messages.AddMessage(chattypes.MessageData{Content: "Hello Arthur", Sender: chattypes.SenderUser})
	messages.AddMessage(chattypes.MessageData{Content: "**Hello!** How can I help?", Sender: chattypes.SenderBot})

	out, err := transcript.Render()
	require.NoError(t, err)

	assert.Equal(t, out, ansi.Strip(out), "plain output carries no escape codes")
	assert.Contains(t, out, "Messages: 2 | Duration:")
	assert.Contains(t, out, "You · ")
	assert.Contains(t, out, "Arthur · ")

	userAt := strings.Index(out, "Hello Arthur")
	botAt := strings.Index(out, "How can I help?")
	require.GreaterOrEqual(t, userAt, 0)
	require.GreaterOrEqual(t, botAt, 0)
	assert.Less(t, userAt, botAt)
}

func TestTranscriptFollowsThemeSwitch(t *testing.T) {
	transcript, _, themeManager := newTestTranscript(t)
	assert.Equal(t, "light", transcript.glamourStyle())

	themeManager.SetTheme(chattypes.ThemeDark)
	assert.Equal(t, "dark", transcript.glamourStyle())

	transcript.SetPlain(true)
	assert.Equal(t, "notty", transcript.glamourStyle())
}

func TestTranscriptRenderStatsEmpty(t *testing.T) {
	transcript, _, _ := newTestTranscript(t)
	transcript.SetPlain(true)

	header := transcript.RenderStats()
	assert.Contains(t, header, "conv_0000001")
	assert.Contains(t, header, "Messages: 0 | Duration: < 1m")
}

func TestTranscriptSetWordWrap(t *testing.T) {
	transcript, _, _ := newTestTranscript(t)
	assert.Error(t, transcript.SetWordWrap(0))
	assert.NoError(t, transcript.SetWordWrap(40))
}

func TestTranscriptRejectsUnknownSender(t *testing.T) {
	transcript, messages, _ := newTestTranscript(t)
	transcript.SetPlain(true)

	record := testutils.NewTestDataGenerator().SampleRecord()
	record.Messages[0].Sender = "carrier-pigeon"
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.True(t, messages.ImportConversation(string(data)))

	_, err = transcript.Render()
	assert.ErrorIs(t, err, factory.ErrUnknownSender)
	assert.ErrorContains(t, err, "carrier-pigeon")

	_, err = transcript.RenderMessage(chattypes.MessageData{Content: "coo", Sender: "carrier-pigeon"})
	assert.ErrorIs(t, err, factory.ErrUnknownSender)
}

func TestTranscriptRenderMessageFillsDisplayDefaults(t *testing.T) {
	transcript, _, _ := newTestTranscript(t)
	transcript.SetPlain(true)

	out, err := transcript.RenderMessage(chattypes.MessageData{Content: "draft", Sender: chattypes.SenderUser})
	require.NoError(t, err)
	assert.Contains(t, out, "You · ")
	assert.NotContains(t, out, "--:--", "missing timestamp is filled in by the factory")
	assert.Contains(t, out, "draft")
}

func TestTranscriptRequiresInitialize(t *testing.T) {
	storage := testutils.NewFailingStore()
	store, _ := newTestConversationStore(t, storage)
	messages := NewMessageService(store, nil)
	transcript := NewTranscriptService(messages, store, NewThemeManagerService(storage, surface.NewDocument()))

	_, err := transcript.RenderMessage(chattypes.MessageData{Content: "hi", Sender: chattypes.SenderUser})
	assert.ErrorIs(t, err, ErrTranscriptNotInitialized)
}
