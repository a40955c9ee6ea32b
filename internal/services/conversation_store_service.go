package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"arthurchat/internal/fsutil"
	"arthurchat/internal/idgen"
	"arthurchat/internal/logger"
	"arthurchat/internal/version"
	"arthurchat/pkg/chattypes"

	"golang.org/x/text/language"
)

// ConversationStorageKey is the storage key holding the serialized conversation record.
const ConversationStorageKey = "conversation_data"

// ErrInvalidConversation is returned when serialized data is not a structurally valid record.
var ErrInvalidConversation = errors.New("invalid conversation data")

// ConversationStoreService owns the single conversation record of the process and is
// the only writer of its durable copy. Every mutation persists the full record;
// a failed write is logged and the in-memory record stays authoritative.
type ConversationStoreService struct {
	mu          sync.Mutex
	initialized bool
	storage     chattypes.KeyValueStore
	clock       chattypes.Clock
	ids         chattypes.IDGenerator
	metadata    func() chattypes.ConversationMetadata
	downloadDir string
	record      chattypes.ConversationRecord
}

// ConversationStoreOption customises a ConversationStoreService.
type ConversationStoreOption func(*ConversationStoreService)

// WithClock sets the time source used for timestamps and activity.
func WithClock(clock chattypes.Clock) ConversationStoreOption {
	return func(s *ConversationStoreService) { s.clock = clock }
}

// WithIDGenerator sets the generator for session and message ids.
func WithIDGenerator(ids chattypes.IDGenerator) ConversationStoreOption {
	return func(s *ConversationStoreService) { s.ids = ids }
}

// WithDownloadDir sets the directory DownloadConversation writes to.
func WithDownloadDir(dir string) ConversationStoreOption {
	return func(s *ConversationStoreService) { s.downloadDir = dir }
}

// WithMetadata overrides environment detection for new records.
func WithMetadata(fn func() chattypes.ConversationMetadata) ConversationStoreOption {
	return func(s *ConversationStoreService) { s.metadata = fn }
}

// NewConversationStoreService creates a store over storage. The record is loaded
// lazily on first access.
func NewConversationStoreService(storage chattypes.KeyValueStore, opts ...ConversationStoreOption) *ConversationStoreService {
	s := &ConversationStoreService{
		storage:     storage,
		clock:       idgen.SystemClock{},
		metadata:    DetectMetadata,
		downloadDir: ".",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = idgen.New(s.clock)
	}
	return s
}

// Name returns the service name "conversation_store" for registration.
func (s *ConversationStoreService) Name() string {
	return "conversation_store"
}

// Initialize loads the record so startup surfaces storage problems early.
func (s *ConversationStoreService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return nil
}

// AddMessage appends a new message and returns its id. An empty type means text.
func (s *ConversationStoreService) AddMessage(sender chattypes.Sender, content string, msgType chattypes.MessageType) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	now := s.nowMillis()
	msg := chattypes.Message{
		ID:        s.ids.NewID(idgen.PrefixMessage),
		Timestamp: now,
		Sender:    sender,
		Content:   content,
		Type:      msgType.OrText(),
	}
	s.record.Messages = append(s.record.Messages, msg)
	s.touchLocked(now)
	s.persistLocked()

	logger.ServiceOperation(s.Name(), "add_message", "id", msg.ID, "sender", sender)
	return msg.ID
}

// GetMessages returns a copy of the message log in insertion order.
func (s *ConversationStoreService) GetMessages() []chattypes.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	out := make([]chattypes.Message, len(s.record.Messages))
	copy(out, s.record.Messages)
	return out
}

// GetMessageByID returns a copy of the message with id.
func (s *ConversationStoreService) GetMessageByID(id string) (chattypes.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	if i := s.indexLocked(id); i >= 0 {
		return s.record.Messages[i], true
	}
	return chattypes.Message{}, false
}

// GetConversationData returns a deep copy of the whole record.
func (s *ConversationStoreService) GetConversationData() chattypes.ConversationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.record.Clone()
}

// UpdateMessage replaces the content of message id. It returns false, changing
// nothing, when no such message exists.
func (s *ConversationStoreService) UpdateMessage(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.record.Messages[i].Content = content
	s.touchLocked(s.nowMillis())
	s.persistLocked()

	logger.ServiceOperation(s.Name(), "update_message", "id", id)
	return true
}

// DeleteMessage removes message id, keeping the order of the rest.
func (s *ConversationStoreService) DeleteMessage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.record.Messages = append(s.record.Messages[:i], s.record.Messages[i+1:]...)
	s.touchLocked(s.nowMillis())
	s.persistLocked()

	logger.ServiceOperation(s.Name(), "delete_message", "id", id)
	return true
}

// ClearConversation replaces the record with a brand-new session.
func (s *ConversationStoreService) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.resetLocked()
}

// GetConversationStats counts messages by sender. It does not persist anything.
func (s *ConversationStoreService) GetConversationStats() chattypes.ConversationStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.statsLocked(s.nowMillis())
}

// ExportConversation serializes the record with stats and an export timestamp
// as two-space indented JSON.
func (s *ConversationStoreService) ExportConversation() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()

	data, err := s.exportLocked(s.nowMillis())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DownloadConversation writes the export to filename, relative to the download
// directory unless absolute. An empty filename uses
// conversation_<sessionId>_<YYYY-MM-DD>.json. The written path is returned.
func (s *ConversationStoreService) DownloadConversation(filename string) (string, error) {
	s.mu.Lock()
	s.ensureLoadedLocked()
	now := s.nowMillis()
	data, err := s.exportLocked(now)
	sessionID := s.record.SessionID
	s.mu.Unlock()

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(filename) == "" {
		filename = DefaultExportFilename(sessionID, time.UnixMilli(now))
	}
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.downloadDir, filename)
	}

	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write conversation export: %w", err)
	}

	logger.Info("Conversation exported", "session", sessionID, "path", path)
	return path, nil
}

// ImportConversation replaces the record with serialized, after validating it.
// Invalid input returns false and leaves the current record untouched.
// Fields outside the record, such as stats and exportDate, are ignored.
func (s *ConversationStoreService) ImportConversation(serialized string) bool {
	record, err := DecodeConversationRecord([]byte(serialized))
	if err != nil {
		logger.Warn("Rejected conversation import", "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.record = record
	s.persistLocked()

	logger.ServiceOperation(s.Name(), "import", "session", record.SessionID, "messages", len(record.Messages))
	return true
}

// DefaultExportFilename returns conversation_<sessionId>_<YYYY-MM-DD>.json for the UTC date of at.
func DefaultExportFilename(sessionID string, at time.Time) string {
	return fmt.Sprintf("conversation_%s_%s.json", sessionID, at.UTC().Format("2006-01-02"))
}

// DecodeConversationRecord parses and structurally validates a serialized record:
// sessionId must be a string, startTime and lastActivity numbers, messages an
// array and metadata an object.
func DecodeConversationRecord(data []byte) (chattypes.ConversationRecord, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: %v", ErrInvalidConversation, err)
	}
	if doc == nil {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: not an object", ErrInvalidConversation)
	}

	if _, ok := doc["sessionId"].(string); !ok {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: sessionId must be a string", ErrInvalidConversation)
	}
	for _, field := range []string{"startTime", "lastActivity"} {
		if _, ok := doc[field].(float64); !ok {
			return chattypes.ConversationRecord{}, fmt.Errorf("%w: %s must be a number", ErrInvalidConversation, field)
		}
	}
	if _, ok := doc["messages"].([]any); !ok {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: messages must be an array", ErrInvalidConversation)
	}
	if _, ok := doc["metadata"].(map[string]any); !ok {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: metadata must be an object", ErrInvalidConversation)
	}

	var record chattypes.ConversationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return chattypes.ConversationRecord{}, fmt.Errorf("%w: %v", ErrInvalidConversation, err)
	}
	if record.Messages == nil {
		record.Messages = []chattypes.Message{}
	}
	return record, nil
}

func (s *ConversationStoreService) ensureLoadedLocked() {
	if s.initialized {
		return
	}
	s.initialized = true

	raw, found, err := s.storage.GetItem(ConversationStorageKey)
	switch {
	case err != nil:
		logger.Warn("Failed to read stored conversation, starting a new one", "error", err)
		s.resetLocked()
	case !found:
		s.resetLocked()
	default:
		record, err := DecodeConversationRecord([]byte(raw))
		if err != nil {
			logger.Warn("Stored conversation is invalid, starting a new one", "error", err)
			s.resetLocked()
			return
		}
		s.record = record
		logger.Debug("Loaded conversation", "session", record.SessionID, "messages", len(record.Messages))
	}
}

func (s *ConversationStoreService) resetLocked() {
	now := s.nowMillis()
	s.record = chattypes.ConversationRecord{
		SessionID:    s.ids.NewID(idgen.PrefixConversation),
		StartTime:    now,
		LastActivity: now,
		Messages:     []chattypes.Message{},
		Metadata:     s.metadata(),
	}
	s.persistLocked()
	logger.Debug("Started new conversation", "session", s.record.SessionID)
}

func (s *ConversationStoreService) persistLocked() {
	data, err := json.Marshal(s.record)
	if err != nil {
		logger.Error("Failed to encode conversation", "error", err)
		return
	}
	if err := s.storage.SetItem(ConversationStorageKey, string(data)); err != nil {
		logger.StorageFailure(ConversationStorageKey, err)
	}
}

// touchLocked advances lastActivity without ever moving it backwards.
func (s *ConversationStoreService) touchLocked(now int64) {
	if now > s.record.LastActivity {
		s.record.LastActivity = now
	}
}

func (s *ConversationStoreService) indexLocked(id string) int {
	for i, msg := range s.record.Messages {
		if msg.ID == id {
			return i
		}
	}
	return -1
}

func (s *ConversationStoreService) statsLocked(now int64) chattypes.ConversationStats {
	stats := chattypes.ConversationStats{
		TotalMessages: len(s.record.Messages),
		Duration:      now - s.record.StartTime,
		LastActivity:  s.record.LastActivity,
	}
	for _, msg := range s.record.Messages {
		switch msg.Sender {
		case chattypes.SenderUser:
			stats.UserMessages++
		case chattypes.SenderBot:
			stats.BotMessages++
		}
	}
	return stats
}

func (s *ConversationStoreService) exportLocked(now int64) ([]byte, error) {
	export := chattypes.ConversationExport{
		ConversationRecord: s.record.Clone(),
		Stats:              s.statsLocked(now),
		ExportDate:         time.UnixMilli(now).UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("failed to encode conversation export: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (s *ConversationStoreService) nowMillis() int64 {
	return s.clock.Now().UnixMilli()
}

// DetectMetadata describes the current process environment.
func DetectMetadata() chattypes.ConversationMetadata {
	return chattypes.ConversationMetadata{
		UserAgent: version.UserAgent(),
		Language:  DetectLanguage(),
		Timezone:  detectTimezone(),
	}
}

// DetectLanguage returns the BCP 47 tag of the first usable locale variable,
// or en-US. POSIX values like "de_DE.UTF-8" become "de-DE".
func DetectLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			continue
		}
		return tag.String()
	}
	return "en-US"
}

func detectTimezone() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if name := time.Local.String(); name != "Local" {
		return name
	}
	name, _ := time.Now().Zone()
	return name
}
