package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"arthurchat/internal/logger"
	"arthurchat/internal/services"
	"arthurchat/pkg/chattypes"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"
)

const chatHelp = `Type a message and press enter to talk to Arthur.
  /history            show the whole conversation
  /stats              show conversation statistics
  /theme [name]       list themes or switch to light, dark or academic
  /edit <id> <text>   change a message
  /delete <id>        delete a message
  /ids                list message ids
  /download [file]    save the conversation as JSON
  /clear              start a new conversation
  /exit               leave`

func newChatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, c)
		},
	}
}

func runChat(cmd *cobra.Command, c *cli) error {
	app, err := c.load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sh := ishell.New()
	sh.SetPrompt("arthur> ")
	sh.DeleteCmd("exit")
	sh.DeleteCmd("help")
	sh.DeleteCmd("clear")

	out := cmd.OutOrStdout()
	app.Printer(out).Info("Arthur chat - type /help for commands or /exit to quit.")

	session := newChatSession(app, out)
	defer session.Close()

	sh.NotFound(func(ic *ishell.Context) {
		line := strings.Join(ic.RawArgs, " ")
		quit, err := session.Handle(ctx, line)
		if err != nil {
			app.Printer(out).Error(err.Error())
		}
		if quit {
			ic.Stop()
		}
	})

	chatLog := logger.NewStyledLogger("chat")
	chatLog.Info("Starting chat session", "session", app.Store.GetConversationData().SessionID, "theme", app.Themes.GetCurrentThemeType())
	sh.Run()
	chatLog.Debug("Chat session ended")
	return nil
}

// chatSession prints the conversation as it changes and interprets chat input.
type chatSession struct {
	mu          sync.Mutex
	app         *App
	out         io.Writer
	printed     int
	unsubscribe func()
}

// newChatSession subscribes to the message sequence. The current history is printed immediately.
func newChatSession(app *App, out io.Writer) *chatSession {
	s := &chatSession{app: app, out: out}
	s.unsubscribe = app.Messages.Subscribe(s.onMessages)
	return s
}

func (s *chatSession) onMessages(messages []chattypes.MessageData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(messages) == 0 && s.printed > 0 {
		s.app.Printer(s.out).Muted("(conversation cleared)")
	}
	if len(messages) <= s.printed {
		s.printed = len(messages)
		return
	}
	for _, msg := range messages[s.printed:] {
		block, err := s.app.Transcript.RenderMessage(msg)
		if err != nil {
			logger.Error("Failed to render message", "id", msg.ID, "error", err)
			s.app.Printer(s.out).Error(fmt.Sprintf("cannot display %s: %v", msg.ID, err))
			continue
		}
		fmt.Fprintln(s.out, block)
	}
	s.printed = len(messages)
}

// Close stops printing updates.
func (s *chatSession) Close() {
	s.unsubscribe()
}

// Handle runs one line of input. quit reports that the session should end.
func (s *chatSession) Handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		_, err := s.app.Chat.Send(ctx, line)
		if errors.Is(err, services.ErrEmptyInput) {
			return false, nil
		}
		return false, err
	}

	fields := strings.Fields(line)
	name, args := strings.TrimPrefix(fields[0], "/"), fields[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, chatHelp)
	case "history":
		rendered, err := s.app.Transcript.Render()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, rendered)
	case "stats":
		printStats(s.out, s.app)
	case "ids":
		for _, msg := range s.app.Messages.GetMessages() {
			fmt.Fprintf(s.out, "%s\t%s\t%s\n", msg.ID, msg.Sender, firstLine(msg.Content))
		}
	case "theme":
		return false, s.theme(args)
	case "edit":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: /edit <id> <text>")
		}
		before, ok := s.app.Messages.GetMessageByID(args[0])
		content := strings.Join(args[1:], " ")
		if !ok || !s.app.Messages.UpdateMessage(args[0], content) {
			return false, fmt.Errorf("%w: %s", errMessageNotFound, args[0])
		}
		fmt.Fprintln(s.out, renderDiff(before.Content, content))
	case "delete":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: /delete <id>")
		}
		if !s.app.Messages.DeleteMessage(args[0]) {
			return false, fmt.Errorf("%w: %s", errMessageNotFound, args[0])
		}
		s.app.Printer(s.out).Success("Deleted " + args[0])
	case "download":
		var filename string
		if len(args) > 0 {
			filename = args[0]
		}
		path, err := s.app.Store.DownloadConversation(filename)
		if err != nil {
			return false, err
		}
		s.app.Printer(s.out).Success("Conversation downloaded to " + path)
	case "clear":
		s.app.Messages.ClearAllMessages()
	default:
		return false, fmt.Errorf("unknown command /%s (try /help)", name)
	}
	return false, nil
}

func (s *chatSession) theme(args []string) error {
	if len(args) == 0 {
		current := s.app.Themes.GetCurrentThemeType()
		for _, opt := range s.app.Themes.GetAvailableThemes() {
			marker := " "
			if opt.Type == current {
				marker = "*"
			}
			fmt.Fprintf(s.out, "%s %-9s %s\n", marker, opt.Type, opt.Description)
		}
		return nil
	}
	if err := s.app.Themes.SetThemeByName(args[0]); err != nil {
		return err
	}
	s.app.Printer(s.out).Success(fmt.Sprintf("Theme set to %s", s.app.Themes.GetCurrentThemeType()))
	return nil
}
