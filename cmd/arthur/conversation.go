package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"arthurchat/internal/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func newSendCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message...>",
		Short: "Send one message to Arthur and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			return sendAndPrint(cmd.Context(), cmd.OutOrStdout(), app, strings.Join(args, " "))
		},
	}
}

// sendAndPrint runs one chat turn and prints the bot's message.
func sendAndPrint(ctx context.Context, out io.Writer, app *App, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := app.Chat.Send(ctx, text)
	if err != nil {
		return err
	}
	msg, ok := app.Messages.GetMessageByID(result.BotMessageID)
	if !ok {
		return fmt.Errorf("reply %s not found", result.BotMessageID)
	}
	block, err := app.Transcript.RenderMessage(msg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, block)
	return nil
}

func newHistoryCmd(c *cli) *cobra.Command {
	var ids bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ids {
				for _, msg := range app.Messages.GetMessages() {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", msg.ID, msg.Sender, msg.Type.OrText(), firstLine(msg.Content))
				}
				return nil
			}
			rendered, err := app.Transcript.Render()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ids, "ids", false, "List message ids instead of rendering the transcript")
	return cmd
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show conversation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), app)
			return nil
		},
	}
}

func printStats(out io.Writer, app *App) {
	record := app.Store.GetConversationData()
	stats := app.Store.GetConversationStats()
	byType := app.Messages.GetMessageStats().ByType

	label := lipgloss.NewStyle().Bold(true).Width(15)
	row := func(name, value string) {
		fmt.Fprintln(out, label.Render(name)+value)
	}

	row("Session", record.SessionID)
	row("Started", time.UnixMilli(record.StartTime).Format(time.RFC3339))
	row("Last activity", time.UnixMilli(stats.LastActivity).Format(time.RFC3339))
	row("Duration", services.FormatDuration(stats.Duration))
	row("Messages", fmt.Sprintf("%d (user %d, bot %d)", stats.TotalMessages, stats.UserMessages, stats.BotMessages))

	types := make([]string, 0, len(byType))
	for kind, n := range byType {
		types = append(types, fmt.Sprintf("%s %d", kind, n))
	}
	sort.Strings(types)
	if len(types) > 0 {
		row("By type", strings.Join(types, ", "))
	}
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the conversation export as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			data, err := app.Store.ExportConversation()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), data)
			return nil
		},
	}
}

func newDownloadCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "download [filename]",
		Short: "Write the conversation export to a file",
		Long: `Write the conversation export to a file in the download directory.
Without a filename, conversation_<sessionId>_<date>.json is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			var filename string
			if len(args) == 1 {
				filename = args[0]
			}
			path, err := app.Store.DownloadConversation(filename)
			if err != nil {
				return err
			}
			app.Printer(cmd.OutOrStdout()).Success("Conversation downloaded to " + path)
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the conversation with an exported one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			if !app.Messages.ImportConversation(string(data)) {
				return services.ErrInvalidConversation
			}
			record := app.Store.GetConversationData()
			app.Printer(cmd.OutOrStdout()).Success(fmt.Sprintf("Imported %s with %d messages", record.SessionID, len(record.Messages)))
			return nil
		},
	}
}

func newClearCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Start a new, empty conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			app.Messages.ClearAllMessages()
			app.Printer(cmd.OutOrStdout()).Success("Started conversation " + app.Store.GetConversationData().SessionID)
			return nil
		},
	}
}

func newEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <content...>",
		Short: "Replace a message's content and show the change",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			id, content := args[0], strings.Join(args[1:], " ")

			before, ok := app.Messages.GetMessageByID(id)
			if !ok || !app.Messages.UpdateMessage(id, content) {
				return fmt.Errorf("%w: %s", errMessageNotFound, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDiff(before.Content, content))
			return nil
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			if !app.Messages.DeleteMessage(args[0]) {
				return fmt.Errorf("%w: %s", errMessageNotFound, args[0])
			}
			app.Printer(cmd.OutOrStdout()).Success("Deleted " + args[0])
			return nil
		},
	}
}

var errMessageNotFound = errors.New("message not found")

var (
	diffInsert = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	diffDelete = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Strikethrough(true)
)

// renderDiff marks deletions as [-text-] and insertions as {+text+}.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(diffInsert.Render("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffDelete:
			b.WriteString(diffDelete.Render("[-" + d.Text + "-]"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func firstLine(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	if cut {
		return line + " …"
	}
	return line
}
