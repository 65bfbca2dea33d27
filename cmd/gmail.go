package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gapikit/internal/gmail"
)

var gmailUserID string

func newGmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gmail",
		Short: "Gmail operations",
		Long: `Run Gmail operations and print the result as JSON.

List operations return every page of the collection.`,
	}
	cmd.PersistentFlags().StringVar(&gmailUserID, "user", "", "Mailbox user ID (default: from config or 'me')")

	cmd.AddCommand(newDraftsCmd())
	cmd.AddCommand(newMessagesCmd())
	cmd.AddCommand(newAttachmentsCmd())
	cmd.AddCommand(newLabelsCmd())
	return cmd
}

// gmailRun adapts fn into a cobra RunE with a ready client.
func gmailRun(fn func(cmd *cobra.Command, c *gmail.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newGmailClient(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, c, args)
	}
}

// composeFlags binds the flags describing a new email.
type composeFlags struct {
	from, to, cc, bcc     string
	subject, body         string
	inReplyTo, references string
	threadID, rawFile     string
	attach                []string
	html                  bool
}

func (f *composeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Sender address (default: the authenticated user)")
	cmd.Flags().StringVar(&f.to, "to", "", "Comma-separated recipients")
	cmd.Flags().StringVar(&f.cc, "cc", "", "Comma-separated CC recipients")
	cmd.Flags().StringVar(&f.bcc, "bcc", "", "Comma-separated BCC recipients")
	cmd.Flags().StringVar(&f.subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&f.body, "body", "", "Body text")
	cmd.Flags().BoolVar(&f.html, "html", false, "Send the body as HTML")
	cmd.Flags().StringVar(&f.inReplyTo, "in-reply-to", "", "Message-ID this message replies to")
	cmd.Flags().StringVar(&f.references, "references", "", "Message-IDs of the conversation")
	cmd.Flags().StringVar(&f.threadID, "thread-id", "", "Gmail thread to add the message to")
	cmd.Flags().StringSliceVar(&f.attach, "attach", nil, "File to attach (repeatable)")
	cmd.Flags().StringVar(&f.rawFile, "raw-file", "", "Use a complete RFC 2822 message from this file instead")
}

// payload builds the message described by the flags. A raw file is sent as is
// and ignores all other flags.
func (f *composeFlags) payload() (gmail.Payload, error) {
	if f.rawFile != "" {
		data, err := os.ReadFile(f.rawFile)
		if err != nil {
			return nil, err
		}
		return gmail.RawMessage(data), nil
	}

	msg := &gmail.Message{
		From:       f.from,
		To:         parseCommaSeparatedList(f.to),
		Cc:         parseCommaSeparatedList(f.cc),
		Bcc:        parseCommaSeparatedList(f.bcc),
		Subject:    f.subject,
		Body:       f.body,
		IsHTML:     f.html,
		InReplyTo:  f.inReplyTo,
		References: f.references,
		ThreadID:   f.threadID,
	}
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("--to is required")
	}
	for _, path := range f.attach {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		msg.Attachments = append(msg.Attachments, gmail.Attachment{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}
	return msg, nil
}

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "drafts", Short: "Drafts of the mailbox"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all drafts",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			drafts, err := c.ListDrafts(cmd.Context(), gmailUserID)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToDraftSummaries(drafts))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <draft-id>",
		Short: "Show a draft",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			draft, err := c.GetDraft(cmd.Context(), gmailUserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToDraftSummary(draft))
		}),
	})

	var cf composeFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Save a new draft",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			payload, err := cf.payload()
			if err != nil {
				return err
			}
			draft, err := c.CreateDraft(cmd.Context(), gmailUserID, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToDraftSummary(draft))
		}),
	}
	cf.register(create)
	cmd.AddCommand(create)

	var (
		uf   composeFlags
		send bool
	)
	update := &cobra.Command{
		Use:   "update <draft-id>",
		Short: "Replace the content of a draft",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			payload, err := uf.payload()
			if err != nil {
				return err
			}
			draft, err := c.UpdateDraft(cmd.Context(), gmailUserID, args[0], payload, send)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToDraftSummary(draft))
		}),
	}
	uf.register(update)
	update.Flags().BoolVar(&send, "send", false, "Send the draft after updating it")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "send <draft-id>",
		Short: "Send an existing draft",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			msg, err := c.SendDraft(cmd.Context(), gmailUserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummary(msg))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a draft permanently",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			if err := c.DeleteDraft(cmd.Context(), gmailUserID, args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Deleted draft %s", args[0])
		}),
	})

	return cmd
}

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "messages", Short: "Messages of the mailbox"}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all messages matching a search query",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			msgs, err := c.ListMessages(cmd.Context(), gmailUserID, query)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummaries(msgs))
		}),
	}
	list.Flags().StringVarP(&query, "query", "q", "", "Gmail search query, e.g. 'is:unread from:ada@example.com'")
	cmd.AddCommand(list)

	var format string
	get := &cobra.Command{
		Use:   "get <message-id>",
		Short: "Show a message",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			msg, err := c.GetMessageFormat(cmd.Context(), gmailUserID, args[0], format)
			if err != nil {
				return err
			}
			if format == "raw" {
				data, err := gmail.DecodeRaw(msg.Raw)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummary(msg))
		}),
	}
	get.Flags().StringVar(&format, "format", "full", "full, metadata, minimal or raw (prints the RFC 2822 source)")
	cmd.AddCommand(get)

	var sf composeFlags
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			payload, err := sf.payload()
			if err != nil {
				return err
			}
			msg, err := c.SendMessage(cmd.Context(), gmailUserID, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummary(msg))
		}),
	}
	sf.register(send)
	cmd.AddCommand(send)

	var (
		inf      composeFlags
		labelIDs string
	)
	insert := &cobra.Command{
		Use:   "insert",
		Short: "Add a message to the mailbox without sending it",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			payload, err := inf.payload()
			if err != nil {
				return err
			}
			msg, err := c.InsertMessage(cmd.Context(), gmailUserID, payload, parseCommaSeparatedList(labelIDs)...)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummary(msg))
		}),
	}
	inf.register(insert)
	insert.Flags().StringVar(&labelIDs, "label-ids", "INBOX", "Comma-separated labels of the inserted message")
	cmd.AddCommand(insert)

	var add, remove string
	modify := &cobra.Command{
		Use:   "modify <message-id>",
		Short: "Add or remove labels of a message",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			addIDs, removeIDs := parseCommaSeparatedList(add), parseCommaSeparatedList(remove)
			if len(addIDs) == 0 && len(removeIDs) == 0 {
				return fmt.Errorf("at least one of --add or --remove is required")
			}
			msg, err := c.ModifyMessage(cmd.Context(), gmailUserID, args[0], addIDs, removeIDs)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToMessageSummary(msg))
		}),
	}
	modify.Flags().StringVar(&add, "add", "", "Comma-separated label IDs to add")
	modify.Flags().StringVar(&remove, "remove", "", "Comma-separated label IDs to remove, e.g. INBOX to archive")
	cmd.AddCommand(modify)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete a message permanently, bypassing the trash",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			if err := c.DeleteMessage(cmd.Context(), gmailUserID, args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Deleted message %s", args[0])
		}),
	})

	return cmd
}

func newAttachmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "attachments", Short: "Attachments of a message"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <message-id>",
		Short: "List the attachments of a message",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			msg, err := c.GetMessage(cmd.Context(), gmailUserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ListAttachments(msg))
		}),
	})

	var output string
	get := &cobra.Command{
		Use:   "get <message-id> <attachment-id>",
		Short: "Download one attachment",
		Args:  cobra.ExactArgs(2),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			data, err := c.GetAttachment(cmd.Context(), gmailUserID, args[0], args[1])
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o600)
		}),
	}
	get.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.AddCommand(get)

	var dir string
	save := &cobra.Command{
		Use:   "save <message-id>",
		Short: "Save every attachment of a message into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			attachments, err := c.GetMessageAttachments(cmd.Context(), gmailUserID, &gmailapi.Message{Id: args[0]})
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return err
			}

			saved, err := saveAttachments(dir, attachments)
			if err != nil {
				return fmt.Errorf("saved %d of %d attachments: %w", len(saved), len(attachments), err)
			}
			return printJSON(cmd, saved)
		}),
	}
	save.Flags().StringVar(&dir, "dir", ".", "Target directory")
	cmd.AddCommand(save)

	return cmd
}

// saveAttachments writes every attachment into dir and returns the paths it
// used. Existing files are never replaced: a taken name gets a -1, -2, ...
// suffix before its extension.
func saveAttachments(dir string, attachments []gmail.Attachment) ([]gmail.Attachment, error) {
	saved := make([]gmail.Attachment, 0, len(attachments))
	for _, a := range attachments {
		path, err := createUnique(dir, gmail.SanitizeFilename(a.Filename), a.Data)
		if err != nil {
			return saved, err
		}
		logger.Debug("saved attachment", "path", path, "bytes", len(a.Data))
		saved = append(saved, gmail.Attachment{Filename: path, MimeType: a.MimeType})
	}
	return saved, nil
}

func createUnique(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		return path, f.Close()
	}
}

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "labels", Short: "Labels of the mailbox"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all labels",
		Args:  cobra.NoArgs,
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, _ []string) error {
			labels, err := c.ListLabels(cmd.Context(), gmailUserID)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToLabelInfos(labels))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a user label",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			label, err := c.CreateLabel(cmd.Context(), gmailUserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToLabelInfo(label))
		}),
	})

	var input gmail.LabelInput
	update := &cobra.Command{
		Use:   "update <label-id>",
		Short: "Rename a label or change its visibility",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			label, err := c.UpdateLabel(cmd.Context(), gmailUserID, args[0], input)
			if err != nil {
				return err
			}
			return printJSON(cmd, gmail.ToLabelInfo(label))
		}),
	}
	update.Flags().StringVar(&input.Name, "name", "", "Label name")
	update.Flags().StringVar(&input.LabelListVisibility, "label-list-visibility", "", "labelShow, labelShowIfUnread or labelHide")
	update.Flags().StringVar(&input.MessageListVisibility, "message-list-visibility", "", "show or hide")
	_ = update.MarkFlagRequired("name")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <label-id>",
		Short: "Delete a label and remove it from all messages",
		Args:  cobra.ExactArgs(1),
		RunE: gmailRun(func(cmd *cobra.Command, c *gmail.Client, args []string) error {
			if err := c.DeleteLabel(cmd.Context(), gmailUserID, args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Deleted label %s", args[0])
		}),
	})

	return cmd
}
