package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/andy/hotelmgr/internal/crud"
	"github.com/andy/hotelmgr/internal/domain"
	"github.com/andy/hotelmgr/internal/logx"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and delete hotel clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m := appInstance.NewClientManager(nil)

		if err := m.Load(ctx); err != nil {
			return statusError(m.Snapshot().Message, err)
		}

		out := cmd.OutOrStdout()
		tr := appInstance.Messages
		clients := m.Snapshot().Records

		if len(clients) == 0 {
			fmt.Fprintln(out, tr.T("clients.empty"))
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-8s %-30s %-15s %-30s %-15s\n",
			"ID", tr.T("column.nome"), tr.T("field.cpf"), tr.T("field.email"), tr.T("field.telefone"))
		fmt.Fprintln(out, "--------------------------------------------------------------------------------------------------------")

		// Print clients
		for _, c := range clients {
			fmt.Fprintf(out, "%-8s %-30s %-15s %-30s %-15s\n",
				c.ID,
				truncate(c.Nome, 30),
				c.CPF,
				truncate(c.Email, 30),
				c.Telefone,
			)
		}

		fmt.Fprintf(out, "\n%s\n", tr.T("clients.total", len(clients)))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m := appInstance.NewClientManager(nil)

		var draft domain.ClientDraft
		applyDraftFlags(cmd, &draft)

		m.BeginCreate()
		if err := m.Submit(ctx, draft.Normalize()); err != nil {
			return statusError(m.Snapshot().Message, err)
		}

		printStatus(cmd.OutOrStdout(), m.Snapshot().Message)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id := args[0]
		m := appInstance.NewClientManager(nil)

		if err := m.Load(ctx); err != nil {
			return statusError(m.Snapshot().Message, err)
		}

		var found *domain.Client
		for _, c := range m.Snapshot().Records {
			if domain.ClientID(c) == id {
				found = &c
				break
			}
		}
		if found == nil || !m.BeginEdit(*found) {
			return errors.New(appInstance.Messages.T("clients.not_found", id))
		}

		draft := m.Snapshot().Draft

		// Update fields if flags provided
		applyDraftFlags(cmd, &draft)

		if err := m.Submit(ctx, draft.Normalize()); err != nil {
			return statusError(m.Snapshot().Message, err)
		}

		printStatus(cmd.OutOrStdout(), m.Snapshot().Message)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m := appInstance.NewClientManager(newConfirmer(cmd))

		err := m.Remove(ctx, args[0])
		if errors.Is(err, crud.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), appInstance.Messages.T("clients.cancelled"))
			return nil
		}
		if err != nil {
			return statusError(m.Snapshot().Message, err)
		}

		printStatus(cmd.OutOrStdout(), m.Snapshot().Message)
		return nil
	},
}

// draftFlags maps command line flags to draft fields
var draftFlags = []struct {
	name  string
	usage string
	field func(*domain.ClientDraft) *string
}{
	{"nome", "Full name", func(d *domain.ClientDraft) *string { return &d.Nome }},
	{"cpf", "CPF", func(d *domain.ClientDraft) *string { return &d.CPF }},
	{"email", "Email", func(d *domain.ClientDraft) *string { return &d.Email }},
	{"telefone", "Phone", func(d *domain.ClientDraft) *string { return &d.Telefone }},
	{"endereco", "Address (optional)", func(d *domain.ClientDraft) *string { return &d.Endereco }},
	{"nascimento", "Birth date as YYYY-MM-DD (optional)", func(d *domain.ClientDraft) *string { return &d.DataNascimento }},
}

// applyDraftFlags copies every flag the user set into draft
func applyDraftFlags(cmd *cobra.Command, draft *domain.ClientDraft) {
	for _, f := range draftFlags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetString(f.name)
			*f.field(draft) = v
		}
	}
}

// statusError turns a failed operation into the message the manager showed
func statusError(msg crud.Message, err error) error {
	if msg.Kind != crud.MessageError {
		return err
	}
	return &userError{text: msg.Text, err: err}
}

type userError struct {
	text string
	err  error
}

func (e *userError) Error() string { return e.text }
func (e *userError) Unwrap() error { return e.err }

func printStatus(out io.Writer, msg crud.Message) {
	if msg.Kind == crud.MessageSuccess {
		fmt.Fprintf(out, "✓ %s\n", msg.Text)
	}
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	for _, f := range draftFlags {
		clientsAddCmd.Flags().String(f.name, "", f.usage)
		clientsEditCmd.Flags().String(f.name, "", "New "+f.usage)
	}

	clientsDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")

	// Every clients command logs its underlying error at debug level
	for _, c := range clientsCmd.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				logx.FromContext(cmd.Context()).Debug("command failed",
					slog.String("command", cmd.CommandPath()),
					slog.Any("error", err),
				)
			}
			return err
		}
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
