// Command sitectl talks to a running content API: submit a contact message
// or list programs and stories.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/inclusionhub/backend/pkg/client"
	"github.com/inclusionhub/backend/pkg/schema"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:5000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server, client.WithHTTPClient(&http.Client{Timeout: o.timeout}))
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	server := os.Getenv("SITE_API_URL")
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Command line client for the site content API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (default $SITE_API_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(newContactCmd(opts), newProgramsCmd(opts), newStoriesCmd(opts))
	return root
}

func newContactCmd(opts *options) *cobra.Command {
	var in schema.MessageInput
	var subject string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit a contact message",
		Example: `  sitectl contact --name "Jane Doe" --email jane@example.com \
    --message "I would like to volunteer."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("subject") {
				in.Subject = &subject
			}
			msg, err := opts.client().SubmitContact(cmd.Context(), in)
			if err != nil {
				var verr *schema.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %s\n", verr.Error())
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&in.Email, "email", "", "sender email")
	cmd.Flags().StringVar(&subject, "subject", "", "optional subject")
	cmd.Flags().StringVar(&in.Message, "message", "", "message body (10-500 characters)")
	return cmd
}

func newProgramsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			programs, err := opts.client().ListPrograms(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), programs)
		},
	}
}

func newStoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "List stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stories, err := opts.client().ListStories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stories)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
