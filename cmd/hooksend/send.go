package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"hooksend/internal/history"
	"hooksend/internal/payload"
	"hooksend/internal/resolve"
	"hooksend/internal/security"
	"hooksend/internal/sender"
	"hooksend/internal/target"
	"hooksend/pkg/fileutil"

	"github.com/spf13/cobra"
)

var (
	refFlag        string
	repositoryFlag string
	senderFlag     string
	workflowRunID  string
	targetName     string
	configFile     string
	historyDB      string
	githubToken    string
	sendTimeout    time.Duration
	verbose        bool
)

func init() {
	rootCmd.Flags().StringVar(&refFlag, "ref", payload.DefaultRef, "Git ref")
	rootCmd.Flags().StringVar(&repositoryFlag, "repository", payload.DefaultRepository, "Repository name (owner/repo)")
	rootCmd.Flags().StringVar(&senderFlag, "sender", payload.DefaultSender, "Sender username")
	rootCmd.Flags().StringVar(&workflowRunID, "workflow-run-id", "", "Workflow run ID")
	rootCmd.Flags().StringVarP(&targetName, "target", "t", "", "Named target from targets.yaml (then only <sha> is positional)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to targets.yaml configuration file")
	rootCmd.Flags().StringVar(&historyDB, "history-db", "", "Record the delivery in a local SQLite log at this path")
	rootCmd.Flags().StringVar(&githubToken, "github-token", "", "GitHub token used when <sha> is 'latest'")
	rootCmd.Flags().DurationVar(&sendTimeout, "timeout", sender.DefaultTimeout, "HTTP request timeout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// delivery is a fully resolved send request: destination plus the
// notification to sign and post.
type delivery struct {
	URL          string
	Secret       string
	Notification *payload.DeployNotification
}

func runSend(cmd *cobra.Command, args []string) error {
	logger := setupLogging(verbose)

	d, err := resolveDelivery(cmd, args)
	if err != nil {
		return err
	}

	s := sender.NewSender(sendTimeout, cmd.OutOrStdout(), logger)

	result, sendErr := s.Send(cmd.Context(), d.URL, d.Notification, d.Secret)

	if historyDB != "" {
		if err := recordDelivery(cmd.Context(), d, result, sendErr); err != nil {
			logger.Warn("Failed to record delivery history", "error", err)
		}
	}

	if sendErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error sending webhook: %v\n", sendErr)
		return fmt.Errorf("webhook delivery failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nHTTP Status: %d\n", result.StatusCode)
	fmt.Fprintf(cmd.OutOrStdout(), "Response: %s\n", result.Body)

	if !result.Succeeded() {
		fmt.Fprintf(cmd.OutOrStdout(), "Webhook failed with status %d\n", result.StatusCode)
		fmt.Fprintf(cmd.OutOrStdout(), "Response body: %s\n", result.Body)
		return fmt.Errorf("webhook rejected with status %d", result.StatusCode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Webhook sent successfully")
	return nil
}

// resolveDelivery turns the positional arguments (and optionally a
// named target) into a validated delivery. All failures here happen
// before the webhook request goes out.
func resolveDelivery(cmd *cobra.Command, args []string) (*delivery, error) {
	var url, secret, hookID, sha string
	opts := payload.Options{
		Ref:           refFlag,
		Repository:    repositoryFlag,
		Sender:        senderFlag,
		WorkflowRunID: workflowRunID,
	}

	if targetName != "" {
		if len(args) != 1 {
			return nil, fmt.Errorf("with --target, exactly one argument <sha> is required, got %d", len(args))
		}

		tgt, err := lookupTarget(targetName)
		if err != nil {
			return nil, err
		}

		url = tgt.URL
		secret = tgt.Secret
		hookID = tgt.HookID
		sha = args[0]

		// Explicit flags win over target-level values
		if !cmd.Flags().Changed("ref") {
			opts.Ref = tgt.Ref
		}
		if !cmd.Flags().Changed("repository") {
			opts.Repository = tgt.Repository
		}
		if !cmd.Flags().Changed("sender") {
			opts.Sender = tgt.Sender
		}
	} else {
		if len(args) != 4 {
			return nil, fmt.Errorf("expected 4 arguments <url> <secret> <hook_id> <sha>, got %d", len(args))
		}
		url, secret, hookID, sha = args[0], args[1], args[2], args[3]
	}

	if err := security.ValidateWebhookURL(url); err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, fmt.Errorf("secret cannot be empty")
	}
	if hookID == "" {
		return nil, fmt.Errorf("hook_id cannot be empty")
	}
	if sha == "" {
		return nil, fmt.Errorf("sha cannot be empty")
	}

	n := payload.New(hookID, sha, opts)

	if sha == resolve.LatestKeyword {
		ctx := cmd.Context()
		client := resolve.NewClient(ctx, githubToken)
		resolved, err := resolve.CommitSHA(ctx, client, n.Repository, n.Ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve sha: %w", err)
		}
		n.SHA = resolved
	}

	return &delivery{URL: url, Secret: secret, Notification: n}, nil
}

// lookupTarget loads the targets config (from --config or the default
// search paths) and returns the named target.
func lookupTarget(name string) (*target.Target, error) {
	path := configFile
	if path == "" {
		path = fileutil.FindConfigOptional("targets.yaml")
		if path == "" {
			return nil, fmt.Errorf("no targets.yaml found; use --config to specify one")
		}
	}

	targets, err := target.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	registry := target.NewRegistry(targets)
	return registry.Get(name)
}

// recordDelivery appends the attempt to the local SQLite log
func recordDelivery(ctx context.Context, d *delivery, result *sender.Result, sendErr error) error {
	h, err := history.NewHistory(historyDB)
	if err != nil {
		return err
	}
	defer h.Close()

	record := &history.DeliveryRecord{
		HookID:     d.Notification.HookID,
		SHA:        d.Notification.SHA,
		Ref:        d.Notification.Ref,
		Repository: d.Notification.Repository,
		URL:        security.RedactURL(d.URL),
	}

	switch {
	case sendErr != nil:
		record.Outcome = history.OutcomeError
		msg := sendErr.Error()
		record.ErrorMessage = &msg
	case result.Succeeded():
		record.Outcome = history.OutcomeSent
		code := int64(result.StatusCode)
		record.StatusCode = &code
	default:
		record.Outcome = history.OutcomeRejected
		code := int64(result.StatusCode)
		record.StatusCode = &code
	}

	_, err = h.RecordDelivery(ctx, record)
	return err
}

// setupLogging configures slog for diagnostics on stderr, keeping
// stdout clean for the audit trail
func setupLogging(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}
