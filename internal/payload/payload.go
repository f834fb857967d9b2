package payload

import (
	"encoding/json"
	"fmt"
)

// Field defaults applied when the caller does not override them
const (
	DefaultRef        = "refs/heads/main"
	DefaultRepository = "org/repo"
	DefaultSender     = "github-actions"

	// TriggeredBy is a fixed attribution literal, independent of the
	// sender field
	TriggeredBy = "github-actions"
)

// DeployNotification is the deployment-trigger payload sent to the
// webhook receiver. Field order matters: encoding/json emits keys in
// declaration order and the receiver's signature check covers the
// serialized bytes, so the order is part of the wire contract.
type DeployNotification struct {
	HookID        string `json:"hook_id"`
	SHA           string `json:"sha"`
	Ref           string `json:"ref"`
	Repository    string `json:"repository"`
	Sender        string `json:"sender"`
	TriggeredBy   string `json:"triggered_by"`
	WorkflowRunID string `json:"workflow_run_id"`
}

// Options holds the optional fields of a notification. Zero values
// mean "use the default"; WorkflowRunID defaults to the empty string,
// which is still emitted (the key is never omitted).
type Options struct {
	Ref           string
	Repository    string
	Sender        string
	WorkflowRunID string
}

// New builds a notification from the required identifiers and
// optional overrides, applying the documented defaults.
func New(hookID, sha string, opts Options) *DeployNotification {
	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}

	repository := opts.Repository
	if repository == "" {
		repository = DefaultRepository
	}

	sender := opts.Sender
	if sender == "" {
		sender = DefaultSender
	}

	return &DeployNotification{
		HookID:        hookID,
		SHA:           sha,
		Ref:           ref,
		Repository:    repository,
		Sender:        sender,
		TriggeredBy:   TriggeredBy,
		WorkflowRunID: opts.WorkflowRunID,
	}
}

// Marshal returns the compact JSON form. These are the exact bytes
// that get signed and transmitted.
func (n *DeployNotification) Marshal() ([]byte, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	return data, nil
}

// MarshalIndent returns the human-readable rendering printed to the
// operator audit trail. Not used for signing.
func (n *DeployNotification) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	return data, nil
}
