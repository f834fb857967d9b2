package main

import (
	"fmt"
	"io"
	"os"

	"hooksend/internal/signature"

	"github.com/spf13/cobra"
)

var verifySignature string

var signCmd = &cobra.Command{
	Use:   "sign SECRET [FILE]",
	Short: "Compute or verify a payload signature",
	Long: `Compute the HMAC-SHA256 signature of a payload, read from FILE or
standard input, keyed with SECRET.

With --verify, check an existing signature against the payload instead
of printing a new one. Useful for debugging a receiver that rejects
deliveries.

Example:
  hooksend sign secret123 payload.json
  hooksend sign secret123 payload.json --verify sha256=abc...`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runSign,
}

func init() {
	signCmd.Flags().StringVar(&verifySignature, "verify", "", "Verify this signature instead of computing one")
}

func runSign(cmd *cobra.Command, args []string) error {
	secret := args[0]

	var payload []byte
	var err error
	if len(args) == 2 {
		payload, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
	} else {
		payload, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read payload from stdin: %w", err)
		}
	}

	if verifySignature != "" {
		if !signature.Verify(payload, verifySignature, secret) {
			return fmt.Errorf("signature does not match payload")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signature OK")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), signature.Sign(payload, secret))
	return nil
}
