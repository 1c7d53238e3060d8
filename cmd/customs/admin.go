package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bassam-st/bassam-customs-ai/internal/auth"
	"github.com/bassam-st/bassam-customs-ai/internal/cli"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative helpers",
	}

	cmd.AddCommand(hashPINCmd())

	return cmd
}

func hashPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin [pin]",
		Short: "Print a bcrypt hash for an admin PIN",
		Long: `Print a bcrypt hash of the admin PIN. Store it as admin.pin_hash in the
config file or as CUSTOMS_PIN_HASH. The PIN is read from stdin when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pin string
			if len(args) == 1 {
				pin = args[0]
			} else {
				if _, err := fmt.Fprint(cmd.ErrOrStderr(), cli.FormatPrompt("New admin PIN")); err != nil {
					return err
				}
				var err error
				pin, err = cli.NewLineReader(cmd.InOrStdin()).ReadLine(cmd.Context())
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read PIN: %w", err)
				}
			}

			hash, err := auth.HashPIN(pin)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("PIN must be at least %d characters", auth.MinPINLength), err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
