package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSayCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "say <message>",
		Short: "Interpret one message against the configured store and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadAndValidateConfig()
			if err != nil {
				return err
			}
			// Logs share stdout with the reply; keep them to warnings.
			logger := SetupLogger("warn")

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			reply := a.interp.Handle(cmd.Context(), from, strings.Join(args, " "))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "local", "owner the message is attributed to")
	return cmd
}
