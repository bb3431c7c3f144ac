package cmd

import (
	"fmt"
	"strings"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
	"github.com/pkg/errors"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

func cmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file and list the configured webhooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			awsCtl, err := newAWSController(cmd.Context(), logger)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cmd.Context(), awsCtl)
			if err != nil {
				return err
			}

			rows := []string{"Webhook|Method|Fields|Reply"}
			for _, name := range registry.Names() {
				entry, _ := registry.Resolve(name)
				rows = append(rows, fmt.Sprintf("%s|%s|%d|%t", name, entry.Method(), len(entry.Fields), len(entry.Reply) > 0))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(columnize.SimpleFormat(rows), "\n"))
			return err
		},
	}
}
