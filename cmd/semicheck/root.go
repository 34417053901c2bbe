package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anoma/Semitopology-Checker/internal/generator"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "semicheck",
		Short:         "Enumerate and check finite union-closed set families up to isomorphism",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrap(err, "invalid --log-level")
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	root.AddCommand(newEnumerateCmd())
	root.AddCommand(newCanonCmd())
	root.AddCommand(newCheckCmd())
	return root
}

func parseMode(s string) (generator.Mode, error) {
	switch s {
	case "semitopology":
		return generator.Semitopology, nil
	case "semiframe":
		return generator.Semiframe, nil
	default:
		return 0, errors.Errorf("unknown --mode %q (want semitopology or semiframe)", s)
	}
}
