package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/anoma/Semitopology-Checker/internal/logic"
	"github.com/anoma/Semitopology-Checker/internal/openset"
)

func newCheckCmd() *cobra.Command {
	var (
		n           int
		familyText  string
		formulaText string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a formula against a concrete family and print satisfaction plus witnesses",
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := openset.ParseFamily(familyText, n)
			if err != nil {
				return errors.Wrap(err, "parse --family")
			}
			parsed, err := logic.Parse(formulaText)
			if err != nil {
				return errors.Wrap(err, "parse --formula")
			}
			printResult(logic.Check(n, fam, logic.Expand(parsed)), n)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 0, "ground size")
	cmd.Flags().StringVar(&familyText, "family", "", `family text, e.g. "{{1,2},{1,3},{1,2,3}}"`)
	cmd.Flags().StringVar(&formulaText, "formula", "", `formula text, e.g. "EO X. EP x. x in X"`)
	cmd.MarkFlagRequired("n")
	cmd.MarkFlagRequired("family")
	cmd.MarkFlagRequired("formula")
	return cmd
}

func printResult(res logic.Result, n int) {
	if !res.Satisfied {
		fmt.Println("satisfied: false")
		return
	}
	fmt.Println("satisfied: true")
	for _, w := range res.Witnesses {
		switch w.Kind {
		case logic.EP:
			fmt.Printf("  %s = %d\n", w.Var, w.Point)
		case logic.EO:
			fmt.Printf("  %s = %s\n", w.Var, openset.FormatOpen(w.Open, n))
		}
	}
}
