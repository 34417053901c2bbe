package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/anoma/Semitopology-Checker/internal/canon"
	"github.com/anoma/Semitopology-Checker/internal/openset"
)

func newCanonCmd() *cobra.Command {
	var (
		n               int
		familyText      string
		showPermutation bool
	)

	cmd := &cobra.Command{
		Use:   "canon",
		Short: "Canonicalize a family under S_n",
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := openset.ParseFamily(familyText, n)
			if err != nil {
				return errors.Wrap(err, "parse --family")
			}
			canonical, perm := canon.CanonicalizeCert(n, fam)
			fmt.Println(openset.FormatFamily(canonical, n))
			if showPermutation {
				fmt.Println(canon.FormatPermutation(perm))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 0, "ground size")
	cmd.Flags().StringVar(&familyText, "family", "", `family text, e.g. "{{1},{1,2}}"`)
	cmd.Flags().BoolVar(&showPermutation, "show-permutation", false, "also print the witnessing permutation (certificate) that produced the canonical form")
	cmd.MarkFlagRequired("n")
	cmd.MarkFlagRequired("family")
	return cmd
}
