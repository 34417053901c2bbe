// Command semicheck enumerates finite union-closed set families
// (semitopologies and semiframes) up to isomorphism over a ground set
// {1..n}, canonicalizes families given as text, and checks two-sorted
// first-order formulas against a concrete family.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
