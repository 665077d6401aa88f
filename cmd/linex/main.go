/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package main

import (
	"fmt"
	"os"

	"github.com/traas-stack/linex/pkg/logger"
)

// linex entry
func main() {
	err := newCommand().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "linex: %v\n", err)
		os.Exit(1)
	}
}
