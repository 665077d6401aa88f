/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package appconfig

import (
	"encoding/json"
	"runtime"
)

// set by -ldflags "-X github.com/traas-stack/linex/pkg/appconfig.version=..."
var (
	version   = "dev"
	buildTime string
	gitcommit string
)

func Version() string {
	return version
}

// VersionInfo is printed by `linex --version`.
func VersionInfo() string {
	r := map[string]interface{}{
		"goversion": runtime.Version(),
		"version":   version,
		"buildTime": buildTime,
		"commit":    gitcommit,
	}
	bs, _ := json.Marshal(r)
	return string(bs)
}
