/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"boxsvg/internal/config"
	"boxsvg/internal/crash"
	applog "boxsvg/internal/log"
	"boxsvg/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "boxsvg: cut and fold geometry to SVG")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  boxsvg version|-v|--version                 Show version")
	fmt.Fprintln(w, "  boxsvg render [flags] <job>                 Render a YAML or JSON job")
	fmt.Fprintln(w, "  boxsvg box flap|card|panel [flags]          Generate a box outline")
	fmt.Fprintln(w, "  boxsvg history [-n N] [dir]                 List renders recorded under <dir>")
	fmt.Fprintln(w, "  boxsvg config                               Print the effective configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'boxsvg <command> -h' for command flags.")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}

	cc := &crash.Context{}
	defer crash.Recover(cc)

	l.Debug("start", slog.Int("args", len(os.Args)))
	os.Exit(run(os.Args[1:], cfg, cc, os.Stdout, os.Stderr))
}
