/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"boxsvg/internal/config"
	"boxsvg/internal/crash"
	"boxsvg/internal/export"
	"boxsvg/internal/job"
	applog "boxsvg/internal/log"
	"boxsvg/internal/shape"
	"boxsvg/internal/storage"
	"boxsvg/internal/svggen"
	"boxsvg/internal/version"

	"gopkg.in/yaml.v3"
)

// Exit codes. Panics exit with 2 through crash.Recover.
const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 64
)

// run dispatches a subcommand and returns the process exit code.
func run(args []string, cfg config.AppConfig, cc *crash.Context, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return exitOK
	}
	if cc == nil {
		cc = &crash.Context{}
	}
	cc.Command = args[0]
	ctx := context.Background()

	var err error
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, version.String())
		return exitOK
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	case "render":
		err = cmdRender(ctx, args[1:], cfg, cc, stdout, stderr)
	case "box":
		err = cmdBox(ctx, args[1:], cfg, cc, stdout, stderr)
	case "history":
		err = cmdHistory(ctx, args[1:], stdout, stderr)
	case "config":
		err = cmdConfig(cfg, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}

	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	default:
		applog.WithComponent("cli").Error(args[0]+" failed", slog.Any("err", err))
		fmt.Fprintln(stderr, "Error:", err)
		return exitErr
	}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// outputFlags are shared by render and box.
type outputFlags struct {
	out     string
	formats string
	preset  string
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.out, "o", "", "SVG output path; other formats replace the extension")
	fs.StringVar(&o.formats, "format", "", "comma separated formats: svg,png,pdf (default from preset)")
	fs.StringVar(&o.preset, "preset", "", "export preset: web, print or cut")
}

func (o *outputFlags) formatList() []string {
	if o.formats == "" {
		return nil
	}
	return strings.Split(o.formats, ",")
}

func cmdRender(ctx context.Context, args []string, cfg config.AppConfig, cc *crash.Context, stdout, stderr io.Writer) error {
	fs := newFlagSet("render", stderr)
	var of outputFlags
	of.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError{"render requires exactly one <job>"}
	}
	path := fs.Arg(0)
	cc.JobPath = path

	j, err := job.Load(path)
	if err != nil {
		return err
	}
	cc.Dir = j.Dir()
	ctx = applog.WithJob(ctx, path)

	out := j.OutputPath()
	if of.out != "" {
		out = of.out
	}
	formats := of.formatList()
	if formats == nil {
		formats = j.Formats
	}
	preset := of.preset
	if preset == "" {
		preset = j.Preset
	}
	return renderAndExport(ctx, cfg, j.Records(), j.Config(cfg.RenderConfig()), exportRequest{
		job: path, out: out, formats: formats, preset: preset,
	}, stdout, stderr)
}

func cmdBox(ctx context.Context, args []string, cfg config.AppConfig, cc *crash.Context, stdout, stderr io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return usageError{"box requires a kind: flap, card or panel"}
	}
	b := job.Box{Kind: args[0]}
	fs := newFlagSet("box "+b.Kind, stderr)
	var of outputFlags
	of.register(fs)
	fs.Float64Var(&b.Width, "w", 0, "inner width")
	fs.Float64Var(&b.Height, "h", 0, "inner height")
	fs.Float64Var(&b.Depth, "d", 0, "inner depth (flap, card)")
	fs.Float64Var(&b.Length, "l", 0, "inner length (panel)")
	fs.Float64Var(&b.OpenFlap, "open", 0, "opening flap size, 0 for automatic")
	fs.Float64Var(&b.ClosedFlap, "closed", 0, "glued flap size, 0 for automatic")
	fs.IntVar(&b.Dashes, "dashes", 0, "dashes per fold, 0 for automatic")
	fs.Float64Var(&b.DashDensity, "density", 0, "perforation density in percent (card)")
	fs.Float64Var(&b.SlotWidth, "slot", 0, "slot width (card)")
	thickness := fs.Float64("thickness", 0, "material thickness (panel)")
	side := fs.Int("side-teeth", -1, "teeth per side edge (panel)")
	bottom := fs.Int("bottom-teeth", -1, "teeth per bottom edge (panel)")
	top := fs.Int("top-teeth", -1, "teeth per lid edge (panel)")
	noTop := fs.Bool("no-top", false, "omit the lid (panel)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError{fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}
	if *thickness > 0 {
		b.Thickness = thickness
	}
	if *side >= 0 {
		b.SideTeeth = side
	}
	if *bottom >= 0 {
		b.BottomTeeth = bottom
	}
	if *top >= 0 {
		b.TopTeeth = top
	}
	if *noTop {
		f := false
		b.Top = &f
	}

	layout, err := b.Build()
	if err != nil {
		return err
	}
	out := of.out
	if out == "" {
		out = b.Kind + ".svg"
	}
	cc.Dir = filepath.Dir(out)
	return renderAndExport(ctx, cfg, layout.Shapes, layout.Apply(cfg.RenderConfig()), exportRequest{
		out: out, formats: of.formatList(), preset: of.preset,
	}, stdout, stderr)
}

type exportRequest struct {
	job     string
	out     string
	formats []string
	preset  string
}

// renderAndExport renders records, writes every requested format and records
// the written files in the history next to the output.
func renderAndExport(ctx context.Context, cfg config.AppConfig, records []shape.Record, rc svggen.Config, req exportRequest, stdout, stderr io.Writer) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "export")
	preset := req.preset
	if preset == "" {
		preset = cfg.Export.Preset
	}
	p, err := export.ParsePreset(preset)
	if err != nil {
		return usageError{err.Error()}
	}

	res, err := svggen.Render(records, rc)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(stderr, "warning:", s)
	}

	thumbMax := 0
	if cfg.History.Enabled {
		thumbMax = cfg.Export.ThumbMax
	}
	br, err := export.Batch(res, export.BatchOptions{
		Preset:  p,
		Formats: req.formats,
		Output:  req.out,
		PNG:     export.PNGOptions{Scale: cfg.Export.PNGScale, ThumbMax: thumbMax},
		PDF:     export.PDFOptions{Title: strings.TrimSuffix(filepath.Base(req.out), filepath.Ext(req.out)), Author: "boxsvg"},
	})
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return usageError{err.Error()}
		}
		return err
	}
	for _, f := range br.Files {
		fmt.Fprintln(stdout, "Wrote", f.Path)
	}

	if !cfg.History.Enabled {
		return nil
	}
	if err := recordHistory(ctx, req, res, br); err != nil {
		// History is best effort; the files are already written.
		l.WarnContext(ctx, "history not updated", slog.Any("err", err))
	}
	return nil
}

func recordHistory(ctx context.Context, req exportRequest, res *svggen.Result, br *export.BatchResult) error {
	db, _, err := storage.OpenOrRepairIndex(ctx, filepath.Dir(req.out))
	if err != nil {
		return err
	}
	defer db.Close()
	for i, f := range br.Files {
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			abs = f.Path
		}
		id, err := storage.RecordRender(ctx, db, storage.Entry{
			Job:        req.job,
			Path:       abs,
			Format:     f.Format,
			Shapes:     res.Shapes,
			Primitives: len(res.Primitives),
			Skipped:    len(res.Skipped),
			Viewport:   res.Viewport,
		})
		if err != nil {
			return err
		}
		if i == 0 && br.Thumb != nil {
			if err := storage.PutThumb(ctx, db, id, br.Thumb.W, br.Thumb.H, br.Thumb.PNG); err != nil {
				return err
			}
		}
	}
	return nil
}

func cmdHistory(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("history", stderr)
	limit := fs.Int("n", 20, "number of entries, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir := "."
	switch fs.NArg() {
	case 0:
	case 1:
		dir = fs.Arg(0)
	default:
		return usageError{"history takes at most one <dir>"}
	}
	db, repaired, err := storage.OpenOrRepairIndex(ctx, dir)
	if err != nil {
		return err
	}
	defer db.Close()
	if repaired {
		fmt.Fprintln(stderr, "warning: history was damaged and has been recreated")
	}
	entries, err := storage.ListRenders(ctx, db, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No renders recorded in", dir)
		return nil
	}
	l := applog.WithOperation(applog.WithComponent("cli"), "history")
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tFORMAT\tSHAPES\tSKIPPED\tSIZE\tPATH")
	for _, e := range entries {
		_, _, _, hasThumb, err := storage.GetThumb(ctx, db, e.ID)
		if err != nil {
			l.DebugContext(ctx, "thumbnail lookup failed", slog.Int64("id", e.ID), slog.Any("err", err))
			hasThumb = false
		}
		path := e.Path
		if hasThumb {
			path += " [thumb]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%gx%g\t%s\n",
			e.ID, e.Time.Local().Format("2006-01-02 15:04:05"), e.Format, e.Shapes, e.Skipped,
			e.Viewport.Width(), e.Viewport.Height(), path)
	}
	return tw.Flush()
}

func cmdConfig(cfg config.AppConfig, stdout io.Writer) error {
	p, err := config.ConfigPath()
	if err == nil {
		fmt.Fprintln(stdout, "#", p)
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
