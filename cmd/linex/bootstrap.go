/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/traas-stack/linex/pkg/appconfig"
	"github.com/traas-stack/linex/pkg/logger"
	"github.com/traas-stack/linex/pkg/pipeline"
	"github.com/traas-stack/linex/pkg/serializer"
	"go.uber.org/zap"
)

type (
	// flags holds the command line values, they only override the config when explicitly set
	flags struct {
		configPath  string
		lineNumbers bool
		json        bool
		output      string
		separator   string
		charset     string
		maxLineSize int
		buffered    bool
		verbose     bool
	}
	program struct {
		cmd   *cobra.Command
		flags flags
		regex string
		file  string

		config *appconfig.Config
		format serializer.Format
		input  io.ReadCloser
		sink   *pipeline.Sink
		p      *pipeline.Pipeline
	}
)

func newCommand() *cobra.Command {
	p := &program{}
	cmd := &cobra.Command{
		Use:   "linex [flags] REGEX [FILE]",
		Short: "Extract regular expression matches from lines of text",
		Long: `linex applies REGEX to every line of FILE (or stdin) and prints what matched.

If REGEX has capture groups one field per group is printed, otherwise the whole match.
Columns are separated by TAB unless --separator is given; \t \n \r and \\ are decoded.
With --json every match becomes a JSON object keyed by group name, or by group number for
unnamed groups, or "match" when there are no groups.`,
		Example: `  linex '([0-9]{3})-([0-9]{2})-([0-9]{3})' data.txt
  linex -j -l '(?P<level>INFO|WARN|ERROR) (?P<msg>.*)' app.log
  cat access.log | linex -s ',' '"(GET|POST) ([^ ]+)'`,
		Version:       appconfig.Version(),
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.cmd = cmd
			p.regex = args[0]
			if len(args) > 1 {
				p.file = args[1]
			}
			return p.run()
		},
	}
	cmd.SetVersionTemplate(appconfig.VersionInfo() + "\n")

	f := cmd.Flags()
	f.BoolVarP(&p.flags.lineNumbers, "line-numbers", "l", false, "show line numbers")
	f.BoolVarP(&p.flags.json, "json", "j", false, "use JSON format instead of columns")
	f.StringVarP(&p.flags.output, "output", "o", "", "write the result to `FILE` instead of stdout")
	f.StringVarP(&p.flags.separator, "separator", "s", "\t", "separator for the columns when using columnar format")
	f.BoolVarP(&p.flags.verbose, "verbose", "v", false, "verbose mode: log lines that did not match and setup steps")
	f.StringVar(&p.flags.charset, "charset", "utf-8", `input charset, "auto" detects it from the first bytes`)
	f.IntVar(&p.flags.maxLineSize, "max-line-size", 16*1024*1024, "skip lines longer than this many bytes")
	f.BoolVar(&p.flags.buffered, "buffered", false, "buffer the output instead of flushing every record")
	f.StringVar(&p.flags.configPath, "config", "", "load defaults from a .yaml or .toml `FILE`")

	return cmd
}

func (p *program) run() error {
	// close on every exit path so buffered output is flushed
	defer p.close()

	// nothing is opened until the pattern compiled, a bad pattern must not truncate the output
	steps := []struct {
		name string
		fn   func() error
	}{
		{"load config", p.loadConfig},
		{"compile pattern", p.compilePattern},
		{"open input", p.openInput},
		{"open output", p.openOutput},
		{"extract", p.extract},
	}

	for _, step := range steps {
		logger.Debugz("[bootstrap] step", zap.String("step", step.name))
		if err := step.fn(); err != nil {
			return errors.Wrap(err, step.name)
		}
	}
	return p.close()
}

func (p *program) loadConfig() error {
	cfg, err := appconfig.Load(p.flags.configPath)
	if err != nil {
		return err
	}

	f := p.cmd.Flags()
	if f.Changed("line-numbers") {
		cfg.LineNumbers = p.flags.lineNumbers
	}
	if f.Changed("json") {
		if p.flags.json {
			cfg.Format = string(serializer.FormatJSON)
		} else {
			cfg.Format = string(serializer.FormatColumns)
		}
	}
	if f.Changed("output") {
		cfg.Output = p.flags.output
	}
	if f.Changed("separator") {
		cfg.Separator = p.flags.separator
	}
	if f.Changed("charset") {
		cfg.Charset = p.flags.charset
	}
	if f.Changed("max-line-size") {
		cfg.MaxLineSize = p.flags.maxLineSize
	}
	if f.Changed("buffered") {
		cfg.Buffered = p.flags.buffered
	}
	if f.Changed("verbose") {
		cfg.Verbose = p.flags.verbose
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := serializer.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger.SetupZapLogger(cfg.Verbose)
	logger.Debugz("[bootstrap] config", zap.Any("config", cfg), zap.String("regex", p.regex), zap.String("file", p.file))

	p.config = cfg
	p.format = format
	return nil
}

func (p *program) openInput() error {
	in, err := pipeline.OpenInput(p.file)
	if err != nil {
		return err
	}
	p.input = in
	return nil
}

func (p *program) openOutput() error {
	sink, err := pipeline.OpenOutput(p.config.Output, !p.config.Buffered)
	if err != nil {
		return err
	}
	p.sink = sink
	return nil
}

func (p *program) compilePattern() error {
	pl, err := pipeline.New(pipeline.Config{
		Regex:       p.regex,
		Format:      p.format,
		LineNumbers: p.config.LineNumbers,
		Separator:   p.config.Separator,
		Charset:     p.config.Charset,
		MaxLineSize: p.config.MaxLineSize,
	})
	if err != nil {
		return err
	}
	p.p = pl
	return nil
}

func (p *program) extract() error {
	stats, err := p.p.Run(p.input, p.sink)
	logger.Debugz("[bootstrap] done",
		zap.Int("lines", stats.Lines),
		zap.Int("matched", stats.Matched),
		zap.Int("skipped", stats.Skipped))
	return err
}

// close is safe to call more than once.
func (p *program) close() error {
	var err error
	if p.sink != nil {
		if cerr := p.sink.Close(); cerr != nil {
			err = errors.Wrap(cerr, "close output")
		}
		p.sink = nil
	}
	if p.input != nil {
		p.input.Close()
		p.input = nil
	}
	return err
}
