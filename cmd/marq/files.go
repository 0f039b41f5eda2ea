package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/config"
	"github.com/g5becks/marq/internal/scan"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file",
	}
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "Exclude glob pattern (repeatable)",
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.LoadOrDefault(cmd.String("config"))
}

// collectFiles resolves the command arguments into file paths. Arguments
// that name existing files are taken as-is; everything else is treated as
// a doublestar glob against the current directory. With no arguments the
// configured patterns apply.
func collectFiles(cmd *cli.Command, cfg *config.Config) ([]string, error) {
	exclude := append(cmd.StringSlice("exclude"), cfg.Exclude...)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return scanPatterns(cfg.Patterns, exclude)
	}

	var files []string
	var patterns []string

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			files = append(files, arg)
			continue
		}
		patterns = append(patterns, arg)
	}

	if len(patterns) > 0 {
		matched, err := scanPatterns(patterns, exclude)
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}

	if len(files) == 0 {
		return nil, oops.
			Code("NO_FILES").
			With("args", args).
			Hint("Pass file paths or glob patterns like '**/*.xml'").
			Errorf("no files matched")
	}

	return files, nil
}

func scanPatterns(patterns, exclude []string) ([]string, error) {
	matches, err := scan.Files(scan.Options{
		Patterns: patterns,
		Exclude:  exclude,
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, len(matches))
	for i, match := range matches {
		files[i] = scan.Resolve("", match)
	}
	return files, nil
}
