package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"learnsubs/internal/vocab"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func tierColor(tier vocab.Tier) string {
	switch tier {
	case vocab.Easy:
		return ansiGreen
	case vocab.Intermediate:
		return ansiYellow
	case vocab.Advanced:
		return ansiRed
	default:
		return ""
	}
}

func paintTier(tier vocab.Tier, colorize bool) string {
	label := string(tier)
	if !colorize {
		return label
	}
	if color := tierColor(tier); color != "" {
		return color + label + ansiReset
	}
	return label
}
