// Command learnsubs rates the vocabulary difficulty of subtitle files.
//
// Subcommands analyze a single file or a directory, watch a directory for
// new subtitles, manage the word frequency database and inspect the
// configuration.
package main
