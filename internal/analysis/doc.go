// Package analysis composes subtitle extraction, word selection and
// difficulty classification into a single run per subtitle file.
//
// An Analyzer is built once from configuration and shares its NLP registry
// and frequency source across runs. Analyze handles one file synchronously;
// Batch fans a list of files out over a bounded number of workers and
// returns per-file results in input order.
package analysis
