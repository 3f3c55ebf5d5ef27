// Package loader discovers delimited input files and runs the parallel
// loading pass that turns them into records.
//
// A load resolves the input path to candidate files, filters them through
// the schema's exclusion predicate, and dispatches one task per file under
// the selected strategy. Loading is all-or-nothing per file: a file either
// contributes all of its valid rows or is skipped, and one unreadable file
// never aborts the rest. Only an unopenable root path is fatal.
//
// Plain files are read through a read-only memory mapping; inputs compressed
// with zstd, gzip or lz4 are streamed through the matching decompressor.
package loader
