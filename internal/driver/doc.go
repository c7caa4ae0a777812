// Package driver runs the pepfix rules over documents and files.
//
// Run and Normalize work on in-memory content. FixFile handles one source
// file in either overwrite or new-file mode, and FixPaths fixes whole trees
// in place with bounded parallelism.
package driver
