// Package scaffold materializes a template directory into a project
// directory. It walks the template tree, filters out the manifest, dunder
// entries and (optionally) hidden files, substitutes $KEY tokens in path
// segments and $KEY / {KEY} tokens in text file contents, and copies binary
// files byte-for-byte.
package scaffold
