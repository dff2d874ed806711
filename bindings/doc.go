// Package bindings builds placeholder binding sets from "KEY VALUE"
// binding files and NAME=VALUE command-line assignments. Assignment
// values may derive from file bindings via single-brace {KEY} tags;
// Resolve combines loading and derivation in a single call.
package bindings
