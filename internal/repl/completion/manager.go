// Package completion provides tab completion for the rpn REPL. Candidates
// are the command names of the operation table matched by prefix.
package completion
