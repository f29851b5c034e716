// Package process runs external commands, such as the LaTeX compiler, in
// their own process group so a cancelled build takes its children with it.
package process
