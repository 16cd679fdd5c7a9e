// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ascii folds typographic Unicode punctuation into plain-ASCII
// equivalents. Word and PowerPoint auto-correct text into curly quotes,
// long dashes, and exotic spaces; downstream tooling expects the plain
// forms, so converted Markdown is passed through Normalize before it is
// written out.
package ascii

import "strings"

// replacements maps each typographic character to its ASCII form, as
// old/new pairs. Every source is a single rune and no target appears as a
// source, so one pass over the input is equivalent to applying the
// substitutions in any order, and Normalize is idempotent.
var replacements = []string{
	// Curly quotes to straight quotes.
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
	"‛", "'", // single high-reversed-9 quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
	"‟", `"`, // double high-reversed-9 quotation mark

	// Dashes.
	"–", "-", // en dash
	"—", "--", // em dash
	"―", "--", // horizontal bar

	// Spaces.
	" ", " ", // no-break space
	" ", " ", // en quad
	" ", " ", // em quad
	" ", " ", // en space
	" ", " ", // em space
	" ", " ", // three-per-em space
	" ", " ", // four-per-em space
	" ", " ", // six-per-em space
	" ", " ", // figure space
	" ", " ", // punctuation space
	" ", " ", // thin space
	" ", " ", // hair space

	// Other punctuation.
	"…", "...", // horizontal ellipsis
	"•", "*", // bullet
	"‣", ">", // triangular bullet
	"′", "'", // prime
	"″", `"`, // double prime
	"‵", "'", // reversed prime
	"‶", `"`, // reversed double prime
}

var replacer = strings.NewReplacer(replacements...)

// Normalize returns text with every mapped typographic character replaced
// by its ASCII equivalent. Characters outside the table, ASCII included,
// pass through untouched. Any string is valid input.
func Normalize(text string) string {
	return replacer.Replace(text)
}
