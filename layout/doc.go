// Package layout classifies positioned text lines into structural roles.
//
// The [Classifier] decides, per line, whether it is a heading, a bulleted or
// numbered list item, a table/figure caption, or plain paragraph text. The
// decision combines the document-wide body font size baseline (see the
// fontstats package) with text pattern rules; every line deterministically
// falls into exactly one class, with paragraph as the fallback, so
// classification has no error path.
//
// [SortReadingOrder] establishes the top-to-bottom, left-to-right walk the
// classifier and assembler rely on.
package layout
