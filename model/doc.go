// Package model provides the result types for document skeleton extraction.
//
// This package defines the user-facing data structures produced by parsing:
// the [DocumentSkeleton] root, its ordered [Section] list, and the content
// blocks inside each section. All extraction operations ultimately produce
// these types, making them the primary API for consuming extracted structure.
//
// # Skeleton Structure
//
// A [DocumentSkeleton] owns an ordered sequence of sections. Every skeleton
// has at least one section: a default "Document" section exists before any
// heading is seen, so content that precedes the first heading always has a
// home.
//
// # Blocks
//
// All section content implements the [Block] interface, a closed union over
// the concrete types:
//
//   - [Paragraph] - body text (optionally linked to an image via ImageRef)
//   - [BulletItem] - a single bulleted list item
//   - [NumberedItem] - a single numbered list item
//   - [Table] - a rectangular table with an optional caption
//   - [Image] - an image region, optionally carrying recognized text
//   - [PageBreak] - a marker between pages
//
// Dispatch on [Block.Kind] (or a type switch over the concrete pointers)
// rather than reflection; each variant carries only the fields that are
// meaningful for it.
//
// # Geometry
//
// [Rect] is the axis-aligned bounding box used during extraction. The
// coordinate system has its origin at the top-left of the page with y
// increasing downward, matching reading order. Rectangles are transient:
// they guide clustering and ordering but are not persisted on the final
// skeleton.
package model
