// Package block partitions a Markdown body into top-level blocks.
//
// The grammar is line based: every heading, blockquote and paragraph is
// exactly one physical line, and only contiguous lines indented by four
// spaces merge, into a single code block. Blank lines separate nothing;
// they are dropped.
package block
