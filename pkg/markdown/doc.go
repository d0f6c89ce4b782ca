// Package markdown converts between Markdown text and the rich document
// model, in both directions.
//
// Deserialize splits an optional front-matter header from the body,
// tokenizes the body into blocks, resolves each block's inline markup and
// assembles the result into an mdast tree. Serialize reads such a tree back
// and renders it in a fixed format: blocks separated by a blank line, with a
// trailing blank line after the last block.
package markdown
