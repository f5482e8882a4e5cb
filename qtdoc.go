// Package qtdoc serves a local, static corpus of Qt 4.8 reference
// documentation to automated clients. It converts the generated HTML pages
// to clean, link-annotated Markdown behind a two-tier cache, and maintains
// a deterministic full-text search index over the same corpus.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, htmltomarkdown/).
package qtdoc
