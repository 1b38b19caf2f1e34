// Package citedoc provides a local, CLI-based document question answering
// tool. It ingests documents, answers natural language questions about them
// and highlights the passages an answer cites, even when the quoted text
// differs from the source in whitespace or casing.
//
// This package contains domain types, interfaces and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// gemini/, goquery/).
package citedoc
