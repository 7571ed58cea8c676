// Package tools defines tool contracts and implementations.
//
// Includes:
//   - Tool: capability interface (Definition + Execute) dispatched by name.
//   - Registry: static name-keyed lookup table built once at startup.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - File tools: read_file, list_files (non-recursive), edit_file.
package tools
