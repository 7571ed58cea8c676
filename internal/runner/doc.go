// Package runner drives the conversation with the model and dispatches tool calls.
//
// Invariants:
//   - History is append-only; every turn is appended in the order it happened.
//   - The tool_result turn answering an assistant turn directly follows it and
//     holds exactly one result per tool_use, in issue order.
//   - Tool failures never escape the Executor; they become is_error results the
//     model can react to.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package runner
