// Package memory holds the in-process conversation history.
//
// History model:
//   - Turns are anthropic.MessageParam values, oldest first.
//   - Append-only: turns are never edited, removed or reordered.
//   - Tool results travel in user-role turns directly after the assistant turn that requested them.
//   - Nothing is persisted; history lives for the process lifetime.
package memory
