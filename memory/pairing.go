package memory

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// PairingError reports an assistant turn whose tool_use blocks are not answered
// by the following user turn.
type PairingError struct {
	Index  int // index of the assistant turn
	Reason string
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("tool pairing broken at turn %d: %s", e.Index, e.Reason)
}

// CheckPairing verifies that every assistant turn carrying tool_use blocks is
// directly followed by a user turn that answers each of them exactly once.
// Within that user turn, tool_result blocks must lead and must not reference
// unknown ids. An assistant turn with tool_use as the newest turn is reported
// as missing its results.
func CheckPairing(msgs []anthropic.MessageParam) error {
	for i, m := range msgs {
		if m.Role != anthropic.MessageParamRoleAssistant {
			continue
		}
		useIDs := toolUseIDs(m)
		if len(useIDs) == 0 {
			continue
		}
		if i+1 >= len(msgs) || msgs[i+1].Role != anthropic.MessageParamRoleUser {
			return &PairingError{Index: i, Reason: "not_followed_by_user"}
		}
		results, ok := leadingToolResultIDs(msgs[i+1])
		if !ok {
			return &PairingError{Index: i, Reason: "ordering_invalid"}
		}
		for id := range useIDs {
			switch results[id] {
			case 0:
				return &PairingError{Index: i, Reason: "missing_results"}
			case 1:
			default:
				return &PairingError{Index: i, Reason: "duplicate_results"}
			}
		}
		for id := range results {
			if _, ok := useIDs[id]; !ok {
				return &PairingError{Index: i, Reason: "extra_results"}
			}
		}
	}
	return nil
}

func toolUseIDs(m anthropic.MessageParam) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, blk := range m.Content {
		if tu := blk.OfToolUse; tu != nil && tu.ID != "" {
			ids[tu.ID] = struct{}{}
		}
	}
	return ids
}

// leadingToolResultIDs counts tool_result ids in the leading tool_result segment of m.
// ok is false when a tool_result appears after any other block.
func leadingToolResultIDs(m anthropic.MessageParam) (counts map[string]int, ok bool) {
	counts = make(map[string]int)
	seenOther := false
	for _, blk := range m.Content {
		if tr := blk.OfToolResult; tr != nil {
			if seenOther {
				return counts, false
			}
			counts[tr.ToolUseID]++
			continue
		}
		seenOther = true
	}
	return counts, true
}
