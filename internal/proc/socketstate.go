package proc

import (
	"strings"

	"github.com/pranshuparmar/unhex/pkg/model"
)

// Codes from include/net/tcp_states.h. Anything else, including
// NEW_SYN_RECV (0C), decodes as UNKNOWN.
var stateMap = map[string]model.TCPState{
	"01": model.StateEstablished,
	"02": model.StateSynSent,
	"03": model.StateSynRecv,
	"04": model.StateFinWait1,
	"05": model.StateFinWait2,
	"06": model.StateTimeWait,
	"07": model.StateClose,
	"08": model.StateCloseWait,
	"09": model.StateLastAck,
	"0A": model.StateListen,
	"0B": model.StateClosing,
}

// StateFromHex maps the st column to a state name.
func StateFromHex(code string) model.TCPState {
	state, ok := stateMap[strings.ToUpper(code)]
	if !ok {
		return model.StateUnknown
	}
	return state
}

// ParseStateName accepts a state name in any case, e.g. "listen".
func ParseStateName(name string) (model.TCPState, bool) {
	want := model.TCPState(strings.ToUpper(strings.TrimSpace(name)))
	if want == model.StateUnknown {
		return want, true
	}
	for _, s := range stateMap {
		if s == want {
			return s, true
		}
	}
	return "", false
}

// IsProblematicState reports states that usually mean a socket is lingering
// after close.
func IsProblematicState(state model.TCPState) bool {
	switch state {
	case model.StateTimeWait, model.StateCloseWait, model.StateFinWait1, model.StateFinWait2:
		return true
	}
	return false
}

// ExplainState returns a human-readable explanation and, where one exists,
// a workaround.
func ExplainState(state model.TCPState) (explanation, workaround string) {
	switch state {
	case model.StateListen:
		return "Actively listening for connections", ""
	case model.StateTimeWait:
		return "Connection closed, waiting for delayed packets",
			"Wait for timeout (usually 60s) or use SO_REUSEADDR"
	case model.StateCloseWait:
		return "Remote side closed connection, local side has not closed yet",
			"The application should call close() on the socket"
	case model.StateFinWait1:
		return "Local side initiated close, waiting for acknowledgment", ""
	case model.StateFinWait2:
		return "Local close acknowledged, waiting for remote close", ""
	case model.StateEstablished:
		return "Active connection", ""
	case model.StateSynSent:
		return "Connection request sent, waiting for response", ""
	case model.StateSynRecv:
		return "Connection request received, sending acknowledgment", ""
	case model.StateClosing:
		return "Both sides initiated close simultaneously", ""
	case model.StateLastAck:
		return "Waiting for final acknowledgment of close", ""
	case model.StateClose:
		return "Socket is closed", ""
	default:
		return "Socket in " + string(state) + " state", ""
	}
}
