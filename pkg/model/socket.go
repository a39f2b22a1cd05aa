package model

import (
	"net/netip"
	"strconv"
)

type TCPState string

const (
	StateEstablished TCPState = "ESTABLISHED"
	StateSynSent     TCPState = "SYN_SENT"
	StateSynRecv     TCPState = "SYN_RECV"
	StateFinWait1    TCPState = "FIN_WAIT1"
	StateFinWait2    TCPState = "FIN_WAIT2"
	StateTimeWait    TCPState = "TIME_WAIT"
	StateClose       TCPState = "CLOSE"
	StateCloseWait   TCPState = "CLOSE_WAIT"
	StateLastAck     TCPState = "LAST_ACK"
	StateListen      TCPState = "LISTEN"
	StateClosing     TCPState = "CLOSING"
	StateUnknown     TCPState = "UNKNOWN"
)

// Endpoint is one side of a socket table row.
type Endpoint struct {
	Addr netip.Addr `json:"address" yaml:"address"`
	Port uint16     `json:"port" yaml:"port"`
}

func (e Endpoint) String() string {
	return e.Addr.String() + ":" + strconv.Itoa(int(e.Port))
}

// TCPSocket is one decoded row of /proc/net/tcp.
type TCPSocket struct {
	Slot   string   `json:"sl" yaml:"sl"`
	Local  Endpoint `json:"local" yaml:"local"`
	Remote Endpoint `json:"remote" yaml:"remote"`
	State  TCPState `json:"state" yaml:"state"`
	UID    string   `json:"uid" yaml:"uid"` // literal column value, not resolved to a user
	Inode  string   `json:"inode" yaml:"inode"`
	PIDs   []int    `json:"pids,omitempty" yaml:"pids,omitempty"` // owning processes, when resolved
}
