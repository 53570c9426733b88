package enum

// TicketStatus represents the lifecycle state of a weigh ticket
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "Open"
	TicketStatusHold   TicketStatus = "Hold"
	TicketStatusClosed TicketStatus = "Closed"
	TicketStatusVoid   TicketStatus = "Void"
)

func (s TicketStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known lifecycle states.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusHold, TicketStatusClosed, TicketStatusVoid:
		return true
	}
	return false
}
