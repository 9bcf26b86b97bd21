package swap

// Status is the phase an offer is in, from the point of view of one party.
type Status string

const (
	// StatusMakePending ...
	StatusMakePending Status = "MAKE_PENDING"
	// StatusTakePending is the status of an offer made and waiting for a
	// taker.
	StatusTakePending Status = "TAKE_PENDING"
	// StatusAcceptPending is the status of an offer taken and waiting for the
	// maker to sign.
	StatusAcceptPending Status = "ACCEPT_PENDING"
	// StatusComplete ...
	StatusComplete Status = "COMPLETE"
	// StatusFailed ...
	StatusFailed Status = "FAILED"
)

var statusOrder = map[Status]int{
	StatusMakePending:   0,
	StatusTakePending:   1,
	StatusAcceptPending: 2,
	StatusComplete:      3,
}

// Code returns the position of s in the make, take, accept, complete
// sequence, or -1 for failed and unknown statuses.
func (s Status) Code() int {
	if code, ok := statusOrder[s]; ok {
		return code
	}
	return -1
}

func (s Status) String() string {
	return string(s)
}

// IsValid returns whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := statusOrder[s]
	return ok || s == StatusFailed
}

// IsFinal returns whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == StatusComplete || s == StatusFailed
}

// CanMoveTo returns whether next is a legal transition from s. Every non
// final status can fail, otherwise statuses only move forward one step at a
// time.
func (s Status) CanMoveTo(next Status) bool {
	if s.IsFinal() || !s.IsValid() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	return next.Code() >= 0 && next.Code() == s.Code()+1
}
