package sync

import "errors"

var errNoProbe = errors.New("remote state unknown")

// ProbeKind исход проверки облачного бэкапа
type ProbeKind int

const (
	ProbeKindNotFound ProbeKind = iota
	ProbeKindFound
	ProbeKindFailed
)

// RemoteMeta идентификатор и время облачного бэкапа
type RemoteMeta struct {
	ID        string
	Timestamp int64
}

// Probe различает "бэкапа нет" и "проверить не удалось"
type Probe struct {
	Err  error
	Meta RemoteMeta
	Kind ProbeKind
}

// ProbeFound бэкап найден
func ProbeFound(meta RemoteMeta) Probe {
	return Probe{Kind: ProbeKindFound, Meta: meta}
}

// ProbeNotFound бэкапа нет
func ProbeNotFound() Probe {
	return Probe{Kind: ProbeKindNotFound}
}

// ProbeFailed проверка не удалась
func ProbeFailed(err error) Probe {
	if err == nil {
		err = errNoProbe
	}
	return Probe{Kind: ProbeKindFailed, Err: err}
}

// Optional collapses the probe to the metadata when found and nil otherwise
func (p Probe) Optional() *RemoteMeta {
	if p.Kind != ProbeKindFound {
		return nil
	}
	m := p.Meta
	return &m
}

// Decision что сделать, чтобы локальный журнал и облако совпали
type Decision int

const (
	DecisionNone Decision = iota
	DecisionBackup
	DecisionRestore
	DecisionUnknown
)

func (d Decision) String() string {
	switch d {
	case DecisionBackup:
		return "backup"
	case DecisionRestore:
		return "restore"
	case DecisionUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Decide compares the local modification time with the remote backup timestamp.
// The newer side wins; equal timestamps need no action.
func Decide(localTS int64, probe Probe) Decision {
	switch probe.Kind {
	case ProbeKindFailed:
		return DecisionUnknown
	case ProbeKindNotFound:
		return DecisionBackup
	}

	switch {
	case probe.Meta.Timestamp > localTS:
		return DecisionRestore
	case probe.Meta.Timestamp < localTS:
		return DecisionBackup
	default:
		return DecisionNone
	}
}
