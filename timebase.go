package rsync

import "time"

// TimeBase selects how a stored Unix-seconds timestamp is projected into
// a time.Time, reviving the original framework's LOCAL_TIME/UTC_TIME
// distinction (spec.md §9's supplemented features) that the distilled
// spec.md omitted.
type TimeBase int

const (
	LocalTime TimeBase = iota
	UTCTime
)

func (tb TimeBase) project(unixSeconds int64) (time.Time, error) {
	switch tb {
	case LocalTime:
		return time.Unix(unixSeconds, 0).Local(), nil
	case UTCTime:
		return time.Unix(unixSeconds, 0).UTC(), nil
	default:
		return time.Time{}, archiveErrf(ErrUnknownTimeBase, nil, 0, nil, "unknown time base %d", tb)
	}
}

// CreatedAt projects CreatedAtUnix into base, returning UnknownTimeBase
// for any value other than LocalTime/UTCTime.
func (a *Archive) CreatedAt(base TimeBase) (time.Time, error) {
	return base.project(a.createdAt)
}

// ModifiedAt projects ModifiedAtUnix into base.
func (a *Archive) ModifiedAt(base TimeBase) (time.Time, error) {
	return base.project(a.modifiedAt)
}
