package entity

import "sort"

// Appointment represents one scheduled client visit.
type Appointment struct {
	ID      string `gorm:"column:id;primaryKey"`
	UserID  string `gorm:"column:user_id;index:idx_appointments_bucket"`
	DateKey string `gorm:"column:date_key;index:idx_appointments_bucket"` // YYYY-MM-DD, local calendar date
	Name    string `gorm:"column:name"`
	Phone   string `gorm:"column:phone"` // canonical dialable form, see pkg/phone
	Time    string `gorm:"column:time"`  // zero-padded HH:MM, the sort key
	Sent    bool   `gorm:"column:sent"`  // written only by the external reminder service
}

// TableName specifies the table name for the Appointment entity.
func (Appointment) TableName() string {
	return "appointments"
}

// DayBucket is the appointment set of one user on one calendar date,
// presented sorted ascending by time.
type DayBucket struct {
	UserID       string
	DateKey      string
	Appointments []Appointment
}

// NewDayBucket builds a bucket from an unordered appointment slice. The sort
// is stable so appointments sharing a time keep their incoming order.
func NewDayBucket(userID, dateKey string, appts []Appointment) DayBucket {
	sorted := make([]Appointment, len(appts))
	copy(sorted, appts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return DayBucket{UserID: userID, DateKey: dateKey, Appointments: sorted}
}

// Locked reports whether reminders were already dispatched for this bucket.
// Locking is derived, never stored: a bucket is locked exactly when at least
// one of its appointments carries sent == true. It must be recomputed from
// the set on every snapshot.
func (b DayBucket) Locked() bool {
	return IsLocked(b.Appointments)
}

// IsLocked is the lock derivation over a raw appointment slice.
func IsLocked(appts []Appointment) bool {
	for _, a := range appts {
		if a.Sent {
			return true
		}
	}
	return false
}
