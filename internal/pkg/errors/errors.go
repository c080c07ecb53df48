package errors

import "errors"

// Custom application errors
var (
	ErrInvalidContact       = errors.New("לאיש קשר אין מספר תקין")           // Phone missing or unnormalizable
	ErrStoreWriteFailed     = errors.New("שגיאה בשמירת הנתונים")             // Persistence layer rejected a mutation
	ErrStoreReadFailed      = errors.New("שגיאה בקריאת הנתונים")             // Persistence layer failed on a read
	ErrAppointmentNotFound  = errors.New("התור לא נמצא")                     // Appointment not found
	ErrInvalidDateKey       = errors.New("תאריך לא תקין")                    // Date key not in YYYY-MM-DD form
	ErrInvalidTime          = errors.New("שעה לא תקינה")                     // Time not in HH:MM form
	ErrInvalidName          = errors.New("השם לא יכול להיות ריק")            // Settings name must be non-empty
	ErrDispatchConnectivity = errors.New("לא ניתן להתחבר לשרת ההודעות")      // No response from the reminder service
	ErrDispatchServer       = errors.New("שרת ההודעות החזיר שגיאה")          // Reminder service responded with an error payload
	ErrDispatchBusy         = errors.New("שליחה כבר מתבצעת")                 // A send is already in flight for this day
	ErrDispatchState        = errors.New("פעולת שליחה לא חוקית במצב הנוכחי") // Dispatch operation not valid in the current state
	ErrPermissionDenied     = errors.New("ההרשאה נדחתה")                     // Device capability refused (e.g. contacts)
)
