package entity

// UserSettings holds the barber's display name and reminder message template.
// Read once at session start, written on explicit save.
type UserSettings struct {
	UserID   string `gorm:"column:user_id;primaryKey"`
	Name     string `gorm:"column:name"`
	Template string `gorm:"column:template;type:text"`
}

// TableName specifies the table name for the UserSettings entity.
func (UserSettings) TableName() string {
	return "user_info"
}
