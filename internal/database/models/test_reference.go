package models

// TestCategory is a lookup table grouping test cases by functional area
type TestCategory struct {
	TimestampedModel
	Name        string `json:"name" gorm:"not null;size:100;uniqueIndex" validate:"required,max=100"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for TestCategory
func (TestCategory) TableName() string {
	return "test_categories"
}

// TestPriority is a lookup table of priority levels (P0, P1, ...).
// Order is globally unique and defines the display sort order.
type TestPriority struct {
	TimestampedModel
	Name        string `json:"name" gorm:"not null;size:50" validate:"required,max=50"`
	Description string `json:"description" gorm:"size:200" validate:"max=200"`
	Order       int    `json:"order" gorm:"column:sort_order;not null;uniqueIndex" validate:"gte=0"`
}

// TableName returns the table name for TestPriority
func (TestPriority) TableName() string {
	return "test_priorities"
}

// TestEnvironment is a lookup table of environments test cases run against
type TestEnvironment struct {
	TimestampedModel
	Name        string `json:"name" gorm:"not null;size:100;uniqueIndex" validate:"required,max=100"`
	Description string `json:"description" gorm:"type:text"`
	BaseURL     string `json:"base_url" gorm:"size:255" validate:"omitempty,url,max=255"`
}

// TableName returns the table name for TestEnvironment
func (TestEnvironment) TableName() string {
	return "test_environments"
}
