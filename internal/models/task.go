package models

import (
	"database/sql/driver"
	"fmt"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryStudy    Category = "Study"
	CategoryOther    Category = "Other"
)

// Categories lists the categories in menu order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryStudy, CategoryOther}

// ParseCategory decodes a stored category, falling back to Other.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Value implements driver.Valuer.
func (c Category) Value() (driver.Value, error) {
	return string(ParseCategory(string(c))), nil
}

// Scan implements sql.Scanner.
func (c *Category) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = ParseCategory(v)
	case []byte:
		*c = ParseCategory(string(v))
	case nil:
		*c = CategoryOther
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	return nil
}

// Task.DueDate keeps the YYYY-MM-DD text as entered; it is matched
// syntactically, not parsed as a calendar date.
type Task struct {
	ID          uint64   `gorm:"primarykey" json:"id"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Completed   bool     `gorm:"not null;default:false" json:"completed"`
	Category    Category `gorm:"type:varchar(20);not null" json:"category"`
	DueDate     string   `gorm:"type:varchar(10)" json:"due_date"`
	AssignedTo  uint64   `json:"assigned_to"`
	Priority    string   `gorm:"type:varchar(20)" json:"priority"`
}

func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}
