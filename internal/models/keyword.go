// internal/models/keyword.go
package models

// Keyword is a curated tag that influencer profiles reference by ID.
type Keyword struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	DisplayName string `json:"displayName" db:"display_name"`
	Description string `json:"description,omitempty" db:"description"`
	Icon        string `json:"icon,omitempty" db:"icon"`
	Color       string `json:"color,omitempty" db:"color"`
	IsActive    bool   `json:"isActive" db:"is_active"`
}
