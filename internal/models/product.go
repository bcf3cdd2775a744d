package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO-8601, no time).
const DateLayout = "2006-01-02"

// Product represents a single catalog entry. The zero ID marks an
// unpersisted product; the store assigns the real id on create and it is
// never changed afterwards.
type Product struct {
	ID             int       `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:63;not null" validate:"required,max=63"`
	Available      bool      `json:"available" gorm:"not null"`
	Category       Category  `json:"category" gorm:"size:16;not null;default:UNKNOWN"`
	Color          Color     `json:"color" gorm:"size:16;not null;default:UNKNOWN"`
	Size           Size      `json:"size" gorm:"size:16;not null;default:UNKNOWN"`
	CreateDate     time.Time `json:"create_date" gorm:"type:date;not null"`
	LastModifyDate time.Time `json:"last_modify_date" gorm:"type:date;not null"`
}

// TableName overrides the table name used by GORM.
func (Product) TableName() string { return "products" }

// Today returns the current calendar date at midnight UTC, the default for
// unset create/modify dates.
func Today() time.Time {
	return DateOf(time.Now().UTC())
}

// DateOf truncates a timestamp to its calendar date at midnight UTC so
// exact-match date queries behave the same on every backing store.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &ValidationError{
			Kind:    InvalidFormat,
			Message: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", value),
		}
	}
	return DateOf(t), nil
}

// Serialize produces the external plain-record representation of a Product.
// Enumerated fields are emitted by member name and dates as YYYY-MM-DD.
func (p *Product) Serialize() map[string]any {
	return map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"available":        p.Available,
		"category":         string(p.Category),
		"color":            string(p.Color),
		"size":             string(p.Size),
		"create_date":      p.CreateDate.Format(DateLayout),
		"last_modify_date": p.LastModifyDate.Format(DateLayout),
	}
}

// Deserialize populates the product's mutable fields from an external
// record. Every incoming field is validated into a staging area first and
// committed only after all of them pass, so a failed deserialize leaves the
// receiver untouched. The id is never taken from the record.
func (p *Product) Deserialize(data map[string]any) error {
	if data == nil {
		return &ValidationError{
			Kind:    InvalidFormat,
			Message: "invalid product: body of request contained bad or no data",
		}
	}

	name, err := stringKey(data, "name")
	if err != nil {
		return err
	}

	rawAvailable, err := requireKey(data, "available")
	if err != nil {
		return err
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return &ValidationError{
			Kind:    InvalidType,
			Field:   "available",
			Message: fmt.Sprintf("invalid type for boolean [available]: %T", rawAvailable),
		}
	}

	rawCategory, err := stringKey(data, "category")
	if err != nil {
		return err
	}
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return err
	}

	rawColor, err := stringKey(data, "color")
	if err != nil {
		return err
	}
	color, err := ParseColor(rawColor)
	if err != nil {
		return err
	}

	rawSize, err := stringKey(data, "size")
	if err != nil {
		return err
	}
	size, err := ParseSize(rawSize)
	if err != nil {
		return err
	}

	createDate, err := optionalDateKey(data, "create_date")
	if err != nil {
		return err
	}
	lastModifyDate, err := optionalDateKey(data, "last_modify_date")
	if err != nil {
		return err
	}

	p.Name = name
	p.Available = available
	p.Category = category
	p.Color = color
	p.Size = size
	p.CreateDate = createDate
	p.LastModifyDate = lastModifyDate
	return nil
}

// requireKey fetches a key from the record, failing with MissingField when
// the key is absent.
func requireKey(data map[string]any, key string) (any, error) {
	value, ok := data[key]
	if !ok {
		return nil, &ValidationError{
			Kind:    MissingField,
			Field:   key,
			Message: "invalid product: missing " + key,
		}
	}
	return value, nil
}

// stringKey fetches a required key that must hold a string value.
func stringKey(data map[string]any, key string) (string, error) {
	value, err := requireKey(data, key)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{
			Kind:    InvalidType,
			Field:   key,
			Message: fmt.Sprintf("invalid type for string [%s]: %T", key, value),
		}
	}
	return s, nil
}

// optionalDateKey fetches an optional ISO date key; absence yields the zero
// time, which the storage layer defaults to today.
func optionalDateKey(data map[string]any, key string) (time.Time, error) {
	value, ok := data[key]
	if !ok {
		return time.Time{}, nil
	}
	s, ok := value.(string)
	if !ok {
		return time.Time{}, &ValidationError{
			Kind:    InvalidFormat,
			Field:   key,
			Message: fmt.Sprintf("invalid date for [%s]: expected a YYYY-MM-DD string, got %T", key, value),
		}
	}
	return ParseDate(s)
}
