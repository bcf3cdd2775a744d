package models

import "fmt"

// Color is the closed set of valid product colors.
type Color string

const (
	ColorRed     Color = "RED"
	ColorYellow  Color = "YELLOW"
	ColorGreen   Color = "GREEN"
	ColorBlue    Color = "BLUE"
	ColorBlack   Color = "BLACK"
	ColorWhite   Color = "WHITE"
	ColorPink    Color = "PINK"
	ColorUnknown Color = "UNKNOWN"
	ColorOther   Color = "OTHER"
)

// Size is the closed set of valid product sizes.
type Size string

const (
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeOther   Size = "OTHER"
	SizeUnknown Size = "UNKNOWN"
)

// Category is the closed set of valid product categories.
type Category string

const (
	CategoryFashion     Category = "FASHION"
	CategoryAccessories Category = "ACCESSORIES"
	CategoryGroceries   Category = "GROCERIES"
	CategoryDrugs       Category = "DRUGS"
	CategoryPets        Category = "PETS"
	CategoryBeauty      Category = "BEAUTY"
	CategoryHome        Category = "HOME"
	CategoryDevice      Category = "DEVICE"
	CategoryGaming      Category = "GAMING"
	CategoryBook        Category = "BOOK"
	CategoryOther       Category = "OTHER"
	CategoryUnknown     Category = "UNKNOWN"
)

// Colors lists every Color member in declaration order.
var Colors = []Color{
	ColorRed, ColorYellow, ColorGreen, ColorBlue, ColorBlack,
	ColorWhite, ColorPink, ColorUnknown, ColorOther,
}

// Sizes lists every Size member in declaration order.
var Sizes = []Size{
	SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeOther, SizeUnknown,
}

// Categories lists every Category member in declaration order.
var Categories = []Category{
	CategoryFashion, CategoryAccessories, CategoryGroceries, CategoryDrugs,
	CategoryPets, CategoryBeauty, CategoryHome, CategoryDevice,
	CategoryGaming, CategoryBook, CategoryOther, CategoryUnknown,
}

// ParseColor maps an external string onto a Color member. Matching is
// exact-case and exact-spelling; anything else is an InvalidAttribute error.
func ParseColor(value string) (Color, error) {
	for _, c := range Colors {
		if string(c) == value {
			return c, nil
		}
	}
	return "", &ValidationError{
		Kind:    InvalidAttribute,
		Field:   "color",
		Message: fmt.Sprintf("invalid attribute: %q is not a valid color", value),
	}
}

// ParseSize maps an external string onto a Size member.
func ParseSize(value string) (Size, error) {
	for _, s := range Sizes {
		if string(s) == value {
			return s, nil
		}
	}
	return "", &ValidationError{
		Kind:    InvalidAttribute,
		Field:   "size",
		Message: fmt.Sprintf("invalid attribute: %q is not a valid size", value),
	}
}

// ParseCategory maps an external string onto a Category member.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories {
		if string(c) == value {
			return c, nil
		}
	}
	return "", &ValidationError{
		Kind:    InvalidAttribute,
		Field:   "category",
		Message: fmt.Sprintf("invalid attribute: %q is not a valid category", value),
	}
}
