// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PropertyType is the declared type of a database property.
type PropertyType string

const (
	PropertyTitle       PropertyType = "title"
	PropertyRichText    PropertyType = "rich_text"
	PropertyMultiSelect PropertyType = "multi_select"
	PropertyCheckbox    PropertyType = "checkbox"
	PropertyDate        PropertyType = "date"
	PropertyOther       PropertyType = "other"
)

// Property is one named page property. Only the field matching Type is set.
type Property struct {
	Type PropertyType

	// Checkbox is nil when the checkbox value was absent.
	Checkbox *bool

	MultiSelect []string

	// Text is the plain text of a title or rich_text property.
	Text string

	// Date is the raw ISO start value of a date property.
	Date string
}

// PageMeta is the export-time metadata of one database page. It is built
// once per export pass and not modified afterwards.
type PageMeta struct {
	ID    string
	Title string

	// Slug may start with "/" to mark a standalone page outside the dated tree.
	Slug string

	// PublishDate is an ISO date or date-time; empty when unset.
	PublishDate string

	// Cover is nil when the page has no cover image.
	Cover *FileSource

	Properties map[string]Property
}
