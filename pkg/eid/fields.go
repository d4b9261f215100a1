package eid

import (
	"fmt"
	"strings"

	"github.com/krstom/jfreesteel/pkg/tlv"
)

// Field identifies one semantic datum of the card holder record.
type Field int

const (
	// FieldIgnored marks tags that are recognized but carry no holder data
	// (constant markers and country codes). It never appears in an Info.
	FieldIgnored Field = iota

	FieldDocRegNo
	FieldIssuingDate
	FieldExpiryDate
	FieldIssuingAuthority

	FieldPersonalNumber
	FieldSurname
	FieldGivenName
	FieldParentGivenName
	FieldSex
	FieldPlaceOfBirth
	FieldCommunityOfBirth
	FieldStateOfBirth
	FieldDateOfBirth

	FieldState
	FieldCommunity
	FieldPlace
	FieldStreet
	FieldHouseNumber
	FieldHouseLetter
	FieldEntrance
	FieldFloor
	FieldApartmentNumber
)

func (f Field) String() string {
	switch f {
	case FieldIgnored:
		return "Ignored"
	case FieldDocRegNo:
		return "Document registration number"
	case FieldIssuingDate:
		return "Issuing date"
	case FieldExpiryDate:
		return "Expiry date"
	case FieldIssuingAuthority:
		return "Issuing authority"
	case FieldPersonalNumber:
		return "Personal number"
	case FieldSurname:
		return "Surname"
	case FieldGivenName:
		return "Given name"
	case FieldParentGivenName:
		return "Parent given name"
	case FieldSex:
		return "Sex"
	case FieldPlaceOfBirth:
		return "Place of birth"
	case FieldCommunityOfBirth:
		return "Community of birth"
	case FieldStateOfBirth:
		return "State of birth"
	case FieldDateOfBirth:
		return "Date of birth"
	case FieldState:
		return "State of residence"
	case FieldCommunity:
		return "Community of residence"
	case FieldPlace:
		return "Place of residence"
	case FieldStreet:
		return "Street"
	case FieldHouseNumber:
		return "House number"
	case FieldHouseLetter:
		return "House letter"
	case FieldEntrance:
		return "Entrance"
	case FieldFloor:
		return "Floor"
	case FieldApartmentNumber:
		return "Apartment number"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Info is the immutable identity record assembled from the card's text
// files. Values are UTF-8 strings keyed by Field; tags the translation
// tables do not know about are kept aside per file for diagnostics.
type Info struct {
	fields  map[Field]string
	unknown map[File]tlv.Map
}

// Get returns the value of f, or the empty string when the card did not
// carry it.
func (i *Info) Get(f Field) string {
	return i.fields[f]
}

// Has reports whether the card carried a value for f.
func (i *Info) Has(f Field) bool {
	_, ok := i.fields[f]
	return ok
}

// Fields returns a copy of all decoded field values.
func (i *Info) Fields() map[Field]string {
	out := make(map[Field]string, len(i.fields))
	for f, v := range i.fields {
		out[f] = v
	}
	return out
}

// UnknownTags returns the tags found on the card that no translation table
// recognized, grouped by the file they came from. An empty result means
// the card carried only known tags.
func (i *Info) UnknownTags() map[File]tlv.Map {
	out := make(map[File]tlv.Map, len(i.unknown))
	for file, tags := range i.unknown {
		out[file] = tags
	}
	return out
}

// String renders every present field, one per line, in declaration order.
func (i *Info) String() string {
	var sb strings.Builder
	for f := FieldDocRegNo; f <= FieldApartmentNumber; f++ {
		if value, ok := i.fields[f]; ok {
			fmt.Fprintf(&sb, "%s: %s\n", f, value)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Builder accumulates field values during extraction and is discarded
// after Build. It is not safe for concurrent use.
type Builder struct {
	fields  map[Field]string
	unknown map[File]tlv.Map
}

// NewBuilder creates an empty identity record builder.
func NewBuilder() *Builder {
	return &Builder{
		fields:  make(map[Field]string),
		unknown: make(map[File]tlv.Map),
	}
}

// Add records a value for f. Adding FieldIgnored is a no-op: the record
// never contains the discard sentinel.
func (b *Builder) Add(f Field, value string) *Builder {
	if f != FieldIgnored {
		b.fields[f] = value
	}
	return b
}

// addUnknown records the residual unknown tags of one file.
func (b *Builder) addUnknown(file File, tags tlv.Map) {
	if len(tags) > 0 {
		b.unknown[file] = tags
	}
}

// Build finalizes the record. The builder gives up its backing store and
// must not be used afterwards.
func (b *Builder) Build() *Info {
	info := &Info{fields: b.fields, unknown: b.unknown}
	b.fields = nil
	b.unknown = nil
	return info
}
