package eid

import (
	"unicode/utf8"

	"github.com/krstom/jfreesteel/pkg/tlv"
)

// Translation tables from the card's TLV tag numbers to semantic fields,
// one per text file. Tags mapped to FieldIgnored hold values with no
// holder information (constant markers, country codes); tags absent from
// a table are unknown and surface in the diagnostic report instead of
// failing the read.

// Document file, tags 1545-1553.
var documentTagMap = map[uint16]Field{
	1545: FieldIgnored, // issuing country code, always "SRB"
	1546: FieldDocRegNo,
	1547: FieldIgnored, // document type marker, always "ID"
	1548: FieldIgnored, // "ID" + registration number
	1549: FieldIssuingDate,
	1550: FieldExpiryDate,
	1551: FieldIssuingAuthority,
	1552: FieldIgnored, // "SC"
	1553: FieldIgnored, // "SC"
}

// Personal file, tags 1558-1567.
var personalTagMap = map[uint16]Field{
	1558: FieldPersonalNumber,
	1559: FieldSurname,
	1560: FieldGivenName,
	1561: FieldParentGivenName,
	1562: FieldSex,
	1563: FieldPlaceOfBirth,
	1564: FieldCommunityOfBirth,
	1565: FieldStateOfBirth,
	1566: FieldDateOfBirth,
	1567: FieldIgnored, // state of birth country code, "SRB"
}

// Residence file, tags 1568-1578.
var residenceTagMap = map[uint16]Field{
	1568: FieldState,
	1569: FieldCommunity,
	1570: FieldPlace,
	1571: FieldStreet,
	1572: FieldHouseNumber,
	1573: FieldHouseLetter,
	1574: FieldEntrance,
	1575: FieldFloor,
	1578: FieldApartmentNumber,
}

// extract adds the UTF-8 decoded value of every tag known to table into b,
// skipping the ones mapped to FieldIgnored, and returns the tags the table
// does not recognize, unchanged. A value that is not valid UTF-8 aborts
// the extraction with a *TextError.
func extract(b *Builder, raw tlv.Map, table map[uint16]Field) (tlv.Map, error) {
	unknown := make(tlv.Map)
	for tag, value := range raw {
		field, known := table[tag]
		switch {
		case !known:
			unknown[tag] = value
		case field == FieldIgnored:
			// Recognized and intentionally discarded.
		default:
			if !utf8.Valid(value) {
				return nil, &TextError{Tag: tag}
			}
			b.Add(field, string(value))
		}
	}
	return unknown, nil
}
