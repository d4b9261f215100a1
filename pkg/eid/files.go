package eid

import "fmt"

// File identifies an elementary file on the card by its 2-byte path.
type File [2]byte

// Elementary files present on the eID card.
var (
	// DocumentFile holds document data: registration number, dates, authority.
	DocumentFile = File{0x0F, 0x02}

	// PersonalFile holds personal data about the card holder.
	PersonalFile = File{0x0F, 0x03}

	// ResidenceFile holds the holder's place of residence.
	ResidenceFile = File{0x0F, 0x04}

	// PhotoFile holds the holder's photo in JPEG format.
	PhotoFile = File{0x0F, 0x06}

	// X.509 certificate files. Present on the card, not read by this library.

	// AuthCertFile holds the public certificate for authentication.
	AuthCertFile = File{0x0F, 0x08}

	// SigningCertFile holds the public certificate for qualified signing.
	SigningCertFile = File{0x0F, 0x10}

	// IntermCertFile holds the intermediate CA public certificate.
	IntermCertFile = File{0x0F, 0x11}
)

// Path returns the file path bytes as sent in a SELECT command.
func (f File) Path() []byte {
	return []byte{f[0], f[1]}
}

func (f File) String() string {
	switch f {
	case DocumentFile:
		return "document file"
	case PersonalFile:
		return "personal file"
	case ResidenceFile:
		return "residence file"
	case PhotoFile:
		return "photo file"
	case AuthCertFile:
		return "authentication certificate file"
	case SigningCertFile:
		return "signing certificate file"
	case IntermCertFile:
		return "intermediate certificate file"
	default:
		return fmt.Sprintf("file %02X%02X", f[0], f[1])
	}
}
