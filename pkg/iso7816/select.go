package iso7816

// SELECT command logic (ISO 7816-4).
//
// The SELECT command (INS 'A4') opens a file or application. P1 carries the
// selection method; the ones relevant here are 0x04 (select by DF name/AID)
// and 0x08 (select by path from the master file). P2 controls the response
// content and file occurrence; 0x00 asks for the first occurrence with FCI.

// Selection methods (P1).
const (
	SelectByFileID byte = 0x00
	SelectByDFName byte = 0x04
	SelectByPathMF byte = 0x08
)

// SelectByPath builds a SELECT command addressing a file by its path from
// the master file. Case 3: the payload is the path, no Le is sent. Whether
// the card returns file control information anyway depends on the protocol
// in use; callers must not rely on it.
func SelectByPath(path []byte) *CommandAPDU {
	return &CommandAPDU{
		Ins:  InsSelect,
		P1:   SelectByPathMF,
		P2:   0x00,
		Data: path,
	}
}

// SelectByAID builds a SELECT command addressing an application by name.
func SelectByAID(aid []byte) *CommandAPDU {
	return &CommandAPDU{
		Ins:  InsSelect,
		P1:   SelectByDFName,
		P2:   0x00,
		Data: aid,
	}
}
