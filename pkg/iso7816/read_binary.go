package iso7816

// READ BINARY command logic (ISO 7816-4).
//
// READ BINARY (INS 'B0') reads length bytes from the current elementary
// file. With bit 8 of P1 clear, P1-P2 carry the read offset as a 15-bit
// big-endian number; Le carries the number of bytes wanted.

// ReadBinary builds a READ BINARY command for the currently selected EF.
// The offset must fit in 15 bits, or bit 8 of P1 would flip the command
// into its short-file-identifier form.
func ReadBinary(offset, length int) *CommandAPDU {
	return &CommandAPDU{
		Ins: InsReadBinary,
		P1:  byte(offset >> 8),
		P2:  byte(offset),
		Ne:  length,
	}
}
