/*
Package iso7816 implements the APDU transport used to talk to the eID smart card.

The communication model follows ISO/IEC 7816-3 and 7816-4 and is strictly
synchronous:
 1. The host sends a Command APDU (4-byte header plus an optional body).
 2. The card replies with a Response APDU (optional data plus a mandatory
    2-byte Status Word).

The package exposes exactly that: command encoding (CommandAPDU), response
splitting (ResponseAPDU, StatusWord) and a Client performing one round trip
per Send call over a Transmitter. It attaches no meaning to status words
beyond making them inspectable; file selection, chunked reads and retry
policy all belong to the caller.
*/
package iso7816
