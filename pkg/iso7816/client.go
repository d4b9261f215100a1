package iso7816

import "fmt"

// Transmitter abstracts the physical card connection: one call, one
// command/response round trip. Implementations block until the device
// replies or the transport itself fails.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}

// Client sends commands over a Transmitter.
//
// Send performs exactly one exchange per call. The status word comes back
// unjudged: no retries, no automatic GET RESPONSE or Le correction. Cards
// of this family answer complete responses over T=1, and any continuation
// or retry policy belongs to the layer that knows the operation being run.
type Client struct {
	Card Transmitter
}

// NewClient creates a new Client instance.
func NewClient(card Transmitter) *Client {
	return &Client{Card: card}
}

// Send encodes cmd, transmits it and splits the reply. Transport failures
// are propagated; a reply shorter than the status word trailer is an error.
func (c *Client) Send(cmd *CommandAPDU) (*ResponseAPDU, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	reply, err := c.Card.Transmit(raw)
	if err != nil {
		return nil, fmt.Errorf("transmission error: %w", err)
	}

	return ParseResponseAPDU(reply)
}
