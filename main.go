package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ebfe/scard"

	"github.com/krstom/jfreesteel/pkg/eid"
)

func main() {
	// --- 1. Hardware Setup ---
	ctx, handle := connectToCard()

	defer func() {
		if err := ctx.Release(); err != nil {
			log.Printf("Warning: Failed to release context: %v", err)
		}
	}()

	// --- 2. Logic Setup ---
	session, err := newSCardSession(handle)
	if err != nil {
		disconnectQuietly(handle)
		log.Fatalf("Error reading card status: %v", err)
	}

	card, err := eid.NewCard(session)
	if err != nil {
		disconnectQuietly(handle)
		log.Fatalf("Card rejected: %v", err)
	}

	defer func() {
		if err := card.Disconnect(false); err != nil {
			log.Printf("Warning: Failed to disconnect card: %v", err)
		}
	}()

	// --- 3. Execution Flow ---
	if err := dumpIdentity(card); err != nil {
		log.Printf("Reading identity failed: %v", err)
		return
	}

	if err := savePhoto(card, "photo.jpg"); err != nil {
		log.Printf("Reading photo failed: %v", err)
		return
	}

	fmt.Println("\n>> Done")
}

// connectToCard handles the PC/SC context establishment and reader connection.
func connectToCard() (*scard.Context, *scard.Card) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		log.Fatalf("Error establishing context: %s", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		releaseQuietly(ctx)
		log.Fatal("No smart card reader found.")
	}

	reader := readers[0]
	if len(os.Args) > 1 {
		reader = os.Args[1]
	}
	fmt.Printf(">> Using reader: %s\n", reader)

	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		releaseQuietly(ctx)
		log.Fatalf("Error connecting to card: %s", err)
	}

	return ctx, card
}

func releaseQuietly(ctx *scard.Context) {
	if err := ctx.Release(); err != nil {
		log.Printf("Warning: Failed to release context during error handling: %v", err)
	}
}

func disconnectQuietly(card *scard.Card) {
	if err := card.Disconnect(scard.LeaveCard); err != nil {
		log.Printf("Warning: Failed to disconnect card during error handling: %v", err)
	}
}

// dumpIdentity reads the card holder record and prints every field.
func dumpIdentity(card *eid.Card) error {
	fmt.Println("\n=============================================")
	fmt.Println(" Step 1: READ IDENTITY")
	fmt.Println("=============================================")

	info, err := card.ReadIdentity()
	if err != nil {
		return err
	}

	fmt.Println(info)
	return nil
}

// savePhoto reads the card holder photo and writes it next to the binary.
func savePhoto(card *eid.Card, path string) error {
	fmt.Println("\n=============================================")
	fmt.Println(" Step 2: READ PHOTO")
	fmt.Println("=============================================")

	photo, err := card.ReadPhoto()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, photo.Data, 0o644); err != nil {
		return fmt.Errorf("saving photo: %w", err)
	}

	fmt.Printf(">> Saved %s photo (%dx%d, %d bytes) to %s\n",
		photo.Format, photo.Width, photo.Height, len(photo.Data), path)
	return nil
}

// scardSession adapts a PC/SC card handle to the eid.Session collaborator.
type scardSession struct {
	card *scard.Card
	atr  []byte
}

func newSCardSession(card *scard.Card) (*scardSession, error) {
	status, err := card.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to query card status: %w", err)
	}
	return &scardSession{card: card, atr: status.Atr}, nil
}

func (s *scardSession) ATR() []byte {
	return s.atr
}

func (s *scardSession) Transmit(cmd []byte) ([]byte, error) {
	return s.card.Transmit(cmd)
}

func (s *scardSession) BeginExclusive() error {
	return s.card.BeginTransaction()
}

func (s *scardSession) EndExclusive() error {
	return s.card.EndTransaction(scard.LeaveCard)
}

func (s *scardSession) Disconnect(reset bool) error {
	disposition := scard.LeaveCard
	if reset {
		disposition = scard.ResetCard
	}
	return s.card.Disconnect(disposition)
}
