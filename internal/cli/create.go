package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/giftjoy/giftjoy/internal/services"
)

// getSimpleText, getMultiline and getToken are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getToken = GetToken

// Create interactively composes a gift and saves it through the storage
// waterfall. Empty answers fall back to the editor defaults (stock greeting
// message, classic theme, anonymous sender).
func (a *App) Create(ctx context.Context) error {
	occasion, err := getSimpleText(a.reader, "Occasion (birthday, christmas, valentine, anniversary, easter, thankyou, ...)", os.Stdout)
	if err != nil {
		return err
	}

	recipient, err := getSimpleText(a.reader, "Recipient name (empty for 'Dear Friend')", os.Stdout)
	if err != nil {
		return err
	}

	sender, err := getSimpleText(a.reader, "Your name (empty for 'Anonymous')", os.Stdout)
	if err != nil {
		return err
	}

	message, err := getMultiline(a.reader, "Message (empty for a stock greeting)", os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Image (file path or URL, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	audioPath, err := getSimpleText(a.reader, "Audio (file path or URL, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	stickers, err := getSimpleText(a.reader, "Stickers (comma separated, up to 5)", os.Stdout)
	if err != nil {
		return err
	}

	quest, err := getSimpleText(a.reader, "Add a scavenger quest? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	gift, err := a.service.Create(ctx, services.CreateGiftInput{
		Occasion:    occasion,
		Recipient:   recipient,
		Sender:      sender,
		Message:     message,
		ImagePath:   imagePath,
		AudioPath:   audioPath,
		Stickers:    parseStickers(stickers),
		EnableQuest: strings.EqualFold(quest, "y") || strings.EqualFold(quest, "yes"),
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Created gift %s\n", gift.ID)
	return nil
}
