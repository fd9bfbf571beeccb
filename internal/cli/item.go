package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/models"
)

// mediaSummary renders a media field for terminal output. Inline payloads
// are summarized instead of dumping base64 on the screen.
func mediaSummary(v string) string {
	if v == "" {
		return "(none)"
	}
	if dataurl.Is(v) {
		p, err := dataurl.Parse(v)
		if err != nil {
			return "(inline, unreadable)"
		}
		return fmt.Sprintf("(inline %s, %d bytes)", p.MIME, len(p.Data))
	}
	return v
}

func printGift(g *models.GiftRecord) {
	fmt.Printf("ID:        %s\n", g.ID)
	fmt.Printf("Occasion:  %s\n", g.Occasion)
	fmt.Printf("To:        %s\n", g.Recipient)
	fmt.Printf("From:      %s\n", g.Sender)
	fmt.Printf("Message:   %s\n", g.Message)
	fmt.Printf("Theme:     %s\n", g.Theme)
	fmt.Printf("Type:      %s\n", g.GiftType)
	fmt.Printf("Image:     %s\n", mediaSummary(g.Image))
	fmt.Printf("Audio:     %s\n", mediaSummary(g.Audio))
	if len(g.Stickers) > 0 {
		fmt.Printf("Stickers:  %s\n", strings.Join(g.Stickers, ", "))
	}
	fmt.Printf("Quest:     %v\n", g.EnableQuest)
	fmt.Printf("Created:   %s\n", g.CreatedAt)
	if g.UserID != "" {
		fmt.Printf("Owner:     %s\n", g.UserID)
	}
}

// List prints saved gifts, newest first.
func (a *App) List(ctx context.Context) error {
	gifts, err := a.service.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(gifts) == 0 {
		fmt.Println("No gifts saved yet.")
		return nil
	}

	for _, g := range gifts {
		fmt.Printf("%s  %-12s  to %-15s  %s\n", g.ID, g.Occasion, g.Recipient, g.CreatedAt)
	}
	return nil
}

// Show prompts for an id and prints the full gift.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Gift ID", os.Stdout)
	if err != nil {
		return err
	}

	gift, err := a.service.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if gift == nil {
		fmt.Println("Gift not found:", id)
		return nil
	}

	printGift(gift)
	return nil
}

// Delete prompts for an id and removes the gift. Deleting a missing id is
// silently successful.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Gift ID", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.service.Delete(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Deleted.")
	return nil
}

// Clear removes every saved gift after confirmation.
func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Remove ALL saved gifts? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.service.Clear(ctx); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("All gifts removed.")
	return nil
}

// Storage reports the active storage tier and its capacity estimate.
func (a *App) Storage(ctx context.Context) error {
	fmt.Printf("Storage tier: %s\n", a.storage.State())

	est, ok := a.service.StorageInfo(ctx)
	if !ok {
		fmt.Println("No capacity estimate available on this platform.")
		return nil
	}

	fmt.Printf("Used:      %d bytes\n", est.UsedBytes)
	fmt.Printf("Quota:     %d bytes\n", est.QuotaBytes)
	fmt.Printf("Available: %d bytes\n", est.AvailableBytes)
	fmt.Printf("Usage:     %.1f%%\n", est.PercentUsed)
	return nil
}
