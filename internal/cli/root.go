package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := a.storage.State().String()
	if a.isLoggedIn() {
		if user, err := a.gateway.Subject(); err == nil {
			s = s + " " + user
		}
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to GiftJoy CLI (type 'help' for commands)")

	// Opening never fails; a broken database only degrades storage to the
	// fallback tier.
	_ = a.storage.Open(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
