package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Login installs a cloud session token obtained out of band (the web auth
// flow). The token is read without echo. An expired or malformed token is
// rejected and the previous session, if any, stays in place.
func (a *App) Login(ctx context.Context) error {
	if a.gateway == nil {
		fmt.Println("Cloud tier is not configured; gifts are stored locally only.")
		return nil
	}

	token, err := getToken(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gateway.TryToken(token); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	user, _ := a.gateway.Subject()
	fmt.Printf("Logged in as %s\n", user)
	return nil
}

// Logout drops the cloud session; storage continues locally.
func (a *App) Logout(ctx context.Context) error {
	if a.gateway == nil {
		return nil
	}
	a.gateway.SetSessionToken("")
	fmt.Println("Logged out.")
	return nil
}
