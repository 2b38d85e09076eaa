// Command seed-admin creates the initial admin account when the user table
// is empty, so a fresh install can log in.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xurshidboymirzaev403-a11y/logistics/config"
	"github.com/xurshidboymirzaev403-a11y/logistics/store/gormstore"
	"github.com/xurshidboymirzaev403-a11y/logistics/workflow"
)

func main() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	config.ConnectDatabaseWithRetry()
	st := gormstore.New(config.GetDB())
	if err := st.AutoMigrate(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	user, err := workflow.New(st).EnsureDefaultAdmin(context.Background(), username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Println("users already exist, nothing to do")
		return
	}
	fmt.Printf("created admin %q (id %d)\n", user.Username, user.ID)
}
