package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iliyamo/digital-notice-board/internal/notify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		server   string
		email    string
		regNo    string
		password string
		role     string
		dbPath   string
		poll     time.Duration
		rotate   time.Duration
	)

	flagSet := pflag.NewFlagSet("boardwatch", pflag.ContinueOnError)
	flagSet.StringVar(&server, "server", "http://localhost:8080", "notice board API base URL")
	flagSet.StringVar(&email, "email", "", "account email (alternative to --reg)")
	flagSet.StringVar(&regNo, "reg", "", "registration number (alternative to --email)")
	flagSet.StringVar(&password, "password", "", "account password")
	flagSet.StringVar(&role, "role", "", "expected account role (student, faculty, librarian, admin)")
	flagSet.StringVar(&dbPath, "state", defaultStatePath(), "path to the local state database")
	flagSet.DurationVar(&poll, "poll", notify.DefaultPollInterval, "notice fetch interval")
	flagSet.DurationVar(&rotate, "rotate", notify.DefaultRotateInterval, "urgent banner rotation interval")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	store, err := notify.OpenSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := notify.NewClient(server)
	if err := authenticate(ctx, client, store, email, regNo, password, role); err != nil {
		return err
	}

	logger := log.New(os.Stderr, "[boardwatch] ", log.LstdFlags)
	engine := notify.New(client, store, notify.Options{
		PollInterval:   poll,
		RotateInterval: rotate,
		Logger:         logger,
		OnNew: func(added []notify.Entry) {
			for _, en := range added {
				marker := " "
				if en.Urgent {
					marker = "!"
				}
				fmt.Printf("%s new notice #%d: %s (%s, %s)\n", marker, en.NoticeID, en.Title, en.Category, en.Date)
			}
		},
		OnAuthError: func(err error) {
			fmt.Fprintf(os.Stderr, "session rejected by server: %v\n", err)
			store.Delete(context.Background(), notify.KeyToken)
			cancel()
		},
	})
	if err := engine.Start(ctx); err != nil {
		return err
	}
	defer engine.Stop()

	fmt.Printf("watching %s (poll %s, %d notifications stored, %d unread)\n",
		server, poll, len(engine.Notifications()), engine.UnreadCount())

	banner := time.NewTicker(rotate)
	defer banner.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nbye")
			return nil
		case <-banner.C:
			if urgent, idx := engine.Urgent(); len(urgent) > 0 {
				n := urgent[idx]
				fmt.Printf("URGENT [%d/%d] %s (%s)\n", idx+1, len(urgent), n.Title, n.Date)
			}
		}
	}
}

// authenticate reuses a cached token when one exists, otherwise logs
// in with the supplied credentials and caches the result.
func authenticate(ctx context.Context, client *notify.Client, store *notify.SQLiteStore, email, regNo, password, role string) error {
	if token, err := store.Get(ctx, notify.KeyToken); err != nil {
		return err
	} else if token != "" && password == "" {
		client.Token = token
		return nil
	}

	if email == "" && regNo == "" {
		// Anonymous mode still works against an open notice listing.
		return nil
	}
	if password == "" {
		return fmt.Errorf("--password is required when logging in")
	}

	resp, err := client.Login(ctx, notify.LoginRequest{
		Email:              email,
		RegistrationNumber: regNo,
		Password:           password,
		Role:               role,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := store.Set(ctx, notify.KeyToken, resp.Token); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "boardwatch.db"
	}
	return home + "/.boardwatch.db"
}
