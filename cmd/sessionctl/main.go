// Command sessionctl manages the gateway's persisted session from the
// terminal. It drives the same session manager and Redis entries as the
// server, so a session created here is picked up by the gateway on its
// next restart (and vice versa).
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/edupanel/examboard/internal/config"
	"github.com/edupanel/examboard/internal/database"
	"github.com/edupanel/examboard/internal/logger"
	"github.com/edupanel/examboard/internal/session"
	"github.com/edupanel/examboard/internal/upstream"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Restore Session ───────────────────────────────────────────────
	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	sessions := session.NewManager(api, session.NewRedisStore(rdb), log)
	sessions.Restore(ctx)

	switch os.Args[1] {
	case "login":
		runLogin(ctx, sessions)
	case "status":
		runStatus(sessions)
	case "logout":
		sessions.Logout(ctx)
		fmt.Println("Session cleared.")
	default:
		usage()
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, sessions *session.Manager) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: email is required")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}

	if err := sessions.Login(ctx, email, string(bytePassword)); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	snap := sessions.Snapshot()
	fmt.Printf("Logged in as %s (%s)\n", snap.User.FullName(), snap.User.Role)
}

func runStatus(sessions *session.Manager) {
	snap := sessions.Snapshot()
	if snap.User == nil {
		fmt.Println("No active session.")
		return
	}
	fmt.Printf("User:      %s\n", snap.User.FullName())
	fmt.Printf("Username:  %s\n", snap.User.Username)
	fmt.Printf("Email:     %s\n", snap.User.Email)
	fmt.Printf("Role:      %s\n", snap.User.Role)
	fmt.Printf("Admin:     %v\n", snap.User.IsAdmin())
	fmt.Printf("Moderator: %v\n", snap.User.IsModerator())
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sessionctl <login|status|logout>")
}
