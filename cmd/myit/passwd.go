package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/myit/inventory/internal/config"
	"github.com/myit/inventory/internal/db"
	"github.com/myit/inventory/internal/store"
)

const passwdUsage = `Usage: myit passwd -user <name> [flags]

Resets the password of an existing account. The new password is read from
the terminal, or from the first line of stdin when it is not a terminal.

Flags:
  -u, -user <name>   account to update (required)
  -d, -db <path>     SQLite database path (default: inventory.db)
  -h, -help          show this help and exit
`

func cmdPasswd(args []string) int {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stdout, passwdUsage) }

	dbPath := config.Defaults().DBPath
	if v := os.Getenv("MYIT_DB"); v != "" {
		dbPath = v
	}
	fs.StringVar(&dbPath, "db", dbPath, "")
	fs.StringVar(&dbPath, "d", dbPath, "")

	var username string
	fs.StringVar(&username, "user", "", "")
	fs.StringVar(&username, "u", "", "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if username == "" {
		fmt.Fprintln(os.Stderr, "error: -user is required")
		fs.Usage()
		return 1
	}

	password, err := readNewPassword(os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := resetPassword(context.Background(), dbPath, username, password); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("Password updated for %s.\n", username)
	return 0
}

func resetPassword(ctx context.Context, dbPath, username, password string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database %s: %w", dbPath, err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return err
	}

	user, err := store.GetUserByUsername(ctx, database, username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}

	hash, err := store.HashPassword(password)
	if err != nil {
		return err
	}
	return store.UpdateUserPassword(ctx, database, user.ID, hash)
}

// readNewPassword prompts twice on a terminal. Piped input is read as a
// single line without confirmation.
func readNewPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New("empty password")
		}
		return password, nil
	}

	fmt.Fprint(prompt, "New password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}

	fmt.Fprint(prompt, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
