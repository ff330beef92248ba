package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/spec-kit/credential-gateway/internal/auth"
)

func hashPasswordCmd(stdin io.Reader) *cli.Command {
	var cost int
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print a bcrypt hash for a seed file (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "cost",
				Usage:       "bcrypt work factor",
				Value:       12,
				EnvVars:     []string{"AUTH_BCRYPT_COST"},
				Destination: &cost,
			},
		},
		Action: func(c *cli.Context) error {
			hashed, err := hashFromReader(stdin, cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hashed)
			return err
		},
	}
}

func hashFromReader(r io.Reader, cost int) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}
	password := strings.TrimRight(sc.Text(), "\r")
	if password == "" {
		return "", errors.New("missing password from stdin")
	}
	return auth.NewPasswordHasher(cost).Hash(password)
}
