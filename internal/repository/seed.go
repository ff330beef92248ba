package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/credential-gateway/internal/domain"
)

// Hasher produces password hashes for seeded plaintext entries and
// recognizes entries that are already hashed.
type Hasher interface {
	Hash(password string) (string, error)
	IsHash(s string) bool
}

type usersFile struct {
	Users []struct {
		Username     string `yaml:"username"`
		Password     string `yaml:"password"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"users"`
}

// SeedUsersFromFile loads users from a YAML file. Users that already exist
// and entries without a username are skipped. Returns how many were created.
func SeedUsersFromFile(ctx context.Context, repo UserRepository, hasher Hasher, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	return SeedUsers(ctx, repo, hasher, data)
}

// SeedUsers is SeedUsersFromFile over raw YAML.
func SeedUsers(ctx context.Context, repo UserRepository, hasher Hasher, data []byte) (int, error) {
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	created := 0
	for i, u := range uf.Users {
		if u.Username == "" {
			continue
		}
		hash, err := seedHash(hasher, u.Password, u.PasswordHash)
		if err != nil {
			return created, fmt.Errorf("seed user %d (%s): %w", i, u.Username, err)
		}

		err = repo.Create(ctx, &domain.User{Username: u.Username, PasswordHash: hash})
		if errors.Is(err, ErrUserExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		created++
	}
	return created, nil
}

func seedHash(hasher Hasher, password, passwordHash string) (string, error) {
	switch {
	case passwordHash != "":
		if !hasher.IsHash(passwordHash) {
			return "", errors.New("password_hash is not a bcrypt hash")
		}
		return passwordHash, nil
	case password != "":
		return hasher.Hash(password)
	default:
		return "", errors.New("password or password_hash required")
	}
}
