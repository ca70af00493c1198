// Package session hands out storage sessions bound to a single unit of work.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_api/internal/repository"
)

// Session is a dedicated storage connection. Close returns it to the pool.
type Session interface {
	repository.Querier
	PingContext(ctx context.Context) error
	Close() error
}

// Acquirer hands out sessions.
type Acquirer interface {
	Acquire(ctx context.Context) (Session, error)
}

// Provider acquires sessions from an explicitly constructed pool.
type Provider struct {
	db *sql.DB
}

func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db}
}

var _ Acquirer = (*Provider)(nil)

// Acquire reserves one connection from the pool for the caller.
func (p *Provider) Acquire(ctx context.Context) (Session, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire storage session: %w", err)
	}
	return conn, nil
}

// Do runs fn with a freshly acquired session and always releases it.
func Do(ctx context.Context, a Acquirer, fn func(Session) error) (err error) {
	s, err := a.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("release storage session: %w", cerr))
		}
	}()
	return fn(s)
}
