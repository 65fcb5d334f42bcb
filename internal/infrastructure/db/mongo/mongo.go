package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "postboard"
	appName         = "postboard-audit"
)

// Config holds the audit trail connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Database == "" {
		c.Database = defaultDatabase
	}
	return c
}

func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetConnectTimeout(c.Timeout).
		SetServerSelectionTimeout(c.Timeout)
}

// Connect opens the client that backs the auth audit trail and pings it.
// The returned database holds the auth_events collection.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, errors.New("mongo: empty URI")
	}
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, nil, errors.Wrap(err, "mongo connect")
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrapf(err, "mongo ping %s", cfg.Database)
	}

	return client, client.Database(cfg.Database), nil
}
