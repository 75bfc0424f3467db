package blacklist_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"calculator/pkg/blacklist"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedisContainer(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return nil, "", fmt.Errorf("could not get mapped port: %w", err)
	}

	return container, fmt.Sprintf("redis://%s:%d/0", host, mappedPort.Int()), nil
}

func setupBlacklist(t *testing.T) *blacklist.Redis {
	t.Helper()
	ctx := context.Background()

	container, url, err := startRedisContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	bl, err := blacklist.New(url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = bl.Close()
	})

	return bl
}

func TestRedis_RevokeAndIsRevoked(t *testing.T) {
	t.Parallel()

	bl := setupBlacklist(t)
	ctx := context.Background()

	// unknown jti is not revoked
	revoked, err := bl.IsRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	require.False(t, revoked)

	// revoke and check
	require.NoError(t, bl.Revoke(ctx, "some-jti", time.Minute))
	revoked, err = bl.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRedis_RevokeExpiredTokenIsNoop(t *testing.T) {
	t.Parallel()

	bl := setupBlacklist(t)
	ctx := context.Background()

	// a token past its expiry needs no entry
	require.NoError(t, bl.Revoke(ctx, "expired-jti", -time.Minute))
	revoked, err := bl.IsRevoked(ctx, "expired-jti")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRedis_EntryExpiresWithToken(t *testing.T) {
	t.Parallel()

	bl := setupBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "short-jti", time.Second))
	revoked, err := bl.IsRevoked(ctx, "short-jti")
	require.NoError(t, err)
	require.True(t, revoked)

	// wait out the TTL; the revocation entry must disappear with the token
	require.Eventually(t, func() bool {
		revoked, err := bl.IsRevoked(ctx, "short-jti")

		return err == nil && !revoked
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedis_Ping(t *testing.T) {
	t.Parallel()

	bl := setupBlacklist(t)
	require.NoError(t, bl.Ping(context.Background()))
}
