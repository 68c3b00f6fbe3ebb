package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	notesv1 "notes-keeper/pkg/api/notes/v1"
)

const defaultAddress = "localhost:50051"

var (
	serverAddr string
	authToken  string
	timeout    time.Duration
)

// dial создает соединение с сервером; в тестах подменяется на bufconn
var dial = func(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(notesv1.CallOption()),
	)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notesctl",
	Short: "Command line client for the Notes Keeper server",
	Long: `notesctl talks to a running Notes Keeper server over gRPC.
The server keeps the current note selection, so commands like "save" and
"important" act on the note chosen by the last "new" or "select".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", envOr("NOTES_ADDR", defaultAddress), "gRPC server address")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("AUTH_TOKEN"), "bearer token for the server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for unary calls")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// withClient открывает соединение, добавляет токен в metadata и вызывает fn
func withClient(ctx context.Context, fn func(ctx context.Context, client notesv1.NotesServiceClient) error) error {
	conn, err := dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverAddr, err)
	}
	defer conn.Close()

	if authToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+authToken)
	}

	return fn(ctx, notesv1.NewNotesServiceClient(conn))
}

// unary - withClient с таймаутом для коротких вызовов
func unary(cmd *cobra.Command, fn func(ctx context.Context, client notesv1.NotesServiceClient) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return withClient(ctx, fn)
}
