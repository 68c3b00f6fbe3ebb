package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notesv1 "notes-keeper/pkg/api/notes/v1"
)

var showHeartbeats bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withClient(ctx, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			stream, err := client.WatchEvents(ctx, &notesv1.WatchEventsRequest{})
			if err != nil {
				return err
			}

			for {
				event, err := stream.Recv()
				switch {
				case errors.Is(err, io.EOF):
					return nil
				case status.Code(err) == codes.Canceled:
					return nil
				case err != nil:
					return err
				}

				if event.Type == notesv1.EventHeartbeat && !showHeartbeats {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatEvent(event))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&showHeartbeats, "heartbeats", false, "also print heartbeat events")
}

func formatEvent(event *notesv1.Event) string {
	line := fmt.Sprintf("%s %-9s", event.Timestamp.Format(time.TimeOnly), event.Type)
	if event.Note != nil {
		line += fmt.Sprintf(" %s  %s", event.Note.Id, event.Note.Name)
	}
	if event.Message != "" {
		line += "  " + event.Message
	}
	return line
}
