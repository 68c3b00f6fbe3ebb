package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	notesv1 "notes-keeper/pkg/api/notes/v1"
)

var (
	listJSON    bool
	saveName    string
	saveContent string
	saveFile    string
	selectText  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Select the first note of the sorted list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.Init(ctx, &notesv1.InitRequest{})
			if err != nil {
				return err
			}
			if !resp.HasNote {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes yet")
				return nil
			}
			printNote(cmd.OutOrStdout(), resp.Current, false)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes sorted by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.ListNotes(ctx, &notesv1.ListNotesRequest{})
			if err != nil {
				return err
			}

			if listJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(resp)
			}

			for _, note := range resp.Notes {
				current, important := " ", " "
				if note.Id == resp.CurrentId {
					current = "*"
				}
				if note.Important {
					important = "!"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s  %s\n", current, important, note.Id, note.Name)
			}
			return nil
		})
	},
}

var newCmd = &cobra.Command{
	Use:   "new [name...]",
	Short: "Create a note and make it current (empty name uses the current time)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.NewNote(ctx, &notesv1.NewNoteRequest{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s  %s\n", resp.Note.Id, resp.Note.Name)
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.GetCurrentNote(ctx, &notesv1.GetCurrentNoteRequest{})
			if err != nil {
				return err
			}
			if resp.Note == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No current note")
				return nil
			}
			printNote(cmd.OutOrStdout(), resp.Note, true)
			return nil
		})
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Make a note current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			// Сервер сохраняет content перед переключением только для измененной заметки
			if cmd.Flags().Changed("content") {
				if _, err := client.MarkDirty(ctx, &notesv1.MarkDirtyRequest{Dirty: true}); err != nil {
					return err
				}
			}

			resp, err := client.SelectNote(ctx, &notesv1.SelectNoteRequest{Id: args[0], Content: selectText})
			if err != nil {
				return err
			}
			printNote(cmd.OutOrStdout(), resp.Note, false)
			return nil
		})
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save content (and optionally a new name) into the current note",
	Long: `Save replaces the content of the current note. Content is taken from
--content, from --file, or from standard input when neither is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(cmd)
		if err != nil {
			return err
		}

		req := &notesv1.SaveCurrentNoteRequest{Content: content}
		if cmd.Flags().Changed("name") {
			req.Name = &saveName
		}

		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.SaveCurrentNote(ctx, req)
			if err != nil {
				return err
			}
			if !resp.Saved {
				fmt.Fprintln(cmd.OutOrStdout(), "No current note, nothing saved")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s  %s\n", resp.Note.Id, resp.Note.Name)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the current note and select the first remaining one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.DeleteCurrentNote(ctx, &notesv1.DeleteCurrentNoteRequest{})
			if err != nil {
				return err
			}
			if resp.Current == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted. No notes left")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted. Current note: %s  %s\n", resp.Current.Id, resp.Current.Name)
			return nil
		})
	},
}

var importantCmd = &cobra.Command{
	Use:   "important",
	Short: "Toggle the important flag of the current note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.ToggleImportant(ctx, &notesv1.ToggleImportantRequest{})
			if err != nil {
				return err
			}
			if !resp.Toggled {
				fmt.Fprintln(cmd.OutOrStdout(), "No current note")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s important: %t\n", resp.Note.Name, resp.Note.Important)
			return nil
		})
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show how much storage the notes use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.GetUsage(ctx, &notesv1.GetUsageRequest{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s KB (%d bytes)\n", resp.Kilobytes, resp.Bytes)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd, listCmd, newCmd, showCmd, selectCmd, saveCmd, deleteCmd, importantCmd, usageCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	selectCmd.Flags().StringVar(&selectText, "content", "", "unsaved editor content for the previously current note")
	saveCmd.Flags().StringVar(&saveName, "name", "", "rename the note")
	saveCmd.Flags().StringVar(&saveContent, "content", "", "note content")
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "read content from file")
	saveCmd.MarkFlagsMutuallyExclusive("content", "file")
}

func readContent(cmd *cobra.Command) (string, error) {
	switch {
	case cmd.Flags().Changed("content"):
		return saveContent, nil
	case saveFile != "":
		data, err := os.ReadFile(saveFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func printNote(w io.Writer, note *notesv1.Note, withContent bool) {
	if note == nil {
		return
	}
	marker := ""
	if note.Important {
		marker = " [important]"
	}
	fmt.Fprintf(w, "%s  %s%s\n", note.Id, note.Name, marker)
	if withContent && note.Content != "" {
		fmt.Fprintf(w, "\n%s\n", note.Content)
	}
}
